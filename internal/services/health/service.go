package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"socialmetrics-backend/internal/shared/server/respond"
)

// ServiceName is reported by the root endpoint.
const ServiceName = "Social Media Analytics API"

// Service encapsulates health-related checks.
type Service struct{}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{}
}

// Root returns the service banner.
func (s *Service) Root() map[string]string {
	return map[string]string{"message": ServiceName, "status": "running"}
}

// Status returns a simple health payload.
func (s *Service) Status() map[string]string {
	return map[string]string{"status": "healthy"}
}

// RegisterRoutes attaches / and /health.
func (s *Service) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, s.Root())
	})
	rg.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, s.Status())
	})
}

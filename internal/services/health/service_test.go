package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewService().RegisterRoutes(r)

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: `{"message":"Social Media Analytics API","status":"running"}`},
		{path: "/health", want: `{"status":"healthy"}`},
	}
	for _, tt := range tests {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tt.path, resp.Code)
		}
		if resp.Body.String() != tt.want {
			t.Fatalf("%s: unexpected body %s", tt.path, resp.Body.String())
		}
	}
}

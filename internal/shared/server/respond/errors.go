package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"socialmetrics-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body. Detail repeats the message for clients
// that only read a flat error string.
type ErrorResponse struct {
	Detail string    `json:"detail"`
	Error  ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if profileID := c.GetString("profileId"); profileID != "" {
		fields["profile_id"] = profileID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Detail: message,
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// BadRequest reports err as a 400 carrying its string description.
func BadRequest(c *gin.Context, code string, err error) {
	msg := "bad request"
	if err != nil {
		msg = err.Error()
	}
	Error(c, http.StatusBadRequest, code, msg, nil)
}

package httptransport

import "github.com/gin-gonic/gin"

// APIResponse is the uniform envelope for operator-facing JSON endpoints.
// The verification endpoints keep their own frontend-compatible payloads.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
}

func respond(c *gin.Context, httpStatus int, success bool, data interface{}, message string) {
	c.JSON(httpStatus, APIResponse{
		Success: success,
		Data:    data,
		Message: message,
		Code:    httpStatus,
	})
}

// RespondSuccess writes a success envelope.
func RespondSuccess(c *gin.Context, httpStatus int, data interface{}, message string) {
	if message == "" {
		message = "ok"
	}
	respond(c, httpStatus, true, data, message)
}

// RespondError writes a failure envelope.
func RespondError(c *gin.Context, httpStatus int, message string, data interface{}) {
	respond(c, httpStatus, false, data, message)
}

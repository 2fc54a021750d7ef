package utils

import "github.com/gin-gonic/gin"

type JSONResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Success: code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondFailure reports an application-level failure with a 200 status, the
// convention for "valid request, nothing done" results (e.g. canceling a
// record that is not yours).
func RespondFailure(c *gin.Context, message string) {
	c.JSON(200, JSONResponse{
		Success: false,
		Message: message,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Success: false,
		Message: err.Error(),
	})
}

package helper

import (
	"github.com/gin-gonic/gin"
)

const (
	ErrInvalidRequest   = "invalid_request"
	ErrInvalidOperation = "invalid_operation"
	ErrNotFound         = "not_found"
	ErrUnauthorized     = "unauthorized"
)

// SendSuccess writes the payload as-is so response bodies match the
// published API contract.
func SendSuccess(c *gin.Context, status int, data interface{}) {
	if data == nil {
		c.Status(status)
		return
	}
	c.JSON(status, data)
}

func SendError(c *gin.Context, status int, err error, kind string) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":  kind,
		"detail": detail,
	})
}

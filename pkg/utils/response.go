package utils

import (
	"github.com/gin-gonic/gin"
)

// SuccessResponse writes the {"success": true, ...} envelope with the given payload keys.
func SuccessResponse(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

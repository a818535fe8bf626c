package handlers

import (
	"github.com/gin-gonic/gin"
)

// Error renders a status-coded JSON error body
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

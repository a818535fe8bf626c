package handlers

import (
	"net/http"

	"edusphere/internal/db"
	"edusphere/internal/middleware"
	"edusphere/internal/models"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// CurrentUser returns the logged-in user for the session cookie
func (h *UserHandler) CurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		Error(c, http.StatusUnauthorized, "Access denied. Not logged in.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Profile returns a public user record
func (h *UserHandler) Profile(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		Error(c, http.StatusNotFound, "No user found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

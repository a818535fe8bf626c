package middleware

import (
	"net/http"

	"edusphere/internal/db"
	"edusphere/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// LoadUser retrieves the session user and sets it on the context.
// Banned accounts are treated as logged out.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			result := db.DB.First(&user, userID)
			if result.Error == nil && !user.Banned {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. Not logged in."})
			return
		}
		c.Next()
	}
}

// AdminRequired ensures the session user holds a staff role
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CheckUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. Not logged in."})
			return
		}
		if !u.(*models.User).IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the loaded session user, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}

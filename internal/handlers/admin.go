package handlers

import (
	"net/http"

	"edusphere/internal/db"
	"edusphere/internal/models"
	"edusphere/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Ban flags a user account as banned. Banned users cannot log in and
// existing sessions stop resolving.
func (h *AdminHandler) Ban(c *gin.Context) {
	h.setBanned(c, true, "User banned successfully")
}

// Unban lifts a ban
func (h *AdminHandler) Unban(c *gin.Context) {
	h.setBanned(c, false, "User unbanned successfully")
}

func (h *AdminHandler) setBanned(c *gin.Context, banned bool, message string) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		Error(c, http.StatusBadRequest, "Missing user ID")
		return
	}

	var target models.User
	if err := db.DB.First(&target, id).Error; err != nil {
		Error(c, http.StatusNotFound, "User not found")
		return
	}
	if banned && target.IsStaff() {
		Error(c, http.StatusForbidden, "Staff accounts cannot be banned")
		return
	}

	if err := db.DB.Model(&target).UpdateColumn("banned", banned).Error; err != nil {
		Error(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

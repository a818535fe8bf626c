package handlers

import (
	"net/http"

	"edusphere/internal/db"
	"edusphere/internal/middleware"
	"edusphere/internal/models"
	"edusphere/internal/services"
	"edusphere/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReplyHandler struct {
	leaderboard *services.LeaderboardService
}

func NewReplyHandler(leaderboard *services.LeaderboardService) *ReplyHandler {
	return &ReplyHandler{leaderboard: leaderboard}
}

type replyCreateRequest struct {
	ThreadID      uint   `json:"thread_id" binding:"required"`
	Content       string `json:"content" binding:"required"`
	ParentReplyID *uint  `json:"parent_reply_id"`
}

func (h *ReplyHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req replyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "All fields are required.")
		return
	}

	var count int64
	db.DB.Model(&models.Thread{}).Where("id = ?", req.ThreadID).Count(&count)
	if count == 0 {
		Error(c, http.StatusNotFound, "Thread not found.")
		return
	}

	if req.ParentReplyID != nil {
		// Nested replies must stay within the same thread
		var parent models.Reply
		if err := db.DB.First(&parent, *req.ParentReplyID).Error; err != nil || parent.ThreadID != req.ThreadID {
			Error(c, http.StatusBadRequest, "Invalid parent reply.")
			return
		}
	}

	reply := models.Reply{
		UserID:        user.ID,
		ThreadID:      req.ThreadID,
		ParentReplyID: req.ParentReplyID,
		Content:       req.Content,
	}
	if err := db.DB.Create(&reply).Error; err != nil {
		Error(c, http.StatusInternalServerError, "Server error.")
		return
	}

	h.leaderboard.Invalidate()
	c.JSON(http.StatusCreated, gin.H{"message": "Reply created successfully.", "reply": reply})
}

type replyUpdateRequest struct {
	Content string `json:"content" binding:"required"`
}

// Update edits a reply's content, author only
func (h *ReplyHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var req replyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Content is required.")
		return
	}

	var reply models.Reply
	if err := db.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&reply).Error; err != nil {
		Error(c, http.StatusForbidden, "Reply not found or unauthorized.")
		return
	}

	if err := db.DB.Model(&reply).UpdateColumn("content", req.Content).Error; err != nil {
		Error(c, http.StatusInternalServerError, "Server error.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reply updated successfully.", "reply": reply})
}

// Delete removes a reply and its votes, author or staff
func (h *ReplyHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var reply models.Reply
	if err := db.DB.First(&reply, id).Error; err != nil {
		Error(c, http.StatusNotFound, "Reply not found.")
		return
	}
	if reply.UserID != user.ID && !user.IsStaff() {
		Error(c, http.StatusForbidden, "Unauthorized.")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reply_id = ?", reply.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		// Orphan children rather than cascade: nested replies keep the
		// thread readable even when an ancestor goes away
		if err := tx.Model(&models.Reply{}).
			Where("parent_reply_id = ?", reply.ID).
			Update("parent_reply_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&reply).Error
	})
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error.")
		return
	}

	h.leaderboard.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted successfully."})
}

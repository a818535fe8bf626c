package handlers

import (
	"net/http"
	"time"

	"edusphere/internal/db"
	"edusphere/internal/middleware"
	"edusphere/internal/models"
	"edusphere/internal/services"
	"edusphere/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ThreadHandler struct {
	leaderboard *services.LeaderboardService
}

func NewThreadHandler(leaderboard *services.LeaderboardService) *ThreadHandler {
	return &ThreadHandler{leaderboard: leaderboard}
}

type threadSummary struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ContentHTML  string    `json:"content_html"`
	Subforum     string    `json:"subforum"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username"`
	RepliesCount int64     `json:"replies_count"`
}

type threadDetail struct {
	threadSummary
	UserID     uint `json:"user_id"`
	Reputation int  `json:"reputation"`
	Votes      int  `json:"votes"`
}

type replyDetail struct {
	ID            uint      `json:"id"`
	Content       string    `json:"content"`
	ContentHTML   string    `json:"content_html"`
	CreatedAt     time.Time `json:"created_at"`
	ParentReplyID *uint     `json:"parent_reply_id"`
	UserID        uint      `json:"user_id"`
	Username      string    `json:"username"`
	Votes         int       `json:"votes"`
}

// ListBySubforum lists a subforum's threads, newest first, with reply counts
func (h *ThreadHandler) ListBySubforum(c *gin.Context) {
	subforum := c.Param("subforum")

	var threads []models.Thread
	if err := db.DB.Preload("User").
		Where("subforum = ?", subforum).
		Order("created_at DESC").
		Find(&threads).Error; err != nil {
		Error(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	ids := make([]uint, 0, len(threads))
	for _, t := range threads {
		ids = append(ids, t.ID)
	}

	counts := map[uint]int64{}
	if len(ids) > 0 {
		type row struct {
			ThreadID uint
			N        int64
		}
		var rows []row
		db.DB.Model(&models.Reply{}).
			Select("thread_id, COUNT(*) AS n").
			Where("thread_id IN ?", ids).
			Group("thread_id").
			Scan(&rows)
		for _, r := range rows {
			counts[r.ThreadID] = r.N
		}
	}

	out := make([]threadSummary, 0, len(threads))
	for _, t := range threads {
		out = append(out, threadSummary{
			ID:           t.ID,
			Title:        t.Title,
			Content:      t.Content,
			ContentHTML:  utils.RenderMarkdown(t.Content),
			Subforum:     t.Subforum,
			CreatedAt:    t.CreatedAt,
			Username:     t.User.Username,
			RepliesCount: counts[t.ID],
		})
	}
	c.JSON(http.StatusOK, out)
}

// Get returns a thread with its net score and all replies
func (h *ThreadHandler) Get(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		Error(c, http.StatusBadRequest, "Thread ID is missing.")
		return
	}

	var thread models.Thread
	if err := db.DB.Preload("User").First(&thread, id).Error; err != nil {
		Error(c, http.StatusNotFound, "Thread not found.")
		return
	}

	var threadVotes int
	db.DB.Model(&models.Vote{}).
		Select("COALESCE(SUM(value), 0)").
		Where("thread_id = ?", thread.ID).
		Scan(&threadVotes)

	var replies []models.Reply
	db.DB.Preload("User").
		Where("thread_id = ?", thread.ID).
		Order("created_at DESC").
		Find(&replies)

	// Net scores for all replies in one grouped query
	replyVotes := map[uint]int{}
	if len(replies) > 0 {
		replyIDs := make([]uint, 0, len(replies))
		for _, r := range replies {
			replyIDs = append(replyIDs, r.ID)
		}
		type row struct {
			ReplyID uint
			Net     int
		}
		var rows []row
		db.DB.Model(&models.Vote{}).
			Select("reply_id, COALESCE(SUM(value), 0) AS net").
			Where("reply_id IN ?", replyIDs).
			Group("reply_id").
			Scan(&rows)
		for _, r := range rows {
			replyVotes[r.ReplyID] = r.Net
		}
	}

	replyOut := make([]replyDetail, 0, len(replies))
	for _, r := range replies {
		replyOut = append(replyOut, replyDetail{
			ID:            r.ID,
			Content:       r.Content,
			ContentHTML:   utils.RenderMarkdown(r.Content),
			CreatedAt:     r.CreatedAt,
			ParentReplyID: r.ParentReplyID,
			UserID:        r.UserID,
			Username:      r.User.Username,
			Votes:         replyVotes[r.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"thread": threadDetail{
			threadSummary: threadSummary{
				ID:           thread.ID,
				Title:        thread.Title,
				Content:      thread.Content,
				ContentHTML:  utils.RenderMarkdown(thread.Content),
				Subforum:     thread.Subforum,
				CreatedAt:    thread.CreatedAt,
				Username:     thread.User.Username,
				RepliesCount: int64(len(replies)),
			},
			UserID:     thread.UserID,
			Reputation: thread.User.Reputation,
			Votes:      threadVotes,
		},
		"replies": replyOut,
	})
}

type threadCreateRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h *ThreadHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	subforum := c.Param("subforum")

	var req threadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "All fields are required.")
		return
	}

	var count int64
	db.DB.Model(&models.Subforum{}).Where("name = ?", subforum).Count(&count)
	if count == 0 {
		Error(c, http.StatusNotFound, "Subforum not found.")
		return
	}

	thread := models.Thread{
		UserID:   user.ID,
		Subforum: subforum,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := db.DB.Create(&thread).Error; err != nil {
		Error(c, http.StatusInternalServerError, "Server error.")
		return
	}

	h.leaderboard.Invalidate()
	c.JSON(http.StatusCreated, gin.H{"message": "Thread created successfully.", "thread": thread})
}

type threadUpdateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Update edits a thread's title and/or content, author only
func (h *ThreadHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var req threadUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Title == "" && req.Content == "") {
		Error(c, http.StatusBadRequest, "At least one field (title/content) is required.")
		return
	}

	var thread models.Thread
	if err := db.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&thread).Error; err != nil {
		Error(c, http.StatusForbidden, "Thread not found or unauthorized.")
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Content != "" {
		updates["content"] = req.Content
	}
	if err := db.DB.Model(&thread).Updates(updates).Error; err != nil {
		Error(c, http.StatusInternalServerError, "Server error.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Thread updated successfully.", "thread": thread})
}

// Delete removes a thread with its replies and votes, author or staff
func (h *ThreadHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var thread models.Thread
	if err := db.DB.First(&thread, id).Error; err != nil {
		Error(c, http.StatusNotFound, "Thread not found.")
		return
	}
	if thread.UserID != user.ID && !user.IsStaff() {
		Error(c, http.StatusForbidden, "Unauthorized.")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("thread_id = ?", thread.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reply_id IN (?)",
			tx.Model(&models.Reply{}).Select("id").Where("thread_id = ?", thread.ID),
		).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thread_id = ?", thread.ID).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&thread).Error
	})
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error.")
		return
	}

	h.leaderboard.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "Thread deleted successfully."})
}

package handlers

import (
	"errors"
	"net/http"

	"edusphere/internal/middleware"
	"edusphere/internal/services"
	"edusphere/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes       *services.VoteService
	leaderboard *services.LeaderboardService
}

func NewVoteHandler(votes *services.VoteService, leaderboard *services.LeaderboardService) *VoteHandler {
	return &VoteHandler{votes: votes, leaderboard: leaderboard}
}

type voteRequest struct {
	ThreadID *uint `json:"thread_id"`
	ReplyID  *uint `json:"reply_id"`
	VoteType int   `json:"vote_type"`
}

// Vote casts, flips or retracts the caller's vote on a thread or reply
func (h *VoteHandler) Vote(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid input.")
		return
	}

	target := services.VoteTarget{ThreadID: req.ThreadID, ReplyID: req.ReplyID}
	result, err := h.votes.Cast(user.ID, target, req.VoteType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidVoteValue):
			Error(c, http.StatusBadRequest, "Invalid input.")
		case errors.Is(err, services.ErrInvalidTarget):
			Error(c, http.StatusBadRequest, "Provide only one of thread_id or reply_id.")
		case errors.Is(err, services.ErrTargetNotFound):
			Error(c, http.StatusNotFound, "Target not found.")
		default:
			Error(c, http.StatusInternalServerError, "Internal Server Error.")
		}
		return
	}

	h.leaderboard.Invalidate()

	switch result {
	case services.VoteRecorded:
		c.JSON(http.StatusCreated, gin.H{"message": "Vote recorded."})
	case services.VoteUpdated:
		c.JSON(http.StatusOK, gin.H{"message": "Vote updated."})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Vote removed."})
	}
}

// Count returns the net score of a thread or reply, 0 when unvoted
func (h *VoteHandler) Count(c *gin.Context) {
	contentType := c.Param("contentType")
	contentID := utils.StringToUint(c.Param("contentId"))
	if contentID == 0 {
		Error(c, http.StatusBadRequest, "Missing details.")
		return
	}

	var target services.VoteTarget
	switch contentType {
	case "thread":
		target.ThreadID = &contentID
	case "reply":
		target.ReplyID = &contentID
	default:
		Error(c, http.StatusBadRequest, "Invalid content type.")
		return
	}

	net, err := h.votes.NetScore(target)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Internal Server Error.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"net_votes": net})
}

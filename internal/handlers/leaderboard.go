package handlers

import (
	"net/http"

	"edusphere/internal/services"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboard *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboard *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

func (h *LeaderboardHandler) Weekly(c *gin.Context) {
	h.respond(c, services.WindowWeekly)
}

func (h *LeaderboardHandler) Lifetime(c *gin.Context) {
	h.respond(c, services.WindowLifetime)
}

func (h *LeaderboardHandler) respond(c *gin.Context, window string) {
	entries, err := h.leaderboard.Compute(window)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, entries)
}

package router

import (
	"edusphere/internal/chat"
	"edusphere/internal/handlers"
	"edusphere/internal/middleware"
	"edusphere/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the handlers need, wired up once in main.
type Deps struct {
	Votes       *services.VoteService
	Leaderboard *services.LeaderboardService
	Hub         *chat.Hub
	FrontendURL string
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	threadHandler := handlers.NewThreadHandler(deps.Leaderboard)
	replyHandler := handlers.NewReplyHandler(deps.Leaderboard)
	voteHandler := handlers.NewVoteHandler(deps.Votes, deps.Leaderboard)
	leaderboardHandler := handlers.NewLeaderboardHandler(deps.Leaderboard)
	reportHandler := handlers.NewReportHandler()
	adminHandler := handlers.NewAdminHandler()
	chatHandler := handlers.NewChatHandler(deps.Hub, deps.FrontendURL)

	// Accounts
	user := r.Group("/user")
	{
		user.POST("/register", authHandler.Register)
		user.POST("/login", authHandler.Login)
		user.GET("/logout", authHandler.Logout)
		user.GET("/currentuser", userHandler.CurrentUser)
		user.GET("/:id", userHandler.Profile)
	}

	// Forum reads are public
	forum := r.Group("/forum")
	{
		forum.GET("/thread/:subforum", threadHandler.ListBySubforum)
		forum.GET("/thread/id/:id", threadHandler.Get)
		forum.GET("/vote-count/:contentType/:contentId", voteHandler.Count)
	}

	// Forum writes need a session
	forumAuth := r.Group("/forum")
	forumAuth.Use(middleware.AuthRequired())
	{
		forumAuth.POST("/thread/:subforum", threadHandler.Create)
		forumAuth.PATCH("/thread/:id", threadHandler.Update)
		forumAuth.DELETE("/thread/:id", threadHandler.Delete)

		forumAuth.POST("/reply", replyHandler.Create)
		forumAuth.PATCH("/reply/:id", replyHandler.Update)
		forumAuth.DELETE("/reply/:id", replyHandler.Delete)

		forumAuth.POST("/vote", voteHandler.Vote)
	}

	r.GET("/leaderboard/weekly", leaderboardHandler.Weekly)
	r.GET("/leaderboard/lifetime", leaderboardHandler.Lifetime)

	report := r.Group("/report")
	report.Use(middleware.AuthRequired())
	{
		report.POST("", reportHandler.Create)
	}
	reportAdmin := r.Group("/report")
	reportAdmin.Use(middleware.AdminRequired())
	{
		reportAdmin.GET("", reportHandler.List)
		reportAdmin.GET("/:id", reportHandler.Get)
	}

	acp := r.Group("/acp")
	acp.Use(middleware.AdminRequired())
	{
		acp.POST("/ban/:id", adminHandler.Ban)
		acp.POST("/unban/:id", adminHandler.Unban)
	}

	// Realtime chat; the handler itself rejects anonymous handshakes
	r.GET("/ws", chatHandler.Serve)
}

package main

import (
	"log"

	"edusphere/internal/chat"
	"edusphere/internal/config"
	"edusphere/internal/db"
	"edusphere/internal/middleware"
	"edusphere/internal/router"
	"edusphere/internal/services"
	"edusphere/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}
	cfg := config.Load()

	// Initialize Database
	gdb := db.Init(cfg.DatabaseURL)

	// Chat hub; the registry lives here, not as a package global, so it
	// dies with the process and swaps out in tests
	registry := chat.NewRegistry()
	hub := chat.NewHub(registry)
	go hub.Run()

	// Services
	cache := utils.NewCache(500)
	voteService := services.NewVoteService(gdb)
	leaderboardService := services.NewLeaderboardService(gdb, cache)

	// Initialize Gin
	r := gin.Default()

	// CORS for the React client
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("edusphere_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r, router.Deps{
		Votes:       voteService,
		Leaderboard: leaderboardService,
		Hub:         hub,
		FrontendURL: cfg.FrontendURL,
	})

	log.Printf("EduSphere server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

package config

import (
	"os"
)

type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	FrontendURL   string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}

	return Config{
		Port:          port,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: secret,
		FrontendURL:   frontend,
	}
}

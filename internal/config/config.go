package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	Port           string
	StaticTokens   string
	JWTSecret      string
	RedisAddr      string
	GoogleClientID string
	GoogleSecret   string
	GoogleRedirect string
}

// Load reads the optional .env file and the process environment. A missing
// .env is fine; required values are checked by the caller.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           os.Getenv("PORT"),
		StaticTokens:   os.Getenv("STATIC_TOKENS"),
		JWTSecret:      os.Getenv("JWT_HMAC_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirect: os.Getenv("GOOGLE_REDIRECT_URL"),
	}
}

package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	JWTSecret    string
	CookieSecure bool
	DatabaseURL  string
	RedisURL     string
	SeedPassword string
	BcryptCost   int
	LogFile      string
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cost, err := strconv.Atoi(getenv("BCRYPT_COST", "0"))
	if err != nil {
		return Config{}, errors.New("config: invalid BCRYPT_COST")
	}

	cfg := Config{
		Port:         getenv("PORT", "4000"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		CookieSecure: parseBool(getenv("COOKIE_SECURE", "false")),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		SeedPassword: getenv("SEED_PASSWORD", "password123"),
		BcryptCost:   cost,
		LogFile:      os.Getenv("LOG_FILE"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("config: JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

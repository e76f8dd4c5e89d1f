package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the process environment at startup.
type Config struct {
	DatabaseURL   string
	Port          string
	JWTSecret     string
	TokenLifetime time.Duration

	// SeedTaskTypes optionally holds a JSON array of task type names
	// inserted at startup.
	SeedTaskTypes string
}

// LoadENV reads a .env file if one exists. A missing file is not an
// error; variables already set in the environment win either way.
func LoadENV() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}

// Load builds the configuration from the environment. The service cannot
// run without a database, so a missing DATABASE_URL fails startup instead
// of limping along with no store.
func Load() (*Config, error) {
	uri := os.Getenv("DATABASE_URL")
	if uri == "" {
		return nil, errors.New("you must set your 'DATABASE_URL' environmental variable")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("you must set your 'JWT_SECRET' environmental variable")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	lifetime := time.Hour
	if raw := os.Getenv("TOKEN_LIFETIME"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.New("TOKEN_LIFETIME must be a valid duration")
		}
		lifetime = parsed
	}

	return &Config{
		DatabaseURL:   uri,
		Port:          port,
		JWTSecret:     secret,
		TokenLifetime: lifetime,
		SeedTaskTypes: os.Getenv("SEED_TASK_TYPES"),
	}, nil
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/poofware/equity-registry/internal/utils"
)

const AppName = "equity-registry"

type Config struct {
	AppName string
	AppPort string
	AppUrl  string
	DBUrl   string
	Env     string

	// Per-identity mutation rate limiting
	MutationRateLimit int
	RateLimitWindow   time.Duration
}

// LoadConfig reads a .env file when present, then the environment.
// Required vars are fatal when missing, same ordering and logging style
// as the other services.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found; relying on system env variables")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DATABASE_URL env var is missing")
	}
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:" + appPort
	}

	cfg := &Config{
		AppName:           AppName,
		AppPort:           appPort,
		AppUrl:            appURL,
		DBUrl:             dbURL,
		Env:               env,
		MutationRateLimit: getEnvInt("MUTATION_RATE_LIMIT", 60),
		RateLimitWindow:   time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}

	utils.Logger.Infof("Loaded config for %s (%s)", AppName, env)
	return cfg
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		utils.Logger.Warnf("Invalid %s '%s', defaulting to %d", key, raw, fallback)
		return fallback
	}
	return v
}

// Package config reads the process environment once at startup.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultProjectID  = "recipe-mgmt-dev"
	DefaultMongoURI   = "mongodb://localhost:27017"
	DefaultCollection = "recipes"
)

type Config struct {
	// ProjectID names the deployment; it is also the database name.
	ProjectID  string
	MongoURI   string
	Collection string

	// RedisURL enables migration events when set.
	RedisURL      string
	RedisPassword string

	// WritesPerSecond caps migration writes; zero means no cap.
	WritesPerSecond float64

	LogLevel string

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// Load reads .env if present, then the environment.
func Load() (Config, error) {
	loaded := godotenv.Load() == nil

	cfg := Config{
		ProjectID:     firstNonEmpty(os.Getenv("PROJECT_ID"), os.Getenv("GCP_PROJECT_ID"), DefaultProjectID),
		MongoURI:      firstNonEmpty(os.Getenv("MONGO_URI"), DefaultMongoURI),
		Collection:    firstNonEmpty(os.Getenv("RECIPES_COLLECTION"), DefaultCollection),
		RedisURL:      os.Getenv("REDIS_URL"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogLevel:      firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
		EnvFileLoaded: loaded,
	}

	if v := os.Getenv("MIGRATE_WRITES_PER_SEC"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("MIGRATE_WRITES_PER_SEC must be a non-negative number, got %q", v)
		}
		cfg.WritesPerSecond = n
	}
	return cfg, nil
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}

package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. The relational and document stores are configured
// independently because the application mirrors data into both.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	DatabaseURL string // PostgreSQL connection string
	MongoURI    string // MongoDB connection string
	MongoDB     string // MongoDB database name
	JWTSecret   string // secret used to sign JWTs
	OMDBAPIKey  string // API key for the OMDb metadata lookup
	LogLevel    string // zap log level (debug/info/warn/error)
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message. The JWT secret in particular
// must be present at startup: tokens signed with an empty secret would be
// trivially forgeable.
func Load() Config {
	return Config{
		Env:         must("APP_ENV"),
		Port:        must("APP_PORT"),
		DatabaseURL: must("DATABASE_URL"),
		MongoURI:    must("MONGO_URI"),
		MongoDB:     getenv("MONGO_DB", "filmes_api"),
		JWTSecret:   must("JWT_SECRET"),
		OMDBAPIKey:  must("OMDB_API_KEY"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of an optional environment variable, falling back
// to def when unset.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

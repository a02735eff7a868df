package config

import (
	"fmt"
	"os"
)

// Config holds all process-wide settings. It is built once in main from the
// environment and passed down; nothing in the app reads env vars after startup.
type Config struct {
	Port string

	// Database. DatabaseURL wins when set, otherwise the discrete DB_* vars
	// are assembled into a DSN.
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string

	// Supabase object storage (product photos).
	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string

	// External image-recognition API.
	RecognitionURL string
	RecognitionKey string
}

// Load reads the configuration from the environment.
func Load() Config {
	cfg := Config{
		Port:               getEnv("PORT", "3000"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBHost:             os.Getenv("DB_HOST"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBPort:             os.Getenv("DB_PORT"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		SupabaseBucket:     getEnv("SUPABASE_BUCKET", "productimages"),
		RecognitionURL:     os.Getenv("RECOGNITION_API_URL"),
		RecognitionKey:     os.Getenv("RECOGNITION_API_KEY"),
	}
	return cfg
}

// DSN returns the Postgres connection string.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

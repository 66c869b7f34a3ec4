package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server configuration.
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	OCR    OCRConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type UploadConfig struct {
	// Dir is where uploaded statements are staged under unique names.
	Dir string
	// MaxMB bounds the accepted request body size.
	MaxMB int
}

type OCRConfig struct {
	Enabled bool
	Lang    string
}

// Load reads configuration from environment variables, honoring a local
// .env file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnvAsInt("PORT", 5000),
		},
		Upload: UploadConfig{
			Dir:   getEnv("UPLOAD_DIR", "uploads"),
			MaxMB: getEnvAsInt("MAX_UPLOAD_MB", 16),
		},
		OCR: OCRConfig{
			Enabled: getEnvAsBool("OCR_ENABLED", false),
			Lang:    getEnv("OCR_LANG", "por"),
		},
	}
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

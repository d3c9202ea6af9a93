package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port       string
	Env        string
	CORSOrigin string
}

type AuthConfig struct {
	SecretKey         string
	AccessTokenExpiry time.Duration
}

type DatabaseConfig struct {
	URL  string
	Name string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	EmbedModel string
	Timeout    time.Duration
}

type StorageConfig struct {
	ScratchPath string
	MaxFileSize int64
}

const defaultDatabaseURL = "host=localhost port=5432 user=postgres password=postgres dbname=resume_db sslmode=disable"

// Load reads .env (if present) and the process environment.
func Load(log *logrus.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found. Using environment and default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:       getEnv("PORT", "5000"),
			Env:        getEnv("ENV", "development"),
			CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		},
		Auth: AuthConfig{
			SecretKey:         getEnv("JWT_SECRET_KEY", "super-secret-key"),
			AccessTokenExpiry: getEnvAsDuration("JWT_ACCESS_TOKEN_EXPIRES", "15m"),
		},
		Database: DatabaseConfig{
			URL:  getEnv("DATABASE_URL", getEnv("MONGO_URI", defaultDatabaseURL)),
			Name: getEnv("DATABASE_NAME", "resume_db"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "resume_reviews"),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
			Timeout:    getEnvAsDuration("LLM_TIMEOUT", "60s"),
		},
		Storage: StorageConfig{
			ScratchPath: getEnv("SCRATCH_DIR", "./temp"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
	}
}

// IsMongo reports whether the database URL points at a MongoDB deployment.
func (c *Config) IsMongo() bool {
	u := strings.ToLower(c.Database.URL)
	return strings.HasPrefix(u, "mongodb://") || strings.HasPrefix(u, "mongodb+srv://")
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IndexEnabled reports whether semantic search over reviews is configured.
func (c *Config) IndexEnabled() bool {
	return c.Qdrant.URL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

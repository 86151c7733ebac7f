package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// Auth mode: "mock" injects a fixed user into every request (local dev
	// and the current frontend), "jwt" verifies HS256 bearer tokens.
	AuthMode  string
	JWTSecret string
	// Identity used by the mock resolver
	MockUserID    string
	MockUserName  string
	MockUserEmail string
	// Resume upload storage
	UploadDir string
	// Redis (optional, upload rate limiting)
	RedisURL      string
	RedisPassword string
	// Upload Rate Limiting
	UploadsPerMinutePerIP int
	UploadsPerDayPerUser  int
	// Antivirus (optional): clamd TCP address or unix socket path
	ClamAVAddr string
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production if absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		// Auth
		AuthMode:  getEnv("AUTH_MODE", "mock"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		// The default mock identity mirrors the seed user the frontend expects
		MockUserID:    getEnv("MOCK_USER_ID", "65fa3d7d36e2673e4631706d"),
		MockUserName:  getEnv("MOCK_USER_NAME", "Test User"),
		MockUserEmail: getEnv("MOCK_USER_EMAIL", "test@example.com"),
		// Uploads
		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting (with sensible defaults)
		UploadsPerMinutePerIP: getEnvInt("UPLOADS_PER_MINUTE_PER_IP", 10),
		UploadsPerDayPerUser:  getEnvInt("UPLOADS_PER_DAY_PER_USER", 50),
		// Antivirus
		ClamAVAddr: getEnv("CLAMAV_ADDR", ""),
	}

	// Basic validation to avoid confusing failures later
	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.AuthMode == "jwt" && cfg.JWTSecret == "" {
		log.Println("WARNING: AUTH_MODE=jwt but JWT_SECRET is empty. All requests will be rejected.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Upload rate limiting is disabled.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime option. Values are read from the
// environment exactly once at startup.
type Config struct {
	Port           string
	DBPath         string
	SecretKey      string
	TokenTTL       time.Duration
	GeminiAPIKey   string
	GeminiModel    string
	SpeechAPIKey   string
	AITimeout      time.Duration
	AllowedOrigins string
	Debug          bool
}

func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "data/vitalog.db"),
		SecretKey:      getEnv("SECRET_KEY", "change_me_in_production"),
		TokenTTL:       time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 30)) * time.Minute,
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		SpeechAPIKey:   getEnv("SPEECH_API_KEY", ""),
		AITimeout:      time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 20)) * time.Second,
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		Debug:          getEnvBool("DEBUG", false),
	}
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Addr          string
	DBPath        string
	LogLevel      string
	WhatsAppPhone string // shop's WhatsApp number in international format, e.g. +963937341881
	JWTSecret     string // optional override; auto-generated and stored in the DB if empty
	AdminUser     string // admin username created on first run
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:          getEnv("SHAMSHOP_ADDR", ":8080"),
		DBPath:        getEnv("SHAMSHOP_DB", "shamshop.sqlite3"),
		LogLevel:      getEnv("SHAMSHOP_LOG_LEVEL", "info"),
		WhatsAppPhone: getEnv("SHAMSHOP_WHATSAPP", "+963937341881"),
		JWTSecret:     getEnv("SHAMSHOP_JWT_SECRET", ""),
		AdminUser:     getEnv("SHAMSHOP_ADMIN_USER", "admin"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

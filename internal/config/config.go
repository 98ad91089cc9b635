package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the binaries read from the environment.
type Config struct {
	Port         string
	JWTSecret    string
	DataDir      string
	StoreBackend string // "json" (default) or "postgres"
	DatabaseURL  string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPPassword string
}

// Load reads .env if present, then the process environment.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:         os.Getenv("PORT"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		DataDir:      os.Getenv("HIREWISE_DATA_DIR"),
		StoreBackend: os.Getenv("STORE_BACKEND"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPSender:   os.Getenv("SMTP_SENDER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = "json"
	}
	return cfg
}

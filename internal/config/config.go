package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN           string
	ListenAddr      string
	Environment     string
	AdminToken      string
	BookingFilePath string
	BookingBackend  string // "file" or "postgres"

	// Sessions allowed per 4-week accounting period, by plan tier.
	QuotaPro     int
	QuotaAmateur int
}

func Load() (*Config, error) {
	// .env is optional; process environment always wins when the file is absent.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:           os.Getenv("DB_DSN"),
		ListenAddr:      os.Getenv("LISTEN_ADDR"),
		Environment:     os.Getenv("ENV"),
		AdminToken:      os.Getenv("ADMIN_TOKEN"),
		BookingFilePath: os.Getenv("BOOKING_FILE_PATH"),
		BookingBackend:  os.Getenv("BOOKING_BACKEND"),
		QuotaPro:        envInt("QUOTA_PRO", 12),
		QuotaAmateur:    envInt("QUOTA_AMATEUR", 8),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.BookingFilePath == "" {
		cfg.BookingFilePath = "data/bookings.json"
	}
	if cfg.BookingBackend == "" {
		cfg.BookingBackend = "file"
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.BookingBackend != "file" && cfg.BookingBackend != "postgres" {
		return nil, fmt.Errorf("BOOKING_BACKEND must be \"file\" or \"postgres\", got %q", cfg.BookingBackend)
	}

	return cfg, nil
}

func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("invalid %s=%q, using default %d", key, raw, def)
		return def
	}
	return n
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

type Config struct {
	Addr      string
	StaticDir string
	RateLimit rate.Limit // requests per second per client
	RateBurst int
	TLSCert   string
	TLSKey    string
}

// TLS reports whether both certificate and key are configured.
func (c Config) TLS() bool { return c.TLSCert != "" && c.TLSKey != "" }

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	limit, err := strconv.ParseFloat(getEnv("RATE_LIMIT", "5"), 64)
	if err != nil || limit <= 0 {
		return Config{}, fmt.Errorf("config: RATE_LIMIT must be a positive number")
	}
	burst, err := strconv.Atoi(getEnv("RATE_BURST", "10"))
	if err != nil || burst <= 0 {
		return Config{}, fmt.Errorf("config: RATE_BURST must be a positive integer")
	}

	cfg := Config{
		Addr:      getEnv("ADDR", ":8501"),
		StaticDir: getEnv("STATIC_DIR", "./static/main"),
		RateLimit: rate.Limit(limit),
		RateBurst: burst,
		TLSCert:   os.Getenv("TLS_CERT"),
		TLSKey:    os.Getenv("TLS_KEY"),
	}
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return Config{}, fmt.Errorf("config: TLS_CERT and TLS_KEY must be set together")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

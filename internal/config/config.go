package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Config keeps every runtime setting the server and bot need. It is read
// once at startup and passed to components explicitly; nothing else
// touches the environment.
type Config struct {
	BotToken        string
	WebAppURL       string
	DatabaseURL     string
	Port            int
	AllowedOrigins  []string
	SessionHashKey  []byte
	SessionBlockKey []byte
	SecureCookies   bool
	DevAdmin        bool
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://localhost:3002",
	"http://localhost:3003",
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		BotToken:    strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		WebAppURL:   strings.TrimSpace(os.Getenv("WEBAPP_URL")),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DevAdmin:    os.Getenv("DEV_ADMIN") == "true",
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "salesacademy.db"
	}

	cfg.Port = 4000
	if raw := strings.TrimSpace(os.Getenv("PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return cfg, fmt.Errorf("invalid PORT %q", raw)
		}
		cfg.Port = port
	}

	cfg.AllowedOrigins = defaultOrigins
	if raw := strings.TrimSpace(os.Getenv("CORS_ORIGIN")); raw != "" {
		cfg.AllowedOrigins = nil
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	cfg.SessionHashKey = loadOrGenerateKey("SESSION_HASH_KEY", 32)
	cfg.SessionBlockKey = loadOrGenerateKey("SESSION_BLOCK_KEY", 32)

	domain := strings.TrimSpace(os.Getenv("DOMAIN_NAME"))
	cfg.SecureCookies = domain != "" && domain != "localhost" && domain != "127.0.0.1"

	if cfg.BotToken == "" {
		return cfg, fmt.Errorf("BOT_TOKEN is required")
	}

	return cfg, nil
}

// loadOrGenerateKey reads a hex key from the environment or generates a
// random one. Random keys invalidate existing sessions on restart.
func loadOrGenerateKey(envVar string, length int) []byte {
	keyHex := os.Getenv(envVar)
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err == nil && len(key) >= length {
			return key[:length]
		}
		log.Printf("Warning: %s is invalid, generating random key", envVar)
	}

	key := make([]byte, length)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("Failed to generate session key: %v", err)
	}
	log.Printf("Warning: %s not set, using random key (sessions won't persist)", envVar)
	return key
}

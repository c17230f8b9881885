package config

import (
	"encoding/hex"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("SESSION_HASH_KEY", "")
	t.Setenv("SESSION_BLOCK_KEY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGIN", "")
	t.Setenv("DEV_ADMIN", "")
	t.Setenv("DOMAIN_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DatabaseURL != "salesacademy.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.Port != 4000 {
		t.Errorf("Port = %d, want 4000", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 4 {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.DevAdmin {
		t.Error("DevAdmin should default to false")
	}
	if cfg.SecureCookies {
		t.Error("SecureCookies should be false without a domain")
	}
	if len(cfg.SessionHashKey) != 32 || len(cfg.SessionBlockKey) != 32 {
		t.Error("generated session keys should be 32 bytes")
	}
}

func TestLoad_Explicit(t *testing.T) {
	hashKey := "000102030405060708090a0b0c0d0e0f000102030405060708090a0b0c0d0e0f"

	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("SESSION_HASH_KEY", hashKey)
	t.Setenv("SESSION_BLOCK_KEY", "")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGIN", "https://app.example.com, https://admin.example.com")
	t.Setenv("DEV_ADMIN", "true")
	t.Setenv("DOMAIN_NAME", "example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	want, _ := hex.DecodeString(hashKey)
	if string(cfg.SessionHashKey) != string(want) {
		t.Error("SessionHashKey not decoded from env")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if !cfg.DevAdmin {
		t.Error("DevAdmin should be true")
	}
	if !cfg.SecureCookies {
		t.Error("SecureCookies should be true for a real domain")
	}
}

func TestLoad_RequiresBotToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("SESSION_HASH_KEY", "")
	t.Setenv("SESSION_BLOCK_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail without BOT_TOKEN")
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("SESSION_HASH_KEY", "")
	t.Setenv("SESSION_BLOCK_KEY", "")
	t.Setenv("PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on a malformed PORT")
	}
}

package config

import (
	"os"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := applyDefaults(Config{})

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.TokenTTL != 7*24*time.Hour {
		t.Errorf("expected 7d token ttl, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Checker.Interval != 15*time.Minute {
		t.Errorf("expected 15m interval, got %v", cfg.Checker.Interval)
	}
	if cfg.Checker.FetchConcurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Checker.FetchConcurrency)
	}
	if cfg.Quotes.BaseURL == "" {
		t.Error("expected default quotes base url")
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("CHECK_INTERVAL", "5m")
	os.Setenv("RESEND_API_KEY", "re_test")
	defer func() {
		os.Unsetenv("HTTP_ADDR")
		os.Unsetenv("CHECK_INTERVAL")
		os.Unsetenv("RESEND_API_KEY")
	}()

	cfg := applyEnv(applyDefaults(Config{}))

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.HTTP.Addr)
	}
	if cfg.Checker.Interval != 5*time.Minute {
		t.Errorf("expected 5m, got %v", cfg.Checker.Interval)
	}
	if !cfg.Mailer.Enabled || cfg.Mailer.APIKey != "re_test" {
		t.Errorf("expected mailer enabled via env, got %+v", cfg.Mailer)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := applyDefaults(Config{})
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	// 啟用寄信但沒有金鑰必須在啟動時失敗
	bad := applyDefaults(Config{})
	bad.Mailer.Enabled = true
	bad.Mailer.APIKey = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected validation error for mailer without api key")
	}

	short := applyDefaults(Config{})
	short.Checker.Interval = 100 * time.Millisecond
	if err := short.Validate(); err == nil {
		t.Error("expected validation error for sub-second interval")
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 儲存 HTTP API、排程器及外部相依的執行設定。
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	DB      DBConfig      `yaml:"db"`
	Auth    AuthConfig    `yaml:"auth"`
	Quotes  QuotesConfig  `yaml:"quotes"`
	Mailer  MailerConfig  `yaml:"mailer"`
	Checker CheckerConfig `yaml:"checker"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type DBConfig struct {
	DSN          string        `yaml:"dsn"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxIdleTime  time.Duration `yaml:"max_idle_time"`
}

type AuthConfig struct {
	TokenTTL time.Duration `yaml:"token_ttl"`
	Secret   string        `yaml:"secret"`
}

type QuotesConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type MailerConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	Sender  string `yaml:"sender"`
}

type CheckerConfig struct {
	Interval         time.Duration `yaml:"interval"`
	FetchConcurrency int           `yaml:"fetch_concurrency"`
}

// LoadFromFile 從 YAML 組態檔載入設定，檔案不存在時只用預設值與環境變數。
func LoadFromFile(path string) (Config, error) {
	// 嘗試載入 .env 檔案（如果存在）
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg = applyDefaults(cfg)
	cfg = applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 把組態錯誤擋在啟動階段，而不是每個 tick 再爆一次。
func (c Config) Validate() error {
	if c.Mailer.Enabled && c.Mailer.APIKey == "" {
		return fmt.Errorf("mailer enabled but mailer.api_key (or RESEND_API_KEY) missing")
	}
	if c.Checker.Interval < time.Second {
		return fmt.Errorf("checker.interval too small: %v", c.Checker.Interval)
	}
	return nil
}

func applyDefaults(cfg Config) Config {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.DB.MaxOpenConns == 0 {
		cfg.DB.MaxOpenConns = 5
	}
	if cfg.DB.MaxIdleConns == 0 {
		cfg.DB.MaxIdleConns = 2
	}
	if cfg.DB.MaxIdleTime == 0 {
		cfg.DB.MaxIdleTime = 15 * time.Minute
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 7 * 24 * time.Hour
	}
	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = "dev-secret-change-me"
	}
	if cfg.Quotes.BaseURL == "" {
		cfg.Quotes.BaseURL = "https://query1.finance.yahoo.com"
	}
	if cfg.Quotes.Timeout == 0 {
		cfg.Quotes.Timeout = 10 * time.Second
	}
	if cfg.Mailer.Sender == "" {
		cfg.Mailer.Sender = "onboarding@resend.dev"
	}
	if cfg.Checker.Interval == 0 {
		cfg.Checker.Interval = 15 * time.Minute
	}
	if cfg.Checker.FetchConcurrency == 0 {
		cfg.Checker.FetchConcurrency = 4
	}
	return cfg
}

func applyEnv(cfg Config) Config {
	if val := os.Getenv("HTTP_ADDR"); val != "" {
		cfg.HTTP.Addr = val
	}
	if val := os.Getenv("PORT"); val != "" {
		cfg.HTTP.Addr = ":" + val
	}
	if val := os.Getenv("DB_DSN"); val != "" {
		cfg.DB.DSN = val
	}
	if val := os.Getenv("AUTH_SECRET"); val != "" {
		cfg.Auth.Secret = val
	}
	if val := os.Getenv("QUOTES_BASE_URL"); val != "" {
		cfg.Quotes.BaseURL = val
	}
	if val := os.Getenv("RESEND_API_KEY"); val != "" {
		cfg.Mailer.APIKey = val
		cfg.Mailer.Enabled = true
	}
	if val := os.Getenv("SENDER_EMAIL"); val != "" {
		cfg.Mailer.Sender = val
	}
	if val := os.Getenv("MAILER_ENABLED"); val != "" {
		cfg.Mailer.Enabled = (val == "true")
	}
	if val := os.Getenv("CHECK_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Checker.Interval = d
		}
	}
	if val := os.Getenv("FETCH_CONCURRENCY"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.Checker.FetchConcurrency = n
		}
	}
	return cfg
}

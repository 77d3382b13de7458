// config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port    string
	Timeout int // seconds, read and write
}

// DatabaseConfig holds PostgreSQL settings
type DatabaseConfig struct {
	DSN string
}

// StorageConfig holds S3-compatible object storage settings for photo uploads
type StorageConfig struct {
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

// RedisConfig holds Redis settings for the optional Redis token store
type RedisConfig struct {
	Addresses []string
	Password  string
	DB        int
	KeyPrefix string
}

// XeroConfig holds Xero OAuth 2.0 and API settings
type XeroConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	TenantID     string
	ContactID    string
	Scopes       []string
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
}

// Config is the top-level application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Storage       StorageConfig
	Redis         RedisConfig
	Xero          XeroConfig
	SessionSecret string
	TokenStore    string // "file" or "redis"
	TokenFile     string
}

// Load builds configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (Config, error) {
	// Missing .env is fine, env vars may be set directly
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			Timeout: getEnvInt("SERVER_TIMEOUT", 15),
		},
		Database: DatabaseConfig{
			DSN: os.Getenv("DATABASE_DSN"),
		},
		Storage: StorageConfig{
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			Bucket:        getEnv("S3_BUCKET", "pictures"),
			Region:        getEnv("S3_REGION", "us-east-1"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
		Redis: RedisConfig{
			Addresses: splitList(getEnv("REDIS_ADDRESSES", "127.0.0.1:6379")),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        getEnvInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "quoteserver"),
		},
		Xero: XeroConfig{
			ClientID:     os.Getenv("XERO_CLIENT_ID"),
			ClientSecret: os.Getenv("XERO_CLIENT_SECRET"),
			RedirectURI:  os.Getenv("XERO_REDIRECT_URI"),
			TenantID:     os.Getenv("XERO_TENANT_ID"),
			ContactID:    os.Getenv("XERO_CONTACT_ID"),
			Scopes:       splitList(getEnv("XERO_SCOPES", "openid accounting.transactions")),
			AuthURL:      getEnv("XERO_AUTH_URL", "https://login.xero.com/identity/connect/authorize"),
			TokenURL:     getEnv("XERO_TOKEN_URL", "https://identity.xero.com/connect/token"),
			APIBaseURL:   getEnv("XERO_API_BASE", "https://api.xero.com/api.xro/2.0"),
		},
		SessionSecret: os.Getenv("SESSION_SECRET"),
		TokenStore:    getEnv("TOKEN_STORE", "file"),
		TokenFile:     getEnv("XERO_TOKEN_FILE", "xero_tokens.json"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// validate fails fast on missing required settings so a misconfigured
// deployment dies at startup instead of on the first OAuth callback.
func (c Config) validate() error {
	var missing []string

	if c.Xero.ClientID == "" {
		missing = append(missing, "XERO_CLIENT_ID")
	}
	if c.Xero.ClientSecret == "" {
		missing = append(missing, "XERO_CLIENT_SECRET")
	}
	if c.Xero.RedirectURI == "" {
		missing = append(missing, "XERO_REDIRECT_URI")
	}
	if c.Database.DSN == "" {
		missing = append(missing, "DATABASE_DSN")
	}
	if c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if c.TokenStore != "file" && c.TokenStore != "redis" {
		return fmt.Errorf("invalid TOKEN_STORE %q: must be \"file\" or \"redis\"", c.TokenStore)
	}
	if c.TokenStore == "redis" && len(c.Redis.Addresses) == 0 {
		return fmt.Errorf("TOKEN_STORE is \"redis\" but REDIS_ADDRESSES is empty")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

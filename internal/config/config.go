package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Session store backends.
const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStoreDatabase = "database"
)

const devSessionSecret = "you-will-never-guess"

// MaxQuoteTimeout keeps a quote request, retries included, inside the HTTP
// server's write timeout so clients see UPSTREAM_TIMEOUT instead of a dropped
// connection.
const MaxQuoteTimeout = 10 * time.Second

// Config holds application configuration
type Config struct {
	// Server
	Env         string   `mapstructure:"env"`
	Port        string   `mapstructure:"port"`
	LogLevel    string   `mapstructure:"log_level"`
	FrontendURL string   `mapstructure:"frontend_url"`
	CORSOrigins []string `mapstructure:"cors_allowed_origins"`

	// Database
	DatabaseURL    string `mapstructure:"database_url"`
	MigrationsPath string `mapstructure:"migrations_path"`

	// Identity provider
	OAuthClientID     string `mapstructure:"oauth2_client_id"`
	OAuthClientSecret string `mapstructure:"oauth2_client_secret"`
	OAuthMetaURL      string `mapstructure:"oauth2_meta_url"`
	OAuthRedirectURI  string `mapstructure:"oauth2_redirect_uri"`

	// Sessions
	SessionSecret       string        `mapstructure:"session_secret"`
	SessionStore        string        `mapstructure:"session_store"`
	SessionTTL          time.Duration `mapstructure:"session_ttl"`
	SessionCookieSecure bool          `mapstructure:"session_cookie_secure"`
	RedisURL            string        `mapstructure:"redis_url"`

	// Market data
	FinnhubAPIKey  string        `mapstructure:"finnhub_api_key"`
	FinnhubBaseURL string        `mapstructure:"finnhub_base_url"`
	QuoteTimeout   time.Duration `mapstructure:"quote_timeout"`
	QuoteRetries   int           `mapstructure:"quote_retries"`
	QuoteCacheTTL  time.Duration `mapstructure:"quote_cache_ttl"`

	// Inbound rate limiting for public endpoints
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

var appConfig *Config

// defaults lists every key with its default value. Viper only decodes keys it
// knows about, so each environment variable must appear here.
var defaults = map[string]any{
	"env":                   "development",
	"port":                  "5000",
	"log_level":             "info",
	"frontend_url":          "http://localhost:5173",
	"cors_allowed_origins":  "http://localhost:8080,http://localhost:5173,http://localhost:5000",
	"database_url":          "app.db",
	"migrations_path":       "migrations",
	"oauth2_client_id":      "",
	"oauth2_client_secret":  "",
	"oauth2_meta_url":       "",
	"oauth2_redirect_uri":   "",
	"session_secret":        devSessionSecret,
	"session_store":         SessionStoreMemory,
	"session_ttl":           "168h",
	"session_cookie_secure": false,
	"redis_url":             "",
	"finnhub_api_key":       "",
	"finnhub_base_url":      "https://finnhub.io/api/v1",
	"quote_timeout":         "5s",
	"quote_retries":         2,
	"quote_cache_ttl":       "5s",
	"rate_limit_rps":        5,
	"rate_limit_burst":      10,
}

// Load loads configuration from a .env file, an optional config.yml and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// validate normalizes values and rejects combinations the server cannot run with.
func (c *Config) validate() error {
	c.SessionStore = strings.ToLower(strings.TrimSpace(c.SessionStore))
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreDatabase:
	case SessionStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("SESSION_STORE=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("invalid SESSION_STORE %q: must be memory, redis, or database", c.SessionStore)
	}

	if c.QuoteTimeout <= 0 || c.QuoteTimeout > MaxQuoteTimeout {
		return fmt.Errorf("QUOTE_TIMEOUT must be in (0, %v], got %v", MaxQuoteTimeout, c.QuoteTimeout)
	}
	if c.QuoteRetries < 0 {
		return fmt.Errorf("QUOTE_RETRIES must not be negative, got %d", c.QuoteRetries)
	}
	if c.SessionTTL <= 0 {
		log.Printf("Warning: invalid SESSION_TTL %v, falling back to 168h\n", c.SessionTTL)
		c.SessionTTL = 168 * time.Hour
	}

	if c.SessionSecret == devSessionSecret && c.IsProduction() {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}

	origins := make([]string, 0, len(c.CORSOrigins))
	for _, o := range c.CORSOrigins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}
	c.CORSOrigins = origins

	return nil
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesPostgres reports whether DatabaseURL points at PostgreSQL rather than a SQLite file.
func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

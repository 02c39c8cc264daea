// Package config resolves server settings from flags with environment
// fallbacks. Flags win over environment, environment wins over defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DefaultListenAddr = ":8090"
	DefaultBackend    = "sqlite"
	DefaultDataDir    = "./data"
	DefaultLanguage   = "en-US"
	DefaultTokenTTL   = 24 * time.Hour
)

// Config is the full server configuration.
type Config struct {
	ListenAddr string

	// StorageBackend is "sqlite" or "file".
	StorageBackend string
	DataDir        string

	CatalogAPIKey  string
	CatalogBaseURL string
	Language       string

	JWTSecret string
	TokenTTL  time.Duration

	// AllowedOrigins are exact public origins trusted for CORS in addition
	// to the default local-network policy.
	AllowedOrigins []string

	// LogFile enables rotating file logging when set; empty logs to stderr.
	LogFile string
}

// Load parses the given argument list. Pass os.Args[1:] in main.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("streamhaven", flag.ContinueOnError)

	cfg := &Config{}
	fs.StringVar(&cfg.ListenAddr, "listen", envOr("STREAMHAVEN_LISTEN", DefaultListenAddr), "listen address")
	fs.StringVar(&cfg.StorageBackend, "storage", envOr("STREAMHAVEN_STORAGE", DefaultBackend), "storage backend: sqlite or file")
	fs.StringVar(&cfg.DataDir, "data-dir", envOr("STREAMHAVEN_DATA_DIR", DefaultDataDir), "directory for persistent state")
	fs.StringVar(&cfg.CatalogAPIKey, "api-key", os.Getenv("STREAMHAVEN_API_KEY"), "catalog API key")
	fs.StringVar(&cfg.CatalogBaseURL, "catalog-url", os.Getenv("STREAMHAVEN_CATALOG_URL"), "catalog base URL override")
	fs.StringVar(&cfg.Language, "language", envOr("STREAMHAVEN_LANGUAGE", DefaultLanguage), "catalog language")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", os.Getenv("STREAMHAVEN_JWT_SECRET"), "secret for signing session tokens")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", DefaultTokenTTL, "session token lifetime")
	fs.StringVar(&cfg.LogFile, "log-file", os.Getenv("STREAMHAVEN_LOG_FILE"), "rotating log file path (empty for stderr)")
	var origins string
	fs.StringVar(&origins, "allowed-origins", os.Getenv("STREAMHAVEN_ALLOWED_ORIGINS"), "comma-separated extra CORS origins")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.StorageBackend != "sqlite" && c.StorageBackend != "file" {
		return fmt.Errorf("config: unknown storage backend %q", c.StorageBackend)
	}
	if c.CatalogAPIKey == "" {
		return fmt.Errorf("config: catalog API key required (set -api-key or STREAMHAVEN_API_KEY)")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT secret required (set -jwt-secret or STREAMHAVEN_JWT_SECRET)")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

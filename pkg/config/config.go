package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// MaxReaderPages is the upper bound of reader.max_pages
const MaxReaderPages = 5

// Config holds the application configuration
type Config struct {
	Server ServerConfig `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Auth   AuthConfig   `yaml:"auth" json:"auth" jsonschema:"description=Access control"`
	Fetch  FetchConfig  `yaml:"fetch" json:"fetch" jsonschema:"description=Page fetching"`
	Reader ReaderConfig `yaml:"reader" json:"reader" jsonschema:"description=Reading view"`
	Store  StoreConfig  `yaml:"store" json:"store" jsonschema:"description=Saved presets storage"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"description=Public URL used in feed self links and reading-mode links; reading mode is refused without it"`
}

// AuthConfig holds the verification code
type AuthConfig struct {
	Code string `yaml:"code" json:"code" jsonschema:"description=Verification code required by every request (can use environment variable)"`
}

// FetchConfig holds page fetching settings
type FetchConfig struct {
	Timeout         time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Timeout of a single request"`
	Attempts        int           `yaml:"attempts" json:"attempts" jsonschema:"default=3,minimum=1,description=Attempts per page"`
	RetryDelay      time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=1s,description=Delay between attempts"`
	UserAgent       string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent, desktop Chrome if empty"`
	FallbackCharset string        `yaml:"fallback_charset" json:"fallback_charset" jsonschema:"default=gb18030,description=Charset tried when detection is not confident"`
	MinConfidence   int           `yaml:"min_confidence" json:"min_confidence" jsonschema:"default=50,minimum=0,maximum=100,description=Minimum charset detection confidence"`
}

// ReaderConfig holds reading view settings
type ReaderConfig struct {
	MaxPages            int  `yaml:"max_pages" json:"max_pages" jsonschema:"default=5,minimum=1,maximum=5,description=Pages followed per chapter"`
	TrafilaturaFallback bool `yaml:"trafilatura_fallback" json:"trafilatura_fallback" jsonschema:"default=true,description=Use trafilatura when no content container is found"`
}

// StoreConfig holds presets storage settings
type StoreConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable saved presets"`
	DSN     string `yaml:"dsn" json:"dsn" jsonschema:"default=file:html2rss.db?mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000),description=Database connection string"`
}

// Default returns the configuration used without a config file
func Default() *Config {
	cfg := &Config{}
	cfg.Reader.TrafilaturaFallback = true
	applyDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Config{Reader: ReaderConfig{TrafilaturaFallback: true}}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 60 * time.Second
	}
	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")

	// fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.Attempts == 0 {
		cfg.Fetch.Attempts = 3
	}
	if cfg.Fetch.RetryDelay == 0 {
		cfg.Fetch.RetryDelay = time.Second
	}
	if cfg.Fetch.FallbackCharset == "" {
		cfg.Fetch.FallbackCharset = "gb18030"
	}
	if cfg.Fetch.MinConfidence == 0 {
		cfg.Fetch.MinConfidence = 50
	}

	// reader
	if cfg.Reader.MaxPages == 0 {
		cfg.Reader.MaxPages = MaxReaderPages
	}

	// store
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = "file:html2rss.db?mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)"
	}
}

// validate checks configuration for correctness. The verification code is not checked here,
// it may come from the command line, see CheckCode.
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Server.BaseURL != "" {
		u, err := url.Parse(cfg.Server.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("server.base_url must be an absolute http(s) url, got %q", cfg.Server.BaseURL)
		}
	}

	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}
	if cfg.Fetch.Attempts < 1 {
		return fmt.Errorf("fetch.attempts must be at least 1")
	}
	if cfg.Fetch.RetryDelay < 0 {
		return fmt.Errorf("fetch.retry_delay must be non-negative")
	}
	if cfg.Fetch.MinConfidence < 0 || cfg.Fetch.MinConfidence > 100 {
		return fmt.Errorf("fetch.min_confidence must be between 0 and 100")
	}

	if cfg.Reader.MaxPages < 1 || cfg.Reader.MaxPages > MaxReaderPages {
		return fmt.Errorf("reader.max_pages must be between 1 and %d", MaxReaderPages)
	}
	return nil
}

// CheckCode fails when no verification code is configured
func (c *Config) CheckCode() error {
	if strings.TrimSpace(c.Auth.Code) == "" {
		return fmt.Errorf("verification code is required, set auth.code or --code")
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the public url of the service
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}

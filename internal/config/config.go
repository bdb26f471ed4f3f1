// Package config loads the newsgen configuration file. Defaults are
// embedded and written out on first run. Secrets resolve from the file
// first, then environment variables; they are handed to client
// constructors and never held in process-wide state.
package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type AIConfig struct {
	Provider string `yaml:"provider"` // "openai" or "claude"
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model,omitempty"`
}

type NewsConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

type SMTPConfig struct {
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Sender   string `yaml:"sender,omitempty"`
}

type Config struct {
	MaxArticles int         `yaml:"max_articles"`
	Format      string      `yaml:"format"`
	CacheTTL    string      `yaml:"cache_ttl"`
	News        NewsConfig  `yaml:"news"`
	AI          AIConfig    `yaml:"ai"`
	SMTP        *SMTPConfig `yaml:"smtp,omitempty"`
}

// NewsAPIKey returns the resolved news API key (config or env var).
func (c *Config) NewsAPIKey() string {
	if c.News.APIKey != "" {
		return c.News.APIKey
	}
	return os.Getenv("NEWSGEN_NEWS_API_KEY")
}

// AIKey returns the resolved summarization API key (config or env var).
func (c *Config) AIKey() string {
	if c.AI.APIKey != "" {
		return c.AI.APIKey
	}
	return os.Getenv("NEWSGEN_AI_KEY")
}

// SMTPPassword returns the resolved SMTP password (config or env var).
func (c *Config) SMTPPassword() string {
	if c.SMTP != nil && c.SMTP.Password != "" {
		return c.SMTP.Password
	}
	return os.Getenv("NEWSGEN_SMTP_PASSWORD")
}

// CacheTTLDuration parses cache_ttl, defaulting to one hour.
func (c *Config) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// GetMaxArticles returns the article bound, defaulting to 5.
func (c *Config) GetMaxArticles() int {
	if c.MaxArticles <= 0 {
		return 5
	}
	return c.MaxArticles
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsgen", "config.yaml")
}

func CacheDir() string {
	return filepath.Join(xdg.CacheHome, "newsgen", "articles")
}

func ArchivePath() string {
	return filepath.Join(xdg.CacheHome, "newsgen", "archive.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "", "openai", "claude":
	default:
		return fmt.Errorf("ai: unknown provider %q (valid: openai, claude)", cfg.AI.Provider)
	}

	switch cfg.Format {
	case "", "text", "html":
	default:
		return fmt.Errorf("unknown format %q (valid: text, html)", cfg.Format)
	}

	if cfg.News.Endpoint != "" {
		u, err := url.Parse(cfg.News.Endpoint)
		if err != nil {
			return fmt.Errorf("news: invalid endpoint: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("news: endpoint scheme must be http or https, got %q", u.Scheme)
		}
	}

	return nil
}

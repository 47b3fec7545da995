package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset"`
	Database DatabaseConfig `yaml:"database"`
	Advisor  AdvisorConfig  `yaml:"advisor"`
	Log      LogConfig      `yaml:"log"`
}

// DatasetConfig locates the two source documents.
type DatasetConfig struct {
	// Source is "file", "http" or "db".
	Source       string `yaml:"source"`
	Profiles     string `yaml:"profiles"`
	ClosingRanks string `yaml:"closing_ranks"`
	// BaseURL is joined with Profiles and ClosingRanks for the http source.
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// ParseTimeout returns the HTTP timeout as time.Duration.
func (d DatasetConfig) ParseTimeout() time.Duration {
	t, err := time.ParseDuration(d.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return t
}

// ProfilesURL resolves the profiles document against BaseURL.
func (d DatasetConfig) ProfilesURL() (string, error) {
	return joinURL(d.BaseURL, d.Profiles)
}

// ClosingRanksURL resolves the closing-rank document against BaseURL.
func (d DatasetConfig) ClosingRanksURL() (string, error) {
	return joinURL(d.BaseURL, d.ClosingRanks)
}

func joinURL(base, ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", ref, err)
	}
	if base == "" {
		return r.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}
	if b.Path != "" && b.Path[len(b.Path)-1] != '/' {
		b.Path += "/"
	}
	return b.ResolveReference(r).String(), nil
}

// DatabaseConfig configures the SQLite dataset snapshot.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AdvisorConfig configures the matching engine.
type AdvisorConfig struct {
	TopN int `yaml:"top_n"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Source:       "file",
			Profiles:     "data/college-profiles.json",
			ClosingRanks: "data/closing-ranks-2025-phase1.json",
			Timeout:      "30s",
		},
		Database: DatabaseConfig{Path: "./collegeadvisor.db"},
		Advisor:  AdvisorConfig{TopN: 10},
		Log:      LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads configuration from a YAML file, then a .env file if present,
// then applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COLLEGEADVISOR_SOURCE"); v != "" {
		cfg.Dataset.Source = v
	}
	if v := os.Getenv("COLLEGEADVISOR_PROFILES"); v != "" {
		cfg.Dataset.Profiles = v
	}
	if v := os.Getenv("COLLEGEADVISOR_CLOSING_RANKS"); v != "" {
		cfg.Dataset.ClosingRanks = v
	}
	if v := os.Getenv("COLLEGEADVISOR_BASE_URL"); v != "" {
		cfg.Dataset.BaseURL = v
		cfg.Dataset.Source = "http"
	}
	if v := os.Getenv("COLLEGEADVISOR_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("COLLEGEADVISOR_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Advisor.TopN = n
		}
	}
	if v := os.Getenv("COLLEGEADVISOR_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("COLLEGEADVISOR_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// Package config loads server settings from the environment, optionally
// overlaid with a YAML file named by CONFIG_FILE.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          string        `yaml:"port"`
	RedisURL      string        `yaml:"redis_url"`
	CatalogDSN    string        `yaml:"catalog_dsn"`
	CatalogSeed   bool          `yaml:"catalog_seed"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	SecureCookies bool          `yaml:"secure_cookies"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
	AllowedOrigin string        `yaml:"allowed_origin"`
}

// Load reads the environment, then the YAML file if CONFIG_FILE is set.
// Values present in the file win over the environment.
func Load() (*Config, error) {
	cfg, err := loadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlay(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func loadConfigFromEnv() (*Config, error) {
	ttl, err := time.ParseDuration(getenv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid SESSION_TTL")
	}
	return &Config{
		Port:          getenv("PORT", "3000"),
		RedisURL:      getenv("REDIS_URL", ""),
		CatalogDSN:    getenv("CATALOG_DSN", ""),
		CatalogSeed:   getenvBool("CATALOG_SEED", true),
		SessionTTL:    ttl,
		SecureCookies: getenvBool("SECURE_COOKIES", false),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogFormat:     getenv("LOG_FORMAT", "json"),
		AllowedOrigin: getenv("ALLOWED_ORIGIN", ""),
	}, nil
}

func (c *Config) overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config file %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parse config file %s", path)
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Package config handles loading and validating FlowLand Steward configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} placeholders in config values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ErrConfigFileNotFound is returned by Load when the specified config file does not exist.
var ErrConfigFileNotFound = errors.New("config file not found")

// Config is the top-level FlowLand Steward configuration.
type Config struct {
	Listen               string               `yaml:"listen"`
	DBPath               string               `yaml:"db_path"`
	LogLevel             string               `yaml:"log_level"`
	LogFormat            string               `yaml:"log_format"`
	MetricsRetention     Duration             `yaml:"metrics_retention"` // 0 disables pruning
	HistoryDays          int                  `yaml:"history_days"`
	RandomSeed           uint64               `yaml:"random_seed"` // 0 seeds from the clock
	NATSURL              string               `yaml:"nats_url"`
	NotificationCooldown Duration             `yaml:"notification_cooldown"`
	Notifications        []NotificationConfig `yaml:"notifications"`
}

// NotificationConfig describes a notification target.
type NotificationConfig struct {
	Type    string            `yaml:"type"` // "ntfy" or "webhook"
	URL     string            `yaml:"url"`
	Topic   string            `yaml:"topic,omitempty"`   // ntfy only
	Token   string            `yaml:"token,omitempty"`   // ntfy only, sent as a bearer token
	Method  string            `yaml:"method,omitempty"`  // webhook only
	Headers map[string]string `yaml:"headers,omitempty"` // webhook only
}

// Duration wraps time.Duration with YAML string parsing support.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Load reads configuration from a YAML file. An empty path uses defaults
// plus environment overrides. If a path is given and the file does not
// exist, ErrConfigFileNotFound is returned.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(expandEnvVars(data), cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	for i, n := range c.Notifications {
		switch n.Type {
		case "ntfy":
			if n.URL == "" {
				return fmt.Errorf("notifications[%d]: url is required for ntfy", i)
			}
			if n.Topic == "" {
				return fmt.Errorf("notifications[%d]: topic is required for ntfy", i)
			}
		case "webhook":
			if n.URL == "" {
				return fmt.Errorf("notifications[%d]: url is required for webhook", i)
			}
			if _, err := url.ParseRequestURI(n.URL); err != nil {
				return fmt.Errorf("notifications[%d]: invalid url: %w", i, err)
			}
		default:
			return fmt.Errorf("notifications[%d]: unknown type %q (expected ntfy or webhook)", i, n.Type)
		}
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.LogFormat] {
		return fmt.Errorf("log_format must be one of: text, json")
	}
	if c.HistoryDays < 1 {
		return fmt.Errorf("history_days must be >= 1")
	}
	if c.MetricsRetention.Duration < 0 {
		return fmt.Errorf("metrics_retention must not be negative")
	}
	if c.MetricsRetention.Duration > 0 && c.MetricsRetention.Duration < 6*time.Hour {
		// The dashboard charts the last six hours.
		return fmt.Errorf("metrics_retention must be 0 or >= 6h")
	}
	if c.NotificationCooldown.Duration < 0 {
		return fmt.Errorf("notification_cooldown must not be negative")
	}
	if c.NATSURL != "" {
		if _, err := url.Parse(c.NATSURL); err != nil {
			return fmt.Errorf("nats_url: %w", err)
		}
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Listen:               ":5000",
		DBPath:               "/data/flowland.db",
		LogLevel:             "info",
		LogFormat:            "text",
		MetricsRetention:     Duration{7 * 24 * time.Hour},
		HistoryDays:          5,
		NotificationCooldown: Duration{1 * time.Minute},
	}
}

// expandEnvVars replaces ${VAR_NAME} placeholders in raw YAML with the
// corresponding environment variable values. Unset variables are replaced
// with an empty string.
func expandEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		key := string(match[2 : len(match)-1]) // strip ${ and }
		return []byte(os.Getenv(key))
	})
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("FLOWLAND_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("FLOWLAND_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FLOWLAND_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FLOWLAND_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("FLOWLAND_NATS_URL"); v != "" {
		cfg.NATSURL = v
	}
	if v := os.Getenv("FLOWLAND_METRICS_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FLOWLAND_METRICS_RETENTION: invalid duration %q: %w", v, err)
		}
		cfg.MetricsRetention = Duration{d}
	}
	if v := os.Getenv("FLOWLAND_HISTORY_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HistoryDays = n
		}
	}
	if v := os.Getenv("FLOWLAND_RANDOM_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.RandomSeed = n
		}
	}

	// Single ntfy target from env vars (only if no YAML notifications configured).
	if len(cfg.Notifications) == 0 {
		if ntfyURL := os.Getenv("FLOWLAND_NTFY_URL"); ntfyURL != "" {
			topic := os.Getenv("FLOWLAND_NTFY_TOPIC")
			if topic == "" {
				topic = "flowland"
			}
			cfg.Notifications = append(cfg.Notifications, NotificationConfig{
				Type:  "ntfy",
				URL:   ntfyURL,
				Topic: topic,
				Token: os.Getenv("FLOWLAND_NTFY_TOKEN"),
			})
		}
	}
	return nil
}

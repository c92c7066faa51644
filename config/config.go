package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server        ServerConfig       `yaml:"server"`
	Database      DatabaseConfig     `yaml:"database"`
	Auth          AuthConfig         `yaml:"auth"`
	Notifications NotificationConfig `yaml:"notifications"`
	Push          PushConfig         `yaml:"push"`
	WorkerPool    WorkerPoolConfig   `yaml:"worker_pool"`
	Reminder      ReminderConfig     `yaml:"reminder"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	PublicBaseURL   string  `yaml:"public_base_url"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// AuthConfig holds the JWT signing configuration.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"`
	TokenTTLMinutes int           `yaml:"token_ttl_minutes"`
	TokenTTL        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// NotificationConfig controls work-order notification behavior.
type NotificationConfig struct {
	// EscalationNotifiesTwice keeps the historical double alert on the
	// urgent path: the factory's own notification plus a dedicated
	// escalation message. Pending product clarification.
	EscalationNotifiesTwice *bool `yaml:"escalation_notifies_twice"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	Enabled    bool   `yaml:"enabled"`
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the push notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// ReminderConfig holds the configuration for the overdue work-order scanner.
type ReminderConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// EscalationNotifiesTwice reports whether urgent work orders fire the second
// escalation notification. Defaults to true to match historical behavior.
func (c *Config) EscalationNotifiesTwice() bool {
	if c.Notifications.EscalationNotifiesTwice == nil {
		return true
	}
	return *c.Notifications.EscalationNotifiesTwice
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Auth.TokenTTLMinutes <= 0 {
		cfg.Auth.TokenTTLMinutes = 12 * 60
	}
	cfg.Auth.TokenTTL = time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.Reminder.IntervalSeconds <= 0 {
		cfg.Reminder.IntervalSeconds = 300
	}
	cfg.Reminder.Interval = time.Duration(cfg.Reminder.IntervalSeconds) * time.Second

	return &cfg, nil
}

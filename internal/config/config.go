package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host       string `yaml:"host"`       // Bind address, empty for all interfaces.
	Port       int    `yaml:"port"`       // Listen port.
	Production bool   `yaml:"production"` // Enables secure cross-origin cookies.
}

// DatabaseConfig holds persistence settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"` // SQLite path or PostgreSQL DSN.
}

// SessionConfig holds session cookie settings.
type SessionConfig struct {
	CookieName string `yaml:"cookie_name"` // Name of the session cookie.
	TTLHours   int    `yaml:"ttl_hours"`   // Fixed session lifetime in hours.
}

// CORSConfig holds cross-origin settings for the separate frontend.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"` // Exact origins allowed with credentials.
}

// UploadConfig holds upload limits.
type UploadConfig struct {
	MaxImageBytes int64 `yaml:"max_image_bytes"` // Ceiling for a single image upload.
}

// AuthConfig holds registration policy.
type AuthConfig struct {
	// OpenRegistration leaves /api/auth/register ungated. When false,
	// registration requires a session once at least one admin exists.
	OpenRegistration bool `yaml:"open_registration"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`        // logrus level name, default "info".
	File       string `yaml:"file"`         // Log file path; empty logs to stderr only.
	MaxSizeMB  int    `yaml:"max_size_mb"`  // Rotate after this size.
	MaxBackups int    `yaml:"max_backups"`  // Rotated files to keep.
	MaxAgeDays int    `yaml:"max_age_days"` // Days to keep rotated files.
}

// Config is the root configuration for the portfolio backend.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	CORS     CORSConfig     `yaml:"cors"`
	Uploads  UploadConfig   `yaml:"uploads"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Host: "", Port: 8080},
		Database: DatabaseConfig{DSN: "file:data/portfolio.db"},
		Session:  SessionConfig{CookieName: "portfolio_session", TTLHours: 24},
		Uploads:  UploadConfig{MaxImageBytes: 3 << 20},
		Logging:  LoggingConfig{Level: "info", MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 28},
	}
}

// Load reads the YAML config at path, falling back to defaults for absent
// values, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, errRead := os.ReadFile(path)
		if errRead != nil {
			if !os.IsNotExist(errRead) {
				return nil, fmt.Errorf("config: read %s: %w", path, errRead)
			}
		} else if errUnmarshal := yaml.Unmarshal(data, cfg); errUnmarshal != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
		}
	}
	applyEnvOverrides(cfg)
	if errValidate := cfg.validate(); errValidate != nil {
		return nil, errValidate
	}
	return cfg, nil
}

// applyEnvOverrides allows deployment platforms to override file values.
func applyEnvOverrides(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if n, errParse := strconv.Atoi(port); errParse == nil {
			cfg.Server.Port = n
		}
	}
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_DSN")); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if frontend := strings.TrimSpace(os.Getenv("FRONTEND_URL")); frontend != "" {
		origin := strings.TrimRight(frontend, "/")
		for _, existing := range cfg.CORS.AllowedOrigins {
			if existing == origin {
				return
			}
		}
		cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("config: empty database dsn")
	}
	if c.Session.TTLHours <= 0 {
		return fmt.Errorf("config: session ttl_hours must be positive")
	}
	if c.Uploads.MaxImageBytes <= 0 {
		return fmt.Errorf("config: uploads max_image_bytes must be positive")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

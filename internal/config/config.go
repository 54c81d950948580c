package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration loaded from config.toml.
// Tenant credentials (calendar service accounts, mail keys) are NOT here:
// they are per-tenant rows threaded explicitly through the core.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Email     EmailConfig     `toml:"email"`
	Assistant AssistantConfig `toml:"assistant"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CalendarConfig bounds the outbound Google Calendar calls.
type CalendarConfig struct {
	Timeout    int `toml:"timeout"`     // seconds per call
	MaxResults int `toml:"max_results"` // events per day fetch
}

// EmailConfig points at the templated-mail provider.
type EmailConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout"`
}

// AssistantConfig points at the confirmation-text generator.
// An empty APIKey disables the assistant; the pipeline falls back to the
// static confirmation message.
type AssistantConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: database host and dbname are required")
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "booking-service"
	}
	if c.Calendar.Timeout == 0 {
		c.Calendar.Timeout = 10
	}
	if c.Calendar.MaxResults == 0 {
		c.Calendar.MaxResults = 250
	}
	if c.Email.BaseURL == "" {
		c.Email.BaseURL = "https://api.emailjs.com"
	}
	if c.Email.Timeout == 0 {
		c.Email.Timeout = 10
	}
	if c.Assistant.BaseURL == "" {
		c.Assistant.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if c.Assistant.Model == "" {
		c.Assistant.Model = "gemini-2.0-flash"
	}
	if c.Assistant.Timeout == 0 {
		c.Assistant.Timeout = 15
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Config represents application configuration.
type Config struct {
	AppEnv string `mapstructure:"APP_ENV"`

	Server   ServerConfig   `mapstructure:"SERVER"`
	TLS      TLSConfig      `mapstructure:"TLS"`
	Database DatabaseConfig `mapstructure:"DATABASE"`
	Latency  LatencyConfig  `mapstructure:"LATENCY"`
	Seed     SeedConfig     `mapstructure:"SEED"`
	Client   ClientConfig   `mapstructure:"CLIENT"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr         string        `mapstructure:"ADDR"`
	ReadTimeout  time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `mapstructure:"IDLE_TIMEOUT"`
}

// TLSConfig controls TLS behaviour for the HTTP server.
type TLSConfig struct {
	Enable   bool   `mapstructure:"ENABLE"`
	CertPath string `mapstructure:"CERT_PATH"`
	KeyPath  string `mapstructure:"KEY_PATH"`
}

// DatabaseConfig selects the gorm driver backing the task store.
type DatabaseConfig struct {
	Driver string `mapstructure:"DRIVER"`
	DSN    string `mapstructure:"DSN"`
}

// LatencyConfig toggles the simulated per-operation network delay.
type LatencyConfig struct {
	Enable bool `mapstructure:"ENABLE"`
}

// SeedConfig toggles installing the sample tasks into an empty store.
type SeedConfig struct {
	Enable bool `mapstructure:"ENABLE"`
}

// ClientConfig configures the palette client when this process runs one.
type ClientConfig struct {
	BaseURL   string `mapstructure:"BASE_URL"`
	StorePath string `mapstructure:"STORE_PATH"`
}

var Module = fx.Module("config", fx.Provide(Provide))

// Provide loads configuration from an optional config.yaml plus environment
// variables (SERVER_ADDR, DATABASE_DRIVER, ...), with sensible defaults.
func Provide() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER.ADDR", ":8080")
	v.SetDefault("SERVER.READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER.WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER.IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("TLS.ENABLE", false)
	v.SetDefault("TLS.CERT_PATH", "")
	v.SetDefault("TLS.KEY_PATH", "")
	v.SetDefault("DATABASE.DRIVER", "sqlite")
	v.SetDefault("DATABASE.DSN", "taskpalette.db")
	v.SetDefault("LATENCY.ENABLE", true)
	v.SetDefault("SEED.ENABLE", true)
	v.SetDefault("CLIENT.BASE_URL", "http://localhost:8080")
	v.SetDefault("CLIENT.STORE_PATH", ".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TLS.Enable {
		if cfg.TLS.CertPath == "" || cfg.TLS.KeyPath == "" {
			return nil, fmt.Errorf("tls enabled but TLS_CERT_PATH or TLS_KEY_PATH not provided")
		}
	}

	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return &cfg, nil
}

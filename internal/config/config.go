// Package config loads application configuration from file, environment
// variables, and defaults. Engine policy defaults are the behavioral
// contract; a policy file only overrides what it names.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config materialises application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig covers the HTTP listener.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig covers the SQLite customer book and decision log.
type DatabaseConfig struct {
	Path   string `mapstructure:"path"`
	Silent bool   `mapstructure:"silent"`
}

// RedisConfig covers the optional decision cache.
type RedisConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Addr    string        `mapstructure:"addr"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// EngineConfig covers decisioning policy and simulator seeding.
type EngineConfig struct {
	// PolicyPath points at an optional JSON policy override file.
	PolicyPath string `mapstructure:"policy_path"`
	// SeedCustomers is how many simulated customers to create when the
	// customer book is empty at startup.
	SeedCustomers int `mapstructure:"seed_customers"`
}

// LoggingConfig controls logrus behaviour.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CREDIT_ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	v.SetDefault("database.path", "data/credit-decisions.db")
	v.SetDefault("database.silent", true)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.ttl", 15*time.Minute)
	v.SetDefault("engine.policy_path", "")
	v.SetDefault("engine.seed_customers", 50)
	v.SetDefault("logging.level", "info")
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("server port is required")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Redis.Enabled && strings.TrimSpace(c.Redis.Addr) == "" {
		return fmt.Errorf("redis addr is required when redis is enabled")
	}
	if c.Engine.SeedCustomers < 0 {
		return fmt.Errorf("seed customers must be non-negative")
	}
	return nil
}

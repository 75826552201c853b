package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. STREAKR_DB_PATH.
const EnvPrefix = "STREAKR"

// Config holds all configuration for the application
type Config struct {
	DBPath string      `mapstructure:"db_path"`
	Log    LogConfig   `mapstructure:"log"`
	Stats  StatsConfig `mapstructure:"stats"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	// File is where log lines go. Empty means a streakr.log beside the database.
	File string `mapstructure:"file"`
}

// StatsConfig holds statistics configuration
type StatsConfig struct {
	KeyGranularity string `mapstructure:"key_granularity" validate:"oneof=timestamp day"`
}

var validate = validator.New()

// New returns a viper instance with defaults and environment overrides set.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	v.SetDefault("stats.key_granularity", "timestamp")
}

// Load reads .env, then the config file, then unmarshals and validates.
// An explicit file must exist; the default config.yaml is optional.
func Load(v *viper.Viper, file string) (*Config, error) {
	_ = godotenv.Load()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else if dir, err := DefaultDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
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
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) resolve() error {
	if c.DBPath == "" {
		dir, err := DefaultDir()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
		c.DBPath = filepath.Join(dir, "streakr.db")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(filepath.Dir(c.DBPath), "streakr.log")
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Stats.KeyGranularity = strings.ToLower(c.Stats.KeyGranularity)
	return nil
}

// DefaultDir returns ~/.config/streakr
func DefaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "streakr"), nil
}

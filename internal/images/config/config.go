package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	ClockSystem = "system"
	ClockRedis  = "redis"
)

// Config holds image service configuration
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Clock   ClockConfig   `json:"clock" yaml:"clock"`
	Logger  logger.Config `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr          string `json:"addr" yaml:"addr"`
	PublicBaseURL string `json:"public_base_url" yaml:"public_base_url"`
	BodyLimit     int64  `json:"body_limit" yaml:"body_limit"`
}

type StorageConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

// ClockConfig selects where upload timestamps come from.
type ClockConfig struct {
	Source string      `json:"source" yaml:"source"` // "system" or "redis"
	Redis  RedisConfig `json:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	TimeoutMS int    `json:"timeout_ms" yaml:"timeout_ms"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          ":3001",
			PublicBaseURL: "http://localhost:3001",
			BodyLimit:     64 * 1024 * 1024, // 64MB
		},
		Storage: StorageConfig{
			Dir: "Images",
		},
		Clock: ClockConfig{
			Source: ClockSystem,
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				TimeoutMS: 200,
			},
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Storage.Dir == "" {
		return errors.New("storage.dir is required")
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("server.body_limit must be positive, got %d", c.Server.BodyLimit)
	}
	switch c.Clock.Source {
	case ClockSystem:
	case ClockRedis:
		if c.Clock.Redis.Addr == "" {
			return errors.New("clock.redis.addr is required when clock.source is redis")
		}
	default:
		return fmt.Errorf("unknown clock.source %q", c.Clock.Source)
	}
	return nil
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "images", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		// The logger is configured from this file, so it is not available yet.
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		parsedCfg = cfg
	}

	if err := parsedCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return parsedCfg, nil
}

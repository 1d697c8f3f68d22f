// Package config loads process settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultServiceName = "Go Microservice"
	DefaultHost        = "0.0.0.0"
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
)

// ServerConfig holds http.Server limits.
type ServerConfig struct {
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
}

// NewServerConfig returns the fixed server limits.
func NewServerConfig() ServerConfig {
	return ServerConfig{
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}
}

// Config is the full process configuration.
type Config struct {
	// ServiceName appears in the welcome message and the startup log line.
	ServiceName string
	Host        string
	Port        string
	LogLevel    zapcore.Level
	// ProjectID enables Cloud Trace correlation in request logs when set.
	ProjectID string
	Server    ServerConfig
}

// New returns the configuration used when nothing is set in the environment.
func New() *Config {
	return &Config{
		ServiceName: DefaultServiceName,
		Host:        DefaultHost,
		Port:        DefaultPort,
		LogLevel:    zapcore.InfoLevel,
		Server:      NewServerConfig(),
	}
}

// Addr is the listen address, host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Load reads the given .env files (".env" when none are named) into the process
// environment without overriding variables that are already set, then builds the
// Config. Missing .env files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := New()

	if v := os.Getenv("SERVICE_NAME"); v != "" {
		cfg.ServiceName = v
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q: must be 1-65535", v)
		}
		cfg.Port = v
	}

	levelName := os.Getenv("LOG_LEVEL")
	if levelName == "" {
		levelName = DefaultLogLevel
	}
	lvl, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = lvl

	cfg.ProjectID = firstNonEmpty(
		os.Getenv("GOOGLE_CLOUD_PROJECT"),
		os.Getenv("GCP_PROJECT"),
		os.Getenv("PROJECT_ID"),
	)
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Oracle   OracleConfig   `yaml:"oracle"`
	Database DatabaseConfig `yaml:"database"`
	View     ViewConfig     `yaml:"view"`
	APIPort  string         `yaml:"api_port"`
	LogLevel string         `yaml:"log_level"`
}

// OracleConfig selects and configures the text-generation backend
type OracleConfig struct {
	Provider string        `yaml:"provider"` // gemini, openai
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"`
	RPM      float64       `yaml:"rpm"` // 0 disables client-side pacing
	Timeout  time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ViewConfig tunes the interactive front end
type ViewConfig struct {
	DiscardStale bool `yaml:"discard_stale"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Oracle: OracleConfig{
			Provider: "gemini",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Name:     "autosphere",
			User:     "autosphere",
			SSLMode:  "disable",
			MaxConns: 10,
			MinConns: 2,
		},
		APIPort:  "8080",
		LogLevel: "info",
	}
}

// Load builds the config from defaults, then the optional YAML file at path,
// then the environment. Environment always wins.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.Oracle.Provider = strings.ToLower(strings.TrimSpace(cfg.Oracle.Provider))

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Oracle.Provider = getEnv("ORACLE_PROVIDER", c.Oracle.Provider)
	c.Oracle.Model = getEnv("ORACLE_MODEL", c.Oracle.Model)
	c.Oracle.BaseURL = getEnv("ORACLE_BASE_URL", c.Oracle.BaseURL)
	c.Oracle.RPM = getEnvFloat("ORACLE_RPM", c.Oracle.RPM)
	c.Oracle.Timeout = getEnvDuration("ORACLE_TIMEOUT", c.Oracle.Timeout)

	// Provider specific keys first, the generic API_KEY has the last word
	switch strings.ToLower(c.Oracle.Provider) {
	case "openai":
		c.Oracle.APIKey = getEnv("OPENAI_API_KEY", c.Oracle.APIKey)
	default:
		c.Oracle.APIKey = getEnv("GEMINI_API_KEY", c.Oracle.APIKey)
	}
	c.Oracle.APIKey = getEnv("API_KEY", c.Oracle.APIKey)

	c.Database.Enabled = getEnvBool("DB_ENABLED", c.Database.Enabled)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvInt("DB_PORT", c.Database.Port)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.MaxConns = getEnvInt("DB_MAX_CONNS", c.Database.MaxConns)
	c.Database.MinConns = getEnvInt("DB_MIN_CONNS", c.Database.MinConns)

	c.View.DiscardStale = getEnvBool("VIEW_DISCARD_STALE", c.View.DiscardStale)

	c.APIPort = getEnv("API_PORT", c.APIPort)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

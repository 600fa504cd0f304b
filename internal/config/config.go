// Package config loads service configuration from environment variables,
// with an optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DB holds PostgreSQL connection settings.
type DB struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"explore"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN builds a libpq-compatible connection string.
func (c DB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Server configures the main event-publishing API.
type Server struct {
	Port     string `env:"PORT" envDefault:"8080"`
	AppName  string `env:"APP_NAME" envDefault:"explore-events"`
	StatsURL string `env:"STATS_SERVER_URL" envDefault:"http://localhost:9090"`

	// Optional view-count cache; disabled when RedisAddr is empty.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	DB DB
}

// Stats configures the analytics collector.
type Stats struct {
	Port string `env:"STATS_PORT" envDefault:"9090"`
	DB   DB
}

// LoadServer reads the main service configuration.
func LoadServer() (*Server, error) {
	loadDotEnv()
	cfg := &Server{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadStats reads the collector configuration.
func LoadStats() (*Stats, error) {
	loadDotEnv()
	cfg := &Stats{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// loadDotEnv pulls in a local .env when present; absence is not an error.
func loadDotEnv() {
	_ = godotenv.Load()
}

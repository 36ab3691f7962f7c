package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          string        `env:"PORT" envDefault:"3000"`
	DatabaseURL   string        `env:"DATABASE_URL,required"`
	MongoURI      string        `env:"MONGO_URI"`
	SessionSecret string        `env:"SESSION_SECRET" envDefault:"secret"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env when present, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

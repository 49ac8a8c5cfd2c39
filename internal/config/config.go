package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     int    `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" env-default:"smarttodo"`

	OpenAIKey        string `env:"OPENAI_API_KEY"`
	OpenAIModel      string `env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	AITimeoutSeconds int    `env:"AI_TIMEOUT_SECONDS" env-default:"30"`

	LogLevel string `env:"LOG_LEVEL" env-default:"INFO"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func (c *Config) AITimeout() time.Duration {
	if c.AITimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.AITimeoutSeconds) * time.Second
}

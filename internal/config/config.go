// Package config содержит логику чтения конфигурации сервиса расчётов.
package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	defaultRunAddress  = "localhost:8080"
	defaultGeminiModel = "gemini-2.5-flash"
	defaultAIRateLimit = 1.0
)

// ErrDatabaseURIRequired возвращается, если адрес базы данных не задан ни флагом, ни переменной окружения.
var ErrDatabaseURIRequired = errors.New("database URI is required")

// Config содержит параметры конфигурации сервиса.
type Config struct {
	RunAddress    string  `env:"RUN_ADDRESS"`
	DatabaseURI   string  `env:"DATABASE_URI"`
	GeminiAPIKey  string  `env:"GEMINI_API_KEY"`
	GeminiModel   string  `env:"GEMINI_MODEL"`
	AdminEmail    string  `env:"ADMIN_EMAIL"`
	SessionSecret string  `env:"SESSION_SECRET"`
	RedisAddr     string  `env:"REDIS_ADDR"`
	AIRateLimit   float64 `env:"AI_RATE_LIMIT"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	envCfg := Config{}
	if err := env.Parse(&envCfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.GeminiAPIKey, "k", "", "Gemini API key")
	flag.StringVar(&cfg.GeminiModel, "m", defaultGeminiModel, "Gemini model name")
	flag.StringVar(&cfg.AdminEmail, "e", "", "admin email")
	flag.StringVar(&cfg.SessionSecret, "s", "", "secret for session and admin tokens")
	flag.StringVar(&cfg.RedisAddr, "r", "", "redis address for AI answer cache")
	flag.Float64Var(&cfg.AIRateLimit, "l", defaultAIRateLimit, "AI requests per second")

	flag.Parse()

	overrideString(&cfg.RunAddress, envCfg.RunAddress)
	overrideString(&cfg.DatabaseURI, envCfg.DatabaseURI)
	overrideString(&cfg.GeminiAPIKey, envCfg.GeminiAPIKey)
	overrideString(&cfg.GeminiModel, envCfg.GeminiModel)
	overrideString(&cfg.AdminEmail, envCfg.AdminEmail)
	overrideString(&cfg.SessionSecret, envCfg.SessionSecret)
	overrideString(&cfg.RedisAddr, envCfg.RedisAddr)
	if envCfg.AIRateLimit != 0 {
		cfg.AIRateLimit = envCfg.AIRateLimit
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = defaultGeminiModel
	}

	if cfg.DatabaseURI == "" {
		return nil, ErrDatabaseURIRequired
	}

	return cfg, nil
}

func overrideString(dst *string, envValue string) {
	if envValue != "" {
		*dst = envValue
	}
}

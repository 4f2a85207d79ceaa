package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// maxOracleTimeout es el techo para cualquier llamada al oraculo.
const maxOracleTimeout = 10 * time.Second

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort         string        `env:"HTTP_PORT" envDefault:"8080"`
	QuestionBankPath string        `env:"QUESTION_BANK_PATH" envDefault:"data/questions.json"`
	DatabaseURL      string        `env:"DATABASE_URL"`
	PromptDir        string        `env:"PROMPT_DIR"`
	LLMAPIKey        string        `env:"LLM_API_KEY"`
	LLMBaseURL       string        `env:"LLM_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	LLMModel         string        `env:"LLM_MODEL" envDefault:"google/gemini-2.5-flash-lite"`
	LLMTemperature   float32       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	OracleTimeout    time.Duration `env:"ORACLE_TIMEOUT" envDefault:"10s"`
	SiteURL          string        `env:"SITE_URL"`
	AppName          string        `env:"APP_NAME" envDefault:"OpenDayGame"`
	RedisAddr        string        `env:"REDIS_ADDR"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	RateLimitPerMin  int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.OracleTimeout = ClampOracleTimeout(cfg.OracleTimeout)
	return &cfg, nil
}

// ClampOracleTimeout keeps the oracle timeout within (0, 10s].
func ClampOracleTimeout(d time.Duration) time.Duration {
	if d <= 0 || d > maxOracleTimeout {
		return maxOracleTimeout
	}
	return d
}

// OracleEnabled reporta si hay credenciales para llamar al oraculo.
func (c *Config) OracleEnabled() bool {
	return c != nil && c.LLMAPIKey != ""
}

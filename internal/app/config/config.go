package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the tool configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP     HTTP       `mapstructure:",squash"`
	Redis    Redis      `mapstructure:",squash"`
	Kiwi     Kiwi       `mapstructure:",squash"`
	Scoring  Scoring    `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Redis struct {
	Addr     string `mapstructure:"REDIS_ADDR"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

// Kiwi holds the upstream search API configuration. The partner identifier
// is fixed per API agreement.
type Kiwi struct {
	BaseURL      string        `mapstructure:"KIWI_BASE_URL"`
	Partner      string        `mapstructure:"KIWI_PARTNER"`
	Timeout      time.Duration `mapstructure:"KIWI_TIMEOUT"`
	RateLimitRPS int           `mapstructure:"KIWI_RATE_LIMIT"`
	CacheTTL     time.Duration `mapstructure:"KIWI_CACHE_TTL"`
}

type Scoring struct {
	HourlyCost float64 `mapstructure:"SCORING_HOURLY_COST"`
}

package config

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// MustInitConfig initializes configuration from a .env file or environment
// variables. If configFile exists it is loaded first; environment variables
// are bound automatically from the Config struct's mapstructure tags and
// take precedence.
func MustInitConfig(configFile string) Config {
	var (
		vpr = viper.New()
		cfg Config
	)

	vpr.SetDefault("LOG_LEVEL", "info")
	vpr.SetDefault("HTTP_PORT", 8080)
	vpr.SetDefault("HTTP_TIMEOUT", "30s")
	vpr.SetDefault("REDIS_ADDR", "localhost:6379")
	vpr.SetDefault("KIWI_BASE_URL", "https://api.skypicker.com")
	vpr.SetDefault("KIWI_PARTNER", "picky")
	vpr.SetDefault("KIWI_TIMEOUT", "60s")
	vpr.SetDefault("KIWI_RATE_LIMIT", 5)
	vpr.SetDefault("KIWI_CACHE_TTL", "1h")
	vpr.SetDefault("SCORING_HOURLY_COST", 15)

	vpr.AutomaticEnv()

	vpr.SetConfigFile(configFile)
	vpr.SetConfigType("env")

	if err := vpr.ReadInConfig(); err != nil {
		slog.Debug("config file not found or cannot be read, using environment variables",
			slog.String("file", configFile),
			slog.String("error", err.Error()))
	} else {
		slog.Info("config file loaded successfully", slog.String("file", configFile))
	}

	bindEnvFromType(vpr, reflect.TypeOf(Config{}))

	if err := vpr.Unmarshal(&cfg); err != nil {
		slog.Error("cannot unmarshal config", slog.String("error", err.Error()))
		panic(err)
	}

	return cfg
}

// bindEnvFromType binds environment variables based on mapstructure tags,
// recursing into squashed structs.
func bindEnvFromType(vpr *viper.Viper, t reflect.Type) {
	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" || tag == "-" {
			continue
		}

		parts := strings.Split(tag, ",")
		envVar := parts[0]

		isSquash := false
		for _, p := range parts {
			if strings.TrimSpace(p) == "squash" {
				isSquash = true
				break
			}
		}

		if isSquash && field.Type.Kind() == reflect.Struct {
			bindEnvFromType(vpr, field.Type)
			continue
		}

		if envVar != "" {
			_ = vpr.BindEnv(envVar)
		}
	}
}

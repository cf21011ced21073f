package main

import (
	"errors"

	"github.com/dmitrymomot/langsync/pkg/config"
	"github.com/dmitrymomot/langsync/pkg/cookie"
	"github.com/dmitrymomot/langsync/pkg/httpserver"
	"github.com/dmitrymomot/langsync/pkg/i18n"
	"github.com/dmitrymomot/langsync/pkg/logger"
	"github.com/dmitrymomot/langsync/pkg/redis"
)

// Config holds service-level settings not owned by any package.
type Config struct {
	// LocalesDir replaces the embedded bundles with <dir>/<lang>/<ns>.<ext>.
	LocalesDir string `env:"LANGSYNC_LOCALES_DIR"`
	// RedisEnabled mirrors persisted languages into Redis, keyed by a client id cookie.
	RedisEnabled bool   `env:"LANGSYNC_REDIS_ENABLED" envDefault:"false"`
	ClientCookie string `env:"LANGSYNC_CLIENT_COOKIE" envDefault:"langsync_client"`
}

type appConfig struct {
	Service Config
	Logger  logger.Config
	Server  httpserver.Config
	I18n    i18n.Settings
	Cookie  cookie.Config
	Redis   redis.Config
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	err := errors.Join(
		config.Load(&cfg.Service),
		config.Load(&cfg.Logger),
		config.Load(&cfg.Server),
		config.Load(&cfg.I18n),
		config.Load(&cfg.Cookie),
	)
	if err != nil {
		return cfg, err
	}
	if cfg.Service.RedisEnabled {
		if err := config.Load(&cfg.Redis); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

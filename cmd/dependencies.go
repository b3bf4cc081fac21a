package cmd

import (
	"context"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"stock-backtest/config"
	"stock-backtest/pkg/cache"
	"stock-backtest/pkg/logger"
)

type AppDependency struct {
	cfg          *config.Config
	log          *logger.Logger
	validator    *goValidator.Validate
	echo         *echo.Echo
	dataCache    cache.Cache
	sessionStore cache.Cache
}

func NewAppDependency(_ context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true

	return &AppDependency{
		cfg:          cfg,
		log:          log,
		validator:    goValidator.New(),
		echo:         e,
		dataCache:    cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
		sessionStore: cache.NewCache(cfg.Session.TTL, cfg.Session.CleanupInterval),
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	_ = d.log.Sync()
	return nil
}

package main

import (
	"github.com/corebit/img2dataurl/api"
	"github.com/corebit/img2dataurl/db"
	"github.com/corebit/img2dataurl/logger"
	"github.com/corebit/img2dataurl/resizer"
	"github.com/corebit/img2dataurl/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// Bootstrap logging before the config loader narrates itself.
	logger.Init(logger.LevelInfo)

	cfg, err := service.NewConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Init(logger.Level(cfg.LogLevel))
	logger.Info().Str("level", cfg.LogLevel).Msg("logger initialized")

	jobs, err := db.NewDatabase(cfg.JobDBPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.JobDBPath).Msg("failed to open job database")
	}
	defer func() {
		_ = jobs.Close()
	}()

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	svc := service.NewResizeService(resizer.New(), jobs, cfg)
	api.RegisterRoutes(e, svc, cfg)

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

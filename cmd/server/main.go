package main

import (
	"github.com/labstack/echo/v4"

	"github.com/onlyfilms/backend/internal/router"
	"github.com/onlyfilms/backend/pkg/config"
	"github.com/onlyfilms/backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	log := zl.Sugar()
	defer log.Sync()

	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.Fatalw("initializing databases", "error", err)
	}
	defer db.CloseDB()

	e := echo.New()
	e.HideBanner = true

	router.SetupMiddleware(e)
	if err := router.SetupRoutes(e, cfg, db, log); err != nil {
		log.Fatalw("setting up routes", "error", err)
	}

	log.Infow("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}

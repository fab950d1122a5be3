package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/verdantlab/sacredgarden/internal/api"
	"github.com/verdantlab/sacredgarden/internal/config"
	"github.com/verdantlab/sacredgarden/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config init failed: %v", err)
	}

	database, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	handler := api.NewHandler(database, cfg)

	if cfg.Sample.UserEmail != "" {
		if _, err := handler.SampleDataService().EnsureSampleUser(cfg.Sample.UserEmail); err != nil {
			log.Fatalf("sample user init failed: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               "Sacred Garden",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Sacred Garden listening on http://0.0.0.0:%s (db: %s)", cfg.Server.Port, cfg.Database.Path)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pybites/insights/internal/app"
	"github.com/pybites/insights/internal/config"
	"github.com/pybites/insights/internal/logger"
	"github.com/pybites/insights/internal/routes"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	if cfg.IngestOnStart {
		go func() {
			_, ingestErr := app.IngestService.Run(context.Background())
			if ingestErr != nil {
				slog.Error("startup ingest failed", "error", ingestErr)
			}
		}()
	}

	if cfg.RefreshInterval > 0 {
		go app.IngestService.RunEvery(context.Background(), cfg.RefreshInterval)
	}

	handler := routes.SetupRoutes(app)
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", "http://localhost:"+cfg.Port)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}

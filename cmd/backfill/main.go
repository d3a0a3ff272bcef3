// Command backfill runs a single ingest pass: it walks the blog sitemap,
// scrapes every article, archives the raw versions and rebuilds the
// refined tables and aggregates.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pybites/insights/internal/app"
	"github.com/pybites/insights/internal/config"
	"github.com/pybites/insights/internal/logger"
)

func main() {
	timeout := flag.Duration("timeout", 0, "abort the pass after this duration (0 means no limit)")
	flag.Parse()

	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	report, err := app.IngestService.Run(ctx)
	if err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}

	slog.Info("ingest complete",
		"sitemap_entries", report.SitemapEntries,
		"scraped", report.Scraped,
		"new_versions", report.NewVersions,
		"refined", report.Refined,
	)
}

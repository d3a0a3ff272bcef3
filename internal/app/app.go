package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pybites/insights/internal/archive"
	"github.com/pybites/insights/internal/config"
	"github.com/pybites/insights/internal/db"
	"github.com/pybites/insights/internal/repository"
	"github.com/pybites/insights/internal/scraper"
	"github.com/pybites/insights/internal/service"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	PostService   *service.PostService
	StatsService  *service.StatsService
	SearchService *service.SearchService
	InfoService   *service.InfoService
	FeedService   *service.FeedService
	IngestService *service.IngestService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Connect(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	postRepository := repository.NewPostRepository(database)
	statsRepository := repository.NewStatsRepository(database)

	// Raw snapshot archive (optional, S3-compatible)
	store, err := archive.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize archive: %v", err)
	}

	// Services
	postService := service.NewPostService(postRepository)
	statsService := service.NewStatsService(statsRepository)
	searchService := service.NewSearchService(
		postRepository,
		cfg.SearchPasswordHash,
		cfg.JWTSecret,
		cfg.SearchTokenExpiry,
	)
	infoService := service.NewInfoService(cfg.ContentPath)
	feedService := service.NewFeedService(postRepository, cfg.AppName, cfg.AppURL, cfg.SiteBaseURL)
	ingestService := service.NewIngestService(
		scraper.New(cfg.SiteBaseURL),
		postRepository,
		store,
		cfg.SitemapURL,
		cfg.ScrapeDelay,
	)

	return &App{
		Cfg:           cfg,
		DB:            database,
		PostService:   postService,
		StatsService:  statsService,
		SearchService: searchService,
		InfoService:   infoService,
		FeedService:   feedService,
		IngestService: ingestService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

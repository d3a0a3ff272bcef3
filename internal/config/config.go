package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	AppURL      string
	Port        string
	ContentPath string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Blog source
	SiteBaseURL string
	SitemapURL  string

	// Ingestion
	IngestOnStart   bool          // run a full ingest pass on server start
	RefreshInterval time.Duration // 0 disables the background refresh
	ScrapeDelay     time.Duration // pause between article fetches

	// Search gate
	JWTSecret          string
	SearchPasswordHash string // bcrypt hash; empty disables the search tab
	SearchTokenExpiry  time.Duration

	// Observability (optional)
	SentryDSN string

	// Raw archive (S3-compatible, optional: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "PyBites Insights"),
		AppEnv:      envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:      envString("APP_URL", "http://localhost:8090"),
		Port:        envString("PORT", "8090"),
		ContentPath: envString("CONTENT_PATH", "content"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/insights.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Blog source
		SiteBaseURL: envString("SITE_BASE_URL", "https://pybit.es/articles/"),
		SitemapURL:  envString("SITEMAP_URL", "https://pybit.es/post-sitemap1.xml"),

		// Ingestion
		IngestOnStart:   envBool("INGEST_ON_START", false),
		RefreshInterval: envDuration("REFRESH_INTERVAL", 0),
		ScrapeDelay:     envDuration("SCRAPE_DELAY", 500*time.Millisecond),

		// Search gate
		JWTSecret:          envRequired("JWT_SECRET"),
		SearchPasswordHash: envString("SEARCH_PASSWORD_HASH", ""),
		SearchTokenExpiry:  envDuration("SEARCH_TOKEN_EXPIRY", 1*time.Hour),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Raw archive (enabled when S3_BUCKET is set)
		S3Region:    envString("S3_REGION", "us-west-2"),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures production deployments are not misconfigured.
// Development allows relaxed settings for easier local testing.
func validateProduction(cfg *Config) {
	if !strings.HasPrefix(cfg.AppURL, "https://") {
		slog.Error("production deployment requires an https APP_URL", "url", cfg.AppURL)
		os.Exit(1)
	}
	if cfg.SearchPasswordHash != "" && !strings.HasPrefix(cfg.SearchPasswordHash, "$2") {
		slog.Error("SEARCH_PASSWORD_HASH must be a bcrypt hash",
			"hint", "generate one with htpasswd -bnBC 10 '' <password>")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ArchiveEnabled reports whether raw scrape snapshots should be written to S3.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

// SearchEnabled reports whether the password-gated search tab is available.
func (c *Config) SearchEnabled() bool {
	return c.SearchPasswordHash != ""
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets and credentials are excluded.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:     c.AppName,
		AppEnv:      c.AppEnv,
		AppURL:      c.AppURL,
		Port:        c.Port,
		ContentPath: c.ContentPath,

		SiteBaseURL: c.SiteBaseURL,
		SitemapURL:  c.SitemapURL,
	}
}

package ctxkeys

import (
	"context"

	"github.com/pybites/insights/internal/config"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	ConfigKey        contextKey = "config"
	URLPathKey       contextKey = "url_path"
	SearchUnlockNote contextKey = "search_unlocked"
)

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}

// SearchUnlocked reports whether the request carries a valid search token.
func SearchUnlocked(ctx context.Context) bool {
	ok, _ := ctx.Value(SearchUnlockNote).(bool)
	return ok
}

func WithSearchUnlocked(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, SearchUnlockNote, ok)
}

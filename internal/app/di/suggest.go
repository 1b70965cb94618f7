package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"whisper_backend/internal/feature/suggestions/adapters/gemini"
	"whisper_backend/internal/feature/suggestions/usecase"
	"whisper_backend/internal/platform/cache"
)

// staticSuggester serves a fixed set of questions when the Gemini client
// cannot be constructed. Suggestions are advisory only, so the service
// stays usable without AI credentials.
type staticSuggester struct{}

func (staticSuggester) Suggest(ctx context.Context, prompt string) (string, error) {
	return "What's a hobby you've recently started?||" +
		"If you could have dinner with any historical figure, who would it be?||" +
		"What's a simple thing that makes you happy?", nil
}

// NewSuggester creates a Suggester implementation.
// It prefers the Gemini-backed suggester and falls back to a static one,
// wrapping either in a Redis cache when available.
func NewSuggester(ctx context.Context, rdb *redis.Client, ttl time.Duration) usecase.Suggester {
	var inner usecase.Suggester
	if g, err := gemini.NewGeminiSuggester(ctx); err != nil {
		slog.Warn("Gemini unavailable, serving static suggestions", "error", err)
		inner = staticSuggester{}
	} else {
		inner = g
	}
	return cache.NewCachingSuggester(rdb, ttl, inner, "suggestions")
}

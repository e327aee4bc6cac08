// Package feed normalizes syndication feeds into the dashboard's
// stable item contract. Publishers disagree on schema — some provide
// content, others only a summary; dates live in different fields;
// thumbnails come from several media extensions — so every field is
// resolved through an ordered fallback chain and absent values become
// empty strings, never null.
package feed

import (
	"context"
	"log/slog"
	"time"

	"startpage/internal/observability/metrics"
)

// Limits for the item cap. Caller-supplied limits outside the range
// are silently clamped, not rejected.
const (
	MinLimit     = 1
	DefaultLimit = 20
	MaxLimit     = 50
)

// maxDescriptionRunes caps the description carried per item.
const maxDescriptionRunes = 2000

// titlePlaceholder substitutes for entries without a title.
const titlePlaceholder = "(no title)"

// Item is one normalized feed entry. The published field keeps the
// feed's raw date string; formats are not normalized across feeds.
type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Published   string `json:"published"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Author      string `json:"author"`
}

// Result is the normalized outcome of one feed fetch.
type Result struct {
	FeedTitle string `json:"feed_title"`
	Items     []Item `json:"items"`
}

// Source fetches and parses a syndication document. Implementations
// classify their errors with the upstream taxonomy and apply the
// per-field fallback chains; the service applies caps, truncation and
// placeholders on top.
type Source interface {
	Fetch(ctx context.Context, feedURL string) (feedTitle string, items []Item, err error)
}

// Service applies the normalization policy over a Source.
type Service struct {
	source Source
	logger *slog.Logger
}

// NewService creates a feed Service over the given source.
func NewService(source Source, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return Service{source: source, logger: logger}
}

// Fetch retrieves feedURL and returns up to limit normalized items.
// The limit is clamped to [MinLimit, MaxLimit]; zero or negative
// values clamp to MinLimit. Transport failures surface as fetch
// errors, unparseable payloads as parse errors.
func (s Service) Fetch(ctx context.Context, feedURL string, limit int) (Result, error) {
	limit = ClampLimit(limit)

	start := time.Now()
	feedTitle, items, err := s.source.Fetch(ctx, feedURL)
	metrics.RecordUpstream("feed", time.Since(start), err)
	if err != nil {
		s.logger.Warn("feed fetch failed",
			slog.String("url", feedURL),
			slog.Any("error", err))
		return Result{}, err
	}

	if len(items) > limit {
		items = items[:limit]
	}

	normalized := make([]Item, 0, len(items))
	for _, it := range items {
		normalized = append(normalized, normalizeItem(it))
	}

	return Result{FeedTitle: feedTitle, Items: normalized}, nil
}

// ClampLimit forces a caller-supplied limit into [MinLimit, MaxLimit].
func ClampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func normalizeItem(it Item) Item {
	if it.Title == "" {
		it.Title = titlePlaceholder
	}
	it.Description = truncateRunes(it.Description, maxDescriptionRunes)
	return it
}

// truncateRunes cuts s to at most n runes without splitting a
// character.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

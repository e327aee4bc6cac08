// Package article turns one web page into readable text and metadata
// for the dashboard's reader view. Extraction happens once per call
// and is never cached.
package article

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"startpage/internal/observability/metrics"
	"startpage/internal/upstream"
)

// Extracted is the raw outcome of a boilerplate-removal pass,
// produced by an Extractor implementation.
type Extracted struct {
	Title       string
	Authors     []string
	PublishDate string // ISO-8601 or empty
	TopImage    string
	Text        string
}

// Result is the response contract for one extracted article. The HTML
// field is derived deterministically from Text, not a second
// extraction pass.
type Result struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	PublishDate string   `json:"publish_date"`
	TopImage    string   `json:"top_image"`
	Text        string   `json:"text"`
	HTML        string   `json:"html"`
	SourceURL   string   `json:"source_url"`
}

// Extractor downloads one page and reduces it to readable content.
type Extractor interface {
	Extract(ctx context.Context, url string) (Extracted, error)
}

// Service validates input and presents extraction results.
type Service struct {
	extractor Extractor
	logger    *slog.Logger
}

// NewService creates an article Service over the given extractor.
func NewService(extractor Extractor, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return Service{extractor: extractor, logger: logger}
}

// Extract validates url, runs the extraction and derives the HTML
// rendering. An empty URL is rejected before any network call.
func (s Service) Extract(ctx context.Context, url string) (Result, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Result{}, upstream.Validation("url parameter is required")
	}

	start := time.Now()
	extracted, err := s.extractor.Extract(ctx, url)
	metrics.RecordUpstream("article", time.Since(start), err)
	if err != nil {
		s.logger.Warn("article extraction failed",
			slog.String("url", url),
			slog.Any("error", err))
		return Result{}, err
	}

	authors := extracted.Authors
	if authors == nil {
		authors = []string{}
	}

	return Result{
		Title:       extracted.Title,
		Authors:     authors,
		PublishDate: extracted.PublishDate,
		TopImage:    extracted.TopImage,
		Text:        extracted.Text,
		HTML:        paragraphsToHTML(extracted.Text),
		SourceURL:   url,
	}, nil
}

// paragraphsToHTML splits plain text on blank-line boundaries and
// wraps each paragraph in a <p> tag.
func paragraphsToHTML(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(para)
		b.WriteString("</p>")
	}
	return b.String()
}

// Package extractor downloads a single page and reduces it to
// readable article content using the Mozilla Readability algorithm,
// with goquery meta-tag fallbacks for authorship and dates.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"startpage/internal/infra/httpclient"
	"startpage/internal/upstream"
	"startpage/internal/usecase/article"
)

// maxBodySize caps the downloaded page to keep one hostile upstream
// from exhausting memory.
const maxBodySize = 10 * 1024 * 1024

// ReadabilityExtractor implements article.Extractor.
type ReadabilityExtractor struct {
	client *http.Client
}

// NewReadabilityExtractor creates an extractor using the given bounded
// HTTP client.
func NewReadabilityExtractor(client *http.Client) *ReadabilityExtractor {
	return &ReadabilityExtractor{client: client}
}

var _ article.Extractor = (*ReadabilityExtractor)(nil)

// Extract downloads urlStr once (no retry) and extracts title, body
// text, authors, publish date and a leading image. Download problems
// classify as fetch errors; pages with no readable text classify as
// extraction errors.
func (e *ReadabilityExtractor) Extract(ctx context.Context, urlStr string) (article.Extracted, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return article.Extracted{}, upstream.Validation(fmt.Sprintf("invalid article url: %v", err))
	}
	req.Header.Set("User-Agent", httpclient.UserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return article.Extracted{}, upstream.Fetch(err, "article download failed: %s unreachable", urlStr)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return article.Extracted{}, upstream.Fetch(nil, "article download failed: HTTP %d from %s", resp.StatusCode, urlStr)
	}

	htmlBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return article.Extracted{}, upstream.Fetch(err, "article download failed while reading body")
	}
	if len(htmlBytes) > maxBodySize {
		return article.Extracted{}, upstream.Fetch(nil, "article body exceeds %d bytes", maxBodySize)
	}

	// The final URL may differ after redirects; readability uses it to
	// resolve relative links.
	pageURL := resp.Request.URL
	if pageURL == nil {
		pageURL, _ = url.Parse(urlStr)
	}

	parsed, err := readability.FromReader(bytes.NewReader(htmlBytes), pageURL)
	if err != nil {
		return article.Extracted{}, upstream.Extract(err, "content extraction failed: %v", err)
	}
	if strings.TrimSpace(parsed.TextContent) == "" {
		return article.Extracted{}, upstream.Extract(nil, "no readable content found at %s", urlStr)
	}

	extracted := article.Extracted{
		Title:    parsed.Title,
		TopImage: parsed.Image,
		Text:     strings.TrimSpace(parsed.TextContent),
	}
	if parsed.Byline != "" {
		extracted.Authors = []string{parsed.Byline}
	}
	if parsed.PublishedTime != nil {
		extracted.PublishDate = parsed.PublishedTime.UTC().Format(time.RFC3339)
	}

	// Meta tags fill what readability missed; their absence is fine.
	fillFromMeta(&extracted, htmlBytes)

	return extracted, nil
}

// fillFromMeta backfills authors, publish date and lead image from
// document meta tags. Parse failures degrade silently.
func fillFromMeta(extracted *article.Extracted, htmlBytes []byte) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return
	}

	if len(extracted.Authors) == 0 {
		extracted.Authors = metaAuthors(doc)
	}
	if extracted.PublishDate == "" {
		extracted.PublishDate = metaContent(doc, `meta[property="article:published_time"]`)
	}
	if extracted.TopImage == "" {
		extracted.TopImage = metaContent(doc, `meta[property="og:image"]`)
	}
}

func metaAuthors(doc *goquery.Document) []string {
	var authors []string
	seen := map[string]bool{}
	doc.Find(`meta[name="author"], meta[property="article:author"]`).Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.AttrOr("content", ""))
		if name != "" && !seen[name] {
			seen[name] = true
			authors = append(authors, name)
		}
	})
	return authors
}

func metaContent(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
}

// Package feedfetch fetches and parses RSS/Atom documents with the
// gofeed library and reduces every entry to the dashboard's normalized
// item shape via ordered fallback chains.
package feedfetch

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"startpage/internal/infra/httpclient"
	"startpage/internal/upstream"
	"startpage/internal/usecase/feed"
)

// Fetcher implements feed.Source using gofeed.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher using the given bounded HTTP client.
func NewFetcher(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

var _ feed.Source = (*Fetcher)(nil)

// Fetch retrieves and parses the feed at feedURL. Transport failures
// and non-2xx statuses classify as fetch errors; payloads gofeed
// cannot recognize as RSS or Atom classify as parse errors with the
// parser's reason in the message. A successfully parsed feed with
// zero entries is a legitimate empty feed, not an error.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (string, []feed.Item, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = httpclient.UserAgent
	fp.Client = f.client

	parsed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return "", nil, classify(err, feedURL)
	}

	items := make([]feed.Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, convertItem(it))
	}
	return parsed.Title, items, nil
}

// classify sorts a gofeed error into the upstream taxonomy.
func classify(err error, feedURL string) error {
	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return upstream.Fetch(err, "feed fetch failed: HTTP %d from %s", httpErr.StatusCode, feedURL)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return upstream.Fetch(err, "feed fetch failed: %s unreachable", feedURL)
	}

	// Payload arrived but gofeed could not make sense of it.
	return upstream.Parse(err, "feed error: %v", err)
}

// convertItem reduces a gofeed entry through the per-field fallback
// chains. Empty results stay empty strings; the usecase layer applies
// placeholders and truncation.
func convertItem(it *gofeed.Item) feed.Item {
	return feed.Item{
		Title:       it.Title,
		Link:        it.Link,
		Published:   firstNonEmpty(it.Published, it.Updated, dublinCoreDate(it)),
		Description: firstNonEmpty(it.Content, it.Description),
		Thumbnail:   thumbnailURL(it),
		Author:      authorName(it),
	}
}

// thumbnailURL resolves media:thumbnail, then media:content, then the
// item's own image.
func thumbnailURL(it *gofeed.Item) string {
	if u := mediaExtensionURL(it.Extensions, "thumbnail"); u != "" {
		return u
	}
	if u := mediaExtensionURL(it.Extensions, "content"); u != "" {
		return u
	}
	if it.Image != nil {
		return it.Image.URL
	}
	return ""
}

// mediaExtensionURL digs the url attribute out of a Media RSS
// extension element.
func mediaExtensionURL(exts ext.Extensions, element string) string {
	media, ok := exts["media"]
	if !ok {
		return ""
	}
	entries := media[element]
	if len(entries) == 0 {
		return ""
	}
	return entries[0].Attrs["url"]
}

func authorName(it *gofeed.Item) string {
	if it.Author != nil && it.Author.Name != "" {
		return it.Author.Name
	}
	if len(it.Authors) > 0 && it.Authors[0] != nil {
		return it.Authors[0].Name
	}
	return ""
}

// dublinCoreDate is the third stop of the published fallback chain;
// gofeed surfaces dc:date/dcterms:created here for feeds that carry
// neither published nor updated.
func dublinCoreDate(it *gofeed.Item) string {
	if it.DublinCoreExt == nil || len(it.DublinCoreExt.Date) == 0 {
		return ""
	}
	return it.DublinCoreExt.Date[0]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

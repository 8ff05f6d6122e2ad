package rss

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
	"NewsDigest/pkg/retry"
)

const fetchTimeout = 20 * time.Second

// Fetcher pulls articles from RSS/Atom feeds.
type Fetcher struct {
	parser   *gofeed.Parser
	retryCfg retry.Config
}

var _ ports.FeedSource = (*Fetcher)(nil)

// NewFetcher wires an HTTP client into the feed parser.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "NewsDigest/1.0"

	return &Fetcher{parser: parser, retryCfg: retry.DefaultConfig()}
}

// Fetch downloads one feed and returns its first limit entries.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string, limit int) ([]domain.Article, error) {
	var feed *gofeed.Feed

	op := func() error {
		var err error
		feed, err = f.parser.ParseURLWithContext(feedURL, ctx)
		return err
	}

	if err := retry.Do(ctx, f.retryCfg, fmt.Sprintf("fetch feed %s", feedURL), op, feedErrRetryable); err != nil {
		return nil, err
	}

	articles := make([]domain.Article, 0, limit)
	for _, item := range feed.Items {
		if len(articles) >= limit {
			break
		}

		title := strings.TrimSpace(item.Title)
		if title == "" && item.Link == "" {
			continue
		}

		snippet := item.Description
		if snippet == "" {
			snippet = item.Content
		}

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed.UTC()
		}

		articles = append(articles, domain.Article{
			Title:       title,
			Snippet:     stripHTML(snippet),
			URL:         item.Link,
			Source:      domain.SourceRSS,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

// feedErrRetryable treats client-side HTTP errors as permanent; network
// and server errors are retried.
func feedErrRetryable(err error) bool {
	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

// stripHTML flattens a feed description fragment into plain text with
// collapsed whitespace.
func stripHTML(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

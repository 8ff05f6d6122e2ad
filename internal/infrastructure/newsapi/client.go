package newsapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

const requestTimeout = 15 * time.Second

// Client queries the NewsAPI /v2/everything endpoint.
type Client struct {
	rest   *resty.Client
	apiKey string
}

var _ ports.NewsSource = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.NewsAPIConfig) *Client {
	rest := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(requestTimeout).
		SetHeader("User-Agent", "NewsDigest/1.0")

	return &Client{rest: rest, apiKey: cfg.APIKey}
}

// Search fetches up to limit recent English articles matching query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("newsapi client misconfigured: missing API key")
	}

	var out everythingResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", c.apiKey).
		SetQueryParams(map[string]string{
			"q":        query,
			"language": "en",
			"sortBy":   "publishedAt",
			"pageSize": strconv.Itoa(limit),
		}).
		SetResult(&out).
		Get("/v2/everything")
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("newsapi returned %s", resp.Status())
	}
	if out.Status != "" && out.Status != "ok" {
		return nil, fmt.Errorf("newsapi status %q: %s", out.Status, out.Message)
	}

	articles := make([]domain.Article, 0, len(out.Articles))
	for _, item := range out.Articles {
		title := strings.TrimSpace(item.Title)
		if title == "" && item.URL == "" {
			continue
		}

		// Zero timestamp on parse failure; recency sort pushes those last.
		publishedAt, _ := time.Parse(time.RFC3339, item.PublishedAt)

		articles = append(articles, domain.Article{
			Title:       title,
			Snippet:     strings.TrimSpace(item.Description),
			URL:         item.URL,
			Source:      domain.SourceNewsAPI,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

type everythingResponse struct {
	Status   string              `json:"status"`
	Message  string              `json:"message"`
	Articles []everythingArticle `json:"articles"`
}

type everythingArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

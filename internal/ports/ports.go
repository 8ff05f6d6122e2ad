package ports

import (
	"context"
	"time"

	"NewsDigest/internal/domain"
)

// NewsSource searches a keyword-driven news API.
type NewsSource interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Article, error)
}

// FeedSource pulls entries from a single RSS/Atom feed.
type FeedSource interface {
	Fetch(ctx context.Context, feedURL string, limit int) ([]domain.Article, error)
}

// QueryGenerator produces short search queries for a domain run.
type QueryGenerator interface {
	Queries(ctx context.Context, q domain.DomainQuery) ([]string, error)
}

// Classifier decides whether an article matches the requested topic. The
// underlying model/provider is swappable behind this interface.
type Classifier interface {
	Classify(ctx context.Context, article domain.Article, topic string) (bool, error)
}

// Summarizer turns a batch of selected articles into bullet points.
type Summarizer interface {
	Summarize(ctx context.Context, q domain.DomainQuery, articles []domain.Article) ([]string, error)
}

// StockQuoter resolves a company name to a current stock price line.
type StockQuoter interface {
	Quote(ctx context.Context, company string) (string, error)
}

// Notifier delivers rendered digests to an outbound channel (email).
type Notifier interface {
	PublishDigest(ctx context.Context, subject, htmlBody string) error
}

// Scheduler controls when recurring digest runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}

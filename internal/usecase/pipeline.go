package usecase

import (
	"context"
	"log/slog"
	"sort"

	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

// PipelineDeps wires the driven adapters into the per-domain pipeline.
type PipelineDeps struct {
	News       ports.NewsSource
	Feeds      ports.FeedSource
	Queries    ports.QueryGenerator
	Classifier ports.Classifier
	Summarizer ports.Summarizer
	Logger     *slog.Logger
}

// Pipeline implements the fetch -> dedupe -> sort -> classify -> select
// -> summarize workflow for one domain query.
type Pipeline struct {
	news       ports.NewsSource
	feeds      ports.FeedSource
	queries    ports.QueryGenerator
	classifier ports.Classifier
	summarizer ports.Summarizer
	limits     config.LimitsConfig
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps, limits config.LimitsConfig) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		news:       deps.News,
		feeds:      deps.Feeds,
		queries:    deps.Queries,
		classifier: deps.Classifier,
		summarizer: deps.Summarizer,
		limits:     limits,
		logger:     logger,
	}
}

// Run executes the pipeline for one domain query against the given RSS
// feeds. Source and classification failures degrade gracefully; a
// summarization failure is reported via Digest.SummaryUnavailable. The
// returned error is non-nil only when the context is cancelled.
func (p *Pipeline) Run(ctx context.Context, q domain.DomainQuery, feedURLs []string) (domain.Digest, error) {
	digest := domain.Digest{Query: q, Title: DomainTitle(q.Domain)}

	searches := p.searchQueries(ctx, q)

	combined := p.fetchNews(ctx, searches)
	combined = append(combined, p.fetchFeeds(ctx, feedURLs)...)

	if err := ctx.Err(); err != nil {
		return digest, err
	}

	unique := Deduplicate(combined)
	sortByRecency(unique)

	relevant := p.filterRelevant(ctx, unique, q.TopicDescription())
	if len(relevant) > p.limits.FinalArticles {
		relevant = relevant[:p.limits.FinalArticles]
	}
	digest.Articles = relevant

	p.logger.Info("articles selected",
		"domain", q.Domain,
		"fetched", len(combined),
		"unique", len(unique),
		"selected", len(relevant))

	if len(relevant) == 0 {
		return digest, ctx.Err()
	}

	bullets, err := p.summarizer.Summarize(ctx, q, relevant)
	if err != nil {
		p.logger.Warn("summarization failed", "domain", q.Domain, "error", err)
		digest.SummaryUnavailable = true
		return digest, ctx.Err()
	}
	digest.Bullets = bullets

	return digest, nil
}

// searchQueries asks the generator for search queries, falling back to a
// single parameter-derived query on any failure.
func (p *Pipeline) searchQueries(ctx context.Context, q domain.DomainQuery) []string {
	if p.queries == nil {
		return []string{q.FallbackSearch()}
	}

	queries, err := p.queries.Queries(ctx, q)
	if err != nil {
		p.logger.Warn("query generation failed, using fallback", "domain", q.Domain, "error", err)
		return []string{q.FallbackSearch()}
	}
	return queries
}

// fetchNews runs every search query against the news API and caps the
// accumulated result at MaxNewsAPI. Failures yield an empty contribution.
func (p *Pipeline) fetchNews(ctx context.Context, searches []string) []domain.Article {
	if p.news == nil {
		return nil
	}

	var articles []domain.Article
	for _, query := range searches {
		if ctx.Err() != nil {
			break
		}
		found, err := p.news.Search(ctx, query, p.limits.MaxNewsAPI)
		if err != nil {
			p.logger.Warn("news search failed", "query", query, "error", err)
			continue
		}
		articles = append(articles, found...)
		if len(articles) >= p.limits.MaxNewsAPI {
			articles = articles[:p.limits.MaxNewsAPI]
			break
		}
	}
	return articles
}

// fetchFeeds pulls each configured feed, skipping failed ones.
func (p *Pipeline) fetchFeeds(ctx context.Context, feedURLs []string) []domain.Article {
	if p.feeds == nil {
		return nil
	}

	var articles []domain.Article
	for _, feedURL := range feedURLs {
		if ctx.Err() != nil {
			break
		}
		found, err := p.feeds.Fetch(ctx, feedURL, p.limits.MaxRSS)
		if err != nil {
			p.logger.Warn("feed fetch failed", "feed", feedURL, "error", err)
			continue
		}
		articles = append(articles, found...)
	}
	return articles
}

// filterRelevant keeps articles the classifier accepts. Classification
// errors are logged and treated as irrelevant.
func (p *Pipeline) filterRelevant(ctx context.Context, articles []domain.Article, topic string) []domain.Article {
	if p.classifier == nil {
		return articles
	}

	relevant := make([]domain.Article, 0, len(articles))
	for _, article := range articles {
		if ctx.Err() != nil {
			break
		}
		ok, err := p.classifier.Classify(ctx, article, topic)
		if err != nil {
			p.logger.Warn("classification failed, dropping article", "title", article.Title, "error", err)
			continue
		}
		if ok {
			relevant = append(relevant, article)
		}
	}
	return relevant
}

// sortByRecency orders newest first; zero timestamps sink to the end.
// The sort is stable so first-seen order breaks ties.
func sortByRecency(articles []domain.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}

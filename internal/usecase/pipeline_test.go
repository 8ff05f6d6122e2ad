package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
)

type stubNews struct {
	fn    func(query string, limit int) ([]domain.Article, error)
	calls []string
}

func (s *stubNews) Search(_ context.Context, query string, limit int) ([]domain.Article, error) {
	s.calls = append(s.calls, query)
	return s.fn(query, limit)
}

type stubFeeds struct {
	fn func(feedURL string, limit int) ([]domain.Article, error)
}

func (s *stubFeeds) Fetch(_ context.Context, feedURL string, limit int) ([]domain.Article, error) {
	return s.fn(feedURL, limit)
}

type stubClassifier struct {
	fn func(article domain.Article, topic string) (bool, error)
}

func (s *stubClassifier) Classify(_ context.Context, article domain.Article, topic string) (bool, error) {
	return s.fn(article, topic)
}

type stubSummarizer struct {
	fn    func(q domain.DomainQuery, articles []domain.Article) ([]string, error)
	calls int
}

func (s *stubSummarizer) Summarize(_ context.Context, q domain.DomainQuery, articles []domain.Article) ([]string, error) {
	s.calls++
	return s.fn(q, articles)
}

type stubQueries struct {
	fn func(q domain.DomainQuery) ([]string, error)
}

func (s *stubQueries) Queries(_ context.Context, q domain.DomainQuery) ([]string, error) {
	return s.fn(q)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{MaxNewsAPI: 10, MaxRSS: 10, FinalArticles: 5}
}

func newsArticles(n int) []domain.Article {
	articles := make([]domain.Article, 0, n)
	base := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		articles = append(articles, domain.Article{
			Title:       fmt.Sprintf("News story %d", i),
			Snippet:     "snippet",
			URL:         fmt.Sprintf("https://news.example/%d", i),
			Source:      domain.SourceNewsAPI,
			PublishedAt: base.Add(-time.Duration(i) * time.Hour),
		})
	}
	return articles
}

func acceptAll() *stubClassifier {
	return &stubClassifier{fn: func(domain.Article, string) (bool, error) { return true, nil }}
}

func bulletsPerArticle() *stubSummarizer {
	return &stubSummarizer{fn: func(_ domain.DomainQuery, articles []domain.Article) ([]string, error) {
		bullets := make([]string, 0, len(articles))
		for _, a := range articles {
			bullets = append(bullets, "about "+a.Title)
		}
		return bullets, nil
	}}
}

func TestPipelineSelectionCap(t *testing.T) {
	t.Parallel()

	news := &stubNews{fn: func(string, int) ([]domain.Article, error) { return newsArticles(8), nil }}
	feeds := &stubFeeds{fn: func(string, int) ([]domain.Article, error) {
		return []domain.Article{
			{Title: "Feed one", URL: "https://feed.example/1", Source: domain.SourceRSS},
			{Title: "Feed two", URL: "https://feed.example/2", Source: domain.SourceRSS},
		}, nil
	}}
	summarizer := bulletsPerArticle()

	p := NewPipeline(PipelineDeps{
		News:       news,
		Feeds:      feeds,
		Classifier: acceptAll(),
		Summarizer: summarizer,
		Logger:     testLogger(),
	}, testLimits())

	q := domain.DomainQuery{Domain: domain.DomainTech, Topic: "Artificial Intelligence"}
	digest, err := p.Run(context.Background(), q, []string{"https://feed.example/rss"})

	require.NoError(t, err)
	assert.LessOrEqual(t, len(digest.Articles), 5)
	assert.Len(t, digest.Bullets, len(digest.Articles))
	assert.False(t, digest.SummaryUnavailable)
}

func TestPipelineAllIrrelevantYieldsEmptyDigest(t *testing.T) {
	t.Parallel()

	news := &stubNews{fn: func(string, int) ([]domain.Article, error) { return newsArticles(4), nil }}
	rejectAll := &stubClassifier{fn: func(domain.Article, string) (bool, error) { return false, nil }}
	summarizer := bulletsPerArticle()

	p := NewPipeline(PipelineDeps{
		News:       news,
		Classifier: rejectAll,
		Summarizer: summarizer,
		Logger:     testLogger(),
	}, testLimits())

	digest, err := p.Run(context.Background(), domain.DomainQuery{Domain: domain.DomainTech}, nil)

	require.NoError(t, err, "an empty result is not an error")
	assert.True(t, digest.Empty())
	assert.Empty(t, digest.Bullets)
	assert.Zero(t, summarizer.calls, "nothing to summarize")
}

func TestPipelineFeedFailureKeepsNewsResults(t *testing.T) {
	t.Parallel()

	news := &stubNews{fn: func(string, int) ([]domain.Article, error) { return newsArticles(3), nil }}
	feeds := &stubFeeds{fn: func(string, int) ([]domain.Article, error) {
		return nil, fmt.Errorf("dial tcp: connection refused")
	}}

	p := NewPipeline(PipelineDeps{
		News:       news,
		Feeds:      feeds,
		Classifier: acceptAll(),
		Summarizer: bulletsPerArticle(),
		Logger:     testLogger(),
	}, testLimits())

	digest, err := p.Run(context.Background(), domain.DomainQuery{Domain: domain.DomainSports, Team: "Australia", Sport: "Cricket"}, []string{"https://feed.example/rss"})

	require.NoError(t, err)
	require.Len(t, digest.Articles, 3)
	for _, article := range digest.Articles {
		assert.Equal(t, domain.SourceNewsAPI, article.Source)
	}
}

func TestPipelineNewsFailureKeepsFeedResults(t *testing.T) {
	t.Parallel()

	news := &stubNews{fn: func(string, int) ([]domain.Article, error) {
		return nil, fmt.Errorf("newsapi returned 500 Internal Server Error")
	}}
	feeds := &stubFeeds{fn: func(string, int) ([]domain.Article, error) {
		return []domain.Article{{Title: "Feed one", URL: "https://feed.example/1", Source: domain.SourceRSS}}, nil
	}}

	p := NewPipeline(PipelineDeps{
		News:       news,
		Feeds:      feeds,
		Classifier: acceptAll(),
		Summarizer: bulletsPerArticle(),
		Logger:     testLogger(),
	}, testLimits())

	digest, err := p.Run(context.Background(), domain.DomainQuery{Domain: domain.DomainTech}, []string{"https://feed.example/rss"})

	require.NoError(t, err)
	require.Len(t, digest.Articles, 1)
	assert.Equal(t, domain.SourceRSS, digest.Articles[0].Source)
}

func TestPipelineIdempotentOverIdenticalInput(t *testing.T) {
	t.Parallel()

	build := func() *Pipeline {
		news := &stubNews{fn: func(string, int) ([]domain.Article, error) { return newsArticles(6), nil }}
		return NewPipeline(PipelineDeps{
			News:       news,
			Classifier: acceptAll(),
			Summarizer: bulletsPerArticle(),
			Logger:     testLogger(),
		}, testLimits())
	}

	q := domain.DomainQuery{Domain: domain.DomainFinance, Stock: "Infosys", Sector: "Technology"}

	first, err := build().Run(context.Background(), q, nil)
	require.NoError(t, err)
	second, err := build().Run(context.Background(), q, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPipelineSummarizerFailureSurfacesAsUnavailable(t *testing.T) {
	t.Parallel()

	news := &stubNews{fn: func(string, int) ([]domain.Article, error) { return newsArticles(2), nil }}
	failing := &stubSummarizer{fn: func(domain.DomainQuery, []domain.Article) ([]string, error) {
		return nil, fmt.Errorf("llm error 503 Service Unavailable")
	}}

	p := NewPipeline(PipelineDeps{
		News:       news,
		Classifier: acceptAll(),
		Summarizer: failing,
		Logger:     testLogger(),
	}, testLimits())

	digest, err := p.Run(context.Background(), domain.DomainQuery{Domain: domain.DomainTech}, nil)

	require.NoError(t, err, "summary failure must not abort the domain")
	assert.True(t, digest.SummaryUnavailable)
	assert.NotEmpty(t, digest.Articles)
	assert.Empty(t, digest.Bullets)
}

func TestPipelineClassifierErrorDropsArticle(t *testing.T) {
	t.Parallel()

	news := &stubNews{fn: func(string, int) ([]domain.Article, error) { return newsArticles(3), nil }}
	flaky := &stubClassifier{fn: func(article domain.Article, _ string) (bool, error) {
		if strings.HasSuffix(article.Title, "1") {
			return false, fmt.Errorf("llm unreachable")
		}
		return true, nil
	}}

	p := NewPipeline(PipelineDeps{
		News:       news,
		Classifier: flaky,
		Summarizer: bulletsPerArticle(),
		Logger:     testLogger(),
	}, testLimits())

	digest, err := p.Run(context.Background(), domain.DomainQuery{Domain: domain.DomainTech}, nil)

	require.NoError(t, err)
	assert.Len(t, digest.Articles, 2)
}

func TestPipelineQueryGenerationFallback(t *testing.T) {
	t.Parallel()

	news := &stubNews{fn: func(string, int) ([]domain.Article, error) { return nil, nil }}
	broken := &stubQueries{fn: func(domain.DomainQuery) ([]string, error) {
		return nil, fmt.Errorf("no JSON block in reply")
	}}

	p := NewPipeline(PipelineDeps{
		News:       news,
		Queries:    broken,
		Classifier: acceptAll(),
		Summarizer: bulletsPerArticle(),
		Logger:     testLogger(),
	}, testLimits())

	q := domain.DomainQuery{Domain: domain.DomainSports, Team: "Australia", Sport: "Cricket"}
	_, err := p.Run(context.Background(), q, nil)

	require.NoError(t, err)
	require.Len(t, news.calls, 1)
	assert.Equal(t, "Australia Cricket news", news.calls[0])
}

func TestPipelineSortsByRecencyBeforeSelection(t *testing.T) {
	t.Parallel()

	old := domain.Article{Title: "Old", URL: "https://n.example/old", Source: domain.SourceNewsAPI,
		PublishedAt: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)}
	fresh := domain.Article{Title: "Fresh", URL: "https://n.example/fresh", Source: domain.SourceNewsAPI,
		PublishedAt: time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)}
	undated := domain.Article{Title: "Undated", URL: "https://n.example/undated", Source: domain.SourceNewsAPI}

	news := &stubNews{fn: func(string, int) ([]domain.Article, error) {
		return []domain.Article{old, undated, fresh}, nil
	}}

	p := NewPipeline(PipelineDeps{
		News:       news,
		Classifier: acceptAll(),
		Summarizer: bulletsPerArticle(),
		Logger:     testLogger(),
	}, testLimits())

	digest, err := p.Run(context.Background(), domain.DomainQuery{Domain: domain.DomainTech}, nil)

	require.NoError(t, err)
	require.Len(t, digest.Articles, 3)
	assert.Equal(t, "Fresh", digest.Articles[0].Title)
	assert.Equal(t, "Undated", digest.Articles[2].Title, "zero timestamps sort last")
}

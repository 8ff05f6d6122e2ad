package domain

import "time"

// Domain identifies one of the supported news verticals.
type Domain string

const (
	DomainFinance Domain = "finance"
	DomainTech    Domain = "technology"
	DomainSports  Domain = "sports"
)

// Known article origins.
const (
	SourceNewsAPI = "newsapi"
	SourceRSS     = "rss"
)

// Article is a single news item fetched from a provider. Articles live in
// memory only for the duration of one query.
type Article struct {
	Title       string
	Snippet     string
	URL         string
	Source      string
	PublishedAt time.Time
}

// DomainQuery carries the user-supplied parameters for one domain run.
// Only the fields relevant to the chosen domain are consulted.
type DomainQuery struct {
	Domain Domain
	Stock  string
	Sector string
	Topic  string
	Team   string
	Sport  string
}

// TopicDescription renders the query as a short phrase used in
// classification and summarization prompts.
func (q DomainQuery) TopicDescription() string {
	switch q.Domain {
	case DomainFinance:
		return q.Sector + " sector and " + q.Stock + " stock"
	case DomainTech:
		return q.Topic
	case DomainSports:
		return q.Team + " " + q.Sport
	default:
		return string(q.Domain)
	}
}

// FallbackSearch is the single search query used when LLM query
// generation fails.
func (q DomainQuery) FallbackSearch() string {
	switch q.Domain {
	case DomainFinance:
		return q.Stock + " stock news"
	case DomainTech:
		return q.Topic + " news"
	case DomainSports:
		return q.Team + " " + q.Sport + " news"
	default:
		return string(q.Domain) + " news"
	}
}

// Digest is the result of one domain pipeline run: the selected source
// articles and the bullet summary produced for them.
type Digest struct {
	Query     DomainQuery
	Title     string
	StockInfo string
	Bullets   []string
	Articles  []Article

	// SummaryUnavailable marks a summarization failure; the articles were
	// selected but no bullets could be produced.
	SummaryUnavailable bool
}

// Empty reports whether the pipeline found nothing worth summarizing.
func (d Digest) Empty() bool {
	return len(d.Articles) == 0
}

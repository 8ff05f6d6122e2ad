package usecase

import (
	"context"
	"log/slog"
	"strings"

	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

// Agent runs one domain pipeline with its domain-specific RSS sources.
// Agents are stateless between invocations.
type Agent struct {
	tag      domain.Domain
	feedsFor func(domain.DomainQuery) []string
	pipeline *Pipeline
	quoter   ports.StockQuoter
	logger   *slog.Logger
}

// NewFinanceAgent builds the finance agent. The quoter may be nil when
// stock lookups are not configured.
func NewFinanceAgent(pipeline *Pipeline, quoter ports.StockQuoter, feeds config.FeedsConfig, logger *slog.Logger) *Agent {
	return &Agent{
		tag:      domain.DomainFinance,
		feedsFor: func(domain.DomainQuery) []string { return feeds.Finance },
		pipeline: pipeline,
		quoter:   quoter,
		logger:   logger,
	}
}

// NewTechAgent builds the technology agent.
func NewTechAgent(pipeline *Pipeline, feeds config.FeedsConfig, logger *slog.Logger) *Agent {
	return &Agent{
		tag:      domain.DomainTech,
		feedsFor: func(domain.DomainQuery) []string { return feeds.Technology },
		pipeline: pipeline,
		logger:   logger,
	}
}

// NewSportsAgent builds the sports agent. The feed list depends on the
// requested sport.
func NewSportsAgent(pipeline *Pipeline, feeds config.FeedsConfig, logger *slog.Logger) *Agent {
	return &Agent{
		tag: domain.DomainSports,
		feedsFor: func(q domain.DomainQuery) []string {
			switch strings.ToLower(strings.TrimSpace(q.Sport)) {
			case "cricket":
				return feeds.Cricket
			case "football":
				return feeds.Football
			default:
				return nil
			}
		},
		pipeline: pipeline,
		logger:   logger,
	}
}

// Domain returns the vertical this agent serves.
func (a *Agent) Domain() domain.Domain {
	return a.tag
}

// Run executes the pipeline for the query. Finance runs additionally
// attach a stock price line; a failed lookup degrades to a placeholder.
func (a *Agent) Run(ctx context.Context, q domain.DomainQuery) (domain.Digest, error) {
	q.Domain = a.tag

	digest, err := a.pipeline.Run(ctx, q, a.feedsFor(q))
	if err != nil {
		return digest, err
	}

	if a.quoter != nil && q.Stock != "" {
		info, qErr := a.quoter.Quote(ctx, q.Stock)
		if qErr != nil {
			a.log().Warn("stock quote failed", "stock", q.Stock, "error", qErr)
			info = "stock price unavailable"
		}
		digest.StockInfo = info
	}

	return digest, nil
}

func (a *Agent) log() *slog.Logger {
	if a.logger == nil {
		return slog.Default()
	}
	return a.logger
}

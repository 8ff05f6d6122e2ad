package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/infrastructure/email"
	"NewsDigest/internal/infrastructure/llm"
	"NewsDigest/internal/infrastructure/newsapi"
	"NewsDigest/internal/infrastructure/rss"
	"NewsDigest/internal/infrastructure/scheduler"
	"NewsDigest/internal/infrastructure/stock"
	"NewsDigest/internal/logging"
	"NewsDigest/internal/ports"
	"NewsDigest/internal/usecase"
)

// Application wires adapters into the domain agents and the serve loop.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	agents   map[domain.Domain]*usecase.Agent
	notifier *email.Notifier
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	news := newsapi.NewClient(cfg.NewsAPI)
	feeds := rss.NewFetcher(nil)
	chat := llm.NewOllamaClient(cfg.LLM)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		News:       news,
		Feeds:      feeds,
		Queries:    chat,
		Classifier: chat,
		Summarizer: chat,
		Logger:     baseLogger.With("component", "pipeline"),
	}, cfg.Limits)

	var quoter ports.StockQuoter
	if cfg.Stock.APIKey != "" {
		symbols, err := stock.LoadSymbols(cfg.Stock.SymbolsCSV)
		if err != nil {
			baseLogger.Warn("stock symbols unavailable, finance runs without quotes", "error", err)
		} else {
			quoter = stock.NewQuoter(cfg.Stock, symbols)
		}
	}

	agents := map[domain.Domain]*usecase.Agent{
		domain.DomainFinance: usecase.NewFinanceAgent(pipeline, quoter, cfg.Feeds, baseLogger.With("agent", "finance")),
		domain.DomainTech:    usecase.NewTechAgent(pipeline, cfg.Feeds, baseLogger.With("agent", "tech")),
		domain.DomainSports:  usecase.NewSportsAgent(pipeline, cfg.Feeds, baseLogger.With("agent", "sports")),
	}

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		agents:   agents,
		notifier: email.NewNotifier(cfg.Email),
	}
}

// RunQueries executes the agent pipeline for each query in order. A
// domain's failure never affects another domain; only context
// cancellation aborts the batch.
func (a *Application) RunQueries(ctx context.Context, queries []domain.DomainQuery) ([]domain.Digest, error) {
	digests := make([]domain.Digest, 0, len(queries))

	for _, q := range queries {
		agent, ok := a.agents[q.Domain]
		if !ok {
			a.logger.Warn("no agent for domain", "domain", q.Domain)
			continue
		}

		digest, err := agent.Run(ctx, q)
		if err != nil {
			return digests, err
		}
		digests = append(digests, digest)
	}

	return digests, nil
}

// DefaultQueries builds one query per domain from configured defaults,
// used by scheduled runs where no form input exists.
func (a *Application) DefaultQueries() []domain.DomainQuery {
	def := a.cfg.Defaults
	return []domain.DomainQuery{
		{Domain: domain.DomainFinance, Stock: def.Stock, Sector: def.Sector},
		{Domain: domain.DomainTech, Topic: def.Topic},
		{Domain: domain.DomainSports, Team: def.Team, Sport: def.Sport},
	}
}

// Serve runs all agents on the configured interval and emails the
// rendered digest until the context is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	if !a.notifier.Configured() {
		return fmt.Errorf("serve requires email settings (EMAIL_USER, EMAIL_PASS, EMAIL_TO)")
	}

	driver := scheduler.NewIntervalScheduler(a.cfg.Digest.IntervalMinutes)
	sched := usecase.NewScheduler(driver, a.digestJob)

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("digest scheduler started", "interval_minutes", a.cfg.Digest.IntervalMinutes)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return sched.Stop(stopCtx)
}

func (a *Application) digestJob(ctx context.Context, trigger time.Time) {
	digests, err := a.RunQueries(ctx, a.DefaultQueries())
	if err != nil {
		a.logger.Error("digest run aborted", "error", err)
		return
	}

	body, err := usecase.RenderHTML(digests)
	if err != nil {
		a.logger.Error("digest render failed", "error", err)
		return
	}

	subject := "Daily News Digest " + trigger.Format("2006-01-02 15:04")
	if err := a.notifier.PublishDigest(ctx, subject, body); err != nil {
		a.logger.Error("digest mail failed", "error", err)
		return
	}
	a.logger.Info("digest mailed", "domains", len(digests))
}

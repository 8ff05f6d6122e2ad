package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"NewsDigest/internal/config"
	"NewsDigest/internal/ports"
)

const quoteTimeout = 10 * time.Second

// Quoter resolves company names to live stock prices via the api-ninjas
// stockprice endpoint.
type Quoter struct {
	rest    *resty.Client
	apiKey  string
	symbols *Symbols
}

var _ ports.StockQuoter = (*Quoter)(nil)

// NewQuoter builds a Quoter; symbols may come from LoadSymbols.
func NewQuoter(cfg config.StockConfig, symbols *Symbols) *Quoter {
	rest := resty.New().
		SetBaseURL(cfg.QuoteURL).
		SetTimeout(quoteTimeout)

	return &Quoter{rest: rest, apiKey: cfg.APIKey, symbols: symbols}
}

// Quote returns a "SYMBOL.NS: price" line for the company.
func (q *Quoter) Quote(ctx context.Context, company string) (string, error) {
	if q.apiKey == "" {
		return "", fmt.Errorf("stock quoter misconfigured: missing API key")
	}
	if q.symbols == nil {
		return "", fmt.Errorf("stock symbols list not loaded")
	}

	ticker, ok := q.symbols.Lookup(company)
	if !ok {
		return "", fmt.Errorf("stock %q not found in symbols list", company)
	}

	var out struct {
		Ticker string  `json:"ticker"`
		Price  float64 `json:"price"`
	}
	resp, err := q.rest.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", q.apiKey).
		SetQueryParam("ticker", ticker).
		SetResult(&out).
		Get("")
	if err != nil {
		return "", fmt.Errorf("stock price request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("stock price endpoint returned %s", resp.Status())
	}

	return fmt.Sprintf("%s: ₹ %.2f", ticker, out.Price), nil
}

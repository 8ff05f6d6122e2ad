package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsDigest/internal/domain"
)

func TestRenderText(t *testing.T) {
	t.Parallel()

	digests := []domain.Digest{
		{
			Title:     "Finance News",
			StockInfo: "INFY.NS: ₹ 1530.50",
			Bullets:   []string{"Infosys raised its revenue guidance."},
			Articles:  []domain.Article{{Title: "Infosys raises guidance", URL: "https://n.example/1"}},
		},
		{Title: "Technology News"},
		{
			Title:              "Sports News",
			Articles:           []domain.Article{{Title: "Australia wins", URL: "https://n.example/2"}},
			SummaryUnavailable: true,
		},
	}

	out := RenderText(digests)

	assert.Contains(t, out, "== Finance News ==")
	assert.Contains(t, out, "INFY.NS: ₹ 1530.50")
	assert.Contains(t, out, "• Infosys raised its revenue guidance.")
	assert.Contains(t, out, "No relevant news found.")
	assert.Contains(t, out, "Summary unavailable.")
	assert.Contains(t, out, "https://n.example/2")
}

func TestRenderHTMLEscapes(t *testing.T) {
	t.Parallel()

	digests := []domain.Digest{{
		Title:    "Technology News",
		Bullets:  []string{"AI <model> beats benchmark & more"},
		Articles: []domain.Article{{Title: "Benchmarks <img>", URL: "https://n.example/x?a=1&b=2"}},
	}}

	out, err := RenderHTML(digests)
	require.NoError(t, err)

	assert.Contains(t, out, "AI &lt;model&gt; beats benchmark &amp; more")
	assert.NotContains(t, out, "<img>")
}

func TestDomainTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Finance News", DomainTitle(domain.DomainFinance))
	assert.Equal(t, "Technology News", DomainTitle(domain.DomainTech))
	assert.Equal(t, "Sports News", DomainTitle(domain.DomainSports))
}

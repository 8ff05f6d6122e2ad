package llm

import (
	"fmt"
	"strings"

	"NewsDigest/internal/domain"
)

func queryPrompt(q domain.DomainQuery) string {
	var b strings.Builder
	b.WriteString("Generate 5 short search queries for a news search API.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- No boolean operators\n")
	b.WriteString("- Simple human phrases\n")
	fmt.Fprintf(&b, "- Focus only on %s\n", q.TopicDescription())
	if q.Domain == domain.DomainFinance {
		b.WriteString("- Mandatory to include the word stock\n")
	}
	b.WriteString("- 2-3 words each\n")
	b.WriteString("Return ONLY a JSON array of strings.\n")
	return b.String()
}

func classifyPrompt(topic string, article domain.Article) string {
	return fmt.Sprintf(`Is this article about %s?

Answer ONLY YES or NO.

Title: %s
Content: %s
`, topic, article.Title, article.Snippet)
}

func summaryPrompt(q domain.DomainQuery, articles []domain.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize EACH of the following %s news articles separately and return a list of bullet points.\n\n", q.Domain)

	b.WriteString("Context:\n")
	switch q.Domain {
	case domain.DomainFinance:
		fmt.Fprintf(&b, "- Sector: %s\n- Stock: %s\n", q.Sector, q.Stock)
	case domain.DomainTech:
		fmt.Fprintf(&b, "- Technology: %s\n", q.Topic)
	case domain.DomainSports:
		fmt.Fprintf(&b, "- Team: %s\n- Sport: %s\n", q.Team, q.Sport)
	}

	b.WriteString(`
Rules:
- EXACTLY one bullet per article
- Each bullet must describe a DIFFERENT news event
- NO intro, NO explanation, NO meta text
- NO grouping of articles
- NO phrases like "here is", "this article", "the following"
`)
	switch q.Domain {
	case domain.DomainFinance:
		b.WriteString("- Focus on stock movement, earnings, deals, regulation, sector impact\n")
	case domain.DomainTech:
		b.WriteString("- Focus on real updates (products, research, regulation, companies)\n")
	case domain.DomainSports:
		b.WriteString("- Focus on match results, injuries, squad changes, tactics\n")
	}

	b.WriteString("\nArticles:\n")
	for i, article := range articles {
		fmt.Fprintf(&b, "%d. Title: %s\nContent: %s\n", i+1, article.Title, article.Snippet)
	}
	return b.String()
}

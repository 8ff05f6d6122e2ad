package usecase

import (
	"fmt"
	"html/template"
	"strings"

	"NewsDigest/internal/domain"
)

// DomainTitle is the section heading used for a domain digest.
func DomainTitle(d domain.Domain) string {
	switch d {
	case domain.DomainFinance:
		return "Finance News"
	case domain.DomainTech:
		return "Technology News"
	case domain.DomainSports:
		return "Sports News"
	default:
		return string(d)
	}
}

// RenderText formats digests for terminal output.
func RenderText(digests []domain.Digest) string {
	var b strings.Builder
	for i, digest := range digests {
		if i > 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "== %s ==\n", digest.Title)
		if digest.StockInfo != "" {
			fmt.Fprintf(&b, "%s\n", digest.StockInfo)
		}

		switch {
		case digest.Empty():
			b.WriteString("No relevant news found.\n")
			continue
		case digest.SummaryUnavailable:
			b.WriteString("Summary unavailable.\n")
		default:
			for _, bullet := range digest.Bullets {
				fmt.Fprintf(&b, "  • %s\n", bullet)
			}
		}

		b.WriteString("Sources:\n")
		for _, article := range digest.Articles {
			fmt.Fprintf(&b, "  - %s (%s)\n", article.Title, article.URL)
		}
	}
	return b.String()
}

var htmlTemplate = template.Must(template.New("digest").Parse(`<html>
<body>
{{- range . }}
<h2>{{ .Title }}</h2>
{{- if .StockInfo }}
<p><b>{{ .StockInfo }}</b></p>
{{- end }}
{{- if .Empty }}
<p>No relevant news found.</p>
{{- else if .SummaryUnavailable }}
<p>Summary unavailable.</p>
{{- else }}
<ul>
{{- range .Bullets }}
<li>{{ . }}</li>
{{- end }}
</ul>
{{- end }}
{{- if not .Empty }}
<p>Sources:</p>
<ul>
{{- range .Articles }}
<li><a href="{{ .URL }}">{{ .Title }}</a></li>
{{- end }}
</ul>
{{- end }}
{{- end }}
</body>
</html>
`))

// RenderHTML formats digests for the email notifier.
func RenderHTML(digests []domain.Digest) (string, error) {
	var b strings.Builder
	if err := htmlTemplate.Execute(&b, digests); err != nil {
		return "", fmt.Errorf("render digest html: %w", err)
	}
	return b.String(), nil
}

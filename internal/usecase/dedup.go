package usecase

import (
	"strings"
	"unicode"

	"NewsDigest/internal/domain"
)

// Deduplicate removes articles whose normalized title has already been
// seen, preserving first-seen order. Articles without a usable title fall
// back to the URL as identity; entries with neither are dropped.
func Deduplicate(articles []domain.Article) []domain.Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]domain.Article, 0, len(articles))

	for _, article := range articles {
		key := NormalizeTitle(article.Title)
		if key == "" {
			key = article.URL
		}
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, article)
	}

	return unique
}

// NormalizeTitle lowercases a title, strips punctuation, and collapses
// whitespace, yielding the deduplication key.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

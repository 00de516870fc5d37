package render

import (
	"strings"

	"newsreader/internal/article"
)

const NoMatchMessage = "No articles match your search"

// Filter returns the articles whose title, summary or category contains query,
// ignoring case. Whitespace in query is significant. Only the empty query
// returns every article.
func Filter(articles []article.Article, query string) []article.Article {
	if query == "" {
		return articles
	}
	q := strings.ToLower(query)

	var out []article.Article
	for _, a := range articles {
		if Matches(a, q) {
			out = append(out, a)
		}
	}
	return out
}

// Matches expects q to be lowercased already.
func Matches(a article.Article, q string) bool {
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Content), q) ||
		strings.Contains(strings.ToLower(a.Category), q)
}

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"newsreader/internal/article"
)

var petArticles = []article.Article{
	{ArticleID: "1", Title: "Cats", Content: "meow", Category: "pets"},
	{ArticleID: "2", Title: "Dogs", Content: "woof", Category: "pets"},
}

func TestFilter_CatsScenario(t *testing.T) {
	got := Filter(petArticles, "cat")

	assert.Equal(t, []article.Article{petArticles[0]}, got)
}

func TestFilter_EmptyQueryReturnsEverything(t *testing.T) {
	assert.Equal(t, petArticles, Filter(petArticles, ""))
}

func TestFilter_MatchesTitleSummaryOrCategoryCaseInsensitively(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"CATS", []string{"1"}},
		{"WoOf", []string{"2"}},
		{"pets", []string{"1", "2"}},
		{"e", []string{"1", "2"}},
		{"parrot", nil},
		{"cats ", nil},
		{" dogs", nil},
		{" ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var ids []string
			for _, a := range Filter(petArticles, tt.query) {
				ids = append(ids, a.ArticleID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilter_SpacesAreMatchedLiterally(t *testing.T) {
	leases := []article.Article{
		{ArticleID: "1", Title: "New rules for tenants"},
		{ArticleID: "2", Title: "Renewal of leases"},
		{ArticleID: "3", Title: "Brand new", Content: "two  words"},
	}

	var ids []string
	for _, a := range Filter(leases, "new ") {
		ids = append(ids, a.ArticleID)
	}
	assert.Equal(t, []string{"1"}, ids)

	ids = nil
	for _, a := range Filter(leases, " ") {
		ids = append(ids, a.ArticleID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	ids = nil
	for _, a := range Filter(leases, "  ") {
		ids = append(ids, a.ArticleID)
	}
	assert.Equal(t, []string{"3"}, ids)
}

// Package render maps articles to view-models. Nothing here touches a
// terminal or an HTTP response; the tui and web packages draw what it returns.
package render

import (
	"strings"

	"newsreader/internal/article"
)

const (
	PlaceholderImageURL = "https://via.placeholder.com/400x200?text=No+Image"
	NoTitle             = "No Title"
	NoDate              = "Recently"
	NoSummary           = "No summary available."
	DateLayout          = "Jan 2, 2006"

	EmptyFeedMessage = "No articles to display"
)

const (
	likedIcon   = "♥"
	unlikedIcon = "♡"
)

// Card is everything an adapter needs to draw one article.
type Card struct {
	ArticleID string
	ImageURL  string
	Category  string
	Reason    string
	Title     string
	Source    string
	Author    string
	Date      string
	Summary   string
	URL       string

	Liked     bool
	LikeIcon  string
	LikeLabel string
	LikeClass string
}

// Placeholder replaces the card list when there is nothing to show.
type Placeholder struct {
	Message string
	Hint    string
}

// Feed is the rendered content of the article container.
type Feed struct {
	Cards       []Card
	Placeholder *Placeholder
}

// Empty reports whether the feed has neither cards nor a placeholder.
func (f Feed) Empty() bool {
	return len(f.Cards) == 0 && f.Placeholder == nil
}

// Render builds the feed for articles in order. An empty list yields a
// placeholder, never a silent empty view.
func Render(articles []article.Article, liked map[string]bool) Feed {
	if len(articles) == 0 {
		return Feed{Placeholder: &Placeholder{Message: EmptyFeedMessage}}
	}

	cards := make([]Card, 0, len(articles))
	for _, a := range articles {
		cards = append(cards, CardFor(a, liked[a.ArticleID]))
	}
	return Feed{Cards: cards}
}

// CardFor applies the display fallbacks to a single article.
func CardFor(a article.Article, liked bool) Card {
	c := Card{
		ArticleID: a.ArticleID,
		ImageURL:  fallback(a.ImageURL, PlaceholderImageURL),
		Category:  strings.TrimSpace(a.Category),
		Reason:    strings.TrimSpace(a.RecommendationReason),
		Title:     fallback(a.Title, NoTitle),
		Source:    strings.TrimSpace(a.Source),
		Author:    strings.TrimSpace(a.Author),
		Date:      FormatDate(a.PublishDate),
		Summary:   fallback(a.Content, NoSummary),
		URL:       strings.TrimSpace(a.URL),
	}
	c.SetLiked(liked)
	return c
}

// SetLiked updates the like button state.
func (c *Card) SetLiked(liked bool) {
	c.Liked = liked
	if liked {
		c.LikeIcon = likedIcon
		c.LikeLabel = "Liked"
		c.LikeClass = "btn-like liked"
		return
	}
	c.LikeIcon = unlikedIcon
	c.LikeLabel = "Like"
	c.LikeClass = "btn-like"
}

// FormatDate renders a publish date in local time, or "Recently" when the
// server sent nothing usable.
func FormatDate(d article.PublishDate) string {
	if d.IsZero() {
		return NoDate
	}
	return d.Local().Format(DateLayout)
}

func fallback(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}

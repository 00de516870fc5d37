package app

import (
	"context"
	"fmt"
	"strings"

	"newsreader/internal/render"
)

// SelectFilter marks filter active and loads the matching feed.
func (a *App) SelectFilter(ctx context.Context, filter string) error {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		filter = FilterAll
	}

	a.mu.Lock()
	a.page.ActiveFilter = filter
	a.mu.Unlock()

	switch filter {
	case FilterRecommended:
		return a.LoadRecommendations(ctx)
	case FilterAll:
		return a.LoadArticles(ctx, "")
	default:
		return a.LoadArticles(ctx, filter)
	}
}

// LoadArticles replaces the feed with the general news list. Responses for a
// load that has since been superseded are discarded.
func (a *App) LoadArticles(ctx context.Context, category string) error {
	seq := a.beginLoad()
	defer a.endLoad(seq)

	articles, err := a.news.Articles(ctx, category)

	a.mu.Lock()
	defer a.mu.Unlock()

	if seq != a.seq {
		a.logger.Printf("dropping stale articles response (category %q)", category)
		return nil
	}
	if err != nil {
		a.logger.Printf("load articles (category %q): %v", category, err)
		a.page.Error = LoadFailedMessage
		return fmt.Errorf("load articles: %w", err)
	}

	a.store.SetArticles(articles)
	if len(articles) == 0 {
		a.page.Feed = render.Feed{Placeholder: &render.Placeholder{
			Message: NoArticlesMessage,
			Hint:    ingestHint(a.news.BaseURL()),
		}}
		return nil
	}

	a.page.Feed = render.Render(articles, a.store.LikedSet())
	a.logger.Printf("loaded %d articles (category %q)", len(articles), category)
	return nil
}

// LoadRecommendations shows the personalized feed. Any failure falls back to
// the general feed straight away; an empty result falls back after the
// configured delay.
func (a *App) LoadRecommendations(ctx context.Context) error {
	token := a.store.Token()
	if token == "" {
		a.logger.Println("recommendations need a signed in user, showing all news")
		return a.LoadArticles(ctx, "")
	}

	seq := a.beginLoad()
	recs, err := a.users.Recommendations(ctx, token)
	a.endLoad(seq)

	if err != nil {
		if !a.current(seq) {
			return nil
		}
		a.logger.Printf("load recommendations: %v", err)
		return a.LoadArticles(ctx, "")
	}

	a.mu.Lock()
	if seq != a.seq {
		a.mu.Unlock()
		a.logger.Println("dropping stale recommendations response")
		return nil
	}

	a.store.SeedLikes(recs.Articles)
	a.store.SetArticles(recs.Articles)
	a.page.BasedOn = recs.BasedOn

	if len(recs.Articles) > 0 {
		a.page.Feed = render.Render(recs.Articles, a.store.LikedSet())
		if len(recs.BasedOn) > 0 {
			a.setToast("Recommendations based on: " + strings.Join(recs.BasedOn, ", "))
		}
		a.mu.Unlock()
		a.logger.Printf("loaded %d recommendations", len(recs.Articles))
		return nil
	}

	a.page.Feed = render.Feed{Placeholder: &render.Placeholder{
		Message: NoRecommendationsMessage,
		Hint:    NoRecommendationsHint,
	}}
	a.mu.Unlock()

	select {
	case <-a.after(a.fallbackDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if !a.current(seq) {
		return nil
	}
	return a.LoadArticles(ctx, "")
}

// beginLoad clears the feed, raises the loading flag and returns the new
// load's sequence number.
func (a *App) beginLoad() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.seq++
	a.page.Loading = true
	a.page.Error = ""
	a.page.Query = ""
	a.page.BasedOn = nil
	a.page.Feed = render.Feed{}
	return a.seq
}

// endLoad lowers the loading flag unless a newer load owns it.
func (a *App) endLoad(seq uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if seq == a.seq {
		a.page.Loading = false
	}
}

func (a *App) current(seq uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return seq == a.seq
}

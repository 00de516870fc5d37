package app

import (
	"newsreader/internal/render"
)

// Search narrows the cached articles to those matching query. An empty query
// shows the whole cache again.
func (a *App) Search(query string) {
	articles := a.store.Articles()
	liked := a.store.LikedSet()

	a.mu.Lock()
	defer a.mu.Unlock()

	a.page.Query = query
	if query == "" {
		a.page.Feed = render.Render(articles, liked)
		return
	}

	matches := render.Filter(articles, query)
	if len(matches) == 0 {
		a.page.Feed = render.Feed{Placeholder: &render.Placeholder{Message: render.NoMatchMessage}}
		return
	}
	a.page.Feed = render.Render(matches, liked)
}

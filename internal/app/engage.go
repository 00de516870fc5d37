package app

import (
	"context"

	"newsreader/internal/engagement"
)

// ToggleLike unlikes locally without telling the server, or publishes a like
// and marks the article once the event is accepted. A like that completes
// after Logout leaves the new session alone.
func (a *App) ToggleLike(ctx context.Context, articleID string) {
	a.mu.Lock()
	if a.store.IsLiked(articleID) {
		a.store.Unlike(articleID)
		a.refreshLikes()
		a.setToast(UnlikedToast)
		a.mu.Unlock()
		return
	}
	epoch := a.epoch
	a.mu.Unlock()

	ok := a.events.Publish(ctx, engagement.Like, articleID, a.identity())

	a.mu.Lock()
	defer a.mu.Unlock()

	if epoch != a.epoch {
		a.logger.Printf("like for article %s finished after logout, not recorded", articleID)
		return
	}
	if !ok {
		a.setToast(LikeFailedToast)
		return
	}

	a.store.Like(articleID)
	a.refreshLikes()
	a.setToast(LikedToast)
}

// Share publishes a share event. Nothing else changes.
func (a *App) Share(ctx context.Context, articleID string) {
	epoch := a.sessionEpoch()
	ok := a.events.Publish(ctx, engagement.Share, articleID, a.identity())

	a.mu.Lock()
	defer a.mu.Unlock()

	if epoch != a.epoch {
		return
	}
	if ok {
		a.setToast(SharedToast)
		return
	}
	a.setToast(ShareFailedToast)
}

// refreshLikes expects a.mu to be held.
func (a *App) refreshLikes() {
	liked := a.store.LikedSet()
	for i := range a.page.Feed.Cards {
		c := &a.page.Feed.Cards[i]
		c.SetLiked(liked[c.ArticleID])
	}
}

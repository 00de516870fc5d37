package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"newsreader/internal/article"
)

func TestStore_SaveAndClear(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Authenticated())

	s.Save("tok", "u1", "ada")
	assert.True(t, s.Authenticated())
	assert.Equal(t, "tok", s.Token())
	assert.Equal(t, "u1", s.UserID())
	assert.Equal(t, "ada", s.Username())

	s.SetArticles([]article.Article{{ArticleID: "a1"}})
	s.Like("a1")

	s.Clear()
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Username())
	assert.Empty(t, s.Articles())
	assert.False(t, s.IsLiked("a1"))
}

func TestStore_LikedSet(t *testing.T) {
	s := NewStore()

	s.Like("a1")
	s.Like("a2")
	s.Unlike("a1")

	assert.False(t, s.IsLiked("a1"))
	assert.True(t, s.IsLiked("a2"))

	snapshot := s.LikedSet()
	snapshot["a3"] = true
	assert.False(t, s.IsLiked("a3"), "snapshot must not alias the store")
}

func TestStore_SeedLikes(t *testing.T) {
	s := NewStore()
	s.SeedLikes([]article.Article{
		{ArticleID: "a1", IsLiked: true},
		{ArticleID: "a2"},
		{ArticleID: "", IsLiked: true},
	})

	assert.Equal(t, map[string]bool{"a1": true}, s.LikedSet())
}

func TestStore_ArticlesAreCopied(t *testing.T) {
	s := NewStore()
	in := []article.Article{{ArticleID: "a1", Title: "One"}}
	s.SetArticles(in)

	in[0].Title = "changed"
	out := s.Articles()
	assert.Equal(t, "One", out[0].Title)

	out[0].Title = "changed again"
	assert.Equal(t, "One", s.Articles()[0].Title)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Like("a1")
			s.SetArticles([]article.Article{{ArticleID: "a1"}})
		}()
		go func() {
			defer wg.Done()
			_ = s.IsLiked("a1")
			_ = s.Articles()
		}()
	}
	wg.Wait()
	assert.True(t, s.IsLiked("a1"))
}

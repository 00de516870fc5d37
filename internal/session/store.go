package session

import (
	"sync"

	"newsreader/internal/article"
)

// Store is the client-side state for one reader: credentials, the last loaded
// article list and the ids liked during this session. It lives only in memory.
type Store struct {
	mu sync.RWMutex

	token    string
	userID   string
	username string

	articles []article.Article
	liked    map[string]struct{}
}

func NewStore() *Store {
	return &Store{liked: make(map[string]struct{})}
}

// Save records the credentials returned by a successful login or registration.
func (s *Store) Save(token, userID, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.userID = userID
	s.username = username
}

// Clear drops the credentials, the liked-set and the article cache.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.userID = ""
	s.username = ""
	s.articles = nil
	s.liked = make(map[string]struct{})
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// SetArticles replaces the cache used by search.
func (s *Store) SetArticles(articles []article.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = append([]article.Article(nil), articles...)
}

// Articles returns a copy of the cache.
func (s *Store) Articles() []article.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]article.Article(nil), s.articles...)
}

func (s *Store) Like(articleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liked[articleID] = struct{}{}
}

func (s *Store) Unlike(articleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.liked, articleID)
}

func (s *Store) IsLiked(articleID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.liked[articleID]
	return ok
}

// SeedLikes marks every article the server flagged with is_liked.
func (s *Store) SeedLikes(articles []article.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range articles {
		if a.IsLiked && a.ArticleID != "" {
			s.liked[a.ArticleID] = struct{}{}
		}
	}
}

// LikedSet returns a snapshot of the liked ids.
func (s *Store) LikedSet() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.liked))
	for id := range s.liked {
		out[id] = true
	}
	return out
}

// Package web serves the reader as a server-rendered page. Each browser gets
// its own app state, keyed by a session cookie.
package web

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"newsreader/internal/app"
)

const CookieName = "newsreader_session"

//go:embed templates/*.html
var templateFS embed.FS

// AppFactory builds a fresh app for a new browser session.
type AppFactory func() *app.App

// DefaultSessionTTL is how long an idle browser session is kept.
const DefaultSessionTTL = 30 * time.Minute

type session struct {
	app      *app.App
	lastSeen time.Time
}

type Server struct {
	newApp AppFactory
	ttl    time.Duration
	logger *log.Logger
	tmpl   *template.Template
	router *mux.Router
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewServer(newApp AppFactory, ttl time.Duration, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	tmpl, err := template.ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		newApp:   newApp,
		ttl:      ttl,
		logger:   logger,
		tmpl:     tmpl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/filter/{category}", s.handleFilter).Methods(http.MethodPost)
	r.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/articles/{id}/like", s.handleLike).Methods(http.MethodPost)
	r.HandleFunc("/articles/{id}/share", s.handleShare).Methods(http.MethodPost)

	return r
}

// appFor returns the caller's app, starting a new session when the cookie
// is missing, unknown or expired. A new session shows the auth forms and
// loads nothing until the user signs in.
func (s *Server) appFor(w http.ResponseWriter, r *http.Request) *app.App {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if c, err := r.Cookie(CookieName); err == nil {
		if sess, ok := s.sessions[c.Value]; ok && now.Sub(sess.lastSeen) < s.ttl {
			sess.lastSeen = now
			return sess.app
		}
	}

	s.sweepLocked(now)

	id := uuid.NewString()
	a := s.newApp()
	s.sessions[id] = &session{app: a, lastSeen: now}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Printf("web: new session %s (%d held)", id, len(s.sessions))
	return a
}

// endSession logs the caller out, forgets the session and expires its
// cookie.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(CookieName); err == nil {
		s.mu.Lock()
		sess, ok := s.sessions[c.Value]
		delete(s.sessions, c.Value)
		s.mu.Unlock()

		if ok {
			sess.app.Logout()
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// went.
func (s *Server) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

func (s *Server) sweepLocked(now time.Time) int {
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Printf("web: evicted %d idle sessions", removed)
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Printf("web: sweeper stopped, %d sessions held", s.Sessions())
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

// Sessions reports how many browser sessions are held.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Package app owns the reader's state: the session, the article cache and
// what is currently on screen. Adapters call its actions and draw Page().
package app

import (
	"context"
	"errors"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"newsreader/internal/article"
	"newsreader/internal/engagement"
	"newsreader/internal/render"
	"newsreader/internal/session"
	"newsreader/internal/userapi"
)

type Section string

const (
	SectionAuth Section = "auth"
	SectionNews Section = "news"
)

type MessageKind string

const KindError MessageKind = "error"

const (
	FilterAll         = "all"
	FilterRecommended = "recommended"
)

// Filters lists the feed filters in the order adapters show them.
var Filters = []string{
	FilterAll,
	FilterRecommended,
	"technology",
	"business",
	"health",
	"sports",
	"entertainment",
	"science",
}

// ToastDuration is how long a toast stays in Page().
const ToastDuration = 3 * time.Second

var ErrMissingFields = errors.New("missing required fields")

type NewsSource interface {
	Articles(ctx context.Context, category string) ([]article.Article, error)
	BaseURL() string
}

type UserService interface {
	Register(ctx context.Context, in userapi.RegisterRequest) (*userapi.Credentials, error)
	Login(ctx context.Context, in userapi.LoginRequest) (*userapi.Credentials, error)
	Recommendations(ctx context.Context, token string) (*userapi.Recommendations, error)
}

type Engagement interface {
	Publish(ctx context.Context, eventType engagement.EventType, articleID string, who engagement.Identity) bool
}

// Page is a snapshot of everything on screen.
type Page struct {
	Section      Section
	Loading      bool
	Error        string
	Toast        string
	AuthMessage  string
	AuthKind     MessageKind
	Welcome      string
	Username     string
	Feed         render.Feed
	ActiveFilter string
	Query        string
	BasedOn      []string
}

type App struct {
	news   NewsSource
	users  UserService
	events Engagement
	store  *session.Store
	logger *log.Logger

	fallbackDelay time.Duration
	after         func(time.Duration) <-chan time.Time
	now           func() time.Time

	mu      sync.Mutex
	seq     uint64
	epoch   uint64 // bumped by Logout
	page    Page
	toastAt time.Time
}

func New(news NewsSource, users UserService, events Engagement, fallbackDelay time.Duration, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}

	return &App{
		news:          news,
		users:         users,
		events:        events,
		store:         session.NewStore(),
		logger:        logger,
		fallbackDelay: fallbackDelay,
		after:         time.After,
		now:           time.Now,
		page: Page{
			Section:      SectionAuth,
			ActiveFilter: FilterAll,
		},
	}
}

// Start loads the default feed so it is ready once the user signs in.
func (a *App) Start(ctx context.Context) error {
	return a.SelectFilter(ctx, FilterAll)
}

// Page returns a copy of the current screen. Toasts older than
// ToastDuration are dropped.
func (a *App) Page() Page {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.page
	p.Feed.Cards = slices.Clone(a.page.Feed.Cards)
	p.BasedOn = slices.Clone(a.page.BasedOn)
	if p.Toast != "" && a.now().Sub(a.toastAt) >= ToastDuration {
		p.Toast = ""
	}
	return p
}

// DismissToast clears the toast immediately.
func (a *App) DismissToast() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.page.Toast = ""
}

// Session exposes the session for adapters that need to read identity.
func (a *App) Session() *session.Store {
	return a.store
}

// setToast expects a.mu to be held.
func (a *App) setToast(msg string) {
	a.page.Toast = msg
	a.toastAt = a.now()
}

// sessionEpoch identifies the current session. Work started under one epoch
// must not touch state after Logout has moved to the next.
func (a *App) sessionEpoch() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.epoch
}

func (a *App) identity() engagement.Identity {
	return engagement.Identity{
		Token:  a.store.Token(),
		UserID: a.store.UserID(),
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

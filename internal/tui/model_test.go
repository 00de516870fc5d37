package tui

import (
	"bytes"
	"context"
	"log"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsreader/internal/app"
	"newsreader/internal/article"
	"newsreader/internal/engagement"
	"newsreader/internal/userapi"
)

type fakeNews struct {
	mu         sync.Mutex
	articles   []article.Article
	categories []string
}

func (f *fakeNews) Articles(_ context.Context, category string) ([]article.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = append(f.categories, category)
	return f.articles, nil
}

func (f *fakeNews) BaseURL() string { return "http://news.local/news" }

type fakeUsers struct {
	logins []userapi.LoginRequest
}

func (f *fakeUsers) Register(context.Context, userapi.RegisterRequest) (*userapi.Credentials, error) {
	return &userapi.Credentials{Token: "tok", UserID: "u1", Username: "ada"}, nil
}

func (f *fakeUsers) Login(_ context.Context, in userapi.LoginRequest) (*userapi.Credentials, error) {
	f.logins = append(f.logins, in)
	return &userapi.Credentials{Token: "tok", UserID: "u1", Username: "ada"}, nil
}

func (f *fakeUsers) Recommendations(context.Context, string) (*userapi.Recommendations, error) {
	return &userapi.Recommendations{}, nil
}

type fakeEvents struct {
	published []engagement.EventType
}

func (f *fakeEvents) Publish(_ context.Context, t engagement.EventType, _ string, _ engagement.Identity) bool {
	f.published = append(f.published, t)
	return true
}

type harness struct {
	news   *fakeNews
	users  *fakeUsers
	events *fakeEvents
	app    *app.App
	logs   *bytes.Buffer
}

func newHarness() *harness {
	h := &harness{
		news: &fakeNews{articles: []article.Article{
			{ArticleID: "1", Title: "Cats", Content: "meow", Category: "pets"},
			{ArticleID: "2", Title: "Dogs", Content: "woof", Category: "pets"},
		}},
		users:  &fakeUsers{},
		events: &fakeEvents{},
		logs:   &bytes.Buffer{},
	}
	h.app = app.New(h.news, h.users, h.events, time.Millisecond, log.New(h.logs, "", 0))
	return h
}

func (h *harness) signedIn(t *testing.T) Model {
	t.Helper()
	require.NoError(t, h.app.Login(context.Background(), "ada@example.com", "pw"))
	return NewModel(context.Background(), h.app, log.New(h.logs, "", 0))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Model)
	}
	return m, cmd
}

// finish runs an action command and feeds its result back.
func finish(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(actionDoneMsg)
	require.True(t, ok, "expected actionDoneMsg, got %T", msg)
	next, _ := m.Update(done)
	return next.(Model)
}

func TestLoginThroughForm(t *testing.T) {
	h := newHarness()
	m := NewModel(context.Background(), h.app, nil)

	m, _ = press(t, m, "ada@example.com", "tab", "pw")
	m, cmd := press(t, m, "enter")
	m = finish(t, m, cmd)

	require.Len(t, h.users.logins, 1)
	assert.Equal(t, userapi.LoginRequest{Email: "ada@example.com", Password: "pw"}, h.users.logins[0])
	assert.Equal(t, app.SectionNews, m.page.Section)
	assert.Contains(t, m.View(), "Welcome, ada!")
	assert.Contains(t, m.View(), "Cats")
}

func TestRegisterFormHasFourFields(t *testing.T) {
	h := newHarness()
	m := NewModel(context.Background(), h.app, nil)

	m, _ = press(t, m, "ctrl+r")

	assert.Equal(t, registerForm, m.form)
	assert.Len(t, m.inputs, 4)
	assert.Contains(t, m.View(), "Register")
}

func TestMissingFieldsMessageShown(t *testing.T) {
	h := newHarness()
	m := NewModel(context.Background(), h.app, nil)

	m, cmd := press(t, m, "enter")
	m = finish(t, m, cmd)

	assert.Equal(t, app.SectionAuth, m.page.Section)
	assert.Equal(t, app.KindError, m.page.AuthKind)
	assert.Contains(t, m.View(), app.MissingFieldsMessage)
	assert.Empty(t, h.users.logins)
}

func TestNumberKeySelectsFilter(t *testing.T) {
	h := newHarness()
	m := h.signedIn(t)

	m, cmd := press(t, m, "3")
	m = finish(t, m, cmd)

	assert.Equal(t, "technology", m.page.ActiveFilter)
	assert.Equal(t, []string{"", "technology"}, h.news.categories)
}

func TestArrowKeysCycleFilters(t *testing.T) {
	h := newHarness()
	m := h.signedIn(t)

	m, cmd := press(t, m, "left")
	m = finish(t, m, cmd)

	assert.Equal(t, "science", m.page.ActiveFilter)
	assert.Equal(t, "science", h.news.categories[len(h.news.categories)-1])
}

func TestLikeSelectedCard(t *testing.T) {
	h := newHarness()
	m := h.signedIn(t)

	m, _ = press(t, m, "down")
	m, cmd := press(t, m, "l")
	m = finish(t, m, cmd)

	assert.Equal(t, []engagement.EventType{engagement.Like}, h.events.published)
	assert.True(t, h.app.Session().IsLiked("2"))
	assert.True(t, m.page.Feed.Cards[1].Liked)
	assert.Contains(t, m.View(), app.LikedToast)
}

func TestSearchFiltersAndEscapeRestores(t *testing.T) {
	h := newHarness()
	m := h.signedIn(t)

	m, _ = press(t, m, "/", "c", "a", "t")
	require.True(t, m.searching)
	require.Len(t, m.page.Feed.Cards, 1)
	assert.Equal(t, "Cats", m.page.Feed.Cards[0].Title)

	m, _ = press(t, m, "esc")
	assert.False(t, m.searching)
	assert.Len(t, m.page.Feed.Cards, 2)
}

func TestEmptyFeedShowsHint(t *testing.T) {
	h := newHarness()
	h.news.articles = []article.Article{}
	m := h.signedIn(t)

	view := m.View()
	assert.Contains(t, view, app.NoArticlesMessage)
	assert.Contains(t, view, "curl -X POST http://news.local/news/fetch")
}

func TestLogoutReturnsToForm(t *testing.T) {
	h := newHarness()
	m := h.signedIn(t)

	m, _ = press(t, m, "ctrl+o")

	assert.Equal(t, app.SectionAuth, m.page.Section)
	assert.False(t, h.app.Session().Authenticated())
	assert.Contains(t, m.View(), "Login")
}

func TestCtrlCQuits(t *testing.T) {
	h := newHarness()
	m := NewModel(context.Background(), h.app, nil)

	_, cmd := press(t, m, "ctrl+c")

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

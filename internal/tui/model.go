// Package tui is the terminal front end. It draws app.Page snapshots and
// turns key presses into app actions.
package tui

import (
	"context"
	"log"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"newsreader/internal/app"
)

type formKind int

const (
	loginForm formKind = iota
	registerForm
)

func (f formKind) String() string {
	if f == registerForm {
		return "Register"
	}
	return "Login"
}

type Model struct {
	app    *app.App
	ctx    context.Context
	logger *log.Logger

	page app.Page

	form   formKind
	inputs []textinput.Model
	focus  int

	cursor    int
	searching bool
	search    textinput.Model

	width int
}

func NewModel(ctx context.Context, a *app.App, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}

	search := textinput.New()
	search.Placeholder = "Search articles..."
	search.Prompt = "🔍 "

	return Model{
		app:    a,
		ctx:    ctx,
		logger: logger,
		page:   a.Page(),
		form:   loginForm,
		inputs: newForm(loginForm),
		search: search,
		width:  80,
	}
}

// Init loads the default feed and starts polling the app.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		runAction(m.ctx, "start", m.app.Start),
		tickCmd(),
		textinput.Blink,
	)
}

func newForm(kind formKind) []textinput.Model {
	var fields []textinput.Model

	add := func(placeholder string, password bool) {
		in := textinput.New()
		in.Placeholder = placeholder
		in.Prompt = "  "
		if password {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		fields = append(fields, in)
	}

	if kind == registerForm {
		add("Username", false)
	}
	add("Email", false)
	add("Password", true)
	if kind == registerForm {
		add("Interests (comma separated)", false)
	}

	fields[0].Focus()
	fields[0].Prompt = "> "
	return fields
}

func (m Model) values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = in.Value()
	}
	return out
}

// filterIndex is the position of the active filter in app.Filters.
func (m Model) filterIndex() int {
	if i := slices.Index(app.Filters, m.page.ActiveFilter); i >= 0 {
		return i
	}
	return 0
}

func (m Model) clampCursor() Model {
	n := len(m.page.Feed.Cards)
	switch {
	case n == 0:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	case m.cursor < 0:
		m.cursor = 0
	}
	return m
}

func (m Model) selectedID() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.page.Feed.Cards) {
		return "", false
	}
	return m.page.Feed.Cards[m.cursor].ArticleID, true
}

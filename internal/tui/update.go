package tui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"newsreader/internal/app"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		return m.refresh(), tickCmd()
	case actionDoneMsg:
		if msg.Err != nil {
			m.logger.Printf("tui: %s: %v", msg.Action, msg.Err)
		}
		return m.refresh(), nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.page.Section == app.SectionAuth:
			return m.handleAuthKey(msg)
		case m.searching:
			return m.handleSearchKey(msg)
		default:
			return m.handleNewsKey(msg)
		}
	}

	return m.updateInputs(msg)
}

// refresh pulls a fresh page snapshot. Leaving the news section resets the
// auth form.
func (m Model) refresh() Model {
	prev := m.page.Section
	m.page = m.app.Page()
	if prev != m.page.Section {
		m.inputs = newForm(m.form)
		m.focus = 0
		m.cursor = 0
		m.searching = false
		m.search.SetValue("")
		m.search.Blur()
	}
	return m.clampCursor()
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.setFocus(m.focus + 1), nil
	case "shift+tab", "up":
		return m.setFocus(m.focus - 1), nil
	case "ctrl+r":
		if m.form == loginForm {
			m.form = registerForm
		} else {
			m.form = loginForm
		}
		m.inputs = newForm(m.form)
		m.focus = 0
		return m, nil
	case "enter":
		return m, m.submit()
	}

	return m.updateInputs(msg)
}

func (m Model) setFocus(i int) Model {
	n := len(m.inputs)
	m.focus = ((i % n) + n) % n
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
			m.inputs[j].Prompt = "> "
			continue
		}
		m.inputs[j].Blur()
		m.inputs[j].Prompt = "  "
	}
	return m
}

func (m Model) submit() tea.Cmd {
	v := m.values()
	if m.form == registerForm {
		return runAction(m.ctx, "register", func(ctx context.Context) error {
			return m.app.Register(ctx, v[0], v[1], v[2], v[3])
		})
	}
	return runAction(m.ctx, "login", func(ctx context.Context) error {
		return m.app.Login(ctx, v[0], v[1])
	})
}

func (m Model) handleNewsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor--
		return m.clampCursor(), nil
	case "down", "j":
		m.cursor++
		return m.clampCursor(), nil
	case "right", "]", "tab":
		return m, m.selectFilter(m.filterIndex() + 1)
	case "left", "[", "shift+tab":
		return m, m.selectFilter(m.filterIndex() - 1)
	case "r":
		return m, m.selectFilter(m.filterIndex())
	case "l":
		if id, ok := m.selectedID(); ok {
			return m, runAction(m.ctx, "like", func(ctx context.Context) error {
				m.app.ToggleLike(ctx, id)
				return nil
			})
		}
	case "s":
		if id, ok := m.selectedID(); ok {
			return m, runAction(m.ctx, "share", func(ctx context.Context) error {
				m.app.Share(ctx, id)
				return nil
			})
		}
	case "/":
		m.searching = true
		m.search.SetValue(m.page.Query)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	case "ctrl+o":
		m.app.Logout()
		return m.refresh(), nil
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(app.Filters) {
		return m, m.selectFilter(n - 1)
	}
	return m, nil
}

func (m Model) selectFilter(i int) tea.Cmd {
	n := len(app.Filters)
	filter := app.Filters[((i%n)+n)%n]
	return runAction(m.ctx, "filter "+filter, func(ctx context.Context) error {
		return m.app.SelectFilter(ctx, filter)
	})
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.SetValue("")
		m.search.Blur()
		m.app.Search("")
		return m.refresh(), nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.app.Search(m.search.Value())
	m.cursor = 0
	return m.refresh(), cmd
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.page.Section != app.SectionAuth {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

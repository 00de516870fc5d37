package tui

import (
	"fmt"
	"strings"

	"newsreader/internal/app"
	"newsreader/internal/render"
)

// visibleCards is how many cards fit around the cursor.
const visibleCards = 5

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")

	if m.page.Section == app.SectionAuth {
		b.WriteString(m.authView())
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(TextFooterAuth))
		return b.String()
	}

	b.WriteString(m.newsView())
	b.WriteString("\n")
	if m.searching {
		b.WriteString(InfoStyle.Render(TextFooterSearch))
	} else {
		b.WriteString(InfoStyle.Render(TextFooterNews))
	}
	return b.String()
}

func (m Model) authView() string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render(m.form.String()))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.page.AuthMessage != "" {
		b.WriteString(ErrorStyle.Render(m.page.AuthMessage))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) newsView() string {
	var b strings.Builder

	if m.page.Welcome != "" {
		b.WriteString(StatusStyle.Render(m.page.Welcome))
		b.WriteString("\n")
	}
	b.WriteString(m.filterBar())
	b.WriteString("\n\n")

	if m.searching || m.page.Query != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}
	if m.page.Toast != "" {
		b.WriteString(ToastStyle.Render(m.page.Toast))
		b.WriteString("\n\n")
	}

	switch {
	case m.page.Loading:
		b.WriteString(StatusStyle.Render(TextLoading))
		b.WriteString("\n")
	case m.page.Error != "":
		b.WriteString(ErrorStyle.Render("❌ " + m.page.Error))
		b.WriteString("\n")
	case m.page.Feed.Placeholder != nil:
		b.WriteString(placeholderView(*m.page.Feed.Placeholder))
		b.WriteString("\n")
	default:
		b.WriteString(m.cardsView())
	}
	return b.String()
}

func (m Model) filterBar() string {
	parts := make([]string, 0, len(app.Filters))
	for i, f := range app.Filters {
		label := fmt.Sprintf("%d %s", i+1, f)
		if f == m.page.ActiveFilter {
			parts = append(parts, HighlightStyle.Render(label))
			continue
		}
		parts = append(parts, FilterStyle.Render(label))
	}
	return strings.Join(parts, "")
}

func placeholderView(p render.Placeholder) string {
	body := p.Message
	if p.Hint != "" {
		body += "\n\n" + InfoStyle.Render(p.Hint)
	}
	return BoxStyle.Render(body)
}

func (m Model) cardsView() string {
	cards := m.page.Feed.Cards
	start := max(0, m.cursor-visibleCards/2)
	end := min(len(cards), start+visibleCards)
	start = max(0, end-visibleCards)

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.cardView(cards[i], i == m.cursor))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%d of %d articles", m.cursor+1, len(cards))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) cardView(c render.Card, selected bool) string {
	width := max(20, m.width-4)

	icon := c.LikeIcon
	if c.Liked {
		icon = LikedStyle.Render(icon)
	}

	title := truncate(c.Title, width-4)
	if selected {
		title = HighlightStyle.Render(title)
	}

	meta := []string{}
	if c.Category != "" {
		meta = append(meta, CategoryStyle.Render(c.Category))
	}
	if c.Source != "" {
		meta = append(meta, c.Source)
	}
	if c.Author != "" {
		meta = append(meta, c.Author)
	}
	meta = append(meta, c.Date)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", icon, title)
	b.WriteString("  " + InfoStyle.Render(strings.Join(meta, " · ")) + "\n")
	if c.Reason != "" {
		b.WriteString("  " + StatusStyle.Render("★ "+c.Reason) + "\n")
	}
	b.WriteString("  " + truncate(c.Summary, width-2) + "\n")
	if selected && c.URL != "" {
		b.WriteString("  " + InfoStyle.Render(c.URL) + "\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

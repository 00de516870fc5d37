package tui

const (
	TextTitle   = "📰 News Reader"
	TextLoading = "⏳ Loading news..."

	TextFooterAuth   = "tab: next field | enter: submit | ctrl+r: switch login/register | ctrl+c: quit"
	TextFooterNews   = "↑/↓: move | ←/→ or 1-8: filter | /: search | l: like | s: share | r: reload | ctrl+o: logout | q: quit"
	TextFooterSearch = "type to filter | enter: keep | esc: clear"
)

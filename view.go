package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/LFroesch/hop/internal/entries"
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	var mainContent string
	if m.showHelp {
		mainContent = m.renderHelpView()
	} else {
		mainContent = m.renderList()
	}

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		mainContent,
		statusBar,
	)
}

func (m *model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(m.getSafeWidth())

	title := fmt.Sprintf("⚡ hop - %s", m.currentDir)
	if m.gitBranch != "" {
		title += fmt.Sprintf(" [%s]", m.gitBranch)
	}

	return titleStyle.Render(title)
}

func (m *model) renderList() string {
	rows := m.visibleRows()
	visible := m.visibleEntries()
	query := m.searchInput.Value()

	listStyle := lipgloss.NewStyle().
		Padding(1, 2).
		Height(rows + 2).
		Width(m.getSafeWidth())

	if len(visible) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
		msg := "No directories here"
		if m.listWarning != "" {
			msg = m.listWarning
		} else if query != "" {
			msg = fmt.Sprintf("Nothing matches %q", query)
		}
		return listStyle.Render(emptyStyle.Render(msg))
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color("114")).
		Bold(true)
	pendingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color("220")).
		Bold(true)
	scoreStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)
	matchStyle := lipgloss.NewStyle().
		Underline(true)
	selectedMatchStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true).
		Underline(true)

	items := make([]string, 0, len(visible))
	for i, entry := range visible {
		absolute := m.scrollOffset + i
		selected := absolute == m.cursor

		// Shortcut label, highlighted while it matches the buffered prefix
		label := "  "
		if i < len(m.labels) {
			l := m.labels[i]
			if len(l) == 1 {
				l += " "
			}
			if m.pendingKeys != "" && strings.HasPrefix(l, m.pendingKeys) {
				label = pendingStyle.Render(l)
			} else {
				label = labelStyle.Render(l)
			}
		}

		name := entry.Name + "/"
		nameStr := renderName(name, query, selected, selectedStyle, matchStyle, selectedMatchStyle)

		cursor := "  "
		if selected {
			cursor = selectedStyle.Render("> ")
		}

		line := fmt.Sprintf("%s%s %s", cursor, label, nameStr)
		if entry.HasScore {
			line += scoreStyle.Render(fmt.Sprintf("  %.2f", entry.Score))
		}
		items = append(items, line)
	}

	return listStyle.Render(strings.Join(items, "\n"))
}

// renderName underlines the first search hit inside the display name so the
// eye can verify why a row survived the filter.
func renderName(name, query string, selected bool, normal, match, selectedMatch lipgloss.Style) string {
	start, end := entries.MatchBounds(name, query)
	if start < 0 {
		if selected {
			return normal.Render(name)
		}
		return name
	}

	before := name[:start]
	hit := name[start:end]
	after := name[end:]
	if selected {
		return normal.Render(before) + selectedMatch.Render(hit) + normal.Render(after)
	}
	return before + match.Render(hit) + after
}

func (m *model) renderStatusBar() string {
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(m.getSafeWidth())

	if m.searching {
		return statusStyle.Render("/" + m.searchInput.View())
	}

	var left string
	switch {
	case m.statusMsg != "" && time.Now().Before(m.statusExpiry):
		left = m.statusMsg
	case m.searchInput.Value() != "":
		left = fmt.Sprintf("filter: %q (_ clears)", m.searchInput.Value())
	default:
		left = "space: jump here | l: enter | /: filter | ?: help"
	}

	right := fmt.Sprintf("[%s] %d/%d", m.category, m.cursor+1, len(m.filtered))
	if len(m.filtered) == 0 {
		right = fmt.Sprintf("[%s] 0/0", m.category)
	}

	gap := m.getSafeWidth() - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return statusStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *model) renderHelpView() string {
	helpStyle := lipgloss.NewStyle().
		Padding(1, 2).
		Height(m.visibleRows() + 2).
		Width(m.getSafeWidth())

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("114")).
		Bold(true)

	row := func(key, desc string) string {
		return fmt.Sprintf("  %s  %s", keyStyle.Render(fmt.Sprintf("%-12s", key)), desc)
	}

	sections := []string{
		titleStyle.Render("⚡ hop - Keyboard Shortcuts"),
		"",
		titleStyle.Render("Navigation"),
		row("j/k, ↓/↑", "Move cursor"),
		row("h, ←", "Parent directory"),
		row("l, →, enter", "Enter directory"),
		row("gg / G", "First / last entry"),
		row("a s d ...", "Jump via shortcut label"),
		"",
		titleStyle.Render("Session"),
		row("space", "Exit and jump to current directory"),
		row("q, esc", "Exit without jumping"),
		"",
		titleStyle.Render("Lists & Search"),
		row("ctrl+f", "Frecent directories"),
		row("ctrl+d", "Children of current directory"),
		row("/", "Filter the list"),
		row("_", "Clear the filter"),
		"",
		titleStyle.Render("Actions"),
		row("y", "Copy current path to clipboard"),
		row("o", "Open directory in file manager"),
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("Press any key to close"),
	}

	return helpStyle.Render(strings.Join(sections, "\n"))
}

package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/hop/internal/hotkeys"
)

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		m.refreshLabels()
		return m, nil

	case prefixTimeoutMsg:
		// Only clear if this is the latest timer and the buffer still holds
		// the sequence it was armed for; a newer keypress owns a newer timer
		if msg.gen == m.prefixGen && m.pendingKeys == msg.seq {
			m.pendingKeys = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.chosen = ""
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// handleSearchKey runs while the search buffer has focus: printable keys edit
// the buffer and re-filter live, Esc abandons the search, Enter keeps the
// filter and returns focus to the list.
func (m *model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.applyFilter(true)
		return m, nil

	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case "up":
		m.setCursor(m.cursor - 1)
		return m, nil

	case "down":
		m.setCursor(m.cursor + 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applyFilter(true)
	return m, cmd
}

func (m *model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Any key other than an alphabet continuation consumes the buffered prefix
	pending := m.pendingKeys
	m.pendingKeys = ""

	switch key {
	case "q", "esc":
		m.chosen = ""
		return m, tea.Quit

	case " ", "space":
		m.chooseCurrent()
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "/":
		m.searching = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.applyFilter(true)
		return m, nil

	case "_":
		m.searchInput.SetValue("")
		m.applyFilter(true)
		return m, nil

	case "j", "down":
		m.setCursor(m.cursor + 1)
		return m, nil

	case "k", "up":
		m.setCursor(m.cursor - 1)
		return m, nil

	case "G", "end":
		m.setCursor(len(m.filtered) - 1)
		return m, nil

	case "home":
		m.setCursor(0)
		return m, nil

	case "h", "left", "backspace":
		m.goToParent()
		return m, nil

	case "l", "right", "enter":
		if entry, ok := m.selectedEntry(); ok {
			m.enterDir(entry.Path)
		}
		return m, nil

	case "ctrl+f":
		m.switchCategory(categoryFrecent)
		return m, nil

	case "ctrl+d":
		m.switchCategory(categoryChildren)
		return m, nil

	case "y":
		m.yankSelected()
		return m, nil

	case "o":
		return m, m.openSelected()

	case "g":
		if pending == "g" {
			m.setCursor(0)
			return m, nil
		}
		m.pendingKeys = "g"
		return m, m.armPrefixTimer("g")
	}

	return m.handleLabelKey(pending, key)
}

// handleLabelKey resolves a (possibly buffered) key sequence against the
// shortcut labels of the visible rows. An exact match jumps straight into
// that directory; a proper prefix keeps buffering; anything else is dropped.
func (m *model) handleLabelKey(pending, key string) (tea.Model, tea.Cmd) {
	if len([]rune(key)) != 1 {
		return m, nil
	}

	seq := pending + key
	idx, isPrefix := hotkeys.Match(m.labels, seq)
	switch {
	case idx >= 0:
		visible := m.visibleEntries()
		if idx < len(visible) {
			m.enterDir(visible[idx].Path)
		}
	case isPrefix:
		m.pendingKeys = seq
		return m, m.armPrefixTimer(seq)
	}
	return m, nil
}

func (m *model) armPrefixTimer(seq string) tea.Cmd {
	m.prefixGen++
	gen := m.prefixGen
	return tea.Tick(prefixTimeout, func(time.Time) tea.Msg {
		return prefixTimeoutMsg{seq: seq, gen: gen}
	})
}

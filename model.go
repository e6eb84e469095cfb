package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/LFroesch/hop/internal/config"
	"github.com/LFroesch/hop/internal/entries"
	"github.com/LFroesch/hop/internal/git"
	"github.com/LFroesch/hop/internal/hotkeys"
	"github.com/LFroesch/hop/internal/index"
	"github.com/LFroesch/hop/internal/logger"
)

// prefixTimeoutMsg clears a buffered key prefix (gg or a two-key shortcut
// label) when the second key never arrives. gen ties the message to the
// timer that produced it, so a timer outliving its prefix cannot clear a
// newer one.
type prefixTimeoutMsg struct {
	seq string
	gen int
}

// Terminal dimension constants
const (
	minTerminalWidth  = 40 // Minimum usable width
	minTerminalHeight = 8  // Minimum usable height
	uiOverhead        = 4  // Header (1) + status (1) + list padding (2)
)

// Application behavior constants
const (
	prefixTimeout  = 750 * time.Millisecond // How long a buffered key prefix stays alive
	statusDuration = 3 * time.Second        // How long status messages linger
)

type category int

const (
	categoryFrecent category = iota
	categoryChildren
)

func (c category) String() string {
	if c == categoryFrecent {
		return "frecent"
	}
	return "children"
}

type model struct {
	idx      *index.Index
	cfg      *config.Config
	alphabet []rune

	category     category
	currentDir   string
	items        []entries.Entry // unfiltered entries for the current context
	filtered     []entries.Entry
	cursor       int
	scrollOffset int

	searching   bool
	searchInput textinput.Model

	labels      []string // shortcut labels for the visible window, row-parallel
	pendingKeys string   // buffered prefix for gg / two-key labels
	prefixGen   int      // bumped whenever a prefix timer is armed

	showHelp bool
	width    int
	height   int

	statusMsg    string
	statusExpiry time.Time
	listWarning  string // shown when the current directory cannot be listed

	gitBranch string

	chosen string // printed on exit; empty means the wrapper skips the cd
}

func initialModel(ix *index.Index, cfg *config.Config) model {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = string(filepath.Separator)
	}

	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.CharLimit = 256
	ti.Width = 40

	m := model{
		idx:         ix,
		cfg:         cfg,
		alphabet:    hotkeys.Sanitize(cfg.ShortcutKeys),
		currentDir:  currentDir,
		searchInput: ti,
		gitBranch:   git.Branch(currentDir),
	}

	// Frecent is only a sensible landing view once something has been pushed
	if len(ix.Ranked(1)) > 0 {
		m.category = categoryFrecent
	} else {
		m.category = categoryChildren
	}

	m.reload()
	return m
}

// Helper methods for safe dimensions
func (m *model) getSafeWidth() int {
	if m.width < minTerminalWidth {
		return minTerminalWidth
	}
	return m.width
}

func (m *model) getSafeHeight() int {
	if m.height < minTerminalHeight {
		return minTerminalHeight
	}
	return m.height
}

// visibleRows returns how many list rows fit on screen
func (m *model) visibleRows() int {
	rows := m.getSafeHeight() - uiOverhead
	if rows < 3 {
		rows = 3
	}
	return rows
}

// visibleEntries returns the slice of filtered entries inside the scroll window
func (m *model) visibleEntries() []entries.Entry {
	rows := m.visibleRows()
	start := m.scrollOffset
	if start > len(m.filtered) {
		start = len(m.filtered)
	}
	end := start + rows
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	return m.filtered[start:end]
}

// reload re-derives the entry list for the current category from scratch and
// re-applies the active filter.
func (m *model) reload() {
	switch m.category {
	case categoryFrecent:
		m.items = entries.Frecent(m.idx, m.cfg.FrecentLimit)
		m.listWarning = ""
	default:
		items, err := entries.Children(m.currentDir, m.cfg.ShowHidden)
		if err != nil {
			// Degrade to an empty list; the user can still navigate back up
			logger.Warn("Failed to list %s: %v", m.currentDir, err)
			m.items = nil
			m.listWarning = fmt.Sprintf("cannot read directory: %v", err)
		} else {
			m.items = items
			m.listWarning = ""
		}
	}

	m.applyFilter(false)
}

// applyFilter narrows items by the live search buffer. With keepSelection the
// cursor follows the previously selected entry if it survives the filter,
// otherwise it resets to the top.
func (m *model) applyFilter(keepSelection bool) {
	var selectedPath string
	if keepSelection && m.cursor < len(m.filtered) {
		selectedPath = m.filtered[m.cursor].Path
	}

	m.filtered = entries.Filter(m.items, m.searchInput.Value())

	m.cursor = 0
	if selectedPath != "" {
		for i, item := range m.filtered {
			if item.Path == selectedPath {
				m.cursor = i
				break
			}
		}
	}

	m.scrollOffset = 0
	m.clampCursor()
	m.refreshLabels()
}

// clampCursor keeps the cursor inside the filtered list and the scroll window
// around the cursor.
func (m *model) clampCursor() {
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	rows := m.visibleRows()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+rows {
		m.scrollOffset = m.cursor - rows + 1
	}
	maxScroll := len(m.filtered) - rows
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scrollOffset > maxScroll {
		m.scrollOffset = maxScroll
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// refreshLabels recomputes the shortcut labels for the visible window. Labels
// carry no stability across list changes; whatever is on screen at the moment
// of a keypress is what the label selects.
func (m *model) refreshLabels() {
	m.labels = hotkeys.Assign(len(m.visibleEntries()), m.alphabet)
	m.pendingKeys = ""
}

// setCursor moves the cursor to an absolute index, clamped, and keeps the
// scroll window following it.
func (m *model) setCursor(pos int) {
	m.cursor = pos
	prevScroll := m.scrollOffset
	m.clampCursor()
	if m.scrollOffset != prevScroll {
		m.refreshLabels()
	}
}

// selectedEntry returns the entry under the cursor, if any.
func (m *model) selectedEntry() (entries.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return entries.Entry{}, false
	}
	return m.filtered[m.cursor], true
}

// enterDir descends into dir: it becomes the current path and the list shows
// its children. Enter never exits the browser; Space does that.
func (m *model) enterDir(dir string) {
	m.currentDir = dir
	m.category = categoryChildren
	m.searchInput.SetValue("")
	m.searching = false
	m.gitBranch = git.Branch(dir)
	m.reload()
}

// goToParent moves up one level and parks the cursor on the directory we just
// came from so h/l round-trips.
func (m *model) goToParent() {
	parent := filepath.Dir(m.currentDir)
	if parent == m.currentDir {
		return
	}

	from := m.currentDir
	m.currentDir = parent
	m.category = categoryChildren
	m.searchInput.SetValue("")
	m.searching = false
	m.gitBranch = git.Branch(parent)
	m.reload()

	for i, item := range m.filtered {
		if item.Path == from {
			m.setCursor(i)
			break
		}
	}
}

// switchCategory forces the entry source and rebuilds the list from scratch.
func (m *model) switchCategory(c category) {
	m.category = c
	m.reload()
}

// chooseCurrent finalizes the session with the directory the browser sits in.
// The visit is recorded and flushed synchronously before the path is printed,
// so an interactive jump feeds the ranking exactly like a wrapper push.
func (m *model) chooseCurrent() {
	if err := m.idx.RecordVisit(m.currentDir); err != nil {
		logger.Warn("Failed to record visit for %s: %v", m.currentDir, err)
	} else if err := m.idx.Flush(); err != nil {
		// A missed push only degrades ranking; never block the jump on it
		logger.Error("Failed to flush index: %v", err)
	}
	m.chosen = m.currentDir
}

func (m *model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusExpiry = time.Now().Add(statusDuration)
}

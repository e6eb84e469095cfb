package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"github.com/LFroesch/hop/internal/logger"
)

// yankSelected copies the highlighted directory's absolute path; with nothing
// highlighted it copies the current directory instead.
func (m *model) yankSelected() {
	path := m.currentDir
	if entry, ok := m.selectedEntry(); ok {
		path = entry.Path
	}

	if err := clipboard.WriteAll(path); err != nil {
		logger.Warn("Failed to copy to clipboard: %v", err)
		m.setStatus(fmt.Sprintf("Failed to copy: %v", err))
		return
	}
	m.setStatus(fmt.Sprintf("Copied: %s", path))
}

// openSelected hands the highlighted directory to the system file manager.
func (m *model) openSelected() tea.Cmd {
	path := m.currentDir
	if entry, ok := m.selectedEntry(); ok {
		path = entry.Path
	}

	m.setStatus(fmt.Sprintf("Opened: %s", path))
	return func() tea.Msg {
		if err := open.Run(path); err != nil {
			logger.Warn("Failed to open %s: %v", path, err)
		}
		return nil
	}
}

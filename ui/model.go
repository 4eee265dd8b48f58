package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/workshopdl/progress"
)

// TUIModel renders ledger snapshots pushed by the download run
type TUIModel struct {
	snapshot progress.Snapshot
	total    int

	// cancel stops the run when the user quits
	cancel context.CancelFunc

	quitting bool
	finished bool

	// Version for display
	Version string
}

// NewTUIModel creates a new TUI model
func NewTUIModel(total int, version string, cancel context.CancelFunc) TUIModel {
	return TUIModel{
		total:   total,
		cancel:  cancel,
		Version: version,
	}
}

// Init implements tea.Model
func (m TUIModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.cancel != nil {
				m.cancel()
			}
			m.quitting = true
			return m, tea.Quit
		}

	case SnapshotMsg:
		m.snapshot = msg.Snapshot

	case RunFinishedMsg:
		m.finished = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m TUIModel) View() string {
	if m.quitting {
		return "Cancelling downloads...\n"
	}

	controls := MutedStyle.Render(fmt.Sprintf("workshopdl %s  Controls: [q] Quit", m.Version))
	return Render(m.snapshot, m.total) + "\n" + controls + "\n"
}

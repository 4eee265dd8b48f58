package ui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/workshopdl/progress"
)

// Display receives ledger snapshots. Observe runs inside the ledger's
// critical section and must not call back into the ledger.
type Display interface {
	Start() error
	Observe(snap progress.Snapshot)
	Close() error
}

// Display modes accepted on the command line
const (
	ModeAuto   = "auto"
	ModeTUI    = "tui"
	ModeScreen = "screen"
	ModePlain  = "plain"
)

// clearScreen moves the cursor home and clears the terminal
const clearScreen = "\x1b[H\x1b[2J"

// ScreenDisplay redraws the whole frame on every update
type ScreenDisplay struct {
	w     io.Writer
	total int
}

// NewScreenDisplay creates a full-redraw display writing to w
func NewScreenDisplay(w io.Writer, total int) *ScreenDisplay {
	return &ScreenDisplay{w: w, total: total}
}

// Start is a no-op, the first frame is drawn on the first snapshot
func (d *ScreenDisplay) Start() error { return nil }

// Observe clears the terminal and draws snap
func (d *ScreenDisplay) Observe(snap progress.Snapshot) {
	fmt.Fprint(d.w, clearScreen+Render(snap, d.total))
}

// Close is a no-op, the last frame stays on screen
func (d *ScreenDisplay) Close() error { return nil }

// PlainDisplay prints one line per finished item under an aggregate bar
type PlainDisplay struct {
	w        io.Writer
	bar      *progressbar.ProgressBar
	reported map[string]bool
}

// NewPlainDisplay creates a display for non-terminal output
func NewPlainDisplay(w io.Writer, total int) *PlainDisplay {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Downloading"),
		progressbar.OptionSetItsString("item"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &PlainDisplay{w: w, bar: bar, reported: make(map[string]bool)}
}

// Start is a no-op, the bar is drawn on the first snapshot
func (d *PlainDisplay) Start() error { return nil }

// Observe prints newly finished items and moves the bar
func (d *PlainDisplay) Observe(snap progress.Snapshot) {
	finished := 0
	for _, e := range snap.Entries {
		if !e.Record.Status.IsTerminal() {
			continue
		}
		finished++
		if d.reported[e.ID] {
			continue
		}
		d.reported[e.ID] = true
		_ = d.bar.Clear()
		if e.Record.Status == progress.StatusCompleted {
			fmt.Fprintf(d.w, "✓ %s (%s)\n", e.Name(), e.ID)
		} else {
			fmt.Fprintf(d.w, "✗ %s (%s): %s\n", e.Name(), e.ID, e.Record.Detail)
		}
	}
	_ = d.bar.Set(finished)
}

// Close completes the bar and ends its line
func (d *PlainDisplay) Close() error {
	if err := d.bar.Finish(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.w)
	return err
}

// TUIDisplay runs a bubbletea program fed with ledger snapshots
type TUIDisplay struct {
	program *tea.Program
	done    chan error
}

// NewTUIDisplay creates the interactive display. cancel is invoked when the
// user quits.
func NewTUIDisplay(total int, version string, cancel context.CancelFunc, opts ...tea.ProgramOption) *TUIDisplay {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	model := NewTUIModel(total, version, cancel)
	return &TUIDisplay{
		program: tea.NewProgram(model, opts...),
		done:    make(chan error, 1),
	}
}

// Start runs the program in the background
func (d *TUIDisplay) Start() error {
	go func() {
		_, err := d.program.Run()
		d.done <- err
	}()
	return nil
}

// Observe blocks until the program accepts the message or has exited
func (d *TUIDisplay) Observe(snap progress.Snapshot) {
	d.program.Send(SnapshotMsg{Snapshot: snap})
}

// Close asks the program to exit and waits for it
func (d *TUIDisplay) Close() error {
	d.program.Send(RunFinishedMsg{})
	return <-d.done
}

// NewDisplay picks a display for mode. isTerminal decides what auto means.
func NewDisplay(mode string, w io.Writer, isTerminal bool, total int, version string, cancel context.CancelFunc) (Display, error) {
	switch mode {
	case ModeAuto, "":
		if isTerminal {
			return NewTUIDisplay(total, version, cancel), nil
		}
		return NewPlainDisplay(w, total), nil
	case ModeTUI:
		return NewTUIDisplay(total, version, cancel), nil
	case ModeScreen:
		return NewScreenDisplay(w, total), nil
	case ModePlain:
		return NewPlainDisplay(w, total), nil
	default:
		return nil, fmt.Errorf("unknown display mode %q", mode)
	}
}

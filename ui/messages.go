package ui

import "github.com/lepinkainen/workshopdl/progress"

// TUI Message Types for ledger communication
type SnapshotMsg struct {
	Snapshot progress.Snapshot
}

// RunFinishedMsg tells the TUI the batch is over and it may exit
type RunFinishedMsg struct{}

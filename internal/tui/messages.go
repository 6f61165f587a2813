package tui

import "pickterm/internal/model"

// Async message types for Bubble Tea commands.

// RosterChangedMsg is sent from outside the program (the file watcher) when
// the roster source changed on disk.
type RosterChangedMsg struct{}

type rosterLoadedMsg struct {
	recs   []model.RawRecipient
	reload bool
	err    error
}

type statusMsg string

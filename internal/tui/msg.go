package tui

import "github.com/runoshun/tick/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgChecklistLoaded is sent when the outline is (re)loaded.
type MsgChecklistLoaded struct {
	Nodes    []domain.Node
	Progress domain.Progress
}

func (MsgChecklistLoaded) sealed() {}

// MsgMutated is sent when a mutation issued by the TUI succeeded.
// Select is the path the cursor should land on after the reload.
type MsgMutated struct {
	Select domain.Path
	Change domain.Change
}

func (MsgMutated) sealed() {}

// MsgChanged is sent when the state container publishes a change.
type MsgChanged struct {
	Change domain.Change
}

func (MsgChanged) sealed() {}

// MsgYanked is sent when a name was copied to the clipboard.
type MsgYanked struct {
	Text string
}

func (MsgYanked) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

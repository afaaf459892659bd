package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/tick/internal/app"
	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/usecase"
)

// errUnaddressable is reported when an action targets a node without a path.
var errUnaddressable = errors.New("selected entry cannot be addressed by a path")

// row is one visible outline line.
type row struct {
	matched []int // Byte offsets of filter matches in the name
	node    domain.Node
}

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container      *app.Container
	err            error
	changes        chan domain.Change
	unsubscribe    func()
	writeClipboard func(string) error

	// State (slices - contain pointers)
	nodes      []domain.Node
	rows       []row
	selectPath domain.Path // Path to select after the next load
	target     domain.Path // Parent or node the name input applies to
	status     string

	// Components (structs with pointers)
	keys     KeyMap
	styles   Styles
	help     help.Model
	progress progress.Model

	// Input state (large structs)
	input       textinput.Model
	filterInput textinput.Model

	// Numeric state (smaller types last)
	total         domain.Progress
	mode          Mode
	confirmAction ConfirmAction
	cursor        int
	offset        int
	width         int
	height        int
	hideCompleted bool
	loaded        bool
}

// New creates a new TUI Model with the given container.
// The model subscribes to the container's state; call Close when done.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.Placeholder = "Name"
	ti.CharLimit = 200

	fi := textinput.New()
	fi.Placeholder = "Filter tasks..."
	fi.CharLimit = 100

	m := &Model{
		container:      c,
		changes:        make(chan domain.Change, 1),
		writeClipboard: clipboard.WriteAll,
		mode:           ModeNormal,
		keys:           DefaultKeyMap(),
		styles:         DefaultStyles(),
		help:           help.New(),
		progress:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		input:          ti,
		filterInput:    fi,
	}
	if c.AppConfig != nil {
		m.hideCompleted = c.AppConfig.TUI.HideCompleted
	}

	// Changes are coalesced: the model reloads the whole outline anyway.
	changes := m.changes
	m.unsubscribe = c.State.Subscribe(func(change domain.Change) {
		select {
		case changes <- change:
		default:
		}
	})
	return m
}

// Close stops listening for state changes.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadChecklist(),
		m.waitForChange(),
	)
}

// waitForChange returns a command that blocks until the state publishes.
func (m *Model) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		return MsgChanged{Change: <-changes}
	}
}

// exclusive returns a command running fn under the state's serialization
// lock, so use cases never overlap while they read or edit the shared tree.
func (m *Model) exclusive(fn func() tea.Msg) tea.Cmd {
	state := m.container.State
	return func() tea.Msg {
		var msg tea.Msg
		state.Exclusive(func() { msg = fn() })
		return msg
	}
}

// loadChecklist returns a command that loads a snapshot of the outline.
func (m *Model) loadChecklist() tea.Cmd {
	hide := m.hideCompleted
	return m.exclusive(func() tea.Msg {
		return m.showOutline(hide)
	})
}

// reloadChecklist drops the cached tree and loads the outline from the backend.
func (m *Model) reloadChecklist() tea.Cmd {
	hide := m.hideCompleted
	state := m.container.State
	return m.exclusive(func() tea.Msg {
		state.Reload()
		return m.showOutline(hide)
	})
}

func (m *Model) showOutline(hide bool) tea.Msg {
	out, err := m.container.ShowChecklistUseCase().Execute(
		context.Background(),
		usecase.ShowChecklistInput{HideCompleted: hide},
	)
	if err != nil {
		return MsgError{Err: err}
	}
	return MsgChecklistLoaded{Nodes: out.Nodes, Progress: out.Progress}
}

// SelectedNode returns the node under the cursor.
func (m *Model) SelectedNode() (domain.Node, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return domain.Node{}, false
	}
	return m.rows[m.cursor].node, true
}

// selectedPath returns the path of the node under the cursor, or nil.
func (m *Model) selectedPath() domain.Path {
	if n, ok := m.SelectedNode(); ok {
		return n.Path
	}
	return nil
}

// toggleTask returns a command that flips a task.
func (m *Model) toggleTask(p domain.Path) tea.Cmd {
	return m.exclusive(func() tea.Msg {
		out, err := m.container.ToggleTaskUseCase().Execute(
			context.Background(),
			usecase.ToggleTaskInput{Path: p},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgMutated{Select: p, Change: out.Change}
	})
}

// setCompleted returns a command that sets every task under a group.
func (m *Model) setCompleted(p domain.Path, completed bool) tea.Cmd {
	return m.exclusive(func() tea.Msg {
		out, err := m.container.SetCompletedUseCase().Execute(
			context.Background(),
			usecase.SetCompletedInput{Path: p, Completed: completed},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgMutated{Select: p, Change: out.Change}
	})
}

// moveEntry returns a command that moves the node at p one step.
// Moving a task or group down past its last sibling is a no-op.
func (m *Model) moveEntry(p domain.Path, down bool) tea.Cmd {
	to := p.Last() - 1
	if down {
		to = p.Last() + 1
	}
	next := p.Parent().Child(to)
	return m.exclusive(func() tea.Msg {
		if down && len(p) > 1 {
			_, err := m.container.CountProgressUseCase().Execute(
				context.Background(),
				usecase.CountProgressInput{Path: next},
			)
			if domain.IsNotFound(err) {
				return nil
			}
		}
		out, err := m.container.MoveEntryUseCase().Execute(
			context.Background(),
			usecase.MoveEntryInput{Path: p, To: to},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgMutated{Select: next, Change: out.Change}
	})
}

// addEntry returns a command that appends a named child under parent.
func (m *Model) addEntry(parent domain.Path, name string) tea.Cmd {
	return m.exclusive(func() tea.Msg {
		out, err := m.container.AddEntryUseCase().Execute(
			context.Background(),
			usecase.AddEntryInput{Parent: parent, Name: name},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgMutated{Select: out.Change.Path, Change: out.Change}
	})
}

// renameEntry returns a command that renames the node at p.
func (m *Model) renameEntry(p domain.Path, name string) tea.Cmd {
	return m.exclusive(func() tea.Msg {
		out, err := m.container.RenameEntryUseCase().Execute(
			context.Background(),
			usecase.RenameEntryInput{Path: p, Name: name},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgMutated{Select: p, Change: out.Change}
	})
}

// deleteEntry returns a command that deletes the node at p.
func (m *Model) deleteEntry(p domain.Path) tea.Cmd {
	return m.exclusive(func() tea.Msg {
		out, err := m.container.DeleteEntryUseCase().Execute(
			context.Background(),
			usecase.DeleteEntryInput{Path: p},
		)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgMutated{Select: p.Parent(), Change: out.Change}
	})
}

// yank returns a command that copies text to the clipboard.
func (m *Model) yank(text string) tea.Cmd {
	write := m.writeClipboard
	return func() tea.Msg {
		if err := write(text); err != nil {
			return MsgError{Err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return MsgYanked{Text: text}
	}
}

// addParent returns the parent a new node is appended to for the selection.
// Tasks accept subtasks; a subtask appends a sibling.
func addParent(n domain.Node) domain.Path {
	if len(n.Path) <= domain.DepthTask {
		return n.Path
	}
	return n.Path.Parent()
}

// describeChange renders a one-line status for a change.
func describeChange(c domain.Change) string {
	switch c.Kind {
	case domain.ChangeToggle, domain.ChangeSetCompleted:
		state := "open"
		if c.Completed {
			state = "done"
		}
		return fmt.Sprintf("%s: %s", c.Name, state)
	case domain.ChangeSetGroupCompleted:
		return fmt.Sprintf("Updated %d tasks in %s", c.Affected, c.Name)
	case domain.ChangeReorder:
		return fmt.Sprintf("Moved %d -> %d in %s", c.From, c.To, c.Name)
	case domain.ChangeRename:
		return fmt.Sprintf("Renamed to %q", c.Name)
	case domain.ChangeAdd:
		return fmt.Sprintf("Added %q", c.Name)
	case domain.ChangeDelete:
		return fmt.Sprintf("Deleted %q (%d tasks removed)", c.Name, c.Affected)
	case domain.ChangeReplace:
		return "Checklist replaced"
	}
	return c.String()
}

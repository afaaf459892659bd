package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/usecase"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil

	case MsgChecklistLoaded:
		prev := m.selectPath
		if prev == nil {
			prev = m.selectedPath()
		}
		m.selectPath = nil
		m.nodes = msg.Nodes
		m.total = msg.Progress
		m.loaded = true
		m.rebuildRows()
		m.selectByPath(prev)
		return m, nil

	case MsgMutated:
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		m.selectPath = msg.Select
		m.status = describeChange(msg.Change)
		return m, m.loadChecklist()

	case MsgChanged:
		return m, tea.Batch(m.loadChecklist(), m.waitForChange())

	case MsgYanked:
		m.status = "Copied " + msg.Text
		return m, nil

	case MsgError:
		m.err = msg.Err
		m.status = ""
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear messages on any key press
	m.err = nil
	m.status = ""

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeFilter:
		return m.handleFilterMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeAdd, ModeRename:
		return m.handleInputMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}

	return m, nil
}

// handleNormalMode handles keys in normal mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(m.cursor - 1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.cursor + 1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.moveCursor(0)
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.rows) - 1)
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.mode = ModeFilter
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		if m.filterInput.Value() != "" {
			m.filterInput.Reset()
			m.rebuildRows()
			m.moveCursor(m.cursor)
		}
		return m, nil

	case key.Matches(msg, m.keys.HideCompleted):
		m.hideCompleted = !m.hideCompleted
		return m, m.loadChecklist()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadChecklist()

	case key.Matches(msg, m.keys.AddCategory):
		return m.startInput(ModeAdd, nil, "")

	case key.Matches(msg, m.keys.Add):
		if len(m.rows) == 0 {
			return m.startInput(ModeAdd, nil, "")
		}
		node, ok := m.addressableSelection()
		if !ok {
			return m, nil
		}
		return m.startInput(ModeAdd, addParent(node), "")
	}

	node, ok := m.SelectedNode()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Yank):
		return m, m.yank(node.Name())

	case key.Matches(msg, m.keys.Toggle):
		if _, ok := m.addressableSelection(); !ok {
			return m, nil
		}
		if node.IsTask() {
			return m, m.toggleTask(node.Path)
		}
		return m, m.setCompleted(node.Path, !node.Progress().Done())

	case key.Matches(msg, m.keys.MoveUp):
		if _, ok := m.addressableSelection(); !ok || node.Path.Last() == 0 {
			return m, nil
		}
		return m, m.moveEntry(node.Path, false)

	case key.Matches(msg, m.keys.MoveDown):
		if _, ok := m.addressableSelection(); !ok {
			return m, nil
		}
		return m, m.moveEntry(node.Path, true)

	case key.Matches(msg, m.keys.Rename):
		if _, ok := m.addressableSelection(); !ok {
			return m, nil
		}
		return m.startInput(ModeRename, node.Path, node.Name())

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.addressableSelection(); !ok {
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmDelete
		return m, nil
	}

	return m, nil
}

// addressableSelection returns the selected node when it has a path.
// Otherwise it reports errUnaddressable.
func (m *Model) addressableSelection() (domain.Node, bool) {
	node, ok := m.SelectedNode()
	if !ok {
		return domain.Node{}, false
	}
	if node.Path == nil {
		m.err = errUnaddressable
		return domain.Node{}, false
	}
	return node, true
}

// startInput switches to a name input mode for target: the parent for
// ModeAdd, the renamed node for ModeRename.
func (m *Model) startInput(mode Mode, target domain.Path, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.target = target
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

// handleInputMode handles keys while a name is being typed.
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.input.Reset()
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		name := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.input.Reset()
		m.input.Blur()
		m.mode = ModeNormal
		if name == "" {
			m.err = domain.ErrEmptyName
			return m, nil
		}
		if mode == ModeRename {
			return m, m.renameEntry(m.target, name)
		}
		return m, m.addEntry(m.target, name)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleFilterMode handles keys in filter mode.
func (m *Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.filterInput.Reset()
		m.filterInput.Blur()
		m.rebuildRows()
		m.moveCursor(0)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.mode = ModeNormal
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.rebuildRows()
	m.moveCursor(0)
	return m, cmd
}

// handleConfirmMode handles keys in confirm mode.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N":
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		action := m.confirmAction
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		switch action {
		case ConfirmNone:
			// Nothing to confirm
		case ConfirmDelete:
			if node, ok := m.SelectedNode(); ok && node.Path != nil {
				return m, m.deleteEntry(node.Path)
			}
		}
	}

	return m, nil
}

// handleHelpMode handles keys in help mode.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		return m, nil
	}

	return m, nil
}

// rebuildRows recomputes the visible rows from the loaded nodes and the
// filter query. A non-empty query shows matching addressable tasks ranked by
// score.
func (m *Model) rebuildRows() {
	query := strings.TrimSpace(m.filterInput.Value())
	if query == "" {
		m.rows = make([]row, len(m.nodes))
		for i, n := range m.nodes {
			m.rows[i] = row{node: n}
		}
		return
	}

	var tasks []domain.Node
	byPath := make(map[string]domain.Node)
	for _, n := range m.nodes {
		if n.IsTask() && n.Path != nil {
			tasks = append(tasks, n)
			byPath[n.Path.String()] = n
		}
	}
	matches := usecase.MatchTasks(tasks, query, 0)
	m.rows = make([]row, 0, len(matches))
	for _, match := range matches {
		n := byPath[match.Path.String()]
		n.Depth = 0
		m.rows = append(m.rows, row{node: n, matched: match.MatchedIndexes})
	}
}

// selectByPath moves the cursor to the row addressed by p, keeping the
// current index when p is not visible.
func (m *Model) selectByPath(p domain.Path) {
	if p != nil {
		for i, r := range m.rows {
			if r.node.Path != nil && slices.Equal(r.node.Path, p) {
				m.moveCursor(i)
				return
			}
		}
	}
	m.moveCursor(m.cursor)
}

// moveCursor clamps i to the visible rows and scrolls to it.
func (m *Model) moveCursor(i int) {
	m.cursor = max(0, min(i, len(m.rows)-1))
	m.ensureVisible()
}

// ensureVisible scrolls the list so the cursor row is on screen.
func (m *Model) ensureVisible() {
	h := m.listHeight()
	if h <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(0, min(m.offset, len(m.rows)-h))
}

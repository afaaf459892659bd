package tui

import (
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tick/internal/app"
	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/testutil"
	"github.com/runoshun/tick/internal/usecase"
)

// Outline rows of testutil.SampleChecklist.
const (
	rowLaunch = 0
	rowPrep   = 2
	rowA      = 3
	rowB      = 4
	rowX      = 5
	rowD      = 7
	rowD2     = 9
	rowPhase2 = 11
	rowWrap   = 12
	rowE      = 13
	rowCount  = 14
)

func newTestModel(t *testing.T, c *domain.Checklist) (*Model, *app.Container, *testutil.MockChecklistRepository) {
	t.Helper()
	repo := testutil.NewMockChecklistRepository(c)
	container := app.NewWithDeps(app.Config{}, repo, repo, repo, nil)
	m := New(container)
	t.Cleanup(m.Close)
	m.writeClipboard = func(string) error { return nil }
	run(t, m, m.loadChecklist())
	return m, container, repo
}

// run executes cmd and feeds its message back into the model until no
// follow-up command remains. Batches are not expected here.
func run(t *testing.T, m *Model, cmd tea.Cmd) tea.Msg {
	t.Helper()
	var last tea.Msg
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return last
		}
		last = msg
		_, cmd = m.Update(msg)
	}
	return last
}

func press(m *Model, keys string) tea.Cmd {
	var msg tea.KeyMsg
	switch keys {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func selected(t *testing.T, m *Model) domain.Node {
	t.Helper()
	node, ok := m.SelectedNode()
	require.True(t, ok)
	return node
}

// =============================================================================
// Loading
// =============================================================================

func TestUpdate_MsgChecklistLoaded(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())

	assert.True(t, m.loaded)
	assert.Len(t, m.rows, rowCount)
	assert.Equal(t, domain.Progress{Completed: 2, Total: 7}, m.total)
	assert.Equal(t, "Launch", selected(t, m).Name())
	assert.Nil(t, m.rows[rowX].node.Path)
}

func TestUpdate_MsgChecklistLoaded_KeepsSelection(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowE

	m.Update(MsgChecklistLoaded{Nodes: m.nodes[rowPhase2:], Progress: m.total})

	assert.Equal(t, "E", selected(t, m).Name())
	assert.Equal(t, 2, m.cursor)
}

func TestUpdate_MsgError(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.mode = ModeConfirm
	m.confirmAction = ConfirmDelete

	m.Update(MsgError{Err: errors.New("boom")})

	assert.EqualError(t, m.err, "boom")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, ConfirmNone, m.confirmAction)
}

func TestUpdate_NotInitialized(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	assert.ErrorIs(t, m.err, domain.ErrNotInitialized)
	assert.False(t, m.loaded)
}

func TestUpdate_MsgChanged(t *testing.T) {
	m, container, _ := newTestModel(t, testutil.SampleChecklist())

	_, err := container.ToggleTaskUseCase().Execute(t.Context(), usecase.ToggleTaskInput{Path: domain.TaskPath(0, 1, 0, 0)})
	require.NoError(t, err)

	msg := m.waitForChange()()
	changed, ok := msg.(MsgChanged)
	require.True(t, ok)
	assert.Equal(t, domain.ChangeToggle, changed.Change.Kind)

	_, cmd := m.Update(changed)
	assert.NotNil(t, cmd)
}

func TestModel_Close(t *testing.T) {
	m, container, _ := newTestModel(t, testutil.SampleChecklist())
	m.Close()

	_, err := container.ToggleTaskUseCase().Execute(t.Context(), usecase.ToggleTaskInput{Path: domain.TaskPath(0, 1, 0, 0)})
	require.NoError(t, err)

	assert.Empty(t, m.changes)
}

// =============================================================================
// Navigation
// =============================================================================

func TestUpdate_Navigation(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())

	press(m, "k")
	assert.Equal(t, 0, m.cursor, "cursor stays on the first row")

	press(m, "j")
	press(m, "j")
	assert.Equal(t, rowPrep, m.cursor)

	press(m, "G")
	assert.Equal(t, rowE, m.cursor)

	press(m, "j")
	assert.Equal(t, rowE, m.cursor, "cursor stays on the last row")

	press(m, "g")
	assert.Equal(t, rowLaunch, m.cursor)
}

func TestUpdate_Scrolls(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: reservedLines + 3})

	press(m, "G")
	assert.Equal(t, rowCount-3, m.offset)

	press(m, "g")
	assert.Equal(t, 0, m.offset)
}

func TestUpdate_Quit(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_Help(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())

	press(m, "?")
	assert.Equal(t, ModeHelp, m.mode)

	press(m, "?")
	assert.Equal(t, ModeNormal, m.mode)
}

// =============================================================================
// Completion
// =============================================================================

func TestUpdate_ToggleTask(t *testing.T) {
	m, _, repo := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowE

	run(t, m, press(m, " "))

	assert.Equal(t, domain.Progress{Completed: 3, Total: 7}, m.total)
	assert.Equal(t, "E", selected(t, m).Name())
	assert.Equal(t, "E: done", m.status)

	task, ok := repo.Checklist.Task(domain.TaskPath(0, 1, 0, 0))
	require.True(t, ok)
	assert.True(t, task.Completed)
}

func TestUpdate_ToggleSubtask(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowD2

	run(t, m, press(m, "x"))

	assert.Equal(t, domain.Progress{Completed: 3, Total: 7}, m.total)
	assert.True(t, selected(t, m).Task.Completed)
}

func TestUpdate_ToggleGroup(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowPrep

	run(t, m, press(m, " "))
	assert.Equal(t, domain.Progress{Completed: 6, Total: 7}, m.total)
	assert.True(t, selected(t, m).Progress().Done())

	run(t, m, press(m, " "))
	assert.Equal(t, domain.Progress{Completed: 0, Total: 7}, m.total, "a finished group is reset")
}

func TestUpdate_ToggleUnaddressable(t *testing.T) {
	m, _, repo := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowX

	cmd := press(m, " ")

	assert.Nil(t, cmd)
	assert.ErrorIs(t, m.err, errUnaddressable)
	assert.Zero(t, repo.SaveCount)
}

func TestUpdate_RowsAreSnapshots(t *testing.T) {
	m, container, _ := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowE
	shown := selected(t, m).Task

	shared, err := container.State.Load()
	require.NoError(t, err)
	live, ok := shared.Task(domain.TaskPath(0, 1, 0, 0))
	require.True(t, ok)
	assert.NotSame(t, live, shown)

	msg := m.toggleTask(domain.TaskPath(0, 1, 0, 0))()
	require.IsType(t, MsgMutated{}, msg)
	assert.False(t, shown.Completed, "rows keep their values until the next load")
	assert.True(t, live.Completed)
}

func TestUpdate_ConcurrentCommands(t *testing.T) {
	m, _, repo := newTestModel(t, testutil.SampleChecklist())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	saves := repo.SaveCount

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.toggleTask(domain.TaskPath(0, 1, 0, 0))()
		}()
		go func() {
			defer wg.Done()
			m.loadChecklist()()
		}()
	}
	for i := 0; i < 20; i++ {
		_ = m.View()
	}
	wg.Wait()

	assert.Equal(t, saves+8, repo.SaveCount)
	task, ok := repo.Checklist.Task(domain.TaskPath(0, 1, 0, 0))
	require.True(t, ok)
	assert.False(t, task.Completed, "an even number of toggles")
}

// =============================================================================
// Reordering
// =============================================================================

func TestUpdate_MoveDown(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowA

	run(t, m, press(m, "J"))

	assert.Equal(t, rowB, m.cursor)
	node := selected(t, m)
	assert.Equal(t, "A", node.Name())
	assert.Equal(t, domain.TaskPath(0, 0, 0, 1), node.Path)
	assert.Equal(t, "B", m.rows[rowA].node.Name())
}

func TestUpdate_MoveUp(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowB

	run(t, m, press(m, "K"))

	assert.Equal(t, rowA, m.cursor)
	assert.Equal(t, "B", selected(t, m).Name())
}

func TestUpdate_MoveUp_FirstSibling(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowA

	assert.Nil(t, press(m, "K"))
}

func TestUpdate_MoveDown_LastSibling(t *testing.T) {
	m, _, repo := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowPhase2

	cmd := press(m, "J")
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Zero(t, repo.SaveCount)
}

func TestUpdate_MoveDown_LastTask(t *testing.T) {
	for name, cursor := range map[string]int{"only task": rowE, "last of several": rowD, "last subtask": rowD2} {
		t.Run(name, func(t *testing.T) {
			m, _, repo := newTestModel(t, testutil.SampleChecklist())
			m.cursor = cursor
			want := selected(t, m).Path

			cmd := press(m, "J")
			require.NotNil(t, cmd)
			assert.Nil(t, cmd())
			assert.Zero(t, repo.SaveCount)
			assert.Equal(t, want, selected(t, m).Path)
		})
	}
}

func TestUpdate_MoveCategory(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())

	run(t, m, press(m, "J"))

	assert.ErrorIs(t, m.err, domain.ErrInvalidMove)
}

// =============================================================================
// Editing
// =============================================================================

func TestUpdate_AddTask(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowPrep

	press(m, "a")
	assert.Equal(t, ModeAdd, m.mode)
	assert.Equal(t, domain.Path{0, 0, 0}, m.target)

	typeText(m, "F")
	run(t, m, press(m, "enter"))

	assert.Equal(t, ModeNormal, m.mode)
	node := selected(t, m)
	assert.Equal(t, "F", node.Name())
	assert.Equal(t, domain.TaskPath(0, 0, 0, 3), node.Path)
	assert.Equal(t, domain.Progress{Completed: 2, Total: 8}, m.total)
	assert.Equal(t, `Added "F"`, m.status)
}

func TestUpdate_AddSubtaskSibling(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowD2

	press(m, "a")
	assert.Equal(t, domain.TaskPath(0, 0, 0, 2), m.target)
}

func TestUpdate_AddCategory(t *testing.T) {
	m, _, _ := newTestModel(t, &domain.Checklist{})
	assert.Empty(t, m.rows)

	press(m, "A")
	typeText(m, "Release")
	run(t, m, press(m, "enter"))

	require.Len(t, m.rows, 1)
	assert.Equal(t, "Release", selected(t, m).Name())
	assert.Equal(t, domain.Path{0}, selected(t, m).Path)
}

func TestUpdate_AddEmptyName(t *testing.T) {
	m, _, repo := newTestModel(t, testutil.SampleChecklist())

	press(m, "A")
	cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.ErrorIs(t, m.err, domain.ErrEmptyName)
	assert.Zero(t, repo.SaveCount)
}

func TestUpdate_AddCancel(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())

	press(m, "a")
	typeText(m, "abc")
	press(m, "esc")

	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.input.Value())
}

func TestUpdate_Rename(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowB

	press(m, "r")
	assert.Equal(t, ModeRename, m.mode)
	assert.Equal(t, "B", m.input.Value())

	m.input.SetValue("Bee")
	run(t, m, press(m, "enter"))

	node := selected(t, m)
	assert.Equal(t, "Bee", node.Name())
	assert.Equal(t, domain.TaskPath(0, 0, 0, 1), node.Path)
}

func TestUpdate_Delete(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowWrap

	press(m, "d")
	assert.Equal(t, ModeConfirm, m.mode)
	press(m, "n")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, m.rows, rowCount)

	press(m, "d")
	run(t, m, press(m, "y"))

	assert.Len(t, m.rows, rowCount-2)
	assert.Equal(t, domain.Progress{Completed: 2, Total: 6}, m.total)
	assert.Equal(t, `Deleted "Wrap" (1 tasks removed)`, m.status)
	assert.Equal(t, "Phase 2", selected(t, m).Name())
}

// =============================================================================
// View state
// =============================================================================

func TestUpdate_Filter(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())

	press(m, "/")
	assert.Equal(t, ModeFilter, m.mode)

	typeText(m, "D2")
	require.Len(t, m.rows, 1)
	assert.Equal(t, "D2", selected(t, m).Name())
	assert.Zero(t, selected(t, m).Depth)
	assert.NotEmpty(t, m.rows[0].matched)

	press(m, "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, m.rows, 1, "filter stays applied")

	press(m, "esc")
	assert.Len(t, m.rows, rowCount)
}

func TestUpdate_FilterExcludesUnaddressable(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())

	press(m, "/")
	typeText(m, "C")

	for _, r := range m.rows {
		assert.NotNil(t, r.node.Path)
	}
}

func TestUpdate_HideCompleted(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())

	run(t, m, press(m, "h"))

	assert.True(t, m.hideCompleted)
	for _, r := range m.rows {
		if r.node.IsTask() {
			assert.False(t, r.node.Task.Completed, r.node.Name())
		}
	}
	assert.Less(t, len(m.rows), rowCount)

	run(t, m, press(m, "h"))
	assert.Len(t, m.rows, rowCount)
}

func TestUpdate_Refresh(t *testing.T) {
	m, _, repo := newTestModel(t, testutil.SampleChecklist())
	loads := repo.LoadCount

	run(t, m, press(m, "R"))

	assert.Equal(t, loads+1, repo.LoadCount)
	assert.Len(t, m.rows, rowCount)
}

func TestUpdate_Yank(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	var copied string
	m.writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	m.cursor = rowB

	run(t, m, press(m, "y"))

	assert.Equal(t, "B", copied)
	assert.Equal(t, "Copied B", m.status)
}

func TestUpdate_YankError(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.writeClipboard = func(string) error { return errors.New("no clipboard") }

	run(t, m, press(m, "y"))

	assert.EqualError(t, m.err, "copy to clipboard: no clipboard")
}

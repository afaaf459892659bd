package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/testutil"
)

func sized(m *Model, height int) *Model {
	m.Update(tea.WindowSizeMsg{Width: 100, Height: height})
	return m
}

func TestView_BeforeWindowSize(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())

	assert.Equal(t, "Loading...", m.View())
}

func TestView_Outline(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	view := sized(m, 0).View()

	assert.Contains(t, view, "tick")
	assert.Contains(t, view, "2/7 (28%)")
	assert.Contains(t, view, "[-] Launch")
	assert.Contains(t, view, "[-] Prep")
	assert.Contains(t, view, "[ ] Empty")
	assert.Contains(t, view, "[x] A")
	assert.Contains(t, view, "#infra")
	assert.Contains(t, view, "0.0.0.2.1")
	assert.Contains(t, view, "1/3")
}

func TestView_Detail(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	m.cursor = rowA

	view := sized(m, 0).View()

	assert.Contains(t, view, "Runbook <https://example.com/runbook>")
}

func TestView_Window(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	sized(m, reservedLines+3)

	press(m, "G")
	view := m.View()

	assert.Contains(t, view, "Wrap")
	assert.NotContains(t, view, "Launch")
}

func TestView_Empty(t *testing.T) {
	m, _, _ := newTestModel(t, &domain.Checklist{})

	assert.Contains(t, sized(m, 0).View(), "No tasks. Press A to add a category.")
}

func TestView_NoMatches(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	sized(m, 0)

	press(m, "/")
	typeText(m, "zzz")

	assert.Contains(t, m.View(), "No matching tasks.")
}

func TestView_ConfirmDelete(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	sized(m, 0)

	press(m, "d")

	assert.Contains(t, m.View(), `Delete category "Launch" and its 7 tasks?`)
}

func TestView_AddPrompt(t *testing.T) {
	tests := []struct {
		name   string
		target domain.Path
		want   string
	}{
		{"root", nil, "New category: "},
		{"category", domain.Path{0}, "New phase: "},
		{"phase", domain.Path{0, 0}, "New subcategory: "},
		{"subcategory", domain.Path{0, 0, 0}, "New task: "},
		{"task", domain.TaskPath(0, 0, 0, 2), "New subtask: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Model{target: tt.target}
			assert.Equal(t, tt.want, m.addPrompt())
		})
	}
}

func TestView_Error(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	sized(m, 0)
	m.cursor = rowX

	press(m, " ")

	assert.Contains(t, m.View(), "Error: "+errUnaddressable.Error())
}

func TestView_Help(t *testing.T) {
	m, _, _ := newTestModel(t, testutil.SampleChecklist())
	sized(m, 0)

	press(m, "?")
	view := m.View()

	assert.Contains(t, view, "KEYBOARD SHORTCUTS")
	assert.Contains(t, view, "add category")
	assert.Contains(t, view, "hide done")
}

func TestHighlight(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, s.TaskTodo.Render("Deploy"), highlight("Deploy", nil, s.TaskTodo, s.Match))
	// Without a color profile every rune renders as itself.
	assert.Equal(t, "Déploy", highlight("Déploy", []int{0, 1, 4}, s.TaskTodo, s.Match))
}

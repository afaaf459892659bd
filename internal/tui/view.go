package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/tick/internal/domain"
)

// reservedLines is the number of lines around the outline: header, blank,
// blank, detail, prompt, status and help.
const reservedLines = 7

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeNormal, ModeFilter, ModeConfirm, ModeAdd, ModeRename:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// listHeight returns how many outline rows fit on screen, or 0 before the
// first window size is known.
func (m *Model) listHeight() int {
	if m.height == 0 {
		return 0
	}
	return max(1, m.height-reservedLines)
}

// viewMain renders the outline with its header and footer.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewOutline())
	b.WriteString("\n")
	b.WriteString(m.viewDetail())
	b.WriteString("\n")

	switch m.mode {
	case ModeNormal, ModeHelp:
		if q := m.filterInput.Value(); q != "" {
			b.WriteString(m.styles.Footer.Render("Filtered: " + q))
		}
	case ModeFilter:
		b.WriteString(m.styles.InputPrompt.Render("Filter: "))
		b.WriteString(m.filterInput.View())
	case ModeAdd:
		b.WriteString(m.styles.InputPrompt.Render(m.addPrompt()))
		b.WriteString(m.input.View())
	case ModeRename:
		b.WriteString(m.styles.InputPrompt.Render("Rename: "))
		b.WriteString(m.input.View())
	case ModeConfirm:
		b.WriteString(m.viewConfirm())
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(m.styles.StatusMsg.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// viewHeader renders the title, overall progress bar and counts.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("tick")
	bar := m.progress.ViewAs(float64(m.total.Percent()) / 100)
	counts := m.styles.HeaderInfo.Render(fmt.Sprintf("%d/%d (%d%%)",
		m.total.Completed, m.total.Total, m.total.Percent()))
	if m.hideCompleted {
		counts += m.styles.HeaderInfo.Render("  hiding done")
	}
	return m.styles.Header.Render(title + "  " + bar + "  " + counts)
}

// viewOutline renders the visible window of rows.
func (m *Model) viewOutline() string {
	if !m.loaded {
		return m.styles.Footer.Render("Loading checklist...") + "\n"
	}
	if len(m.rows) == 0 {
		if m.filterInput.Value() != "" {
			return m.styles.Footer.Render("No matching tasks.") + "\n"
		}
		return m.styles.Footer.Render("No tasks. Press A to add a category.") + "\n"
	}

	start, end := 0, len(m.rows)
	if h := m.listHeight(); h > 0 {
		start = m.offset
		end = min(len(m.rows), start+h)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow renders one outline line.
func (m *Model) renderRow(r row, selected bool) string {
	cursor := m.styles.CursorNormal.Render("  ")
	if selected {
		cursor = m.styles.CursorSelected.Render("> ")
	}
	indent := strings.Repeat("  ", r.node.Depth)

	var line string
	if r.node.IsTask() {
		line = m.renderTask(r, selected)
	} else {
		line = m.renderGroup(r.node, selected)
	}
	if r.node.Path != nil {
		line += "  " + m.styles.Path.Render(r.node.Path.String())
	}
	return cursor + indent + line
}

func (m *Model) renderTask(r row, selected bool) string {
	task := r.node.Task
	box := "[ ]"
	style := m.styles.TaskTodo
	if task.Completed {
		box = "[x]"
		style = m.styles.TaskDone
	}
	if selected {
		style = m.styles.Selected
	}

	var b strings.Builder
	b.WriteString(style.Render(box) + " ")
	b.WriteString(highlight(task.Name, r.matched, style, m.styles.Match))

	if total := r.node.Progress(); total.Total > 1 {
		b.WriteString(" " + m.renderCount(total))
	}
	for _, tag := range task.Tags {
		b.WriteString(" " + m.styles.Tag.Render("#"+tag))
	}
	return b.String()
}

func (m *Model) renderGroup(n domain.Node, selected bool) string {
	progress := n.Progress()
	box := "[ ]"
	switch {
	case progress.Done():
		box = "[x]"
	case progress.Completed > 0:
		box = "[-]"
	}

	var style lipgloss.Style
	switch n.Depth {
	case 0:
		style = m.styles.Category
	case 1:
		style = m.styles.Phase
	default:
		style = m.styles.Subcategory
	}
	if selected {
		style = m.styles.Selected
	}
	return style.Render(box+" "+n.Name()) + "  " + m.renderCount(progress)
}

func (m *Model) renderCount(p domain.Progress) string {
	text := fmt.Sprintf("%d/%d", p.Completed, p.Total)
	if p.Done() {
		return m.styles.CountDone.Render(text)
	}
	return m.styles.Count.Render(text)
}

// highlight renders name with the runes at the matched byte offsets styled.
func highlight(name string, matched []int, base, match lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(name)
	}
	var b strings.Builder
	for i, r := range name {
		if slices.Contains(matched, i) {
			b.WriteString(match.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// viewDetail renders tags and links of the selected task.
func (m *Model) viewDetail() string {
	node, ok := m.SelectedNode()
	if !ok || !node.IsTask() {
		return ""
	}
	var parts []string
	if len(node.Task.Tags) > 0 {
		parts = append(parts, m.styles.DetailLabel.Render("Tags: ")+
			m.styles.DetailValue.Render(strings.Join(node.Task.Tags, ", ")))
	}
	if len(node.Task.Links) > 0 {
		links := make([]string, 0, len(node.Task.Links))
		for _, l := range node.Task.Links {
			links = append(links, l.String())
		}
		parts = append(parts, m.styles.DetailLabel.Render("Links: ")+
			m.styles.DetailValue.Render(strings.Join(links, ", ")))
	}
	return strings.Join(parts, "  ")
}

// addPrompt describes where a new node will be added.
func (m *Model) addPrompt() string {
	switch len(m.target) {
	case 0:
		return "New category: "
	case domain.DepthCategory:
		return "New phase: "
	case domain.DepthPhase:
		return "New subcategory: "
	case domain.DepthSubcategory:
		return "New task: "
	}
	return "New subtask: "
}

// viewConfirm renders the confirmation prompt.
func (m *Model) viewConfirm() string {
	node, ok := m.SelectedNode()
	if !ok || m.confirmAction != ConfirmDelete {
		return ""
	}
	question := fmt.Sprintf("Delete %s %q", node.Path.Level(), node.Name())
	if total := node.Progress().Total; !node.IsTask() && total > 0 {
		question += fmt.Sprintf(" and its %d tasks", total)
	}
	title := m.styles.DialogTitle.Render(question + "?")
	return title + m.styles.Footer.Render("  [y] confirm  [n] cancel")
}

// viewHelp renders the full keybinding help.
func (m *Model) viewHelp() string {
	full := m.help
	full.ShowAll = true
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")
	return m.styles.Help.Render(title + "\n\n" + full.View(m.keys))
}

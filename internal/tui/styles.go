package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	// Level colors
	Category    lipgloss.Color
	Phase       lipgloss.Color
	Subcategory lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)

	Category:    lipgloss.Color("#6C5CE7"), // Purple
	Phase:       lipgloss.Color("#74B9FF"), // Light blue
	Subcategory: lipgloss.Color("#A29BFE"), // Lavender
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style
	HeaderInfo lipgloss.Style

	// Outline
	Category       lipgloss.Style
	Phase          lipgloss.Style
	Subcategory    lipgloss.Style
	TaskTodo       lipgloss.Style
	TaskDone       lipgloss.Style
	Selected       lipgloss.Style
	CursorNormal   lipgloss.Style
	CursorSelected lipgloss.Style
	Count          lipgloss.Style
	CountDone      lipgloss.Style
	Path           lipgloss.Style
	Match          lipgloss.Style
	Tag            lipgloss.Style

	// Detail line
	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style

	// Help
	Help lipgloss.Style

	// Footer
	Footer lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Input
	InputPrompt lipgloss.Style

	// Messages
	ErrorMsg  lipgloss.Style
	StatusMsg lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		HeaderInfo: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Category: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Category),

		Phase: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Phase),

		Subcategory: lipgloss.NewStyle().
			Foreground(Colors.Subcategory),

		TaskTodo: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		TaskDone: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Strikethrough(true),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TitleSelected),

		CursorNormal: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		CursorSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		Count: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		CountDone: lipgloss.NewStyle().
			Foreground(Colors.Success),

		Path: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Faint(true),

		Match: lipgloss.NewStyle().
			Foreground(Colors.Warning).
			Underline(true),

		Tag: lipgloss.NewStyle().
			Foreground(Colors.Secondary),

		DetailLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		DetailValue: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Dialog: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Warning),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Warning),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		StatusMsg: lipgloss.NewStyle().
			Foreground(Colors.Success),
	}
}

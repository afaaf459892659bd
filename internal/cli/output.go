package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/tick/internal/domain"
)

// parsePathArg parses a path argument. "" and "." address the root.
func parsePathArg(s string) (domain.Path, error) {
	if s == "" || s == "." {
		return nil, nil
	}
	return domain.ParsePath(s)
}

// checkbox renders a task's completion state.
func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// groupCheckbox renders a group as checked when all of its tasks are done.
func groupCheckbox(p domain.Progress) string {
	return checkbox(p.Done())
}

// formatProgress renders "done/total (pct%)".
func formatProgress(p domain.Progress) string {
	return fmt.Sprintf("%d/%d (%d%%)", p.Completed, p.Total, p.Percent())
}

// printOutline prints nodes indented relative to the first one, each line
// starting with prefix. Addressable nodes are suffixed with their path.
func printOutline(w io.Writer, nodes []domain.Node, prefix string) {
	if len(nodes) == 0 {
		return
	}
	base := nodes[0].Depth
	for _, n := range nodes {
		indent := prefix + strings.Repeat("  ", max(n.Depth-base, 0))
		if n.IsTask() {
			_, _ = fmt.Fprintf(w, "%s%s %s", indent, checkbox(n.Task.Completed), n.Name())
		} else {
			p := n.Progress()
			_, _ = fmt.Fprintf(w, "%s%s %s  %d/%d", indent, groupCheckbox(p), n.Name(), p.Completed, p.Total)
		}
		if n.Path != nil {
			_, _ = fmt.Fprintf(w, "  (%s)", n.Path)
		}
		_, _ = fmt.Fprintln(w)
	}
}

// printTaskDetails prints a task with its links, tags and nested tasks.
func printTaskDetails(w io.Writer, p domain.Path, task *domain.Task, subtasks []domain.Node, progress domain.Progress) {
	_, _ = fmt.Fprintf(w, "%s %s  (%s)\n", checkbox(task.Completed), task.Name, p)
	if len(task.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "Tags: [%s]\n", strings.Join(task.Tags, ", "))
	}
	if len(task.Links) > 0 {
		_, _ = fmt.Fprintln(w, "Links:")
		for _, l := range task.Links {
			_, _ = fmt.Fprintf(w, "  - %s\n", l)
		}
	}
	if len(subtasks) > 0 {
		_, _ = fmt.Fprintf(w, "Subtasks: %s\n", formatProgress(progress))
		printOutline(w, subtasks, "  ")
	}
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Path depths.
const (
	DepthCategory    = 1
	DepthPhase       = 2
	DepthSubcategory = 3
	DepthTask        = 4
	DepthSubtask     = 5
)

// Path addresses a node by 0-based indices from the root:
// category, phase, subcategory, task, subtask.
// Category, phase and subcategory indices are raw list positions. Task and
// subtask indices count Task-shaped entries only.
type Path []int

// ParsePath parses a dot-separated path such as "0.1.2.3".
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	parts := strings.Split(s, ".")
	if len(parts) > DepthSubtask {
		return nil, fmt.Errorf("%w: %q is deeper than %d levels", ErrInvalidPath, s, DepthSubtask)
	}
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
		p = append(p, n)
	}
	return p, nil
}

// TaskPath builds the path of a top-level task.
func TaskPath(category, phase, subcategory, task int) Path {
	return Path{category, phase, subcategory, task}
}

// String returns the dot-separated form.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Child returns a copy of p extended by index.
func (p Path) Child(index int) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, index)
}

// Parent returns p without its last index.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Last returns the last index of p, or -1 for an empty path.
func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// IsTask returns true if p has task or subtask depth.
func (p Path) IsTask() bool {
	return len(p) == DepthTask || len(p) == DepthSubtask
}

// Level returns a human-readable name for the node p addresses.
func (p Path) Level() string {
	switch len(p) {
	case DepthCategory:
		return "category"
	case DepthPhase:
		return "phase"
	case DepthSubcategory:
		return "subcategory"
	case DepthTask:
		return "task"
	case DepthSubtask:
		return "subtask"
	}
	return "root"
}

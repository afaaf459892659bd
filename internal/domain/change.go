package domain

import (
	"fmt"
	"strings"
)

// ChangeKind identifies what a mutation did to the tree.
type ChangeKind string

// Change kinds.
const (
	ChangeToggle            ChangeKind = "toggle"
	ChangeSetCompleted      ChangeKind = "set_completed"
	ChangeSetGroupCompleted ChangeKind = "set_group_completed"
	ChangeReorder           ChangeKind = "reorder"
	ChangeRename            ChangeKind = "rename"
	ChangeAdd               ChangeKind = "add"
	ChangeDelete            ChangeKind = "delete"
	ChangeReplace           ChangeKind = "replace"
)

// Change describes a successful mutation so that rendering and persistence
// can react to it independently.
// For reorders, Path is the parent whose children moved and From/To are the
// indices that were passed in. For every other kind Path is the node itself.
// Fields are ordered to minimize memory padding.
type Change struct {
	Kind      ChangeKind `json:"kind"`
	Name      string     `json:"name,omitempty"`
	Path      Path       `json:"path"`
	From      int        `json:"from"`
	To        int        `json:"to"`
	Affected  int        `json:"affected"`
	Completed bool       `json:"completed"`
}

// String returns a short log-friendly description.
func (c Change) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", c.Kind, pathOrRoot(c.Path))
	switch c.Kind {
	case ChangeToggle, ChangeSetCompleted:
		fmt.Fprintf(&b, " completed=%t", c.Completed)
	case ChangeSetGroupCompleted:
		fmt.Fprintf(&b, " completed=%t affected=%d", c.Completed, c.Affected)
	case ChangeReorder:
		fmt.Fprintf(&b, " from=%d to=%d", c.From, c.To)
	case ChangeRename, ChangeAdd, ChangeDelete:
		fmt.Fprintf(&b, " name=%q", c.Name)
	}
	return b.String()
}

func pathOrRoot(p Path) string {
	if len(p) == 0 {
		return "root"
	}
	return p.String()
}

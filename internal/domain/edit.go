package domain

import (
	"slices"
	"strings"
)

// DefaultSubtaskField is the list field new subtasks are appended to.
const DefaultSubtaskField = "subtasks"

// RenameTask renames the task at p. An empty or unchanged name fails.
func (c *Checklist) RenameTask(p Path, name string) (Change, bool) {
	t, ok := c.Task(p)
	name = strings.TrimSpace(name)
	if !ok || name == "" || name == t.Name {
		return Change{}, false
	}
	t.Name = name
	return Change{Kind: ChangeRename, Path: p, Name: name, Affected: 1}, true
}

// RenameGroup renames the category, phase or subcategory at p.
func (c *Checklist) RenameGroup(p Path, name string) (Change, bool) {
	g, ok := c.Group(p)
	name = strings.TrimSpace(name)
	if !ok || name == "" || name == g.Name {
		return Change{}, false
	}
	g.Name = name
	return Change{Kind: ChangeRename, Path: p, Name: name, Affected: 1}, true
}

// AddCategory appends a category.
func (c *Checklist) AddCategory(name string) (Change, bool) {
	return c.AddGroup(nil, name)
}

// AddPhase appends a phase to category i.
func (c *Checklist) AddPhase(i int, name string) (Change, bool) {
	return c.AddGroup(Path{i}, name)
}

// AddSubcategory appends a subcategory to phase j of category i.
func (c *Checklist) AddSubcategory(i, j int, name string) (Change, bool) {
	return c.AddGroup(Path{i, j}, name)
}

// AddGroup appends an empty group under parent: the root, a category or a
// phase.
func (c *Checklist) AddGroup(parent Path, name string) (Change, bool) {
	name = strings.TrimSpace(name)
	if name == "" || len(parent) >= DepthSubcategory {
		return Change{}, false
	}
	list, ok := c.groupList(parent)
	if !ok {
		return Change{}, false
	}
	*list = append(*list, GroupEntry(NewGroup(name)))
	return Change{Kind: ChangeAdd, Path: parent.Child(len(*list) - 1), Name: name, Affected: 1}, true
}

// AddTask appends a new incomplete task. A subcategory parent receives a
// top-level task; a task parent receives a subtask in its first list field,
// or in a new "subtasks" field when it has none.
func (c *Checklist) AddTask(parent Path, name string) (Change, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Change{}, false
	}
	var list *[]Entry
	switch len(parent) {
	case DepthSubcategory:
		g, ok := c.Group(parent)
		if !ok {
			return Change{}, false
		}
		list = &g.Children
	case DepthTask:
		t, ok := c.Task(parent)
		if !ok {
			return Change{}, false
		}
		if len(t.Lists) == 0 {
			t.Lists = append(t.Lists, &TaskList{Key: DefaultSubtaskField, Entries: []Entry{}})
		}
		list = &t.Lists[0].Entries
	default:
		return Change{}, false
	}
	*list = append(*list, TaskEntry(NewTask(name)))
	return Change{Kind: ChangeAdd, Path: parent.Child(TaskCount(*list) - 1), Name: name, Affected: 1}, true
}

// Delete removes the node at p. Groups take their whole subtree with them;
// a subtask is removed from the list field holding it.
func (c *Checklist) Delete(p Path) (Change, bool) {
	var (
		list *[]Entry
		raw  int
		ok   bool
	)
	switch {
	case p.IsTask():
		list, raw, ok = c.owningList(p)
	case len(p) >= DepthCategory:
		if _, ok = c.Group(p); ok {
			list, ok = c.groupList(p.Parent())
			raw = p.Last()
		}
	}
	if !ok {
		return Change{}, false
	}
	removed := (*list)[raw]
	affected := CountTasks([]Entry{removed}).Total
	*list = slices.Delete(*list, raw, raw+1)
	return Change{Kind: ChangeDelete, Path: p, Name: removed.Name(), Affected: affected}, true
}

// DeletePhase removes phase j of category i.
func (c *Checklist) DeletePhase(i, j int) (Change, bool) {
	return c.Delete(Path{i, j})
}

// DeleteSubcategory removes subcategory k.
func (c *Checklist) DeleteSubcategory(i, j, k int) (Change, bool) {
	return c.Delete(Path{i, j, k})
}

// DeleteTask removes the task or subtask at p.
func (c *Checklist) DeleteTask(p Path) (Change, bool) {
	if !p.IsTask() {
		return Change{}, false
	}
	return c.Delete(p)
}

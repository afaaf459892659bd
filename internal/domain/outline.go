package domain

// Node is one line of the flattened checklist outline.
// Path is nil for nodes no path can address, such as a task inside a group
// nested in a subcategory, or a subtask shadowed by an earlier list field.
// Fields are ordered to minimize memory padding.
type Node struct {
	Path  Path
	Task  *Task
	Group *Group
	Depth int
}

// Name returns the node's name.
func (n Node) Name() string {
	if n.Task != nil {
		return n.Task.Name
	}
	if n.Group != nil {
		return n.Group.Name
	}
	return ""
}

// IsTask returns true if the node is a task.
func (n Node) IsTask() bool {
	return n.Task != nil
}

// Progress counts the tasks under the node, the node itself included when it
// is a task.
func (n Node) Progress() Progress {
	switch {
	case n.Task != nil:
		return CountTasks([]Entry{TaskEntry(n.Task)})
	case n.Group != nil:
		return CountTasks(n.Group.Children)
	}
	return Progress{}
}

// Outline flattens the checklist in display order. Other entries are skipped.
func (c *Checklist) Outline() []Node {
	if c == nil {
		return nil
	}
	var nodes []Node
	for i, e := range c.Categories {
		nodes = appendOutline(nodes, e, Path{i}, 0)
	}
	return nodes
}

// OutlineOf flattens the subtree at p, p's own node first.
func (c *Checklist) OutlineOf(p Path) ([]Node, bool) {
	if len(p) == 0 {
		return c.Outline(), true
	}
	if p.IsTask() {
		t, ok := c.Task(p)
		if !ok {
			return nil, false
		}
		return appendOutline(nil, TaskEntry(t), p, len(p)-1), true
	}
	g, ok := c.Group(p)
	if !ok {
		return nil, false
	}
	return appendOutline(nil, GroupEntry(g), p, len(p)-1), true
}

// Tasks returns every addressable task node.
func (c *Checklist) Tasks() []Node {
	var tasks []Node
	for _, n := range c.Outline() {
		if n.IsTask() && n.Path != nil {
			tasks = append(tasks, n)
		}
	}
	return tasks
}

// appendOutline appends e and its descendants. p is e's own path, or nil.
func appendOutline(nodes []Node, e Entry, p Path, depth int) []Node {
	switch {
	case e.Group != nil:
		nodes = append(nodes, Node{Path: p, Group: e.Group, Depth: depth})
		compacted := 0
		for raw, child := range e.Group.Children {
			nodes = appendOutline(nodes, child, childPath(p, child, raw, &compacted), depth+1)
		}
	case e.Task != nil:
		nodes = append(nodes, Node{Path: p, Task: e.Task, Depth: depth})
		for _, l := range e.Task.Lists {
			compacted := 0
			for _, child := range l.Entries {
				var sub Path
				if child.IsTask() && len(p) == DepthTask {
					if found, ok := e.Task.Subtask(compacted); ok && found == child.Task {
						sub = p.Child(compacted)
					}
				}
				if child.IsTask() {
					compacted++
				}
				nodes = appendOutline(nodes, child, sub, depth+1)
			}
		}
	}
	return nodes
}

// childPath returns the path of a group's child. Below subcategory depth only
// tasks are addressable, by compacted index.
func childPath(parent Path, child Entry, raw int, compacted *int) Path {
	if parent == nil {
		return nil
	}
	if len(parent) < DepthSubcategory {
		if child.IsGroup() {
			return parent.Child(raw)
		}
		return nil
	}
	if len(parent) == DepthSubcategory && child.IsTask() {
		p := parent.Child(*compacted)
		*compacted++
		return p
	}
	return nil
}

package domain

// Category returns the category at raw position i.
func (c *Checklist) Category(i int) (*Group, bool) {
	if c == nil {
		return nil, false
	}
	return groupAt(c.Categories, i)
}

// Phase returns phase j of category i.
func (c *Checklist) Phase(i, j int) (*Group, bool) {
	category, ok := c.Category(i)
	if !ok {
		return nil, false
	}
	return groupAt(category.Children, j)
}

// Subcategory returns subcategory k of phase j of category i.
func (c *Checklist) Subcategory(i, j, k int) (*Group, bool) {
	phase, ok := c.Phase(i, j)
	if !ok {
		return nil, false
	}
	return groupAt(phase.Children, k)
}

// Group resolves a category, phase or subcategory path.
func (c *Checklist) Group(p Path) (*Group, bool) {
	switch len(p) {
	case DepthCategory:
		return c.Category(p[0])
	case DepthPhase:
		return c.Phase(p[0], p[1])
	case DepthSubcategory:
		return c.Subcategory(p[0], p[1], p[2])
	}
	return nil, false
}

// Task resolves a task path (depth 4) or subtask path (depth 5).
// Task and subtask indices are compacted: only Task entries are counted.
func (c *Checklist) Task(p Path) (*Task, bool) {
	if !p.IsTask() {
		return nil, false
	}
	subcategory, ok := c.Subcategory(p[0], p[1], p[2])
	if !ok {
		return nil, false
	}
	task, _, ok := taskAt(subcategory.Children, p[3])
	if !ok || len(p) == DepthTask {
		return task, ok
	}
	return task.Subtask(p[4])
}

// Subtask returns the n-th Task of the first list field that has one at
// that compacted position. Links and tags are never searched.
func (t *Task) Subtask(n int) (*Task, bool) {
	for _, l := range t.Lists {
		if sub, _, ok := taskAt(l.Entries, n); ok {
			return sub, true
		}
	}
	return nil, false
}

// TaskCount returns the number of Task entries in entries.
func TaskCount(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.IsTask() {
			n++
		}
	}
	return n
}

// taskPositions returns the raw positions of the Task entries in entries.
func taskPositions(entries []Entry) []int {
	positions := make([]int, 0, len(entries))
	for i, e := range entries {
		if e.IsTask() {
			positions = append(positions, i)
		}
	}
	return positions
}

// taskAt returns the Task at compacted position n together with its raw position.
func taskAt(entries []Entry, n int) (*Task, int, bool) {
	if n < 0 {
		return nil, -1, false
	}
	seen := 0
	for i, e := range entries {
		if !e.IsTask() {
			continue
		}
		if seen == n {
			return e.Task, i, true
		}
		seen++
	}
	return nil, -1, false
}

func groupAt(entries []Entry, i int) (*Group, bool) {
	if i < 0 || i >= len(entries) {
		return nil, false
	}
	g := entries[i].Group
	return g, g != nil
}

// owningList returns the entry list that holds the task at p together with
// the task's raw position in it.
func (c *Checklist) owningList(p Path) (*[]Entry, int, bool) {
	if !p.IsTask() {
		return nil, -1, false
	}
	subcategory, ok := c.Subcategory(p[0], p[1], p[2])
	if !ok {
		return nil, -1, false
	}
	task, raw, ok := taskAt(subcategory.Children, p[3])
	if !ok {
		return nil, -1, false
	}
	if len(p) == DepthTask {
		return &subcategory.Children, raw, true
	}
	for _, l := range task.Lists {
		if _, raw, ok := taskAt(l.Entries, p[4]); ok {
			return &l.Entries, raw, true
		}
	}
	return nil, -1, false
}

// groupList returns the list holding the children of the group at p.
// The empty path addresses the category list.
func (c *Checklist) groupList(p Path) (*[]Entry, bool) {
	if c == nil {
		return nil, false
	}
	if len(p) == 0 {
		return &c.Categories, true
	}
	g, ok := c.Group(p)
	if !ok {
		return nil, false
	}
	return &g.Children, true
}

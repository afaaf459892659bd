package domain

// CollectTasks flattens every Task under entries, depth first.
// A task precedes its nested tasks and siblings keep their order.
// Groups are walked but never emitted.
func CollectTasks(entries []Entry) []*Task {
	var tasks []*Task
	walkTasks(entries, func(t *Task) {
		tasks = append(tasks, t)
	})
	return tasks
}

func walkTasks(entries []Entry, visit func(*Task)) {
	for _, e := range entries {
		switch {
		case e.Task != nil:
			visit(e.Task)
			for _, l := range e.Task.Lists {
				walkTasks(l.Entries, visit)
			}
		case e.Group != nil:
			walkTasks(e.Group.Children, visit)
		}
	}
}

// Progress is a rollup of completed and total tasks.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Percent returns the completion ratio in [0, 100]. An empty subtree is 0%.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Completed * 100 / p.Total
}

// Ratio returns the completion ratio in [0, 1].
func (p Progress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// Done returns true when the subtree has tasks and all of them are completed.
// Group checkboxes are derived from this.
func (p Progress) Done() bool {
	return p.Total > 0 && p.Completed == p.Total
}

// Add returns the sum of two rollups.
func (p Progress) Add(o Progress) Progress {
	return Progress{Completed: p.Completed + o.Completed, Total: p.Total + o.Total}
}

// CountTasks counts the tasks under entries.
func CountTasks(entries []Entry) Progress {
	var p Progress
	walkTasks(entries, func(t *Task) {
		p.Total++
		if t.Completed {
			p.Completed++
		}
	})
	return p
}

// CountCategoryTasks counts the tasks under category i.
func (c *Checklist) CountCategoryTasks(i int) (Progress, bool) {
	g, ok := c.Category(i)
	if !ok {
		return Progress{}, false
	}
	return CountTasks(g.Children), true
}

// CountPhaseTasks counts the tasks under phase j of category i.
func (c *Checklist) CountPhaseTasks(i, j int) (Progress, bool) {
	g, ok := c.Phase(i, j)
	if !ok {
		return Progress{}, false
	}
	return CountTasks(g.Children), true
}

// CountSubcategoryTasks counts the tasks under subcategory k.
func (c *Checklist) CountSubcategoryTasks(i, j, k int) (Progress, bool) {
	g, ok := c.Subcategory(i, j, k)
	if !ok {
		return Progress{}, false
	}
	return CountTasks(g.Children), true
}

// CountAll counts every task in the checklist.
func (c *Checklist) CountAll() Progress {
	if c == nil {
		return Progress{}
	}
	return CountTasks(c.Categories)
}

// Count counts the tasks under the node at p. For a task path the task
// itself and its nested tasks are counted. The empty path counts everything.
func (c *Checklist) Count(p Path) (Progress, bool) {
	switch {
	case len(p) == 0:
		return c.CountAll(), true
	case p.IsTask():
		t, ok := c.Task(p)
		if !ok {
			return Progress{}, false
		}
		return CountTasks([]Entry{TaskEntry(t)}), true
	}
	g, ok := c.Group(p)
	if !ok {
		return Progress{}, false
	}
	return CountTasks(g.Children), true
}

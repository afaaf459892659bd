package domain

// ToggleTask flips the completion of the task at p.
// Ancestors are not touched; their progress is recounted on demand.
func (c *Checklist) ToggleTask(p Path) (Change, bool) {
	t, ok := c.Task(p)
	if !ok {
		return Change{}, false
	}
	t.Completed = !t.Completed
	return Change{Kind: ChangeToggle, Path: p, Name: t.Name, Completed: t.Completed, Affected: 1}, true
}

// SetTaskCompleted assigns the completion of the task at p.
func (c *Checklist) SetTaskCompleted(p Path, completed bool) (Change, bool) {
	t, ok := c.Task(p)
	if !ok {
		return Change{}, false
	}
	t.Completed = completed
	return Change{Kind: ChangeSetCompleted, Path: p, Name: t.Name, Completed: completed, Affected: 1}, true
}

// SetPhaseTasksCompleted sets every task under phase j of category i,
// nested subtasks included.
func (c *Checklist) SetPhaseTasksCompleted(i, j int, completed bool) (Change, bool) {
	return c.SetGroupTasksCompleted(Path{i, j}, completed)
}

// SetSubcategoryTasksCompleted sets every task under subcategory k.
func (c *Checklist) SetSubcategoryTasksCompleted(i, j, k int, completed bool) (Change, bool) {
	return c.SetGroupTasksCompleted(Path{i, j, k}, completed)
}

// SetGroupTasksCompleted sets every task under the category, phase or
// subcategory at p. It succeeds on an empty group.
func (c *Checklist) SetGroupTasksCompleted(p Path, completed bool) (Change, bool) {
	g, ok := c.Group(p)
	if !ok {
		return Change{}, false
	}
	tasks := CollectTasks(g.Children)
	for _, t := range tasks {
		t.Completed = completed
	}
	return Change{
		Kind:      ChangeSetGroupCompleted,
		Path:      p,
		Name:      g.Name,
		Completed: completed,
		Affected:  len(tasks),
	}, true
}

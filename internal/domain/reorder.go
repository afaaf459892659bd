package domain

import "slices"

// ReorderPhase moves phase from to position to inside category i.
func (c *Checklist) ReorderPhase(i, from, to int) (Change, bool) {
	category, ok := c.Category(i)
	if !ok || !moveEntry(&category.Children, from, to) {
		return Change{}, false
	}
	return Change{Kind: ChangeReorder, Path: Path{i}, Name: category.Name, From: from, To: to, Affected: 1}, true
}

// ReorderSubcategory moves subcategory from to position to inside phase j.
func (c *Checklist) ReorderSubcategory(i, j, from, to int) (Change, bool) {
	phase, ok := c.Phase(i, j)
	if !ok || !moveEntry(&phase.Children, from, to) {
		return Change{}, false
	}
	return Change{Kind: ChangeReorder, Path: Path{i, j}, Name: phase.Name, From: from, To: to, Affected: 1}, true
}

// ReorderTask moves a task inside subcategory k. Both indices are compacted:
// they count Task entries only. from must be in [0, count) and to in
// [0, count]; to == count moves the task to the physical end of the list,
// after any trailing groups.
//
// Otherwise the task lands where the task at compacted position to stood
// before the move: after it when moving down, before it when moving up.
// Groups keep their raw positions relative to the tasks that were not moved.
func (c *Checklist) ReorderTask(i, j, k, from, to int) (Change, bool) {
	subcategory, ok := c.Subcategory(i, j, k)
	if !ok || !moveTask(&subcategory.Children, from, to) {
		return Change{}, false
	}
	return Change{Kind: ChangeReorder, Path: Path{i, j, k}, Name: subcategory.Name, From: from, To: to, Affected: 1}, true
}

// moveEntry is a classic move on raw positions.
func moveEntry(entries *[]Entry, from, to int) bool {
	list := *entries
	if from == to || from < 0 || to < 0 || from >= len(list) || to >= len(list) {
		return false
	}
	moved := list[from]
	list = slices.Delete(list, from, from+1)
	*entries = slices.Insert(list, to, moved)
	return true
}

func moveTask(entries *[]Entry, from, to int) bool {
	positions := taskPositions(*entries)
	count := len(positions)
	if from == to || from < 0 || from >= count || to < 0 || to > count {
		return false
	}

	list := *entries
	rawFrom := positions[from]
	moved := list[rawFrom]

	if to == count {
		list = slices.Delete(list, rawFrom, rawFrom+1)
		*entries = append(list, moved)
		return true
	}

	// Locate the target by identity after removal so no shifted offsets are needed.
	target := list[positions[to]].Task
	list = slices.Delete(list, rawFrom, rawFrom+1)
	at := slices.IndexFunc(list, func(e Entry) bool { return e.Task == target })
	assertf(at >= 0, "reorder target %d vanished from its list", to)
	if from < to {
		at++
	}
	*entries = slices.Insert(list, at, moved)
	return true
}

package domain

import "slices"

// Clone returns a deep copy of the checklist structure. Attribute and Other
// values are shared; nothing in the package mutates them.
func (c *Checklist) Clone() *Checklist {
	if c == nil {
		return nil
	}
	return &Checklist{Categories: cloneEntries(c.Categories)}
}

// Clone returns a deep copy of the task and everything nested in it.
func (t *Task) Clone() *Task {
	cp := *t
	cp.Links = slices.Clone(t.Links)
	cp.Tags = slices.Clone(t.Tags)
	cp.Attrs = slices.Clone(t.Attrs)
	cp.order = slices.Clone(t.order)
	if t.Lists != nil {
		cp.Lists = make([]*TaskList, len(t.Lists))
		for i, l := range t.Lists {
			cp.Lists[i] = &TaskList{Key: l.Key, Entries: cloneEntries(l.Entries)}
		}
	}
	return &cp
}

// Clone returns a deep copy of the group and its children.
func (g *Group) Clone() *Group {
	return &Group{Name: g.Name, Children: cloneEntries(g.Children)}
}

func cloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	for i, e := range entries {
		switch {
		case e.Task != nil:
			out[i] = Entry{Task: e.Task.Clone()}
		case e.Group != nil:
			out[i] = Entry{Group: e.Group.Clone()}
		default:
			out[i] = e
		}
	}
	return out
}

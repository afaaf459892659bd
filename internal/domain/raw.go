package domain

import "slices"

// Raw converts the checklist back into a raw document. Task fields keep the
// order they were loaded in; fields added since then follow.
func (c *Checklist) Raw() []any {
	if c == nil {
		return []any{}
	}
	return entriesRaw(c.Categories)
}

// Raw converts a single entry back into its raw form.
func (e Entry) Raw() any {
	switch {
	case e.Task != nil:
		return e.Task.Raw()
	case e.Group != nil:
		return e.Group.Raw()
	}
	return e.Other
}

// Raw returns the single-key mapping {name: [children...]}.
func (g *Group) Raw() Object {
	return Object{{Key: g.Name, Value: entriesRaw(g.Children)}}
}

// Raw returns the task as an ordered mapping.
func (t *Task) Raw() Object {
	obj := make(Object, 0, len(t.order)+len(t.Lists)+len(t.Attrs))
	emitted := make(map[string]bool, len(t.order))
	emit := func(key string) {
		if emitted[key] {
			return
		}
		if v, ok := t.fieldValue(key); ok {
			obj = append(obj, Field{Key: key, Value: v})
			emitted[key] = true
		}
	}

	for _, k := range t.order {
		emit(k)
	}
	emit(FieldName)
	emit(FieldCompleted)
	for _, l := range t.Lists {
		emit(l.Key)
	}
	if len(t.Links) > 0 {
		emit(FieldLinks)
	}
	if len(t.Tags) > 0 {
		emit(FieldTags)
	}
	for _, a := range t.Attrs {
		emit(a.Key)
	}
	return obj
}

func (t *Task) fieldValue(key string) (any, bool) {
	switch key {
	case FieldName:
		return t.Name, true
	case FieldCompleted:
		if t.loaded.hasComplete && t.Completed == t.loaded.asCompleted {
			return t.loaded.completed, true
		}
		return t.Completed, true
	case FieldLinks:
		if t.loaded.links != nil && slices.Equal(t.Links, t.loaded.asLinks) {
			return t.loaded.links, true
		}
		if t.Links != nil {
			return linksRaw(t.Links), true
		}
	case FieldTags:
		if t.loaded.tags != nil && slices.Equal(t.Tags, t.loaded.asTags) {
			return t.loaded.tags, true
		}
		if t.Tags != nil {
			tags := make([]any, len(t.Tags))
			for i, tag := range t.Tags {
				tags[i] = tag
			}
			return tags, true
		}
	default:
		if l := t.List(key); l != nil {
			return entriesRaw(l.Entries), true
		}
	}
	return t.Attrs.Get(key)
}

func linksRaw(links []Link) []any {
	out := make([]any, 0, len(links))
	for _, l := range links {
		if l.Title == "" {
			out = append(out, l.URL)
			continue
		}
		out = append(out, Object{{Key: "title", Value: l.Title}, {Key: "url", Value: l.URL}})
	}
	return out
}

func entriesRaw(entries []Entry) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Raw())
	}
	return out
}

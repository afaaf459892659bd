package domain

import (
	"fmt"
	"slices"
	"sort"
)

// Field is one key/value pair of a decoded mapping.
type Field struct {
	Key   string
	Value any
}

// Object is a decoded mapping that keeps its declaration order.
// Raw documents are made of Object, []any and scalar values.
type Object []Field

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// IsTask reports whether a raw node is Task-shaped: a mapping with a "name"
// field whose value is a string. A mapping whose name is a list is not a task.
func IsTask(node any) bool {
	v, ok := lookup(node, FieldName)
	if !ok {
		return false
	}
	_, isString := v.(string)
	return isString
}

// NewChecklist classifies a raw document once into the typed tree.
// A nil root yields an empty checklist; any other non-list root is rejected.
func NewChecklist(root any) (*Checklist, error) {
	if root == nil {
		return &Checklist{Categories: []Entry{}}, nil
	}
	items, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: root is %T, want a list of categories", ErrMalformedDocument, root)
	}
	return &Checklist{Categories: newEntries(items)}, nil
}

// NewEntry classifies a single raw node.
func NewEntry(node any) Entry {
	if IsTask(node) {
		return Entry{Task: newTask(asObject(node))}
	}
	if name, items, ok := groupShape(node); ok {
		return Entry{Group: &Group{Name: name, Children: newEntries(items)}}
	}
	return Entry{Other: node}
}

func newEntries(items []any) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, NewEntry(item))
	}
	return entries
}

func newTask(obj Object) *Task {
	t := &Task{order: make([]string, 0, len(obj))}
	for _, f := range obj {
		t.order = append(t.order, f.Key)
		switch f.Key {
		case FieldName:
			t.Name, _ = f.Value.(string)
		case FieldCompleted:
			// Only an exact boolean counts; anything else reads as incomplete.
			t.Completed, _ = f.Value.(bool)
			t.loaded.completed, t.loaded.asCompleted, t.loaded.hasComplete = f.Value, t.Completed, true
		case FieldLinks:
			if items, ok := f.Value.([]any); ok {
				t.Links = newLinks(items)
				t.loaded.links, t.loaded.asLinks = items, slices.Clone(t.Links)
			} else {
				t.Attrs = append(t.Attrs, f)
			}
		case FieldTags:
			if items, ok := f.Value.([]any); ok {
				t.Tags = newTags(items)
				t.loaded.tags, t.loaded.asTags = items, slices.Clone(t.Tags)
			} else {
				t.Attrs = append(t.Attrs, f)
			}
		default:
			if items, ok := f.Value.([]any); ok {
				t.Lists = append(t.Lists, &TaskList{Key: f.Key, Entries: newEntries(items)})
			} else {
				t.Attrs = append(t.Attrs, f)
			}
		}
	}
	return t
}

func newLinks(items []any) []Link {
	links := make([]Link, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			links = append(links, Link{URL: s})
			continue
		}
		title := firstString(item, "title", FieldName)
		url := firstString(item, "url", "href")
		if title != "" || url != "" {
			links = append(links, Link{Title: title, URL: url})
		}
	}
	return links
}

func newTags(items []any) []string {
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			tags = append(tags, s)
		} else if item != nil {
			tags = append(tags, fmt.Sprint(item))
		}
	}
	return tags
}

func firstString(node any, keys ...string) string {
	for _, k := range keys {
		if v, ok := lookup(node, k); ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

func lookup(node any, key string) (any, bool) {
	switch m := node.(type) {
	case Object:
		return m.Get(key)
	case map[string]any:
		v, ok := m[key]
		return v, ok
	}
	return nil, false
}

// groupShape reports whether node is exactly {name: [entries...]}.
func groupShape(node any) (string, []any, bool) {
	switch m := node.(type) {
	case Object:
		if len(m) == 1 {
			items, ok := m[0].Value.([]any)
			return m[0].Key, items, ok
		}
	case map[string]any:
		if len(m) == 1 {
			for k, v := range m {
				items, ok := v.([]any)
				return k, items, ok
			}
		}
	}
	return "", nil, false
}

// asObject converts a mapping to an Object. Plain maps carry no order, so
// their keys are sorted for a deterministic result.
func asObject(node any) Object {
	switch m := node.(type) {
	case Object:
		return m
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := make(Object, 0, len(m))
		for _, k := range keys {
			obj = append(obj, Field{Key: k, Value: m[k]})
		}
		return obj
	}
	return nil
}

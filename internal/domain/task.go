// Package domain contains the checklist tree and the operations on it.
package domain

import "fmt"

// Reserved task field names.
const (
	FieldName      = "name"
	FieldCompleted = "completed"
	FieldLinks     = "links"
	FieldTags      = "tags"
)

// Checklist is the root of a checklist document: an ordered list of
// Category entries.
type Checklist struct {
	Categories []Entry
}

// Entry is one element of an ordered child list. It holds exactly one of
// Task, Group or Other. Other keeps values that are neither shape so they
// survive a load/save round trip; they are never counted or walked.
type Entry struct {
	Task  *Task
	Group *Group
	Other any
}

// IsTask returns true if the entry is a Task.
func (e Entry) IsTask() bool {
	return e.Task != nil
}

// IsGroup returns true if the entry is a Group.
func (e Entry) IsGroup() bool {
	return e.Group != nil
}

// Name returns the task or group name, or "" for other entries.
func (e Entry) Name() string {
	switch {
	case e.Task != nil:
		return e.Task.Name
	case e.Group != nil:
		return e.Group.Name
	}
	return ""
}

// Group is a named container: Category, Phase and Subcategory levels, and
// any nested container inside a subcategory or a task list.
type Group struct {
	Name     string
	Children []Entry
}

// Task is a checklist leaf. Lists holds every list-valued field other than
// links and tags, in declaration order; these may contain nested tasks or
// groups. Attrs holds the remaining fields untouched.
// Fields are ordered to minimize memory padding.
type Task struct {
	Name      string
	Links     []Link
	Tags      []string
	Lists     []*TaskList
	Attrs     Object
	order     []string // field declaration order from the source document
	loaded    loadedFields
	Completed bool
}

// loadedFields keeps reserved fields as they were read so that values the
// core has not changed are written back verbatim.
type loadedFields struct {
	completed   any
	links       []any
	tags        []any
	asLinks     []Link
	asTags      []string
	asCompleted bool
	hasComplete bool
}

// TaskList is a list-valued task field holding nested entries.
type TaskList struct {
	Key     string
	Entries []Entry
}

// Link is a link descriptor attached to a task.
type Link struct {
	Title string
	URL   string
}

// String returns "title <url>" or the bare URL when the title is empty.
func (l Link) String() string {
	if l.Title == "" {
		return l.URL
	}
	return fmt.Sprintf("%s <%s>", l.Title, l.URL)
}

// NewTask creates an incomplete task with the given name.
func NewTask(name string) *Task {
	return &Task{
		Name:  name,
		order: []string{FieldName, FieldCompleted},
	}
}

// NewGroup creates an empty group with the given name.
func NewGroup(name string) *Group {
	return &Group{Name: name, Children: []Entry{}}
}

// TaskEntry wraps a task as an Entry.
func TaskEntry(t *Task) Entry {
	return Entry{Task: t}
}

// GroupEntry wraps a group as an Entry.
func GroupEntry(g *Group) Entry {
	return Entry{Group: g}
}

// List returns the list field with the given key, or nil.
func (t *Task) List(key string) *TaskList {
	for _, l := range t.Lists {
		if l.Key == key {
			return l
		}
	}
	return nil
}

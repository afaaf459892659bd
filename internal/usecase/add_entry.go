package usecase

import (
	"context"
	"strings"

	"github.com/runoshun/tick/internal/domain"
)

// AddEntryInput contains the parameters for adding a node.
type AddEntryInput struct {
	Name   string
	Parent domain.Path // Root (empty), category, phase, subcategory or task
}

// AddEntryOutput contains the result of adding a node.
type AddEntryOutput struct {
	Change domain.Change // Change.Path is the new node's path
}

// AddEntry appends a category, phase, subcategory, task or subtask,
// depending on the depth of the parent.
type AddEntry struct {
	mutation
}

// NewAddEntry creates a new AddEntry use case.
func NewAddEntry(repo domain.ChecklistRepository, notifier domain.ChangeNotifier, logger domain.Logger) *AddEntry {
	return &AddEntry{mutation: newMutation(repo, notifier, logger)}
}

// Execute appends a node named in.Name under in.Parent.
func (uc *AddEntry) Execute(_ context.Context, in AddEntryInput) (*AddEntryOutput, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrEmptyName
	}

	var op func(c *domain.Checklist) (domain.Change, bool)
	switch len(in.Parent) {
	case 0, domain.DepthCategory, domain.DepthPhase:
		op = func(c *domain.Checklist) (domain.Change, bool) {
			return c.AddGroup(in.Parent, in.Name)
		}
	case domain.DepthSubcategory, domain.DepthTask:
		op = func(c *domain.Checklist) (domain.Change, bool) {
			return c.AddTask(in.Parent, in.Name)
		}
	default:
		return nil, domain.ErrInvalidPath
	}

	change, err := uc.run(op, locateOr(in.Parent, domain.ErrInvalidPath))
	if err != nil {
		return nil, err
	}
	return &AddEntryOutput{Change: change}, nil
}

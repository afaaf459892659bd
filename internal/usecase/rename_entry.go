package usecase

import (
	"context"
	"strings"

	"github.com/runoshun/tick/internal/domain"
)

// RenameEntryInput contains the parameters for renaming a node.
type RenameEntryInput struct {
	Name string
	Path domain.Path
}

// RenameEntryOutput contains the result of a rename.
type RenameEntryOutput struct {
	Change domain.Change
}

// RenameEntry renames a category, phase, subcategory, task or subtask.
type RenameEntry struct {
	mutation
}

// NewRenameEntry creates a new RenameEntry use case.
func NewRenameEntry(repo domain.ChecklistRepository, notifier domain.ChangeNotifier, logger domain.Logger) *RenameEntry {
	return &RenameEntry{mutation: newMutation(repo, notifier, logger)}
}

// Execute renames the node at in.Path.
func (uc *RenameEntry) Execute(_ context.Context, in RenameEntryInput) (*RenameEntryOutput, error) {
	if len(in.Path) == 0 {
		return nil, domain.ErrInvalidPath
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrEmptyName
	}

	op := func(c *domain.Checklist) (domain.Change, bool) { return c.RenameGroup(in.Path, in.Name) }
	if in.Path.IsTask() {
		op = func(c *domain.Checklist) (domain.Change, bool) { return c.RenameTask(in.Path, in.Name) }
	}

	change, err := uc.run(op, locateOr(in.Path, domain.ErrNameUnchanged))
	if err != nil {
		return nil, err
	}
	return &RenameEntryOutput{Change: change}, nil
}

package usecase

import (
	"context"

	"github.com/runoshun/tick/internal/domain"
)

// DeleteEntryInput contains the parameters for deleting a node.
type DeleteEntryInput struct {
	Path domain.Path
}

// DeleteEntryOutput contains the result of deleting a node.
type DeleteEntryOutput struct {
	Change domain.Change // Change.Affected is the number of tasks removed
}

// DeleteEntry removes a node together with its subtree.
type DeleteEntry struct {
	mutation
}

// NewDeleteEntry creates a new DeleteEntry use case.
func NewDeleteEntry(repo domain.ChecklistRepository, notifier domain.ChangeNotifier, logger domain.Logger) *DeleteEntry {
	return &DeleteEntry{mutation: newMutation(repo, notifier, logger)}
}

// Execute deletes the node at in.Path.
func (uc *DeleteEntry) Execute(_ context.Context, in DeleteEntryInput) (*DeleteEntryOutput, error) {
	if len(in.Path) == 0 {
		return nil, domain.ErrInvalidPath
	}
	change, err := uc.run(
		func(c *domain.Checklist) (domain.Change, bool) { return c.Delete(in.Path) },
		locateOr(in.Path, domain.ErrInvalidPath),
	)
	if err != nil {
		return nil, err
	}
	return &DeleteEntryOutput{Change: change}, nil
}

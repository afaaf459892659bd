package usecase

import (
	"context"

	"github.com/runoshun/tick/internal/domain"
)

// SetCompletedInput contains the parameters for SetCompleted.
type SetCompletedInput struct {
	Path      domain.Path // Task path, or a group path for a bulk update
	Completed bool
}

// SetCompletedOutput contains the result of SetCompleted.
type SetCompletedOutput struct {
	Change domain.Change
}

// SetCompleted assigns completion to a task, or to every task under a
// category, phase or subcategory.
type SetCompleted struct {
	mutation
}

// NewSetCompleted creates a new SetCompleted use case.
func NewSetCompleted(repo domain.ChecklistRepository, notifier domain.ChangeNotifier, logger domain.Logger) *SetCompleted {
	return &SetCompleted{mutation: newMutation(repo, notifier, logger)}
}

// Execute sets the completion at in.Path. Bulk updates on an empty group
// succeed with zero affected tasks.
func (uc *SetCompleted) Execute(_ context.Context, in SetCompletedInput) (*SetCompletedOutput, error) {
	var op func(c *domain.Checklist) (domain.Change, bool)
	switch {
	case in.Path.IsTask():
		op = func(c *domain.Checklist) (domain.Change, bool) {
			return c.SetTaskCompleted(in.Path, in.Completed)
		}
	case len(in.Path) >= domain.DepthCategory:
		op = func(c *domain.Checklist) (domain.Change, bool) {
			return c.SetGroupTasksCompleted(in.Path, in.Completed)
		}
	default:
		return nil, domain.ErrInvalidPath
	}

	change, err := uc.run(op, locateOr(in.Path, domain.NotFoundError(in.Path)))
	if err != nil {
		return nil, err
	}
	return &SetCompletedOutput{Change: change}, nil
}

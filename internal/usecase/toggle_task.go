package usecase

import (
	"context"

	"github.com/runoshun/tick/internal/domain"
)

// ToggleTaskInput contains the parameters for toggling a task.
type ToggleTaskInput struct {
	Path domain.Path // Task (depth 4) or subtask (depth 5) path
}

// ToggleTaskOutput contains the result of toggling a task.
type ToggleTaskOutput struct {
	Change domain.Change
}

// ToggleTask flips the completion of one task.
type ToggleTask struct {
	mutation
}

// NewToggleTask creates a new ToggleTask use case.
func NewToggleTask(repo domain.ChecklistRepository, notifier domain.ChangeNotifier, logger domain.Logger) *ToggleTask {
	return &ToggleTask{mutation: newMutation(repo, notifier, logger)}
}

// Execute toggles the task at in.Path.
func (uc *ToggleTask) Execute(_ context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	if !in.Path.IsTask() {
		return nil, domain.ErrInvalidPath
	}
	change, err := uc.run(
		func(c *domain.Checklist) (domain.Change, bool) { return c.ToggleTask(in.Path) },
		locateOr(in.Path, domain.ErrTaskNotFound),
	)
	if err != nil {
		return nil, err
	}
	return &ToggleTaskOutput{Change: change}, nil
}

package usecase

import (
	"context"

	"github.com/runoshun/tick/internal/domain"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	Path domain.Path // Task or subtask path
}

// ShowTaskOutput contains the task and its rollup.
type ShowTaskOutput struct {
	Task     *domain.Task
	Subtasks []domain.Node   // Nested outline below the task, without the task itself
	Progress domain.Progress // The task and its nested tasks
}

// ShowTask returns one task with its links, tags and nested tasks.
type ShowTask struct {
	repo domain.ChecklistRepository
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(repo domain.ChecklistRepository) *ShowTask {
	return &ShowTask{repo: repo}
}

// Execute returns the task at in.Path.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	if !in.Path.IsTask() {
		return nil, domain.ErrInvalidPath
	}

	c, err := load(uc.repo)
	if err != nil {
		return nil, err
	}
	task, ok := c.Task(in.Path)
	if !ok {
		return nil, c.Locate(in.Path)
	}

	nodes, _ := c.OutlineOf(in.Path)
	progress, _ := c.Count(in.Path)
	return &ShowTaskOutput{
		Task:     task,
		Subtasks: nodes[1:],
		Progress: progress,
	}, nil
}

package usecase

import (
	"context"

	"github.com/runoshun/tick/internal/domain"
)

// CountProgressInput contains the parameters for CountProgress.
type CountProgressInput struct {
	Path domain.Path // Empty counts the whole checklist
}

// CountProgressOutput contains the rollup.
type CountProgressOutput struct {
	Name     string // Name of the addressed node, empty for the root
	Level    string // category, phase, subcategory, task, subtask or root
	Progress domain.Progress
}

// CountProgress counts completed and total tasks under a node.
type CountProgress struct {
	repo domain.ChecklistRepository
}

// NewCountProgress creates a new CountProgress use case.
func NewCountProgress(repo domain.ChecklistRepository) *CountProgress {
	return &CountProgress{repo: repo}
}

// Execute counts the tasks under in.Path.
func (uc *CountProgress) Execute(_ context.Context, in CountProgressInput) (*CountProgressOutput, error) {
	c, err := load(uc.repo)
	if err != nil {
		return nil, err
	}

	progress, ok := c.Count(in.Path)
	if !ok {
		return nil, c.Locate(in.Path)
	}

	out := &CountProgressOutput{Level: in.Path.Level(), Progress: progress}
	if in.Path.IsTask() {
		t, _ := c.Task(in.Path)
		out.Name = t.Name
	} else if g, ok := c.Group(in.Path); ok {
		out.Name = g.Name
	}
	return out, nil
}

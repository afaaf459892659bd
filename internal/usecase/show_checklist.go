package usecase

import (
	"context"

	"github.com/runoshun/tick/internal/domain"
)

// ShowChecklistInput contains the parameters for ShowChecklist.
type ShowChecklistInput struct {
	Path          domain.Path // Subtree to show; empty shows everything
	HideCompleted bool        // Skip completed tasks and fully completed groups
}

// ShowChecklistOutput contains the flattened outline.
type ShowChecklistOutput struct {
	Nodes    []domain.Node
	Progress domain.Progress // Rollup of the requested subtree
}

// ShowChecklist flattens the checklist, or one subtree, for display.
type ShowChecklist struct {
	repo domain.ChecklistRepository
}

// NewShowChecklist creates a new ShowChecklist use case.
func NewShowChecklist(repo domain.ChecklistRepository) *ShowChecklist {
	return &ShowChecklist{repo: repo}
}

// Execute returns the outline of in.Path.
func (uc *ShowChecklist) Execute(_ context.Context, in ShowChecklistInput) (*ShowChecklistOutput, error) {
	c, err := load(uc.repo)
	if err != nil {
		return nil, err
	}

	nodes, ok := c.OutlineOf(in.Path)
	if !ok {
		return nil, c.Locate(in.Path)
	}
	progress, _ := c.Count(in.Path)

	if in.HideCompleted {
		nodes = FilterCompleted(nodes)
	}
	return &ShowChecklistOutput{Nodes: nodes, Progress: progress}, nil
}

// FilterCompleted drops completed tasks and groups whose tasks are all done,
// together with everything nested below them.
func FilterCompleted(nodes []domain.Node) []domain.Node {
	out := make([]domain.Node, 0, len(nodes))
	skipBelow := -1
	for _, n := range nodes {
		if skipBelow >= 0 {
			if n.Depth > skipBelow {
				continue
			}
			skipBelow = -1
		}
		done := (n.Task != nil && n.Task.Completed) || (n.Group != nil && n.Progress().Done())
		if done {
			skipBelow = n.Depth
			continue
		}
		out = append(out, n)
	}
	return out
}

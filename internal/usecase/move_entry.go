package usecase

import (
	"context"

	"github.com/runoshun/tick/internal/domain"
)

// MoveEntryInput contains the parameters for moving a sibling.
type MoveEntryInput struct {
	Path domain.Path // Phase (depth 2), subcategory (depth 3) or task (depth 4) to move
	To   int         // Destination index among its siblings
}

// MoveEntryOutput contains the result of a move.
type MoveEntryOutput struct {
	Change domain.Change
}

// MoveEntry reorders a phase, subcategory or task among its siblings.
// Task indices are compacted: only tasks are counted.
type MoveEntry struct {
	mutation
}

// NewMoveEntry creates a new MoveEntry use case.
func NewMoveEntry(repo domain.ChecklistRepository, notifier domain.ChangeNotifier, logger domain.Logger) *MoveEntry {
	return &MoveEntry{mutation: newMutation(repo, notifier, logger)}
}

// Execute moves the entry at in.Path to in.To.
func (uc *MoveEntry) Execute(_ context.Context, in MoveEntryInput) (*MoveEntryOutput, error) {
	p := in.Path
	var op func(c *domain.Checklist) (domain.Change, bool)
	switch len(p) {
	case domain.DepthPhase:
		op = func(c *domain.Checklist) (domain.Change, bool) {
			return c.ReorderPhase(p[0], p[1], in.To)
		}
	case domain.DepthSubcategory:
		op = func(c *domain.Checklist) (domain.Change, bool) {
			return c.ReorderSubcategory(p[0], p[1], p[2], in.To)
		}
	case domain.DepthTask:
		op = func(c *domain.Checklist) (domain.Change, bool) {
			return c.ReorderTask(p[0], p[1], p[2], p[3], in.To)
		}
	default:
		return nil, domain.ErrInvalidMove
	}

	change, err := uc.run(op, locateOr(p, domain.ErrInvalidMove))
	if err != nil {
		return nil, err
	}
	return &MoveEntryOutput{Change: change}, nil
}

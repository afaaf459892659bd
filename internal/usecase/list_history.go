package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tick/internal/domain"
)

// ListHistoryInput contains the parameters for ListHistory.
type ListHistoryInput struct {
	Limit int // 0 lists every revision
}

// ListHistoryOutput contains the revisions, newest first.
type ListHistoryOutput struct {
	Revisions []domain.Revision
}

// ListHistory lists saved revisions on backends that keep them.
type ListHistory struct {
	lister domain.RevisionLister
}

// NewListHistory creates a new ListHistory use case.
// A nil lister means the configured backend keeps no history.
func NewListHistory(lister domain.RevisionLister) *ListHistory {
	return &ListHistory{lister: lister}
}

// Execute lists the revisions.
func (uc *ListHistory) Execute(_ context.Context, in ListHistoryInput) (*ListHistoryOutput, error) {
	if uc.lister == nil {
		return nil, domain.ErrHistoryUnsupported
	}
	revisions, err := uc.lister.History(in.Limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return &ListHistoryOutput{Revisions: revisions}, nil
}

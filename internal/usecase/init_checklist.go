package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tick/internal/domain"
)

// InitChecklistInput contains the input parameters for InitChecklist.
type InitChecklistInput struct {
	Document []byte // Optional JSON or YAML seed document
}

// InitChecklistOutput contains the output from InitChecklist.
type InitChecklistOutput struct {
	Progress domain.Progress // Rollup of the seeded document
}

// InitChecklist creates the checklist store.
type InitChecklist struct {
	storeInit domain.StoreInitializer
	codec     domain.DocumentCodec
	logger    domain.Logger
}

// NewInitChecklist creates a new InitChecklist use case.
func NewInitChecklist(storeInit domain.StoreInitializer, codec domain.DocumentCodec, logger domain.Logger) *InitChecklist {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &InitChecklist{storeInit: storeInit, codec: codec, logger: logger}
}

// Execute initializes the store, seeded with in.Document when given.
func (uc *InitChecklist) Execute(_ context.Context, in InitChecklistInput) (*InitChecklistOutput, error) {
	initial := &domain.Checklist{}
	if len(in.Document) > 0 {
		c, err := uc.codec.Decode(in.Document)
		if err != nil {
			return nil, fmt.Errorf("decode seed document: %w", err)
		}
		initial = c
	}

	if err := uc.storeInit.Initialize(initial); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	progress := initial.CountAll()
	uc.logger.Info("init", fmt.Sprintf("initialized checklist (%d tasks)", progress.Total))
	return &InitChecklistOutput{Progress: progress}, nil
}

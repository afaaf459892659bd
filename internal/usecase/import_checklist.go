package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tick/internal/domain"
)

// ImportChecklistInput contains the document to import.
type ImportChecklistInput struct {
	Document []byte // JSON or YAML
}

// ImportChecklistOutput contains the result of an import.
type ImportChecklistOutput struct {
	Change   domain.Change
	Progress domain.Progress
}

// ImportChecklist replaces the stored document.
type ImportChecklist struct {
	replacer domain.ChecklistReplacer
	codec    domain.DocumentCodec
	logger   domain.Logger
}

// NewImportChecklist creates a new ImportChecklist use case.
func NewImportChecklist(replacer domain.ChecklistReplacer, codec domain.DocumentCodec, logger domain.Logger) *ImportChecklist {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &ImportChecklist{replacer: replacer, codec: codec, logger: logger}
}

// Execute decodes in.Document and swaps it in.
func (uc *ImportChecklist) Execute(_ context.Context, in ImportChecklistInput) (*ImportChecklistOutput, error) {
	c, err := uc.codec.Decode(in.Document)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	change, err := uc.replacer.Replace(c)
	if err != nil {
		return nil, fmt.Errorf("replace checklist: %w", err)
	}
	uc.logger.Info(string(change.Kind), change.String())
	return &ImportChecklistOutput{Change: change, Progress: c.CountAll()}, nil
}

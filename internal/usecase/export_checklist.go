package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tick/internal/domain"
)

// ExportChecklistInput contains the parameters for ExportChecklist.
type ExportChecklistInput struct {
	Format domain.Format
}

// ExportChecklistOutput contains the serialized document.
type ExportChecklistOutput struct {
	Data []byte
}

// ExportChecklist serializes the whole document.
type ExportChecklist struct {
	repo  domain.ChecklistRepository
	codec domain.DocumentCodec
}

// NewExportChecklist creates a new ExportChecklist use case.
func NewExportChecklist(repo domain.ChecklistRepository, codec domain.DocumentCodec) *ExportChecklist {
	return &ExportChecklist{repo: repo, codec: codec}
}

// Execute encodes the checklist in in.Format.
func (uc *ExportChecklist) Execute(_ context.Context, in ExportChecklistInput) (*ExportChecklistOutput, error) {
	c, err := load(uc.repo)
	if err != nil {
		return nil, err
	}
	data, err := uc.codec.Encode(c, in.Format)
	if err != nil {
		return nil, fmt.Errorf("encode checklist: %w", err)
	}
	return &ExportChecklistOutput{Data: data}, nil
}

package query

import (
	"context"

	"github.com/boostly/boostly-ledger/internal/domain/recognition"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST RECOGNITIONS QUERY
// Returns all recognitions, newest first, with derived endorsement counts.
// ══════════════════════════════════════════════════════════════════════════════

// ListRecognitionsQuery lists all recognitions. It carries no parameters.
type ListRecognitionsQuery struct{}

// ListRecognitionsResult contains the recognition read models.
type ListRecognitionsResult struct {
	Recognitions []RecognitionDTO
	Total        int
}

// ListRecognitionsHandler handles the ListRecognitionsQuery.
type ListRecognitionsHandler struct {
	recognitionRepo recognition.Repository
}

// NewListRecognitionsHandler creates a new ListRecognitionsHandler.
func NewListRecognitionsHandler(recognitionRepo recognition.Repository) *ListRecognitionsHandler {
	return &ListRecognitionsHandler{recognitionRepo: recognitionRepo}
}

// Handle executes the list recognitions query.
func (h *ListRecognitionsHandler) Handle(ctx context.Context, _ ListRecognitionsQuery) (*ListRecognitionsResult, error) {
	recognitions, err := h.recognitionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]RecognitionDTO, len(recognitions))
	for i, rec := range recognitions {
		dtos[i] = ToRecognitionDTO(rec)
	}

	return &ListRecognitionsResult{
		Recognitions: dtos,
		Total:        len(dtos),
	}, nil
}

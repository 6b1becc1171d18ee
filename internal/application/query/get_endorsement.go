package query

import (
	"context"
	"time"

	"github.com/boostly/boostly-ledger/internal/domain/recognition"
	"github.com/boostly/boostly-ledger/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ENDORSEMENT QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetEndorsementQuery contains the parameters to fetch one endorsement.
type GetEndorsementQuery struct {
	// EndorsementID is the endorsement's ID.
	EndorsementID string
}

// Validate validates the query.
func (q GetEndorsementQuery) Validate() error {
	if q.EndorsementID == "" {
		return shared.NewDomainError("query", "GetEndorsement", shared.ErrEmptyValue, "endorsement_id is required")
	}
	return nil
}

// EndorsementDTO is the read model for an endorsement.
type EndorsementDTO struct {
	ID            string    `json:"id"`
	RecognitionID string    `json:"recognition_id"`
	EndorserID    string    `json:"endorser_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetEndorsementResult contains the endorsement read model.
type GetEndorsementResult struct {
	Endorsement EndorsementDTO
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// GetEndorsementHandler handles the GetEndorsementQuery.
type GetEndorsementHandler struct {
	recognitionRepo recognition.Repository
}

// NewGetEndorsementHandler creates a new GetEndorsementHandler.
func NewGetEndorsementHandler(recognitionRepo recognition.Repository) *GetEndorsementHandler {
	return &GetEndorsementHandler{recognitionRepo: recognitionRepo}
}

// Handle executes the get endorsement query.
func (h *GetEndorsementHandler) Handle(ctx context.Context, q GetEndorsementQuery) (*GetEndorsementResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	e, err := h.recognitionRepo.GetEndorsementByID(ctx, q.EndorsementID)
	if err != nil {
		return nil, err
	}

	return &GetEndorsementResult{Endorsement: EndorsementDTO{
		ID:            e.ID,
		RecognitionID: e.RecognitionID,
		EndorserID:    e.EndorserID,
		CreatedAt:     e.CreatedAt,
	}}, nil
}

package query

import (
	"context"
	"time"

	"github.com/boostly/boostly-ledger/internal/domain/recognition"
	"github.com/boostly/boostly-ledger/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET RECOGNITION QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetRecognitionQuery contains the parameters to fetch one recognition.
type GetRecognitionQuery struct {
	// RecognitionID is the recognition's ID.
	RecognitionID string
}

// Validate validates the query.
func (q GetRecognitionQuery) Validate() error {
	if q.RecognitionID == "" {
		return shared.NewDomainError("query", "GetRecognition", shared.ErrEmptyValue, "recognition_id is required")
	}
	return nil
}

// RecognitionDTO is the read model for a recognition, endorsement count
// included.
type RecognitionDTO struct {
	ID               string    `json:"id"`
	SenderID         string    `json:"sender_id"`
	ReceiverID       string    `json:"receiver_id"`
	Credits          int       `json:"credits"`
	Message          string    `json:"message"`
	EndorsementCount int       `json:"endorsement_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// GetRecognitionResult contains the recognition read model.
type GetRecognitionResult struct {
	Recognition RecognitionDTO
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// GetRecognitionHandler handles the GetRecognitionQuery.
type GetRecognitionHandler struct {
	recognitionRepo recognition.Repository
}

// NewGetRecognitionHandler creates a new GetRecognitionHandler.
func NewGetRecognitionHandler(recognitionRepo recognition.Repository) *GetRecognitionHandler {
	return &GetRecognitionHandler{recognitionRepo: recognitionRepo}
}

// Handle executes the get recognition query.
func (h *GetRecognitionHandler) Handle(ctx context.Context, q GetRecognitionQuery) (*GetRecognitionResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	rec, err := h.recognitionRepo.GetByID(ctx, q.RecognitionID)
	if err != nil {
		return nil, err
	}

	return &GetRecognitionResult{Recognition: ToRecognitionDTO(rec)}, nil
}

// ToRecognitionDTO converts a recognition entity into its read model.
func ToRecognitionDTO(rec *recognition.Recognition) RecognitionDTO {
	return RecognitionDTO{
		ID:               rec.ID,
		SenderID:         rec.SenderID,
		ReceiverID:       rec.ReceiverID,
		Credits:          rec.Credits,
		Message:          rec.Message,
		EndorsementCount: rec.EndorsementCount,
		CreatedAt:        rec.CreatedAt,
	}
}

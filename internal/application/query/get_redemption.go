package query

import (
	"context"
	"time"

	"github.com/boostly/boostly-ledger/internal/domain/redemption"
	"github.com/boostly/boostly-ledger/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET REDEMPTION QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetRedemptionQuery contains the parameters to fetch one redemption.
type GetRedemptionQuery struct {
	// RedemptionID is the redemption's ID.
	RedemptionID string
}

// Validate validates the query.
func (q GetRedemptionQuery) Validate() error {
	if q.RedemptionID == "" {
		return shared.NewDomainError("query", "GetRedemption", shared.ErrEmptyValue, "redemption_id is required")
	}
	return nil
}

// RedemptionDTO is the read model for a redemption.
type RedemptionDTO struct {
	ID              string    `json:"id"`
	StudentID       string    `json:"student_id"`
	CreditsRedeemed int       `json:"credits_redeemed"`
	VoucherAmount   int       `json:"voucher_amount"`
	CreatedAt       time.Time `json:"created_at"`
}

// GetRedemptionResult contains the redemption read model.
type GetRedemptionResult struct {
	Redemption RedemptionDTO
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// GetRedemptionHandler handles the GetRedemptionQuery.
type GetRedemptionHandler struct {
	redemptionRepo redemption.Repository
}

// NewGetRedemptionHandler creates a new GetRedemptionHandler.
func NewGetRedemptionHandler(redemptionRepo redemption.Repository) *GetRedemptionHandler {
	return &GetRedemptionHandler{redemptionRepo: redemptionRepo}
}

// Handle executes the get redemption query.
func (h *GetRedemptionHandler) Handle(ctx context.Context, q GetRedemptionQuery) (*GetRedemptionResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	r, err := h.redemptionRepo.GetByID(ctx, q.RedemptionID)
	if err != nil {
		return nil, err
	}

	return &GetRedemptionResult{Redemption: ToRedemptionDTO(r)}, nil
}

// ToRedemptionDTO converts a redemption entity into its read model.
func ToRedemptionDTO(r *redemption.Redemption) RedemptionDTO {
	return RedemptionDTO{
		ID:              r.ID,
		StudentID:       r.StudentID,
		CreditsRedeemed: r.CreditsRedeemed,
		VoucherAmount:   r.VoucherAmount,
		CreatedAt:       r.CreatedAt,
	}
}

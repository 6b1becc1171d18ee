package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/boostly/boostly-ledger/internal/domain/redemption"
	"github.com/boostly/boostly-ledger/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE REDEMPTION COMMAND
// Converts credits into a voucher at the fixed rate and debits the balance as
// a single atomic unit. Redemption never touches the sending counter.
// ══════════════════════════════════════════════════════════════════════════════

// CreateRedemptionCommand contains the data to redeem credits.
type CreateRedemptionCommand struct {
	// StudentID is the redeeming student.
	StudentID string

	// Credits is the amount to redeem. Must be positive.
	Credits int
}

// Validate validates the command.
func (c CreateRedemptionCommand) Validate() error {
	if c.StudentID == "" {
		return shared.NewDomainError("command", "CreateRedemption", shared.ErrEmptyValue, "student_id is required")
	}
	return nil
}

// CreateRedemptionResult contains the created redemption.
type CreateRedemptionResult struct {
	Redemption *redemption.Redemption
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CreateRedemptionHandler handles the CreateRedemptionCommand.
type CreateRedemptionHandler struct {
	redemptionRepo redemption.Repository
	now            func() time.Time
}

// NewCreateRedemptionHandler creates a new CreateRedemptionHandler.
func NewCreateRedemptionHandler(redemptionRepo redemption.Repository) *CreateRedemptionHandler {
	return &CreateRedemptionHandler{
		redemptionRepo: redemptionRepo,
		now:            time.Now,
	}
}

// Handle executes the create redemption command.
func (h *CreateRedemptionHandler) Handle(ctx context.Context, cmd CreateRedemptionCommand) (*CreateRedemptionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.now()

	r, err := redemption.NewRedemption(uuid.NewString(), cmd.StudentID, cmd.Credits, now)
	if err != nil {
		return nil, err
	}

	if err := h.redemptionRepo.CreateWithDebit(ctx, r, now); err != nil {
		return nil, err
	}

	return &CreateRedemptionResult{Redemption: r}, nil
}

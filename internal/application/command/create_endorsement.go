package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/boostly/boostly-ledger/internal/domain/recognition"
	"github.com/boostly/boostly-ledger/internal/domain/shared"
	"github.com/boostly/boostly-ledger/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE ENDORSEMENT COMMAND
// Records an at-most-once cheer on a recognition. No balance effect, no limit
// consumption; an endorser may endorse their own recognition's transfer.
// ══════════════════════════════════════════════════════════════════════════════

// CreateEndorsementCommand contains the data to endorse a recognition.
type CreateEndorsementCommand struct {
	// RecognitionID is the recognition being endorsed.
	RecognitionID string

	// EndorserID is the endorsing student.
	EndorserID string
}

// Validate validates the command.
func (c CreateEndorsementCommand) Validate() error {
	if c.RecognitionID == "" {
		return shared.NewDomainError("command", "CreateEndorsement", shared.ErrEmptyValue, "recognition_id is required")
	}
	if c.EndorserID == "" {
		return shared.NewDomainError("command", "CreateEndorsement", shared.ErrEmptyValue, "endorser_id is required")
	}
	return nil
}

// CreateEndorsementResult contains the created endorsement.
type CreateEndorsementResult struct {
	Endorsement *recognition.Endorsement
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CreateEndorsementHandler handles the CreateEndorsementCommand.
type CreateEndorsementHandler struct {
	recognitionRepo recognition.Repository
	studentRepo     student.Repository
	invalidator     LeaderboardInvalidator
	now             func() time.Time
}

// NewCreateEndorsementHandler creates a new CreateEndorsementHandler.
func NewCreateEndorsementHandler(
	recognitionRepo recognition.Repository,
	studentRepo student.Repository,
	invalidator LeaderboardInvalidator,
) *CreateEndorsementHandler {
	return &CreateEndorsementHandler{
		recognitionRepo: recognitionRepo,
		studentRepo:     studentRepo,
		invalidator:     invalidator,
		now:             time.Now,
	}
}

// Handle executes the create endorsement command.
func (h *CreateEndorsementHandler) Handle(ctx context.Context, cmd CreateEndorsementCommand) (*CreateEndorsementResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	// Resolve the endorser first so a missing student reports as such rather
	// than as a broken reference on insert.
	if _, err := h.studentRepo.GetByID(ctx, cmd.EndorserID); err != nil {
		return nil, err
	}

	exists, err := h.recognitionRepo.Exists(ctx, cmd.RecognitionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, recognition.ErrRecognitionNotFound
	}

	e, err := recognition.NewEndorsement(uuid.NewString(), cmd.RecognitionID, cmd.EndorserID, h.now())
	if err != nil {
		return nil, err
	}

	if err := h.recognitionRepo.CreateEndorsement(ctx, e); err != nil {
		return nil, err
	}

	// Endorsement totals show up on the leaderboard.
	if h.invalidator != nil {
		_ = h.invalidator.Invalidate(ctx)
	}

	return &CreateEndorsementResult{Endorsement: e}, nil
}

package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/boostly/boostly-ledger/internal/domain/recognition"
	"github.com/boostly/boostly-ledger/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE RECOGNITION COMMAND
// Transfers credits from sender to receiver and records the recognition as a
// single atomic unit. Both ledgers are brought current before any rule runs.
// ══════════════════════════════════════════════════════════════════════════════

// LeaderboardInvalidator drops cached leaderboard reads after a commit that
// changes what the leaderboard would show. A nil invalidator disables caching.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context) error
}

// CreateRecognitionCommand contains the data to create a recognition.
type CreateRecognitionCommand struct {
	// SenderID is the student sending credits.
	SenderID string

	// ReceiverID is the student receiving credits. Must differ from SenderID.
	ReceiverID string

	// Credits is the amount to transfer. Must be positive.
	Credits int

	// Message is an optional note, at most 500 chars.
	Message string
}

// Validate validates the command.
func (c CreateRecognitionCommand) Validate() error {
	if c.SenderID == "" {
		return shared.NewDomainError("command", "CreateRecognition", shared.ErrEmptyValue, "sender_id is required")
	}
	if c.ReceiverID == "" {
		return shared.NewDomainError("command", "CreateRecognition", shared.ErrEmptyValue, "receiver_id is required")
	}
	return nil
}

// CreateRecognitionResult contains the created recognition.
type CreateRecognitionResult struct {
	Recognition *recognition.Recognition
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CreateRecognitionHandler handles the CreateRecognitionCommand.
type CreateRecognitionHandler struct {
	recognitionRepo recognition.Repository
	invalidator     LeaderboardInvalidator
	now             func() time.Time
}

// NewCreateRecognitionHandler creates a new CreateRecognitionHandler.
func NewCreateRecognitionHandler(
	recognitionRepo recognition.Repository,
	invalidator LeaderboardInvalidator,
) *CreateRecognitionHandler {
	return &CreateRecognitionHandler{
		recognitionRepo: recognitionRepo,
		invalidator:     invalidator,
		now:             time.Now,
	}
}

// Handle executes the create recognition command.
func (h *CreateRecognitionHandler) Handle(ctx context.Context, cmd CreateRecognitionCommand) (*CreateRecognitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.now()

	rec, err := recognition.NewRecognition(recognition.NewRecognitionParams{
		ID:         uuid.NewString(),
		SenderID:   cmd.SenderID,
		ReceiverID: cmd.ReceiverID,
		Credits:    cmd.Credits,
		Message:    cmd.Message,
	}, now)
	if err != nil {
		return nil, err
	}

	if err := h.recognitionRepo.CreateWithTransfer(ctx, rec, now); err != nil {
		return nil, err
	}

	// The transfer is committed; a stale cached leaderboard is only a latency
	// cost, so an invalidation failure does not fail the command.
	if h.invalidator != nil {
		_ = h.invalidator.Invalidate(ctx)
	}

	return &CreateRecognitionResult{Recognition: rec}, nil
}

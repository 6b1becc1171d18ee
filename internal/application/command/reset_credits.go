package command

import (
	"context"
	"time"

	"github.com/boostly/boostly-ledger/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// RESET CREDITS COMMAND
// Manually sweeps the monthly reset over every stale student. The reset is
// lazy everywhere else, so this exists for operators who want every ledger
// current at once, e.g. before an export. Idempotent within a period.
// ══════════════════════════════════════════════════════════════════════════════

// ResetCreditsCommand triggers the sweep. It carries no parameters.
type ResetCreditsCommand struct{}

// ResetCreditsResult reports how many students were actually reset.
type ResetCreditsResult struct {
	// StudentsReset is the number of ledgers the sweep rolled over. Students
	// already in the current period are not counted.
	StudentsReset int

	// Period is the period the sweep rolled ledgers into.
	Period string
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// ResetCreditsHandler handles the ResetCreditsCommand.
type ResetCreditsHandler struct {
	studentRepo student.Repository
	now         func() time.Time
}

// NewResetCreditsHandler creates a new ResetCreditsHandler.
func NewResetCreditsHandler(studentRepo student.Repository) *ResetCreditsHandler {
	return &ResetCreditsHandler{
		studentRepo: studentRepo,
		now:         time.Now,
	}
}

// Handle executes the reset credits command.
func (h *ResetCreditsHandler) Handle(ctx context.Context, _ ResetCreditsCommand) (*ResetCreditsResult, error) {
	now := h.now()

	count, err := h.studentRepo.ResetStale(ctx, now)
	if err != nil {
		return nil, err
	}

	return &ResetCreditsResult{
		StudentsReset: count,
		Period:        student.ResolvePeriod(now).String(),
	}, nil
}

package redemption

import (
	"context"
	"time"
)

// Repository defines the persistence contract for redemptions.
type Repository interface {
	// CreateWithDebit persists the redemption and applies the balance debit
	// as a single atomic unit. The student's ledger is brought current for
	// now before the debit rule is evaluated. If any step fails, no partial
	// mutation is observable.
	//
	// Failure kinds: student.ErrStudentNotFound,
	// student.ErrInsufficientBalance, shared.ErrConcurrentConflict.
	CreateWithDebit(ctx context.Context, r *Redemption, now time.Time) error

	// GetByID returns a redemption by ID. Returns ErrRedemptionNotFound if
	// absent.
	GetByID(ctx context.Context, id string) (*Redemption, error)

	// GetByStudentID returns all redemptions for a student, newest first.
	GetByStudentID(ctx context.Context, studentID string) ([]*Redemption, error)
}

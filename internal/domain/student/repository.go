package student

import (
	"context"
	"time"
)

// Repository defines the persistence contract for student ledgers.
//
// Every method that mutates ledger fields must execute under the per-student
// transactional boundary: the stored row is locked (or equivalently guarded)
// for the whole {ensure current -> validate -> mutate -> persist} sequence,
// and concurrency conflicts are retried a bounded number of times before
// surfacing as shared.ErrConcurrentConflict.
type Repository interface {
	// Create persists a new student. Returns ErrDuplicateEmail if the email
	// is already registered.
	Create(ctx context.Context, s *Student) error

	// GetByID returns a student by ID. Returns ErrStudentNotFound if absent.
	// The returned snapshot is not reset-adjusted; use EnsureCurrent when the
	// caller needs ledger fields that are current for "now".
	GetByID(ctx context.Context, id string) (*Student, error)

	// GetByEmail returns a student by email. Returns ErrStudentNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*Student, error)

	// GetAll returns all students ordered by creation time.
	GetAll(ctx context.Context) ([]*Student, error)

	// EnsureCurrent loads the student under a row lock, applies the monthly
	// reset if the stored period is stale relative to now, persists the
	// result, and returns the up-to-date ledger.
	EnsureCurrent(ctx context.Context, id string, now time.Time) (*Student, error)

	// ResetStale applies the monthly reset to every student whose stored
	// period is stale relative to now. Already-current students are left
	// untouched. Returns the number of students actually reset. Idempotent.
	ResetStale(ctx context.Context, now time.Time) (int, error)

	// Count returns the total number of students.
	Count(ctx context.Context) (int, error)
}

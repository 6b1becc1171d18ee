package recognition

import (
	"context"
	"time"
)

// Repository defines the persistence contract for recognitions and
// endorsements.
type Repository interface {
	// CreateWithTransfer persists the recognition and applies the sender
	// debit and receiver credit as a single atomic unit. Both ledgers are
	// brought current for now before any rule is evaluated. If any step
	// fails, no partial mutation is observable.
	//
	// Failure kinds: student.ErrStudentNotFound, student.ErrInsufficientBalance,
	// student.ErrSendingLimitExceeded, shared.ErrConcurrentConflict.
	CreateWithTransfer(ctx context.Context, rec *Recognition, now time.Time) error

	// GetByID returns a recognition with its derived endorsement count.
	// Returns ErrRecognitionNotFound if absent.
	GetByID(ctx context.Context, id string) (*Recognition, error)

	// GetAll returns all recognitions, newest first, with derived
	// endorsement counts.
	GetAll(ctx context.Context) ([]*Recognition, error)

	// Exists checks whether a recognition exists by ID.
	Exists(ctx context.Context, id string) (bool, error)

	// CreateEndorsement persists an endorsement. Returns
	// ErrDuplicateEndorsement if the (recognition, endorser) pair already
	// has one, ErrRecognitionNotFound if the recognition is absent.
	CreateEndorsement(ctx context.Context, e *Endorsement) error

	// GetEndorsementByID returns an endorsement by ID. Returns
	// ErrEndorsementNotFound if absent.
	GetEndorsementByID(ctx context.Context, id string) (*Endorsement, error)

	// CountEndorsements returns the number of endorsements on a recognition.
	CountEndorsements(ctx context.Context, recognitionID string) (int, error)
}

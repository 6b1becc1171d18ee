// Package recognition contains the peer-recognition domain model: a
// recognition is an immutable credit transfer between two students, and an
// endorsement is an at-most-once cheer on a recognition with no balance
// effect.
package recognition

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/boostly/boostly-ledger/internal/domain/shared"
)

// MaxMessageLength bounds the recognition message.
const MaxMessageLength = 500

// ══════════════════════════════════════════════════════════════════════════════
// ENTITIES
// ══════════════════════════════════════════════════════════════════════════════

// Recognition is an immutable fact: sender transferred Credits to receiver
// with an optional message. It is created atomically with the sender debit
// and receiver credit, and never mutated afterwards.
type Recognition struct {
	// ID is the unique identifier (UUID in string form).
	ID string

	// SenderID is the student who sent the credits.
	SenderID string

	// ReceiverID is the student who received the credits. Always differs
	// from SenderID.
	ReceiverID string

	// Credits is the transferred amount. Always positive.
	Credits int

	// Message is an optional note from the sender.
	Message string

	// CreatedAt is when the recognition was created. Immutable.
	CreatedAt time.Time

	// EndorsementCount is derived from the endorsement records at read time;
	// it is never stored redundantly.
	EndorsementCount int
}

// Endorsement is an immutable fact: endorser cheered a recognition. The pair
// (RecognitionID, EndorserID) is unique.
type Endorsement struct {
	ID            string
	RecognitionID string
	EndorserID    string
	CreatedAt     time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrRecognitionNotFound - no recognition with the given ID exists.
	ErrRecognitionNotFound = errors.New("recognition not found")

	// ErrSelfRecognition - a student may not recognize themselves.
	ErrSelfRecognition = errors.New("students cannot send credits to themselves")

	// ErrEndorsementNotFound - no endorsement with the given ID exists.
	ErrEndorsementNotFound = errors.New("endorsement not found")

	// ErrDuplicateEndorsement - the endorser already endorsed this recognition.
	ErrDuplicateEndorsement = errors.New("recognition already endorsed by this student")
)

// ══════════════════════════════════════════════════════════════════════════════
// FACTORIES
// ══════════════════════════════════════════════════════════════════════════════

// NewRecognitionParams contains the parameters for creating a recognition.
type NewRecognitionParams struct {
	ID         string
	SenderID   string
	ReceiverID string
	Credits    int
	Message    string
}

// NewRecognition validates and creates a recognition fact. The balance
// mutations it represents are applied by the repository in the same atomic
// unit as the insert.
func NewRecognition(params NewRecognitionParams, now time.Time) (*Recognition, error) {
	if params.ID == "" {
		return nil, shared.WrapError("recognition", "Create", shared.ErrInvalidID, "recognition id is required", nil)
	}
	if params.SenderID == "" || params.ReceiverID == "" {
		return nil, shared.WrapError("recognition", "Create", shared.ErrInvalidID, "sender and receiver ids are required", nil)
	}
	if params.SenderID == params.ReceiverID {
		return nil, shared.WrapError("recognition", "Create", shared.ErrValidation, "sender and receiver must differ", ErrSelfRecognition)
	}
	if params.Credits <= 0 {
		return nil, shared.WrapError("recognition", "Create", shared.ErrInvalidAmount,
			fmt.Sprintf("credits must be positive, got %d", params.Credits), nil)
	}

	message := strings.TrimSpace(params.Message)
	if len(message) > MaxMessageLength {
		return nil, shared.WrapError("recognition", "Create", shared.ErrValidation,
			fmt.Sprintf("message exceeds %d chars", MaxMessageLength), nil)
	}

	return &Recognition{
		ID:         params.ID,
		SenderID:   params.SenderID,
		ReceiverID: params.ReceiverID,
		Credits:    params.Credits,
		Message:    message,
		CreatedAt:  now.UTC(),
	}, nil
}

// NewEndorsement validates and creates an endorsement fact. Uniqueness of the
// (recognition, endorser) pair is enforced by the repository on insert.
func NewEndorsement(id, recognitionID, endorserID string, now time.Time) (*Endorsement, error) {
	if id == "" {
		return nil, shared.WrapError("endorsement", "Create", shared.ErrInvalidID, "endorsement id is required", nil)
	}
	if recognitionID == "" {
		return nil, shared.WrapError("endorsement", "Create", shared.ErrInvalidID, "recognition id is required", nil)
	}
	if endorserID == "" {
		return nil, shared.WrapError("endorsement", "Create", shared.ErrInvalidID, "endorser id is required", nil)
	}

	return &Endorsement{
		ID:            id,
		RecognitionID: recognitionID,
		EndorserID:    endorserID,
		CreatedAt:     now.UTC(),
	}, nil
}

// String returns a string representation for logging.
func (r *Recognition) String() string {
	return fmt.Sprintf("Recognition{ID: %s, %s -> %s, Credits: %d}", r.ID, r.SenderID, r.ReceiverID, r.Credits)
}

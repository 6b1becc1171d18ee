// Package redemption contains the voucher redemption domain model: a one-way
// conversion of credits into a monetary voucher at a fixed rate.
package redemption

import (
	"errors"
	"fmt"
	"time"

	"github.com/boostly/boostly-ledger/internal/domain/shared"
)

// VoucherRate is the monetary value of one credit, in currency units.
const VoucherRate = 5

// ══════════════════════════════════════════════════════════════════════════════
// ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Redemption is an immutable fact: a student converted CreditsRedeemed into a
// voucher worth VoucherAmount. It is created atomically with the balance
// debit and never mutated afterwards.
type Redemption struct {
	// ID is the unique identifier (UUID in string form).
	ID string

	// StudentID is the redeeming student.
	StudentID string

	// CreditsRedeemed is the debited amount. Always positive.
	CreditsRedeemed int

	// VoucherAmount is CreditsRedeemed * VoucherRate, fixed at creation.
	VoucherAmount int

	// CreatedAt is when the redemption was created. Immutable.
	CreatedAt time.Time
}

// ErrRedemptionNotFound - no redemption with the given ID exists.
var ErrRedemptionNotFound = errors.New("redemption not found")

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY
// ══════════════════════════════════════════════════════════════════════════════

// NewRedemption validates and creates a redemption fact with the voucher
// amount computed at the fixed rate.
func NewRedemption(id, studentID string, creditsRedeemed int, now time.Time) (*Redemption, error) {
	if id == "" {
		return nil, shared.WrapError("redemption", "Create", shared.ErrInvalidID, "redemption id is required", nil)
	}
	if studentID == "" {
		return nil, shared.WrapError("redemption", "Create", shared.ErrInvalidID, "student id is required", nil)
	}
	if creditsRedeemed <= 0 {
		return nil, shared.WrapError("redemption", "Create", shared.ErrInvalidAmount,
			fmt.Sprintf("credits to redeem must be positive, got %d", creditsRedeemed), nil)
	}

	return &Redemption{
		ID:              id,
		StudentID:       studentID,
		CreditsRedeemed: creditsRedeemed,
		VoucherAmount:   creditsRedeemed * VoucherRate,
		CreatedAt:       now.UTC(),
	}, nil
}

// String returns a string representation for logging.
func (r *Redemption) String() string {
	return fmt.Sprintf("Redemption{ID: %s, Student: %s, Credits: %d, Voucher: %d}",
		r.ID, r.StudentID, r.CreditsRedeemed, r.VoucherAmount)
}

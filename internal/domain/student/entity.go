// Package student contains the student ledger domain model: the credit
// balance, the monthly sending allowance, and the reset rule that rolls both
// over between calendar months. This is the core of the business logic -
// there are no external dependencies here.
package student

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/boostly/boostly-ledger/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Credits represents an amount of recognition credits.
type Credits int

// IsPositive reports whether the amount is strictly positive.
func (c Credits) IsPositive() bool {
	return c > 0
}

// Ledger constants. A fresh student, and a student entering a new period,
// start from MonthlyAllowance; up to CarryForwardCap unused credits survive
// a period rollover.
const (
	// MonthlyAllowance is the balance grant and sending limit per period.
	MonthlyAllowance Credits = 100

	// CarryForwardCap is the maximum unused balance preserved across a reset.
	CarryForwardCap Credits = 50
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student is the central entity of the ledger. Balance, sending counter, and
// period fields are exclusively owned here; recognitions, endorsements, and
// redemptions are immutable facts referencing students by ID.
type Student struct {
	// ID is the unique identifier (UUID in string form), assigned on creation.
	ID string

	// Name is the student's display name.
	Name string

	// Email is unique across all students.
	Email string

	// CurrentBalance is the credits available to send or redeem. Never negative.
	CurrentBalance Credits

	// MonthlySendingLimit is the maximum credits the student may send within
	// the current period. Resets to MonthlyAllowance every period.
	MonthlySendingLimit Credits

	// SentThisPeriod is the cumulative credits sent since the last reset.
	// Invariant: SentThisPeriod <= MonthlySendingLimit.
	SentThisPeriod Credits

	// LastResetPeriod is the period of the last applied reset.
	LastResetPeriod Period

	// CreatedAt is when the record was created.
	CreatedAt time.Time

	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrStudentNotFound - no student with the given ID exists.
	ErrStudentNotFound = errors.New("student not found")

	// ErrDuplicateEmail - a student with the same email already exists.
	ErrDuplicateEmail = errors.New("student with this email already exists")

	// ErrInsufficientBalance - the requested amount exceeds the current balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSendingLimitExceeded - the transfer would exceed the monthly sending limit.
	ErrSendingLimitExceeded = errors.New("monthly sending limit exceeded")

	// ErrInvalidName - invalid display name.
	ErrInvalidName = errors.New("invalid name: must be 1-100 chars")

	// ErrInvalidEmail - invalid email address.
	ErrInvalidEmail = errors.New("invalid email")
)

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// NewStudentParams contains the parameters for creating a new student.
type NewStudentParams struct {
	ID    string
	Name  string
	Email string
}

// NewStudent creates a new student with a full monthly allowance and the
// current period as its reset anchor.
func NewStudent(params NewStudentParams, now time.Time) (*Student, error) {
	if params.ID == "" {
		return nil, shared.WrapError("student", "Create", shared.ErrInvalidID, "student id is required", nil)
	}

	name := strings.TrimSpace(params.Name)
	if len(name) == 0 || len(name) > 100 {
		return nil, shared.WrapError("student", "Create", shared.ErrValidation, "name must be 1-100 chars", ErrInvalidName)
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))
	if !isValidEmail(email) {
		return nil, shared.WrapError("student", "Create", shared.ErrValidation, fmt.Sprintf("malformed email %q", params.Email), ErrInvalidEmail)
	}

	ts := now.UTC()

	return &Student{
		ID:                  params.ID,
		Name:                name,
		Email:               email,
		CurrentBalance:      MonthlyAllowance,
		MonthlySendingLimit: MonthlyAllowance,
		SentThisPeriod:      0,
		LastResetPeriod:     ResolvePeriod(now),
		CreatedAt:           ts,
		UpdatedAt:           ts,
	}, nil
}

// isValidEmail performs a minimal structural check. Uniqueness is enforced
// by the persistence layer.
func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return len(email) <= 254 && strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t\n\r")
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS (Business Logic)
// ══════════════════════════════════════════════════════════════════════════════

// EnsureCurrent applies the monthly reset if the stored period is strictly
// earlier than the period now falls into:
//
//	CurrentBalance      <- MonthlyAllowance + min(CurrentBalance, CarryForwardCap)
//	SentThisPeriod      <- 0
//	MonthlySendingLimit <- MonthlyAllowance
//	LastResetPeriod     <- ResolvePeriod(now)
//
// Idempotent within a period: calling it again before the next rollover is a
// no-op. Returns true if a reset was applied. Must run before any rule that
// reads balance, limit, or sent counters.
func (s *Student) EnsureCurrent(now time.Time) bool {
	current := ResolvePeriod(now)
	if !s.LastResetPeriod.Before(current) {
		return false
	}

	carry := s.CurrentBalance
	if carry > CarryForwardCap {
		carry = CarryForwardCap
	}

	s.CurrentBalance = MonthlyAllowance + carry
	s.SentThisPeriod = 0
	s.MonthlySendingLimit = MonthlyAllowance
	s.LastResetPeriod = current
	s.UpdatedAt = now.UTC()
	return true
}

// DebitForSend withdraws amount for an outgoing recognition, enforcing both
// the balance and the monthly sending limit.
func (s *Student) DebitForSend(amount Credits) error {
	if amount > s.CurrentBalance {
		return shared.WrapError("student", "DebitForSend", shared.ErrBusinessRule,
			fmt.Sprintf("current balance: %d, requested: %d", s.CurrentBalance, amount),
			ErrInsufficientBalance)
	}
	if s.SentThisPeriod+amount > s.MonthlySendingLimit {
		return shared.WrapError("student", "DebitForSend", shared.ErrBusinessRule,
			fmt.Sprintf("limit: %d, already sent: %d, requested: %d", s.MonthlySendingLimit, s.SentThisPeriod, amount),
			ErrSendingLimitExceeded)
	}

	s.CurrentBalance -= amount
	s.SentThisPeriod += amount
	return nil
}

// CreditForReceive deposits amount from an incoming recognition. Receiving is
// unbounded: neither the balance nor the sender's limit constrains it.
func (s *Student) CreditForReceive(amount Credits) {
	s.CurrentBalance += amount
}

// DebitForRedeem withdraws amount for a voucher redemption. Redemption only
// touches the balance - never the sending counter or limit.
func (s *Student) DebitForRedeem(amount Credits) error {
	if amount > s.CurrentBalance {
		return shared.WrapError("student", "DebitForRedeem", shared.ErrBusinessRule,
			fmt.Sprintf("current balance: %d, requested: %d", s.CurrentBalance, amount),
			ErrInsufficientBalance)
	}

	s.CurrentBalance -= amount
	return nil
}

// String returns a string representation for logging.
func (s *Student) String() string {
	return fmt.Sprintf(
		"Student{ID: %s, Email: %s, Balance: %d, Sent: %d/%d, Period: %s}",
		s.ID, s.Email, s.CurrentBalance, s.SentThisPeriod, s.MonthlySendingLimit, s.LastResetPeriod,
	)
}

// Clone creates a deep copy of the student.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}

	clone := *s
	return &clone
}

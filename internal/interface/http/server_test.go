package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boostly/boostly-ledger/internal/domain/recognition"
	"github.com/boostly/boostly-ledger/internal/domain/redemption"
	"github.com/boostly/boostly-ledger/internal/domain/shared"
	"github.com/boostly/boostly-ledger/internal/domain/student"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "insufficient balance",
			err:    shared.WrapError("student", "DebitForSend", shared.ErrBusinessRule, "insufficient balance", student.ErrInsufficientBalance),
			status: http.StatusUnprocessableEntity,
			code:   "insufficient_balance",
		},
		{
			name:   "sending limit",
			err:    student.ErrSendingLimitExceeded,
			status: http.StatusUnprocessableEntity,
			code:   "sending_limit_exceeded",
		},
		{
			name:   "duplicate email",
			err:    student.ErrDuplicateEmail,
			status: http.StatusConflict,
			code:   "duplicate_email",
		},
		{
			name:   "duplicate endorsement",
			err:    recognition.ErrDuplicateEndorsement,
			status: http.StatusConflict,
			code:   "duplicate_endorsement",
		},
		{
			name:   "student not found",
			err:    student.ErrStudentNotFound,
			status: http.StatusNotFound,
			code:   "not_found",
		},
		{
			name:   "recognition not found",
			err:    recognition.ErrRecognitionNotFound,
			status: http.StatusNotFound,
			code:   "not_found",
		},
		{
			name:   "redemption not found",
			err:    redemption.ErrRedemptionNotFound,
			status: http.StatusNotFound,
			code:   "not_found",
		},
		{
			name:   "validation",
			err:    shared.NewDomainError("command", "CreateStudent", shared.ErrEmptyValue, "name is required"),
			status: http.StatusBadRequest,
			code:   "validation_error",
		},
		{
			name:   "self recognition",
			err:    shared.WrapError("recognition", "Create", shared.ErrValidation, "sender and receiver must differ", recognition.ErrSelfRecognition),
			status: http.StatusBadRequest,
			code:   "validation_error",
		},
		{
			name:   "business rule",
			err:    shared.NewDomainError("student", "Debit", shared.ErrBusinessRule, "rule violated"),
			status: http.StatusUnprocessableEntity,
			code:   "business_rule_violation",
		},
		{
			name:   "concurrent conflict",
			err:    shared.ErrConcurrentConflict,
			status: http.StatusServiceUnavailable,
			code:   "concurrent_conflict",
		},
		{
			name:   "unknown error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := mapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

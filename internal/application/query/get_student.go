// Package query contains read operations following CQRS pattern.
// Queries never modify domain facts, with one deliberate exception: reading a
// single student brings its ledger current first, so callers always see
// post-reset balances.
package query

import (
	"context"
	"time"

	"github.com/boostly/boostly-ledger/internal/domain/shared"
	"github.com/boostly/boostly-ledger/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentQuery contains the parameters to fetch one student.
type GetStudentQuery struct {
	// StudentID is the student's ID.
	StudentID string
}

// Validate validates the query.
func (q GetStudentQuery) Validate() error {
	if q.StudentID == "" {
		return shared.NewDomainError("query", "GetStudent", shared.ErrEmptyValue, "student_id is required")
	}
	return nil
}

// StudentDTO is the read model for a student.
type StudentDTO struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	CurrentBalance      int       `json:"current_balance"`
	MonthlySendingLimit int       `json:"monthly_sending_limit"`
	SentThisPeriod      int       `json:"sent_this_period"`
	LastResetPeriod     string    `json:"last_reset_period"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// GetStudentResult contains the student read model.
type GetStudentResult struct {
	Student StudentDTO
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentHandler handles the GetStudentQuery.
type GetStudentHandler struct {
	studentRepo student.Repository
	now         func() time.Time
}

// NewGetStudentHandler creates a new GetStudentHandler.
func NewGetStudentHandler(studentRepo student.Repository) *GetStudentHandler {
	return &GetStudentHandler{
		studentRepo: studentRepo,
		now:         time.Now,
	}
}

// Handle executes the get student query.
func (h *GetStudentHandler) Handle(ctx context.Context, q GetStudentQuery) (*GetStudentResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	s, err := h.studentRepo.EnsureCurrent(ctx, q.StudentID, h.now())
	if err != nil {
		return nil, err
	}

	return &GetStudentResult{Student: ToStudentDTO(s)}, nil
}

// ToStudentDTO converts a student entity into its read model.
func ToStudentDTO(s *student.Student) StudentDTO {
	return StudentDTO{
		ID:                  s.ID,
		Name:                s.Name,
		Email:               s.Email,
		CurrentBalance:      int(s.CurrentBalance),
		MonthlySendingLimit: int(s.MonthlySendingLimit),
		SentThisPeriod:      int(s.SentThisPeriod),
		LastResetPeriod:     s.LastResetPeriod.String(),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

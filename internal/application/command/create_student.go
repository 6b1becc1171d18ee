// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/boostly/boostly-ledger/internal/domain/shared"
	"github.com/boostly/boostly-ledger/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE STUDENT COMMAND
// Registers a new student with a full monthly allowance.
// ══════════════════════════════════════════════════════════════════════════════

// CreateStudentCommand contains the data to register a student.
type CreateStudentCommand struct {
	// Name is the student's display name.
	Name string

	// Email must be unique across all students.
	Email string
}

// Validate validates the command.
func (c CreateStudentCommand) Validate() error {
	if c.Name == "" {
		return shared.NewDomainError("command", "CreateStudent", shared.ErrEmptyValue, "name is required")
	}
	if c.Email == "" {
		return shared.NewDomainError("command", "CreateStudent", shared.ErrEmptyValue, "email is required")
	}
	return nil
}

// CreateStudentResult contains the created student.
type CreateStudentResult struct {
	Student *student.Student
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CreateStudentHandler handles the CreateStudentCommand.
type CreateStudentHandler struct {
	studentRepo student.Repository
	now         func() time.Time
}

// NewCreateStudentHandler creates a new CreateStudentHandler.
func NewCreateStudentHandler(studentRepo student.Repository) *CreateStudentHandler {
	return &CreateStudentHandler{
		studentRepo: studentRepo,
		now:         time.Now,
	}
}

// Handle executes the create student command.
func (h *CreateStudentHandler) Handle(ctx context.Context, cmd CreateStudentCommand) (*CreateStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := student.NewStudent(student.NewStudentParams{
		ID:    uuid.NewString(),
		Name:  cmd.Name,
		Email: cmd.Email,
	}, h.now())
	if err != nil {
		return nil, err
	}

	if err := h.studentRepo.Create(ctx, s); err != nil {
		return nil, err
	}

	return &CreateStudentResult{Student: s}, nil
}

package query

import (
	"context"

	"github.com/boostly/boostly-ledger/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// Returns every registered student as stored. The listing does not sweep
// resets; individual balances come current when a student is read or touched.
// ══════════════════════════════════════════════════════════════════════════════

// ListStudentsQuery lists all students. It carries no parameters.
type ListStudentsQuery struct{}

// ListStudentsResult contains the student read models.
type ListStudentsResult struct {
	Students []StudentDTO
	Total    int
}

// ListStudentsHandler handles the ListStudentsQuery.
type ListStudentsHandler struct {
	studentRepo student.Repository
}

// NewListStudentsHandler creates a new ListStudentsHandler.
func NewListStudentsHandler(studentRepo student.Repository) *ListStudentsHandler {
	return &ListStudentsHandler{studentRepo: studentRepo}
}

// Handle executes the list students query.
func (h *ListStudentsHandler) Handle(ctx context.Context, _ ListStudentsQuery) (*ListStudentsResult, error) {
	students, err := h.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]StudentDTO, len(students))
	for i, s := range students {
		dtos[i] = ToStudentDTO(s)
	}

	return &ListStudentsResult{
		Students: dtos,
		Total:    len(dtos),
	}, nil
}

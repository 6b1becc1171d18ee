package query

import (
	"context"

	"github.com/boostly/boostly-ledger/internal/domain/redemption"
	"github.com/boostly/boostly-ledger/internal/domain/shared"
	"github.com/boostly/boostly-ledger/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENT REDEMPTIONS QUERY
// Returns a student's redemption history, newest first. The student must
// exist; an empty history is a valid result, a missing student is not.
// ══════════════════════════════════════════════════════════════════════════════

// ListStudentRedemptionsQuery contains the parameters for the history fetch.
type ListStudentRedemptionsQuery struct {
	// StudentID is the student whose redemptions to list.
	StudentID string
}

// Validate validates the query.
func (q ListStudentRedemptionsQuery) Validate() error {
	if q.StudentID == "" {
		return shared.NewDomainError("query", "ListStudentRedemptions", shared.ErrEmptyValue, "student_id is required")
	}
	return nil
}

// ListStudentRedemptionsResult contains the redemption read models.
type ListStudentRedemptionsResult struct {
	Redemptions []RedemptionDTO
	Total       int
}

// ListStudentRedemptionsHandler handles the ListStudentRedemptionsQuery.
type ListStudentRedemptionsHandler struct {
	redemptionRepo redemption.Repository
	studentRepo    student.Repository
}

// NewListStudentRedemptionsHandler creates a new ListStudentRedemptionsHandler.
func NewListStudentRedemptionsHandler(
	redemptionRepo redemption.Repository,
	studentRepo student.Repository,
) *ListStudentRedemptionsHandler {
	return &ListStudentRedemptionsHandler{
		redemptionRepo: redemptionRepo,
		studentRepo:    studentRepo,
	}
}

// Handle executes the list student redemptions query.
func (h *ListStudentRedemptionsHandler) Handle(ctx context.Context, q ListStudentRedemptionsQuery) (*ListStudentRedemptionsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.studentRepo.GetByID(ctx, q.StudentID); err != nil {
		return nil, err
	}

	redemptions, err := h.redemptionRepo.GetByStudentID(ctx, q.StudentID)
	if err != nil {
		return nil, err
	}

	dtos := make([]RedemptionDTO, len(redemptions))
	for i, r := range redemptions {
		dtos[i] = ToRedemptionDTO(r)
	}

	return &ListStudentRedemptionsResult{
		Redemptions: dtos,
		Total:       len(dtos),
	}, nil
}

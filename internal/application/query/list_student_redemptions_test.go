package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostly/boostly-ledger/internal/domain/redemption"
	"github.com/boostly/boostly-ledger/internal/domain/shared"
	"github.com/boostly/boostly-ledger/internal/domain/student"
)

func TestListStudentRedemptionsHandler(t *testing.T) {
	seedRedemption := func(t *testing.T, repo *fakeRedemptionRepo, id, studentID string, credits int, at time.Time) {
		t.Helper()
		r, err := redemption.NewRedemption(id, studentID, credits, at)
		require.NoError(t, err)
		require.NoError(t, repo.CreateWithDebit(context.Background(), r, at))
	}

	t.Run("returns history newest first", func(t *testing.T) {
		students := newFakeStudentRepo()
		seedStudent(t, students, "s1", testNow)
		redemptions := &fakeRedemptionRepo{}
		seedRedemption(t, redemptions, "red-1", "s1", 10, testNow)
		seedRedemption(t, redemptions, "red-2", "s1", 20, testNow.Add(time.Hour))
		seedRedemption(t, redemptions, "red-3", "other", 30, testNow)

		h := NewListStudentRedemptionsHandler(redemptions, students)

		result, err := h.Handle(context.Background(), ListStudentRedemptionsQuery{StudentID: "s1"})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Total)
		require.Len(t, result.Redemptions, 2)
		assert.Equal(t, "red-2", result.Redemptions[0].ID)
		assert.Equal(t, "red-1", result.Redemptions[1].ID)
		assert.Equal(t, 100, result.Redemptions[0].VoucherAmount)
	})

	t.Run("empty history is valid", func(t *testing.T) {
		students := newFakeStudentRepo()
		seedStudent(t, students, "s1", testNow)

		h := NewListStudentRedemptionsHandler(&fakeRedemptionRepo{}, students)

		result, err := h.Handle(context.Background(), ListStudentRedemptionsQuery{StudentID: "s1"})
		require.NoError(t, err)
		assert.Zero(t, result.Total)
	})

	t.Run("missing student is not", func(t *testing.T) {
		h := NewListStudentRedemptionsHandler(&fakeRedemptionRepo{}, newFakeStudentRepo())

		_, err := h.Handle(context.Background(), ListStudentRedemptionsQuery{StudentID: "ghost"})
		assert.ErrorIs(t, err, student.ErrStudentNotFound)
	})

	t.Run("missing id fails validation", func(t *testing.T) {
		h := NewListStudentRedemptionsHandler(&fakeRedemptionRepo{}, newFakeStudentRepo())

		_, err := h.Handle(context.Background(), ListStudentRedemptionsQuery{})
		assert.ErrorIs(t, err, shared.ErrEmptyValue)
	})
}

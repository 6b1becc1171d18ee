package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boostly/boostly-ledger/internal/domain/shared"
)

func TestValidateLimit(t *testing.T) {
	assert.NoError(t, ValidateLimit(1))
	assert.NoError(t, ValidateLimit(DefaultLimit))
	assert.NoError(t, ValidateLimit(1000))

	assert.ErrorIs(t, ValidateLimit(0), shared.ErrInvalidAmount)
	assert.ErrorIs(t, ValidateLimit(-3), shared.ErrInvalidAmount)
}

func TestSort(t *testing.T) {
	t.Run("orders by credits descending", func(t *testing.T) {
		entries := []Entry{
			{StudentID: "a", TotalCreditsReceived: 10},
			{StudentID: "b", TotalCreditsReceived: 50},
			{StudentID: "c", TotalCreditsReceived: 30},
		}

		Sort(entries)

		assert.Equal(t, "b", entries[0].StudentID)
		assert.Equal(t, "c", entries[1].StudentID)
		assert.Equal(t, "a", entries[2].StudentID)
	})

	t.Run("ties break by ascending student id", func(t *testing.T) {
		entries := []Entry{
			{StudentID: "zzz", TotalCreditsReceived: 40},
			{StudentID: "aaa", TotalCreditsReceived: 40},
			{StudentID: "mmm", TotalCreditsReceived: 40},
		}

		Sort(entries)

		assert.Equal(t, []string{"aaa", "mmm", "zzz"}, []string{
			entries[0].StudentID, entries[1].StudentID, entries[2].StudentID,
		})
	})

	t.Run("assigns ranks from one", func(t *testing.T) {
		entries := []Entry{
			{StudentID: "a", TotalCreditsReceived: 1},
			{StudentID: "b", TotalCreditsReceived: 2},
		}

		Sort(entries)

		assert.Equal(t, 1, entries[0].Rank)
		assert.Equal(t, 2, entries[1].Rank)
	})

	t.Run("empty slice is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() { Sort(nil) })
	})
}

package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostly/boostly-ledger/internal/domain/leaderboard"
	"github.com/boostly/boostly-ledger/internal/domain/shared"
)

func TestGetLeaderboardHandler(t *testing.T) {
	entries := []leaderboard.Entry{
		{Rank: 1, StudentID: "s2", StudentName: "Bea", TotalCreditsReceived: 120, TotalRecognitionsReceived: 4, TotalEndorsementsReceived: 7},
		{Rank: 2, StudentID: "s1", StudentName: "Al", TotalCreditsReceived: 40, TotalRecognitionsReceived: 2, TotalEndorsementsReceived: 1},
	}

	t.Run("maps entries to the read model", func(t *testing.T) {
		repo := &fakeLeaderboardRepo{entries: entries}
		h := NewGetLeaderboardHandler(repo)
		h.now = func() time.Time { return testNow }

		result, err := h.Handle(context.Background(), GetLeaderboardQuery{Limit: 10})
		require.NoError(t, err)

		assert.Equal(t, 10, repo.lastLimit)
		assert.Equal(t, 10, result.Limit)
		assert.Equal(t, testNow, result.GeneratedAt)
		require.Len(t, result.Entries, 2)

		assert.Equal(t, 1, result.Entries[0].Rank)
		assert.Equal(t, "s2", result.Entries[0].StudentID)
		assert.Equal(t, "Bea", result.Entries[0].StudentName)
		assert.Equal(t, 120, result.Entries[0].TotalCreditsReceived)
		assert.Equal(t, 7, result.Entries[0].TotalEndorsementsReceived)
	})

	t.Run("limit truncates", func(t *testing.T) {
		h := NewGetLeaderboardHandler(&fakeLeaderboardRepo{entries: entries})
		h.now = func() time.Time { return testNow }

		result, err := h.Handle(context.Background(), GetLeaderboardQuery{Limit: 1})
		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "s2", result.Entries[0].StudentID)
	})

	t.Run("non-positive limit is rejected", func(t *testing.T) {
		h := NewGetLeaderboardHandler(&fakeLeaderboardRepo{entries: entries})

		for _, limit := range []int{0, -5} {
			_, err := h.Handle(context.Background(), GetLeaderboardQuery{Limit: limit})
			assert.ErrorIs(t, err, shared.ErrInvalidAmount, "limit %d", limit)
		}
	})

	t.Run("empty board yields empty entries", func(t *testing.T) {
		h := NewGetLeaderboardHandler(&fakeLeaderboardRepo{})
		h.now = func() time.Time { return testNow }

		result, err := h.Handle(context.Background(), GetLeaderboardQuery{Limit: leaderboard.DefaultLimit})
		require.NoError(t, err)
		assert.Empty(t, result.Entries)
	})
}

package query

import (
	"context"
	"time"

	"github.com/boostly/boostly-ledger/internal/domain/leaderboard"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET LEADERBOARD QUERY
// Ranks students by total credits received. Zero-receivers are excluded, ties
// break by ascending student ID. The underlying repository may serve from
// cache; ordering is identical either way.
// ══════════════════════════════════════════════════════════════════════════════

// GetLeaderboardQuery contains the leaderboard parameters.
type GetLeaderboardQuery struct {
	// Limit is the maximum number of entries. Must be positive; callers with
	// no opinion pass leaderboard.DefaultLimit.
	Limit int
}

// LeaderboardEntryDTO is the read model for one leaderboard row.
type LeaderboardEntryDTO struct {
	Rank                      int    `json:"rank"`
	StudentID                 string `json:"student_id"`
	StudentName               string `json:"student_name"`
	TotalCreditsReceived      int    `json:"total_credits_received"`
	TotalRecognitionsReceived int    `json:"total_recognitions_received"`
	TotalEndorsementsReceived int    `json:"total_endorsements_received"`
}

// GetLeaderboardResult contains the ranked entries.
type GetLeaderboardResult struct {
	Entries     []LeaderboardEntryDTO `json:"entries"`
	Limit       int                   `json:"limit"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// GetLeaderboardHandler handles the GetLeaderboardQuery.
type GetLeaderboardHandler struct {
	leaderboardRepo leaderboard.Repository
	now             func() time.Time
}

// NewGetLeaderboardHandler creates a new GetLeaderboardHandler.
func NewGetLeaderboardHandler(leaderboardRepo leaderboard.Repository) *GetLeaderboardHandler {
	return &GetLeaderboardHandler{
		leaderboardRepo: leaderboardRepo,
		now:             time.Now,
	}
}

// Handle executes the get leaderboard query.
func (h *GetLeaderboardHandler) Handle(ctx context.Context, q GetLeaderboardQuery) (*GetLeaderboardResult, error) {
	if err := leaderboard.ValidateLimit(q.Limit); err != nil {
		return nil, err
	}

	entries, err := h.leaderboardRepo.TopReceivers(ctx, q.Limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]LeaderboardEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = LeaderboardEntryDTO{
			Rank:                      e.Rank,
			StudentID:                 e.StudentID,
			StudentName:               e.StudentName,
			TotalCreditsReceived:      e.TotalCreditsReceived,
			TotalRecognitionsReceived: e.TotalRecognitionsReceived,
			TotalEndorsementsReceived: e.TotalEndorsementsReceived,
		}
	}

	return &GetLeaderboardResult{
		Entries:     dtos,
		Limit:       q.Limit,
		GeneratedAt: h.now().UTC(),
	}, nil
}

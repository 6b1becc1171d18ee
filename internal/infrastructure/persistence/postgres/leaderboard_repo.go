package postgres

import (
	"context"
	"fmt"

	"github.com/boostly/boostly-ledger/internal/domain/leaderboard"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// LeaderboardRepository implements leaderboard.Repository for PostgreSQL.
// Everything is derived from the recognition and endorsement fact tables at
// query time; nothing here is stored redundantly.
type LeaderboardRepository struct {
	conn *Connection
}

// NewLeaderboardRepository creates a new LeaderboardRepository.
func NewLeaderboardRepository(conn *Connection) *LeaderboardRepository {
	return &LeaderboardRepository{conn: conn}
}

// TopReceivers aggregates received credits, recognitions, and endorsements per
// student. The inner join on recognitions excludes students who have never
// received one. Ties on total credits break by ascending student ID.
func (r *LeaderboardRepository) TopReceivers(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	if err := leaderboard.ValidateLimit(limit); err != nil {
		return nil, err
	}

	query := `
		SELECT
			s.id,
			s.name,
			COALESCE(SUM(r.credits), 0) AS total_credits,
			COUNT(r.id) AS total_recognitions,
			COALESCE(SUM(
				(SELECT COUNT(*) FROM endorsements e WHERE e.recognition_id = r.id)
			), 0) AS total_endorsements
		FROM students s
		JOIN recognitions r ON r.receiver_id = s.id
		GROUP BY s.id, s.name
		ORDER BY total_credits DESC, s.id ASC
		LIMIT $1
	`

	rows, err := r.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []leaderboard.Entry
	for rows.Next() {
		var e leaderboard.Entry
		err := rows.Scan(
			&e.StudentID,
			&e.StudentName,
			&e.TotalCreditsReceived,
			&e.TotalRecognitionsReceived,
			&e.TotalEndorsementsReceived,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	// The query already orders rows; Sort owns the ordering convention and the
	// rank assignment, so both stay defined in exactly one place.
	leaderboard.Sort(entries)

	return entries, nil
}

package leaderboard

import "context"

// Repository defines the read contract for the leaderboard aggregation.
type Repository interface {
	// TopReceivers returns at most limit entries, ordered by total credits
	// received descending with ties broken by ascending student ID, ranks
	// assigned from 1. Students who have received no recognitions are
	// excluded. limit must be positive.
	TopReceivers(ctx context.Context, limit int) ([]Entry, error)
}

// Package leaderboard contains the ranked aggregation over recognitions and
// endorsements received per student. The leaderboard is a pure read: it never
// triggers resets and derives everything from the immutable fact records.
package leaderboard

import (
	"sort"

	"github.com/boostly/boostly-ledger/internal/domain/shared"
)

// DefaultLimit is the number of entries callers conventionally ask for when
// they have no opinion. The engine itself rejects limit <= 0; substituting
// the default for an absent parameter is the shell's job.
const DefaultLimit = 10

// Entry is one ranked leaderboard row. Students with zero recognitions
// received do not appear.
type Entry struct {
	// Rank is the 1-based position after ordering.
	Rank int

	// StudentID identifies the receiving student.
	StudentID string

	// StudentName is the student's display name.
	StudentName string

	// TotalCreditsReceived is the sum of credits over recognitions received.
	TotalCreditsReceived int

	// TotalRecognitionsReceived is the count of recognitions received.
	TotalRecognitionsReceived int

	// TotalEndorsementsReceived is the sum of endorsement counts over those
	// recognitions.
	TotalEndorsementsReceived int
}

// ValidateLimit enforces the engine convention for the limit parameter.
func ValidateLimit(limit int) error {
	if limit <= 0 {
		return shared.NewDomainError("leaderboard", "Top", shared.ErrInvalidAmount, "limit must be positive")
	}
	return nil
}

// Sort orders entries by total credits received descending, ties broken by
// ascending student ID, and assigns 1-based ranks.
func Sort(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalCreditsReceived != entries[j].TotalCreditsReceived {
			return entries[i].TotalCreditsReceived > entries[j].TotalCreditsReceived
		}
		return entries[i].StudentID < entries[j].StudentID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

package query

import (
	"context"
	"sort"
	"time"

	"github.com/boostly/boostly-ledger/internal/domain/leaderboard"
	"github.com/boostly/boostly-ledger/internal/domain/redemption"
	"github.com/boostly/boostly-ledger/internal/domain/student"
)

type fakeStudentRepo struct {
	students map[string]*student.Student

	ensureCurrentCalls int
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]*student.Student)}
}

func (r *fakeStudentRepo) Create(_ context.Context, s *student.Student) error {
	r.students[s.ID] = s.Clone()
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id string) (*student.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, student.ErrStudentNotFound
	}
	return s.Clone(), nil
}

func (r *fakeStudentRepo) GetByEmail(_ context.Context, email string) (*student.Student, error) {
	for _, s := range r.students {
		if s.Email == email {
			return s.Clone(), nil
		}
	}
	return nil, student.ErrStudentNotFound
}

func (r *fakeStudentRepo) GetAll(_ context.Context) ([]*student.Student, error) {
	ids := make([]string, 0, len(r.students))
	for id := range r.students {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	all := make([]*student.Student, 0, len(ids))
	for _, id := range ids {
		all = append(all, r.students[id].Clone())
	}
	return all, nil
}

func (r *fakeStudentRepo) EnsureCurrent(_ context.Context, id string, now time.Time) (*student.Student, error) {
	r.ensureCurrentCalls++
	s, ok := r.students[id]
	if !ok {
		return nil, student.ErrStudentNotFound
	}
	s.EnsureCurrent(now)
	return s.Clone(), nil
}

func (r *fakeStudentRepo) ResetStale(_ context.Context, now time.Time) (int, error) {
	count := 0
	for _, s := range r.students {
		if s.EnsureCurrent(now) {
			count++
		}
	}
	return count, nil
}

func (r *fakeStudentRepo) Count(_ context.Context) (int, error) {
	return len(r.students), nil
}

type fakeLeaderboardRepo struct {
	entries []leaderboard.Entry
	err     error

	lastLimit int
}

func (r *fakeLeaderboardRepo) TopReceivers(_ context.Context, limit int) ([]leaderboard.Entry, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.lastLimit = limit
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}

type fakeRedemptionRepo struct {
	redemptions []*redemption.Redemption
}

func (r *fakeRedemptionRepo) CreateWithDebit(_ context.Context, red *redemption.Redemption, _ time.Time) error {
	stored := *red
	r.redemptions = append(r.redemptions, &stored)
	return nil
}

func (r *fakeRedemptionRepo) GetByID(_ context.Context, id string) (*redemption.Redemption, error) {
	for _, red := range r.redemptions {
		if red.ID == id {
			out := *red
			return &out, nil
		}
	}
	return nil, redemption.ErrRedemptionNotFound
}

func (r *fakeRedemptionRepo) GetByStudentID(_ context.Context, studentID string) ([]*redemption.Redemption, error) {
	var all []*redemption.Redemption
	for _, red := range r.redemptions {
		if red.StudentID == studentID {
			out := *red
			all = append(all, &out)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

package command

import (
	"context"
	"sort"
	"time"

	"github.com/boostly/boostly-ledger/internal/domain/leaderboard"
	"github.com/boostly/boostly-ledger/internal/domain/recognition"
	"github.com/boostly/boostly-ledger/internal/domain/redemption"
	"github.com/boostly/boostly-ledger/internal/domain/student"
)

// In-memory repositories mirroring the transactional semantics of the
// Postgres implementations: ledgers are brought current before rules run,
// and a failed operation leaves no partial mutation behind.

type fakeStudentRepo struct {
	students map[string]*student.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]*student.Student)}
}

func (r *fakeStudentRepo) Create(_ context.Context, s *student.Student) error {
	for _, existing := range r.students {
		if existing.Email == s.Email {
			return student.ErrDuplicateEmail
		}
	}
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

// totalCredits sums every balance, for conservation checks.
func (r *fakeStudentRepo) totalCredits() student.Credits {
	var total student.Credits
	for _, s := range r.students {
		total += s.CurrentBalance
	}
	return total
}

type fakeRecognitionRepo struct {
	students     *fakeStudentRepo
	recognitions map[string]*recognition.Recognition
	endorsements map[string]*recognition.Endorsement
}

func newFakeRecognitionRepo(students *fakeStudentRepo) *fakeRecognitionRepo {
	return &fakeRecognitionRepo{
		students:     students,
		recognitions: make(map[string]*recognition.Recognition),
		endorsements: make(map[string]*recognition.Endorsement),
	}
}

func (r *fakeRecognitionRepo) CreateWithTransfer(_ context.Context, rec *recognition.Recognition, now time.Time) error {
	sender, ok := r.students.students[rec.SenderID]
	if !ok {
		return student.ErrStudentNotFound
	}
	receiver, ok := r.students.students[rec.ReceiverID]
	if !ok {
		return student.ErrStudentNotFound
	}

	// Work on clones so a rule failure leaves the ledgers untouched.
	senderCopy := sender.Clone()
	receiverCopy := receiver.Clone()

	senderCopy.EnsureCurrent(now)
	receiverCopy.EnsureCurrent(now)

	if err := senderCopy.DebitForSend(student.Credits(rec.Credits)); err != nil {
		return err
	}
	receiverCopy.CreditForReceive(student.Credits(rec.Credits))

	r.students.students[rec.SenderID] = senderCopy
	r.students.students[rec.ReceiverID] = receiverCopy

	stored := *rec
	r.recognitions[rec.ID] = &stored
	return nil
}

func (r *fakeRecognitionRepo) GetByID(_ context.Context, id string) (*recognition.Recognition, error) {
	rec, ok := r.recognitions[id]
	if !ok {
		return nil, recognition.ErrRecognitionNotFound
	}
	out := *rec
	out.EndorsementCount = r.countFor(id)
	return &out, nil
}

func (r *fakeRecognitionRepo) GetAll(_ context.Context) ([]*recognition.Recognition, error) {
	all := make([]*recognition.Recognition, 0, len(r.recognitions))
	for id := range r.recognitions {
		rec, _ := r.GetByID(context.Background(), id)
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func (r *fakeRecognitionRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.recognitions[id]
	return ok, nil
}

func (r *fakeRecognitionRepo) CreateEndorsement(_ context.Context, e *recognition.Endorsement) error {
	if _, ok := r.recognitions[e.RecognitionID]; !ok {
		return recognition.ErrRecognitionNotFound
	}
	for _, existing := range r.endorsements {
		if existing.RecognitionID == e.RecognitionID && existing.EndorserID == e.EndorserID {
			return recognition.ErrDuplicateEndorsement
		}
	}
	stored := *e
	r.endorsements[e.ID] = &stored
	return nil
}

func (r *fakeRecognitionRepo) GetEndorsementByID(_ context.Context, id string) (*recognition.Endorsement, error) {
	e, ok := r.endorsements[id]
	if !ok {
		return nil, recognition.ErrEndorsementNotFound
	}
	out := *e
	return &out, nil
}

func (r *fakeRecognitionRepo) CountEndorsements(_ context.Context, recognitionID string) (int, error) {
	return r.countFor(recognitionID), nil
}

func (r *fakeRecognitionRepo) countFor(recognitionID string) int {
	count := 0
	for _, e := range r.endorsements {
		if e.RecognitionID == recognitionID {
			count++
		}
	}
	return count
}

type fakeRedemptionRepo struct {
	students    *fakeStudentRepo
	redemptions map[string]*redemption.Redemption
}

func newFakeRedemptionRepo(students *fakeStudentRepo) *fakeRedemptionRepo {
	return &fakeRedemptionRepo{
		students:    students,
		redemptions: make(map[string]*redemption.Redemption),
	}
}

func (r *fakeRedemptionRepo) CreateWithDebit(_ context.Context, red *redemption.Redemption, now time.Time) error {
	s, ok := r.students.students[red.StudentID]
	if !ok {
		return student.ErrStudentNotFound
	}

	copy := s.Clone()
	copy.EnsureCurrent(now)

	if err := copy.DebitForRedeem(student.Credits(red.CreditsRedeemed)); err != nil {
		return err
	}

	r.students.students[red.StudentID] = copy

	stored := *red
	r.redemptions[red.ID] = &stored
	return nil
}

func (r *fakeRedemptionRepo) GetByID(_ context.Context, id string) (*redemption.Redemption, error) {
	red, ok := r.redemptions[id]
	if !ok {
		return nil, redemption.ErrRedemptionNotFound
	}
	out := *red
	return &out, nil
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

// fakeLeaderboard derives the ranking from the recognition and endorsement
// facts held by the other fakes, the same way the SQL aggregation does.
type fakeLeaderboard struct {
	students     *fakeStudentRepo
	recognitions *fakeRecognitionRepo
}

func (r *fakeLeaderboard) TopReceivers(_ context.Context, limit int) ([]leaderboard.Entry, error) {
	if err := leaderboard.ValidateLimit(limit); err != nil {
		return nil, err
	}

	byReceiver := make(map[string]*leaderboard.Entry)
	for _, rec := range r.recognitions.recognitions {
		e, ok := byReceiver[rec.ReceiverID]
		if !ok {
			e = &leaderboard.Entry{
				StudentID:   rec.ReceiverID,
				StudentName: r.students.students[rec.ReceiverID].Name,
			}
			byReceiver[rec.ReceiverID] = e
		}
		e.TotalCreditsReceived += rec.Credits
		e.TotalRecognitionsReceived++
		e.TotalEndorsementsReceived += r.recognitions.countFor(rec.ID)
	}

	entries := make([]leaderboard.Entry, 0, len(byReceiver))
	for _, e := range byReceiver {
		entries = append(entries, *e)
	}

	leaderboard.Sort(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) Invalidate(context.Context) error {
	f.calls++
	return nil
}

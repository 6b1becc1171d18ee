package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/boostly/boostly-ledger/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository implements student.Repository for PostgreSQL.
type StudentRepository struct {
	conn *Connection
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(conn *Connection) *StudentRepository {
	return &StudentRepository{conn: conn}
}

const studentColumns = `id, name, email, current_balance, monthly_sending_limit,
	   sent_this_period, last_reset_period, created_at, updated_at`

// Create creates a new student.
func (r *StudentRepository) Create(ctx context.Context, s *student.Student) error {
	query := `
		INSERT INTO students (
			id, name, email, current_balance, monthly_sending_limit,
			sent_this_period, last_reset_period, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.conn.Exec(ctx, query,
		s.ID,
		s.Name,
		s.Email,
		int(s.CurrentBalance),
		int(s.MonthlySendingLimit),
		int(s.SentThisPeriod),
		s.LastResetPeriod.String(),
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return student.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

// GetByID returns a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id)
	return scanStudent(row)
}

// GetByEmail returns a student by email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE email = $1`

	row := r.conn.QueryRow(ctx, query, email)
	return scanStudent(row)
}

// GetAll returns all students ordered by creation time.
func (r *StudentRepository) GetAll(ctx context.Context) ([]*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY created_at ASC, id ASC`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// Count returns the total number of students.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx, "SELECT COUNT(*) FROM students").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// EnsureCurrent loads the student under a row lock, applies the monthly reset
// if the stored period is stale, and persists the result.
func (r *StudentRepository) EnsureCurrent(ctx context.Context, id string, now time.Time) (*student.Student, error) {
	var current *student.Student

	err := r.conn.WithLedgerTx(ctx, func(tx pgx.Tx) error {
		s, err := lockStudent(ctx, tx, id)
		if err != nil {
			return err
		}

		if s.EnsureCurrent(now) {
			if err := saveLedger(ctx, tx, s); err != nil {
				return err
			}
		}

		current = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return current, nil
}

// ResetStale applies the monthly reset to every student whose stored period
// is stale relative to now. Each student is reset in its own transaction so
// one contended row cannot hold locks across the whole sweep.
func (r *StudentRepository) ResetStale(ctx context.Context, now time.Time) (int, error) {
	// The zero-padded "YYYY-MM" form orders lexicographically, so a plain
	// text comparison finds stale periods.
	query := `SELECT id FROM students WHERE last_reset_period < $1 ORDER BY id ASC`

	rows, err := r.conn.Query(ctx, query, student.ResolvePeriod(now).String())
	if err != nil {
		return 0, fmt.Errorf("failed to query stale students: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan student id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("rows iteration error: %w", err)
	}

	reset := 0
	for _, id := range ids {
		// The closure may run more than once on a retryable conflict, so the
		// outcome is tracked per attempt and counted only after the commit.
		applied := false
		err := r.conn.WithLedgerTx(ctx, func(tx pgx.Tx) error {
			applied = false

			s, err := lockStudent(ctx, tx, id)
			if err != nil {
				return err
			}

			// A concurrent operation may have reset this student between the
			// candidate scan and the lock; EnsureCurrent is a no-op then.
			if !s.EnsureCurrent(now) {
				return nil
			}

			if err := saveLedger(ctx, tx, s); err != nil {
				return err
			}

			applied = true
			return nil
		})
		if err != nil {
			return reset, err
		}
		if applied {
			reset++
		}
	}

	return reset, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LEDGER HELPERS (shared with the recognition and redemption repositories)
// ══════════════════════════════════════════════════════════════════════════════

// lockStudent loads a student row with FOR UPDATE, pinning it for the rest of
// the transaction. Callers that touch two students must lock them in
// ascending ID order to avoid deadlocks.
func lockStudent(ctx context.Context, q Querier, id string) (*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 FOR UPDATE`

	row := q.QueryRow(ctx, query, id)
	return scanStudent(row)
}

// saveLedger persists the mutable ledger fields of a locked student row.
func saveLedger(ctx context.Context, q Querier, s *student.Student) error {
	query := `
		UPDATE students SET
			current_balance = $1,
			monthly_sending_limit = $2,
			sent_this_period = $3,
			last_reset_period = $4,
			updated_at = $5
		WHERE id = $6
	`

	result, err := q.Exec(ctx, query,
		int(s.CurrentBalance),
		int(s.MonthlySendingLimit),
		int(s.SentThisPeriod),
		s.LastResetPeriod.String(),
		s.UpdatedAt,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	if result.RowsAffected() == 0 {
		return student.ErrStudentNotFound
	}

	return nil
}

// scanStudent scans a single student from a row.
func scanStudent(row pgx.Row) (*student.Student, error) {
	var s student.Student
	var balance, limit, sent int
	var period string

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&balance,
		&limit,
		&sent,
		&period,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if IsNoRows(err) {
		return nil, student.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}

	s.CurrentBalance = student.Credits(balance)
	s.MonthlySendingLimit = student.Credits(limit)
	s.SentThisPeriod = student.Credits(sent)
	s.LastResetPeriod, err = student.ParsePeriod(period)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reset period: %w", err)
	}

	return &s, nil
}

// scanStudents scans multiple students from rows.
func scanStudents(rows pgx.Rows) ([]*student.Student, error) {
	var students []*student.Student

	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return students, nil
}

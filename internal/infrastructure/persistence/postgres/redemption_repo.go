package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/boostly/boostly-ledger/internal/domain/redemption"
	"github.com/boostly/boostly-ledger/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// REDEMPTION REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// RedemptionRepository implements redemption.Repository for PostgreSQL.
type RedemptionRepository struct {
	conn *Connection
}

// NewRedemptionRepository creates a new RedemptionRepository.
func NewRedemptionRepository(conn *Connection) *RedemptionRepository {
	return &RedemptionRepository{conn: conn}
}

// CreateWithDebit locks the student row, brings the ledger current, applies
// the balance debit, and inserts the redemption. The whole unit commits or
// rolls back together.
func (r *RedemptionRepository) CreateWithDebit(ctx context.Context, red *redemption.Redemption, now time.Time) error {
	return r.conn.WithLedgerTx(ctx, func(tx pgx.Tx) error {
		s, err := lockStudent(ctx, tx, red.StudentID)
		if err != nil {
			return err
		}

		s.EnsureCurrent(now)

		if err := s.DebitForRedeem(student.Credits(red.CreditsRedeemed)); err != nil {
			return err
		}

		s.UpdatedAt = now.UTC()
		if err := saveLedger(ctx, tx, s); err != nil {
			return err
		}

		insert := `
			INSERT INTO redemptions (id, student_id, credits_redeemed, voucher_amount, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err = tx.Exec(ctx, insert, red.ID, red.StudentID, red.CreditsRedeemed, red.VoucherAmount, red.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert redemption: %w", err)
		}

		return nil
	})
}

// GetByID returns a redemption by ID.
func (r *RedemptionRepository) GetByID(ctx context.Context, id string) (*redemption.Redemption, error) {
	query := `
		SELECT id, student_id, credits_redeemed, voucher_amount, created_at
		FROM redemptions WHERE id = $1
	`

	row := r.conn.QueryRow(ctx, query, id)
	return scanRedemption(row)
}

// GetByStudentID returns all redemptions for a student, newest first.
func (r *RedemptionRepository) GetByStudentID(ctx context.Context, studentID string) ([]*redemption.Redemption, error) {
	query := `
		SELECT id, student_id, credits_redeemed, voucher_amount, created_at
		FROM redemptions WHERE student_id = $1
		ORDER BY created_at DESC, id ASC
	`

	rows, err := r.conn.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query redemptions: %w", err)
	}
	defer rows.Close()

	var redemptions []*redemption.Redemption
	for rows.Next() {
		red, err := scanRedemption(rows)
		if err != nil {
			return nil, err
		}
		redemptions = append(redemptions, red)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return redemptions, nil
}

// scanRedemption scans a single redemption from a row.
func scanRedemption(row pgx.Row) (*redemption.Redemption, error) {
	var red redemption.Redemption

	err := row.Scan(
		&red.ID,
		&red.StudentID,
		&red.CreditsRedeemed,
		&red.VoucherAmount,
		&red.CreatedAt,
	)

	if IsNoRows(err) {
		return nil, redemption.ErrRedemptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan redemption: %w", err)
	}

	return &red, nil
}

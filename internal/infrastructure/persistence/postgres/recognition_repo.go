package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/boostly/boostly-ledger/internal/domain/recognition"
	"github.com/boostly/boostly-ledger/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECOGNITION REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// RecognitionRepository implements recognition.Repository for PostgreSQL.
type RecognitionRepository struct {
	conn *Connection
}

// NewRecognitionRepository creates a new RecognitionRepository.
func NewRecognitionRepository(conn *Connection) *RecognitionRepository {
	return &RecognitionRepository{conn: conn}
}

// CreateWithTransfer locks both student rows in ascending ID order, brings
// each ledger current, applies the sender debit and receiver credit, and
// inserts the recognition. The whole unit commits or rolls back together.
func (r *RecognitionRepository) CreateWithTransfer(ctx context.Context, rec *recognition.Recognition, now time.Time) error {
	return r.conn.WithLedgerTx(ctx, func(tx pgx.Tx) error {
		firstID, secondID := rec.SenderID, rec.ReceiverID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}

		first, err := lockStudent(ctx, tx, firstID)
		if err != nil {
			return err
		}
		second, err := lockStudent(ctx, tx, secondID)
		if err != nil {
			return err
		}

		sender, receiver := first, second
		if sender.ID != rec.SenderID {
			sender, receiver = second, first
		}

		sender.EnsureCurrent(now)
		receiver.EnsureCurrent(now)

		if err := sender.DebitForSend(student.Credits(rec.Credits)); err != nil {
			return err
		}
		receiver.CreditForReceive(student.Credits(rec.Credits))

		sender.UpdatedAt = now.UTC()
		receiver.UpdatedAt = now.UTC()

		if err := saveLedger(ctx, tx, sender); err != nil {
			return err
		}
		if err := saveLedger(ctx, tx, receiver); err != nil {
			return err
		}

		insert := `
			INSERT INTO recognitions (id, sender_id, receiver_id, credits, message, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err = tx.Exec(ctx, insert, rec.ID, rec.SenderID, rec.ReceiverID, rec.Credits, rec.Message, rec.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert recognition: %w", err)
		}

		return nil
	})
}

const recognitionColumns = `
	r.id, r.sender_id, r.receiver_id, r.credits, r.message, r.created_at,
	(SELECT COUNT(*) FROM endorsements e WHERE e.recognition_id = r.id) AS endorsement_count`

// GetByID returns a recognition with its derived endorsement count.
func (r *RecognitionRepository) GetByID(ctx context.Context, id string) (*recognition.Recognition, error) {
	query := `SELECT` + recognitionColumns + ` FROM recognitions r WHERE r.id = $1`

	row := r.conn.QueryRow(ctx, query, id)
	return scanRecognition(row)
}

// GetAll returns all recognitions, newest first, with derived endorsement
// counts.
func (r *RecognitionRepository) GetAll(ctx context.Context) ([]*recognition.Recognition, error) {
	query := `SELECT` + recognitionColumns + ` FROM recognitions r ORDER BY r.created_at DESC, r.id ASC`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recognitions: %w", err)
	}
	defer rows.Close()

	var recognitions []*recognition.Recognition
	for rows.Next() {
		rec, err := scanRecognition(rows)
		if err != nil {
			return nil, err
		}
		recognitions = append(recognitions, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return recognitions, nil
}

// Exists checks whether a recognition exists by ID.
func (r *RecognitionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM recognitions WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check recognition existence: %w", err)
	}
	return exists, nil
}

// CreateEndorsement persists an endorsement, relying on the table constraints
// for pair uniqueness and referential integrity.
func (r *RecognitionRepository) CreateEndorsement(ctx context.Context, e *recognition.Endorsement) error {
	query := `
		INSERT INTO endorsements (id, recognition_id, endorser_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.conn.Exec(ctx, query, e.ID, e.RecognitionID, e.EndorserID, e.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return recognition.ErrDuplicateEndorsement
		}
		if IsForeignKeyViolation(err) {
			// The endorser is checked by the handler first, so a broken
			// reference here means the recognition is gone.
			return recognition.ErrRecognitionNotFound
		}
		return fmt.Errorf("failed to create endorsement: %w", err)
	}

	return nil
}

// GetEndorsementByID returns an endorsement by ID.
func (r *RecognitionRepository) GetEndorsementByID(ctx context.Context, id string) (*recognition.Endorsement, error) {
	query := `SELECT id, recognition_id, endorser_id, created_at FROM endorsements WHERE id = $1`

	var e recognition.Endorsement
	err := r.conn.QueryRow(ctx, query, id).Scan(&e.ID, &e.RecognitionID, &e.EndorserID, &e.CreatedAt)
	if IsNoRows(err) {
		return nil, recognition.ErrEndorsementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan endorsement: %w", err)
	}

	return &e, nil
}

// CountEndorsements returns the number of endorsements on a recognition.
func (r *RecognitionRepository) CountEndorsements(ctx context.Context, recognitionID string) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx,
		"SELECT COUNT(*) FROM endorsements WHERE recognition_id = $1", recognitionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count endorsements: %w", err)
	}
	return count, nil
}

// scanRecognition scans a single recognition with its endorsement count.
func scanRecognition(row pgx.Row) (*recognition.Recognition, error) {
	var rec recognition.Recognition

	err := row.Scan(
		&rec.ID,
		&rec.SenderID,
		&rec.ReceiverID,
		&rec.Credits,
		&rec.Message,
		&rec.CreatedAt,
		&rec.EndorsementCount,
	)

	if IsNoRows(err) {
		return nil, recognition.ErrRecognitionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan recognition: %w", err)
	}

	return &rec, nil
}

package postgres

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_students",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_recognitions",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_redemptions",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
	}
}

// Students own their mutable ledger fields. The CHECK constraints mirror the
// domain invariants so that no code path, buggy or otherwise, can persist a
// negative balance or an over-limit sending counter.
const migration001Up = `
CREATE TABLE IF NOT EXISTS students (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	current_balance INTEGER NOT NULL DEFAULT 100,
	monthly_sending_limit INTEGER NOT NULL DEFAULT 100,
	sent_this_period INTEGER NOT NULL DEFAULT 0,
	last_reset_period TEXT NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

	CONSTRAINT uq_students_email UNIQUE (email),
	CONSTRAINT ck_balance_non_negative CHECK (current_balance >= 0),
	CONSTRAINT ck_limit_non_negative CHECK (monthly_sending_limit >= 0),
	CONSTRAINT ck_sent_within_limit CHECK (sent_this_period >= 0 AND sent_this_period <= monthly_sending_limit)
);

CREATE INDEX IF NOT EXISTS idx_students_email ON students (email);
`

const migration001Down = `
DROP TABLE IF EXISTS students;
`

// Recognitions and endorsements are immutable facts; endorsement uniqueness
// per (recognition, endorser) is a table constraint so concurrent inserts
// resolve to conflict-as-error without locking.
const migration002Up = `
CREATE TABLE IF NOT EXISTS recognitions (
	id TEXT PRIMARY KEY,
	sender_id TEXT NOT NULL REFERENCES students (id),
	receiver_id TEXT NOT NULL REFERENCES students (id),
	credits INTEGER NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

	CONSTRAINT ck_credits_positive CHECK (credits > 0),
	CONSTRAINT ck_no_self_recognition CHECK (sender_id <> receiver_id)
);

CREATE INDEX IF NOT EXISTS idx_recognitions_receiver ON recognitions (receiver_id);
CREATE INDEX IF NOT EXISTS idx_recognitions_sender ON recognitions (sender_id);

CREATE TABLE IF NOT EXISTS endorsements (
	id TEXT PRIMARY KEY,
	recognition_id TEXT NOT NULL REFERENCES recognitions (id),
	endorser_id TEXT NOT NULL REFERENCES students (id),
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

	CONSTRAINT uq_endorsement UNIQUE (recognition_id, endorser_id)
);

CREATE INDEX IF NOT EXISTS idx_endorsements_recognition ON endorsements (recognition_id);
`

const migration002Down = `
DROP TABLE IF EXISTS endorsements;
DROP TABLE IF EXISTS recognitions;
`

const migration003Up = `
CREATE TABLE IF NOT EXISTS redemptions (
	id TEXT PRIMARY KEY,
	student_id TEXT NOT NULL REFERENCES students (id),
	credits_redeemed INTEGER NOT NULL,
	voucher_amount INTEGER NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

	CONSTRAINT ck_redemption_positive CHECK (credits_redeemed > 0)
);

CREATE INDEX IF NOT EXISTS idx_redemptions_student ON redemptions (student_id);
`

const migration003Down = `
DROP TABLE IF EXISTS redemptions;
`

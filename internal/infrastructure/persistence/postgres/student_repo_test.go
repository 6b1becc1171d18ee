package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostly/boostly-ledger/internal/domain/student"
)

// testConnection connects to the database named by TEST_DATABASE_URL, applies
// the migrations, and empties the tables. Tests are skipped when the variable
// is unset.
func testConnection(t *testing.T) *Connection {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	conn, err := NewConnectionFromURL(ctx, url)
	require.NoError(t, err)
	t.Cleanup(conn.Close)

	require.NoError(t, NewMigrator(conn).Migrate(ctx))

	_, err = conn.Exec(ctx, "TRUNCATE students CASCADE")
	require.NoError(t, err)

	return conn
}

func TestResetStale(t *testing.T) {
	conn := testConnection(t)
	repo := NewStudentRepository(conn)
	ctx := context.Background()

	march := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	april := time.Date(2024, time.April, 2, 9, 0, 0, 0, time.UTC)

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		s, err := student.NewStudent(student.NewStudentParams{
			ID:    fmt.Sprintf("00000000-0000-0000-0000-00000000000%d", i),
			Name:  fmt.Sprintf("Student %d", i),
			Email: fmt.Sprintf("s%d@e.co", i),
		}, march)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, s))
		ids = append(ids, s.ID)
	}

	t.Run("counts each stale student exactly once", func(t *testing.T) {
		count, err := repo.ResetStale(ctx, april)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		for _, id := range ids {
			s, err := repo.GetByID(ctx, id)
			require.NoError(t, err)
			// The unused 100 carries at the 50 cap on top of the fresh allowance.
			assert.Equal(t, student.Credits(150), s.CurrentBalance)
			assert.Equal(t, student.ResolvePeriod(april), s.LastResetPeriod)
		}
	})

	t.Run("second sweep counts nothing", func(t *testing.T) {
		count, err := repo.ResetStale(ctx, april)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("count matches rolled ledgers after concurrent sweeps", func(t *testing.T) {
		may := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)

		type result struct {
			count int
			err   error
		}
		results := make(chan result, 2)
		for i := 0; i < 2; i++ {
			go func() {
				count, err := repo.ResetStale(ctx, may)
				results <- result{count: count, err: err}
			}()
		}

		total := 0
		for i := 0; i < 2; i++ {
			res := <-results
			require.NoError(t, res.err)
			total += res.count
		}

		// Whichever sweep locks a row first rolls it; the other sees it
		// current. Between them every ledger is counted exactly once.
		assert.Equal(t, 3, total)
	})
}

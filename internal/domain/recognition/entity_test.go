package recognition

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostly/boostly-ledger/internal/domain/shared"
)

var now = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func validParams() NewRecognitionParams {
	return NewRecognitionParams{
		ID:         "rec-1",
		SenderID:   "student-a",
		ReceiverID: "student-b",
		Credits:    20,
		Message:    "great debugging session",
	}
}

func TestNewRecognition(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		rec, err := NewRecognition(validParams(), now)
		require.NoError(t, err)

		assert.Equal(t, "rec-1", rec.ID)
		assert.Equal(t, 20, rec.Credits)
		assert.Equal(t, now, rec.CreatedAt)
		assert.Zero(t, rec.EndorsementCount)
	})

	t.Run("rejects self recognition", func(t *testing.T) {
		p := validParams()
		p.ReceiverID = p.SenderID

		_, err := NewRecognition(p, now)
		assert.ErrorIs(t, err, ErrSelfRecognition)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("rejects non-positive credits", func(t *testing.T) {
		for _, credits := range []int{0, -1, -100} {
			p := validParams()
			p.Credits = credits

			_, err := NewRecognition(p, now)
			assert.ErrorIs(t, err, shared.ErrInvalidAmount, "credits %d", credits)
		}
	})

	t.Run("trims message", func(t *testing.T) {
		p := validParams()
		p.Message = "  thanks  "

		rec, err := NewRecognition(p, now)
		require.NoError(t, err)
		assert.Equal(t, "thanks", rec.Message)
	})

	t.Run("empty message is allowed", func(t *testing.T) {
		p := validParams()
		p.Message = ""

		_, err := NewRecognition(p, now)
		assert.NoError(t, err)
	})

	t.Run("rejects oversized message", func(t *testing.T) {
		p := validParams()
		p.Message = strings.Repeat("x", MaxMessageLength+1)

		_, err := NewRecognition(p, now)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("rejects missing ids", func(t *testing.T) {
		p := validParams()
		p.SenderID = ""
		_, err := NewRecognition(p, now)
		assert.ErrorIs(t, err, shared.ErrInvalidID)

		p = validParams()
		p.ID = ""
		_, err = NewRecognition(p, now)
		assert.ErrorIs(t, err, shared.ErrInvalidID)
	})
}

func TestNewEndorsement(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		e, err := NewEndorsement("end-1", "rec-1", "student-c", now)
		require.NoError(t, err)

		assert.Equal(t, "rec-1", e.RecognitionID)
		assert.Equal(t, "student-c", e.EndorserID)
		assert.Equal(t, now, e.CreatedAt)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewEndorsement("", "rec-1", "student-c", now)
		assert.ErrorIs(t, err, shared.ErrInvalidID)

		_, err = NewEndorsement("end-1", "", "student-c", now)
		assert.ErrorIs(t, err, shared.ErrInvalidID)

		_, err = NewEndorsement("end-1", "rec-1", "", now)
		assert.ErrorIs(t, err, shared.ErrInvalidID)
	})
}

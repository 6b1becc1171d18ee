package student

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want Period
	}{
		{
			name: "mid month",
			time: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC),
			want: Period{Year: 2024, Month: time.March},
		},
		{
			name: "first instant of month",
			time: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			want: Period{Year: 2024, Month: time.April},
		},
		{
			name: "last instant of month",
			time: time.Date(2024, time.March, 31, 23, 59, 59, 999999999, time.UTC),
			want: Period{Year: 2024, Month: time.March},
		},
		{
			name: "december",
			time: time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC),
			want: Period{Year: 2023, Month: time.December},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePeriod(tt.time))
		})
	}
}

func TestPeriodBefore(t *testing.T) {
	march := Period{Year: 2024, Month: time.March}
	april := Period{Year: 2024, Month: time.April}
	january2025 := Period{Year: 2025, Month: time.January}

	assert.True(t, march.Before(april))
	assert.True(t, april.Before(january2025))
	assert.True(t, march.Before(january2025))

	assert.False(t, april.Before(march))
	assert.False(t, march.Before(march))
	assert.False(t, january2025.Before(april))
}

func TestPeriodString(t *testing.T) {
	assert.Equal(t, "2024-03", Period{Year: 2024, Month: time.March}.String())
	assert.Equal(t, "2024-12", Period{Year: 2024, Month: time.December}.String())
	assert.Equal(t, "0099-01", Period{Year: 99, Month: time.January}.String())
}

func TestParsePeriod(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := Period{Year: 2024, Month: time.July}

		parsed, err := ParsePeriod(original.String())
		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParsePeriod("not-a-period")
		assert.Error(t, err)
	})

	t.Run("rejects month out of range", func(t *testing.T) {
		_, err := ParsePeriod("2024-13")
		assert.Error(t, err)
	})
}

func TestPeriodOrderingMatchesLexicographic(t *testing.T) {
	// The stale-period sweep compares stored "YYYY-MM" strings directly, so
	// string order must agree with Before.
	periods := []Period{
		{Year: 2023, Month: time.December},
		{Year: 2024, Month: time.January},
		{Year: 2024, Month: time.September},
		{Year: 2024, Month: time.October},
		{Year: 2025, Month: time.February},
	}

	for i := 0; i < len(periods)-1; i++ {
		a, b := periods[i], periods[i+1]
		assert.True(t, a.Before(b))
		assert.Less(t, a.String(), b.String())
	}
}

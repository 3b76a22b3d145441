//go:build unit

package booking_test

import (
	"testing"
	"time"

	"roombook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlot(t *testing.T) {
	base := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	t.Run("end must come after start", func(t *testing.T) {
		_, err := booking.NewTimeSlot(base, base)
		assert.ErrorIs(t, err, booking.ErrInvalidRange)

		_, err = booking.NewTimeSlot(base, base.Add(-time.Hour))
		assert.ErrorIs(t, err, booking.ErrInvalidRange)
	})

	t.Run("half-open overlap semantics", func(t *testing.T) {
		existing, err := booking.NewTimeSlot(base, base.Add(time.Hour))
		require.NoError(t, err)

		cases := []struct {
			name     string
			start    time.Time
			end      time.Time
			overlaps bool
		}{
			{"fully inside", base.Add(10 * time.Minute), base.Add(30 * time.Minute), true},
			{"partial overlap at the end", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
			{"partial overlap at the start", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), true},
			{"covering the whole slot", base.Add(-time.Hour), base.Add(2 * time.Hour), true},
			{"back-to-back after", base.Add(time.Hour), base.Add(2 * time.Hour), false},
			{"back-to-back before", base.Add(-time.Hour), base, false},
			{"disjoint", base.Add(3 * time.Hour), base.Add(4 * time.Hour), false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				candidate, err := booking.NewTimeSlot(tc.start, tc.end)
				require.NoError(t, err)
				assert.Equal(t, tc.overlaps, existing.Overlaps(candidate))
				assert.Equal(t, tc.overlaps, candidate.Overlaps(existing))
			})
		}
	})

	t.Run("OnDay keeps time-of-day and duration", func(t *testing.T) {
		slot, err := booking.NewTimeSlot(base, base.Add(90*time.Minute))
		require.NoError(t, err)

		moved := slot.OnDay(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), moved.Start())
		assert.Equal(t, 90*time.Minute, moved.Duration())
	})
}

func TestCreatorEmail(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		email, err := booking.NewCreatorEmail("  Alice@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", email.String())
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		_, err := booking.NewCreatorEmail("not-an-email")
		assert.ErrorIs(t, err, booking.ErrInvalidEmail)
	})

	t.Run("domain allow-list", func(t *testing.T) {
		email, err := booking.NewCreatorEmail("bob@corp.example.com")
		require.NoError(t, err)

		assert.True(t, email.BelongsToDomain(""))
		assert.True(t, email.BelongsToDomain("corp.example.com"))
		assert.True(t, email.BelongsToDomain("Corp.Example.Com"))
		assert.False(t, email.BelongsToDomain("other.example.com"))
	})
}

func TestTitleAndName(t *testing.T) {
	t.Run("title bounds", func(t *testing.T) {
		_, err := booking.NewTitle("ab")
		assert.ErrorIs(t, err, booking.ErrTitleLength)

		long := make([]byte, booking.MaxTitleLength+1)
		for i := range long {
			long[i] = 'x'
		}
		_, err = booking.NewTitle(string(long))
		assert.ErrorIs(t, err, booking.ErrTitleLength)

		title, err := booking.NewTitle("  Planning session  ")
		require.NoError(t, err)
		assert.Equal(t, "Planning session", title.String())
	})

	t.Run("name minimum length", func(t *testing.T) {
		_, err := booking.NewCreatorName("ab")
		assert.ErrorIs(t, err, booking.ErrNameTooShort)
	})

	t.Run("description maximum length", func(t *testing.T) {
		long := make([]byte, booking.MaxDescriptionLength+1)
		for i := range long {
			long[i] = 'x'
		}
		_, err := booking.NewDescription(string(long))
		assert.ErrorIs(t, err, booking.ErrDescriptionTooLong)
	})
}

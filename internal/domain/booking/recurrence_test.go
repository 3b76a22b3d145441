//go:build unit

package booking_test

import (
	"testing"
	"time"

	"roombook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpand(t *testing.T) {
	t.Run("weekly expansion is deterministic and excludes the anchor", func(t *testing.T) {
		anchor := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC) // Monday
		end := date(2024, 1, 29)

		got := booking.Expand(anchor, booking.RecurrenceWeekly, booking.ExpandOptions{EndDate: &end})

		require.Len(t, got, 4)
		assert.Equal(t, []time.Time{
			date(2024, 1, 8),
			date(2024, 1, 15),
			date(2024, 1, 22),
			date(2024, 1, 29),
		}, got)
	})

	t.Run("custom expansion picks the selected weekdays", func(t *testing.T) {
		anchor := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC) // Friday
		end := date(2024, 3, 14)

		got := booking.Expand(anchor, booking.RecurrenceCustom, booking.ExpandOptions{
			EndDate:    &end,
			DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
		})

		// Mondays and Wednesdays strictly after 2024-03-01 through 2024-03-14
		assert.Equal(t, []time.Time{
			date(2024, 3, 4),  // Mon
			date(2024, 3, 6),  // Wed
			date(2024, 3, 11), // Mon
			date(2024, 3, 13), // Wed
		}, got)
	})

	t.Run("daily expansion covers every day through the end-of-day bound", func(t *testing.T) {
		anchor := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		end := date(2024, 1, 5)

		got := booking.Expand(anchor, booking.RecurrenceDaily, booking.ExpandOptions{EndDate: &end})

		require.Len(t, got, 4)
		assert.Equal(t, date(2024, 1, 2), got[0])
		assert.Equal(t, date(2024, 1, 5), got[3])
	})

	t.Run("monthly expansion skips months lacking the day", func(t *testing.T) {
		anchor := time.Date(2024, 1, 31, 11, 0, 0, 0, time.UTC)
		end := date(2024, 5, 31)

		got := booking.Expand(anchor, booking.RecurrenceMonthly, booking.ExpandOptions{EndDate: &end})

		// February and April have no 31st; no roll-over happens.
		assert.Equal(t, []time.Time{
			date(2024, 3, 31),
			date(2024, 5, 31),
		}, got)
	})

	t.Run("default horizon is MonthsAhead when no end date is given", func(t *testing.T) {
		anchor := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

		got := booking.Expand(anchor, booking.RecurrenceWeekly, booking.ExpandOptions{MonthsAhead: 1})

		require.NotEmpty(t, got)
		last := got[len(got)-1]
		assert.False(t, last.After(anchor.AddDate(0, 1, 0)))
		// Every produced date is the anchor's weekday.
		for _, d := range got {
			assert.Equal(t, anchor.Weekday(), d.Weekday())
		}
	})

	t.Run("zero-length window yields an empty sequence", func(t *testing.T) {
		anchor := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
		end := date(2024, 1, 10) // same day as the anchor

		got := booking.Expand(anchor, booking.RecurrenceDaily, booking.ExpandOptions{EndDate: &end})

		assert.Empty(t, got)
	})

	t.Run("custom with no weekday filter yields an empty sequence", func(t *testing.T) {
		anchor := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		end := date(2024, 1, 31)

		got := booking.Expand(anchor, booking.RecurrenceCustom, booking.ExpandOptions{EndDate: &end})

		assert.Empty(t, got)
	})

	t.Run("expansion is pure", func(t *testing.T) {
		anchor := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		end := date(2024, 2, 1)
		opts := booking.ExpandOptions{EndDate: &end}

		first := booking.Expand(anchor, booking.RecurrenceDaily, opts)
		second := booking.Expand(anchor, booking.RecurrenceDaily, opts)

		assert.Equal(t, first, second)
	})
}

func TestNewRecurrenceRule(t *testing.T) {
	end := date(2024, 2, 1)

	t.Run("custom requires at least one weekday", func(t *testing.T) {
		_, err := booking.NewRecurrenceRule(booking.RecurrenceCustom, &end, nil)
		assert.ErrorIs(t, err, booking.ErrEmptyDaysOfWeek)
	})

	t.Run("none is not a recurring kind", func(t *testing.T) {
		_, err := booking.NewRecurrenceRule(booking.RecurrenceNone, &end, nil)
		assert.ErrorIs(t, err, booking.ErrInvalidRecurrence)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := booking.NewRecurrenceRule(booking.RecurrenceKind("yearly"), &end, nil)
		assert.ErrorIs(t, err, booking.ErrInvalidRecurrence)
	})

	t.Run("weekly with end date is valid", func(t *testing.T) {
		rule, err := booking.NewRecurrenceRule(booking.RecurrenceWeekly, &end, nil)
		require.NoError(t, err)
		assert.Equal(t, booking.RecurrenceWeekly, rule.Kind())
	})
}

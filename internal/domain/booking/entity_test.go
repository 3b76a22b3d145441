//go:build unit

package booking_test

import (
	"testing"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(now time.Time) *booking.Services {
	return &booking.Services{
		Clock:       clock.NewMockClock(now),
		MaxDuration: 8 * time.Hour,
	}
}

func mustBooking(t *testing.T, services *booking.Services, start, end time.Time) *booking.Booking {
	t.Helper()

	name, err := booking.NewCreatorName("Alice Johnson")
	require.NoError(t, err)
	email, err := booking.NewCreatorEmail("alice@example.com")
	require.NoError(t, err)
	title, err := booking.NewTitle("Weekly sync")
	require.NoError(t, err)
	description, err := booking.NewDescription("")
	require.NoError(t, err)

	b, err := booking.NewBooking(services, uuid.New(), name, email, title, description, start, end, booking.RecurrenceWeekly)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	services := newServices(now)

	t.Run("confirmed on creation", func(t *testing.T) {
		b := mustBooking(t, services, now.Add(time.Hour), now.Add(2*time.Hour))

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.True(t, b.IsConfirmed())
		assert.True(t, b.IsRecurring())
		assert.Nil(t, b.GeneratedFrom())
	})

	t.Run("rejects a start in the past", func(t *testing.T) {
		name, _ := booking.NewCreatorName("Alice Johnson")
		email, _ := booking.NewCreatorEmail("alice@example.com")
		title, _ := booking.NewTitle("Weekly sync")
		description, _ := booking.NewDescription("")

		_, err := booking.NewBooking(services, uuid.New(), name, email, title, description,
			now.Add(-time.Minute), now.Add(time.Hour), booking.RecurrenceNone)
		assert.ErrorIs(t, err, booking.ErrPastDate)
	})

	t.Run("rejects a duration over the maximum", func(t *testing.T) {
		name, _ := booking.NewCreatorName("Alice Johnson")
		email, _ := booking.NewCreatorEmail("alice@example.com")
		title, _ := booking.NewTitle("Weekly sync")
		description, _ := booking.NewDescription("")

		_, err := booking.NewBooking(services, uuid.New(), name, email, title, description,
			now.Add(time.Hour), now.Add(10*time.Hour), booking.RecurrenceNone)
		assert.ErrorIs(t, err, booking.ErrDurationExceeded)
	})

	t.Run("exactly the maximum duration is allowed", func(t *testing.T) {
		b := mustBooking(t, services, now.Add(time.Hour), now.Add(9*time.Hour))
		assert.Equal(t, 8*time.Hour, b.TimeSlot().Duration())
	})
}

func TestNewOccurrence(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	services := newServices(now)

	anchor := mustBooking(t, services, now.Add(time.Hour), now.Add(2*time.Hour))
	slot := anchor.TimeSlot().OnDay(now.AddDate(0, 0, 7))

	occurrence := anchor.NewOccurrence(slot)

	assert.NotEqual(t, anchor.ID(), occurrence.ID())
	require.NotNil(t, occurrence.GeneratedFrom())
	assert.Equal(t, anchor.ID(), *occurrence.GeneratedFrom())
	assert.True(t, occurrence.IsConfirmed())
	assert.Equal(t, anchor.CreatorEmail(), occurrence.CreatorEmail())
	assert.Equal(t, anchor.TimeSlot().Duration(), occurrence.TimeSlot().Duration())
}

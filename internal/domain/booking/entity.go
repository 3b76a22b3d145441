package booking

import (
	"time"

	"roombook/internal/pkg/clock"

	"github.com/google/uuid"
)

// Services carries the injected collaborators booking construction depends
// on, mirroring the per-aggregate services pattern used across the codebase.
type Services struct {
	Clock       clock.Clock
	MaxDuration time.Duration
}

type Booking struct {
	id            uuid.UUID
	roomID        uuid.UUID
	creatorName   CreatorName
	creatorEmail  CreatorEmail
	title         Title
	description   Description
	timeSlot      TimeSlot
	status        Status
	recurrence    RecurrenceKind
	generatedFrom *uuid.UUID
}

// NewBooking validates domain rules in a fixed order (range, past date,
// duration) so callers surface the first violation to the user.
func NewBooking(
	services *Services,
	roomID uuid.UUID,
	name CreatorName,
	email CreatorEmail,
	title Title,
	description Description,
	start, end time.Time,
	recurrence RecurrenceKind,
) (*Booking, error) {
	slot, err := NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}
	if slot.Start().Before(services.Clock.Now()) {
		return nil, ErrPastDate
	}
	if slot.Duration() > services.MaxDuration {
		return nil, ErrDurationExceeded
	}

	return &Booking{
		id:           uuid.New(),
		roomID:       roomID,
		creatorName:  name,
		creatorEmail: email,
		title:        title,
		description:  description,
		timeSlot:     slot,
		status:       StatusConfirmed,
		recurrence:   recurrence,
	}, nil
}

// NewOccurrence derives a confirmed occurrence of an anchor booking on
// another day. The generated-from reference is display grouping only; it
// never drives lifecycle.
func (b *Booking) NewOccurrence(slot TimeSlot) *Booking {
	anchorID := b.id
	return &Booking{
		id:            uuid.New(),
		roomID:        b.roomID,
		creatorName:   b.creatorName,
		creatorEmail:  b.creatorEmail,
		title:         b.title,
		description:   b.description,
		timeSlot:      slot,
		status:        StatusConfirmed,
		recurrence:    b.recurrence,
		generatedFrom: &anchorID,
	}
}

func (b *Booking) IsConfirmed() bool {
	return b.status == StatusConfirmed
}

func (b *Booking) IsRecurring() bool {
	return b.recurrence.IsRecurring()
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) RoomID() uuid.UUID          { return b.roomID }
func (b *Booking) CreatorName() CreatorName   { return b.creatorName }
func (b *Booking) CreatorEmail() CreatorEmail { return b.creatorEmail }
func (b *Booking) Title() Title               { return b.title }
func (b *Booking) Description() Description   { return b.description }
func (b *Booking) TimeSlot() TimeSlot         { return b.timeSlot }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) Recurrence() RecurrenceKind { return b.recurrence }
func (b *Booking) GeneratedFrom() *uuid.UUID  { return b.generatedFrom }

package builder

import (
	"time"

	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
)

// BaseTime is the reference "now" shared by builders and MockClock-driven
// tests; default inputs sit safely in its future.
var BaseTime = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

type BookingInputBuilder struct {
	input commands.CreateBookingInput
}

func NewBookingInputBuilder() *BookingInputBuilder {
	return &BookingInputBuilder{
		input: commands.CreateBookingInput{
			RoomID:       uuid.New(),
			CreatorName:  "Alice Johnson",
			CreatorEmail: "alice@example.com",
			Title:        "Weekly sync",
			Description:  "Team status meeting",
			StartTime:    BaseTime.AddDate(0, 0, 1).Add(time.Hour),     // 2024-01-02 10:00
			EndTime:      BaseTime.AddDate(0, 0, 1).Add(2 * time.Hour), // 2024-01-02 11:00
		},
	}
}

func (b *BookingInputBuilder) WithRoomID(id uuid.UUID) *BookingInputBuilder {
	b.input.RoomID = id
	return b
}

func (b *BookingInputBuilder) WithCreatorName(name string) *BookingInputBuilder {
	b.input.CreatorName = name
	return b
}

func (b *BookingInputBuilder) WithCreatorEmail(email string) *BookingInputBuilder {
	b.input.CreatorEmail = email
	return b
}

func (b *BookingInputBuilder) WithTitle(title string) *BookingInputBuilder {
	b.input.Title = title
	return b
}

func (b *BookingInputBuilder) WithTimes(start, end time.Time) *BookingInputBuilder {
	b.input.StartTime = start
	b.input.EndTime = end
	return b
}

func (b *BookingInputBuilder) WithRecurrence(kind string, endDate *time.Time, daysOfWeek ...int) *BookingInputBuilder {
	b.input.IsRecurring = true
	b.input.RecurrenceKind = kind
	b.input.RecurrenceEndDate = endDate
	b.input.DaysOfWeek = daysOfWeek
	return b
}

func (b *BookingInputBuilder) Build() commands.CreateBookingInput {
	return b.input
}

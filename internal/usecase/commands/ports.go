package commands

import (
	"context"
	"time"

	"roombook/internal/domain/booking"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/ports/ports.go -package=portsmock
//go:generate mockgen -destination=../../../tests/mock/commands/commands.go -package=commandsmock roombook/internal/usecase/commands BookingCommands,CancellationCommands

// Write-side snapshots keep the command layer off infra row types.
type BookingSnapshot struct {
	ID            uuid.UUID
	RoomID        uuid.UUID
	CreatorName   string
	CreatorEmail  string
	Title         string
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	Recurrence    string
	GeneratedFrom *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type RoomSnapshot struct {
	ID       uuid.UUID
	BranchID uuid.UUID
	Name     string
	Capacity int
}

type TokenSnapshot struct {
	BookingID uuid.UUID
	CodeHash  string
	ExpiresAt time.Time
}

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// FindConflicting returns confirmed bookings of the room whose half-open
	// interval overlaps [start, end). excludeID, when non-nil, skips the
	// booking being edited.
	FindConflicting(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]BookingSnapshot, error)
	// CreateMany persists the anchor and its occurrences in one transaction;
	// either all rows become visible or none.
	CreateMany(ctx context.Context, bookings []*booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
}

type TokenRepository interface {
	// UpsertLive atomically replaces any existing token for the booking, so
	// at most one live token exists per booking.
	UpsertLive(ctx context.Context, bookingID uuid.UUID, codeHash string, expiresAt time.Time) error
	// FindLive returns the token whose expiry is still ahead of now, or a
	// NOT_FOUND kind error.
	FindLive(ctx context.Context, bookingID uuid.UUID, now time.Time) (*TokenSnapshot, error)
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type RateLimitStatus struct {
	Limited           bool
	RemainingAttempts int
	ResetIn           time.Duration
}

type RateLimitStore interface {
	Check(key string) RateLimitStatus
	Record(key string)
	Clear(key string)
}

package repository

import (
	"context"
	"errors"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = `
	id, room_id, creator_name, creator_email, title, description,
	start_time, end_time, status, recurrence_kind, generated_from,
	created_at, updated_at`

const findBookingByIDQuery = `
SELECT` + bookingColumns + `
FROM bookings
WHERE id = $1`

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.BookingSnapshot, error) {
	row := r.pool.QueryRow(ctx, findBookingByIDQuery, id)
	snap, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return snap, nil
}

// Half-open overlap: existing.start < candidate.end AND existing.end >
// candidate.start, confirmed rows only. Touching endpoints do not conflict.
const findConflictingQuery = `
SELECT` + bookingColumns + `
FROM bookings
WHERE room_id = $1
  AND status = 'confirmed'
  AND start_time < $3
  AND end_time > $2
  AND ($4::uuid IS NULL OR id <> $4)
ORDER BY start_time`

func (r *BookingRepository) FindConflicting(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]commands.BookingSnapshot, error) {
	rows, err := r.pool.Query(ctx, findConflictingQuery, roomID, start, end, excludeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query conflicting bookings", err)
	}
	defer rows.Close()

	var snaps []commands.BookingSnapshot
	for rows.Next() {
		snap, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", scanErr)
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read conflicting bookings", err)
	}

	return snaps, nil
}

const insertBookingQuery = `
INSERT INTO bookings (
	id, room_id, creator_name, creator_email, title, description,
	start_time, end_time, status, recurrence_kind, generated_from
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// CreateMany writes the anchor and its occurrences in one transaction. The
// exclusion constraint on confirmed bookings rejects the whole batch when
// any row overlaps a concurrent commit, which keeps the all-or-nothing
// guarantee even when the advisory pre-check raced.
func (r *BookingRepository) CreateMany(ctx context.Context, bookings []*booking.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	for _, b := range bookings {
		_, err := tx.Exec(ctx, insertBookingQuery,
			b.ID(),
			b.RoomID(),
			b.CreatorName().String(),
			b.CreatorEmail().String(),
			b.Title().String(),
			nullableString(b.Description().String()),
			b.TimeSlot().Start(),
			b.TimeSlot().End(),
			b.Status().String(),
			b.Recurrence().String(),
			b.GeneratedFrom(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert booking", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit bookings", err)
	}

	return nil
}

const deleteBookingQuery = `DELETE FROM bookings WHERE id = $1`

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, deleteBookingQuery, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func scanBooking(row pgx.Row) (*commands.BookingSnapshot, error) {
	var snap commands.BookingSnapshot
	var description *string
	err := row.Scan(
		&snap.ID,
		&snap.RoomID,
		&snap.CreatorName,
		&snap.CreatorEmail,
		&snap.Title,
		&description,
		&snap.StartTime,
		&snap.EndTime,
		&snap.Status,
		&snap.Recurrence,
		&snap.GeneratedFrom,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		snap.Description = *description
	}
	return &snap, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package repository

import (
	"context"
	"errors"

	"roombook/internal/domain/room"
	"roombook/internal/infra"
	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

const findRoomByIDQuery = `
SELECT id, branch_id, name, capacity
FROM rooms
WHERE id = $1`

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.RoomSnapshot, error) {
	var (
		roomID   uuid.UUID
		branchID uuid.UUID
		name     string
		capacity int
	)
	err := r.pool.QueryRow(ctx, findRoomByIDQuery, id).Scan(&roomID, &branchID, &name, &capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}

	// Rehydrating through the aggregate keeps its invariants authoritative
	// over whatever the row contains.
	rm, err := room.NewRoom(roomID, branchID, name, capacity)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid room row", err)
	}

	return &commands.RoomSnapshot{
		ID:       rm.ID(),
		BranchID: rm.BranchID(),
		Name:     rm.Name(),
		Capacity: rm.Capacity(),
	}, nil
}

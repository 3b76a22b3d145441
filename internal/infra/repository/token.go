package repository

import (
	"context"
	"errors"
	"time"

	"roombook/internal/infra"
	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

// One row per booking: issuing again overwrites the previous code and expiry
// in a single statement, so a verify racing a reissue can only ever see one
// live code.
const upsertTokenQuery = `
INSERT INTO cancellation_tokens (booking_id, code_hash, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (booking_id)
DO UPDATE SET code_hash = EXCLUDED.code_hash,
              expires_at = EXCLUDED.expires_at,
              created_at = now()`

func (r *TokenRepository) UpsertLive(ctx context.Context, bookingID uuid.UUID, codeHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, upsertTokenQuery, bookingID, codeHash, expiresAt)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert cancellation token", err)
	}
	return nil
}

const findLiveTokenQuery = `
SELECT booking_id, code_hash, expires_at
FROM cancellation_tokens
WHERE booking_id = $1
  AND expires_at > $2`

func (r *TokenRepository) FindLive(ctx context.Context, bookingID uuid.UUID, now time.Time) (*commands.TokenSnapshot, error) {
	var snap commands.TokenSnapshot
	err := r.pool.QueryRow(ctx, findLiveTokenQuery, bookingID, now).Scan(
		&snap.BookingID,
		&snap.CodeHash,
		&snap.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("live token not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cancellation token", err)
	}
	return &snap, nil
}

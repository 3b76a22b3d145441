//go:build unit

package room_test

import (
	"testing"

	"roombook/internal/domain/room"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	id := uuid.New()
	branchID := uuid.New()

	t.Run("builds a room with its attributes", func(t *testing.T) {
		rm, err := room.NewRoom(id, branchID, "Aurora", 8)

		require.NoError(t, err)
		assert.Equal(t, id, rm.ID())
		assert.Equal(t, branchID, rm.BranchID())
		assert.Equal(t, "Aurora", rm.Name())
		assert.Equal(t, 8, rm.Capacity())
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := room.NewRoom(id, branchID, "   ", 8)

		require.ErrorIs(t, err, room.ErrEmptyName)
	})
}

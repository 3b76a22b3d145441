package room

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyName = errors.New("room name cannot be empty")

// Room is the minimal read-side view the booking engine needs: identity for
// conflict scoping and a name for notification copy. Room administration
// lives outside this service.
type Room struct {
	id       uuid.UUID
	branchID uuid.UUID
	name     string
	capacity int
}

func NewRoom(id, branchID uuid.UUID, name string, capacity int) (*Room, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Room{id: id, branchID: branchID, name: name, capacity: capacity}, nil
}

func (r *Room) ID() uuid.UUID       { return r.id }
func (r *Room) BranchID() uuid.UUID { return r.branchID }
func (r *Room) Name() string        { return r.name }
func (r *Room) Capacity() int       { return r.capacity }

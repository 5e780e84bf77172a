package room

import (
	"errors"
	"sync"

	"github.com/ozank/partygames/game/engine"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrUnknownVariant = errors.New("unknown game variant")
)

// Registry is the process-wide map from room id to Room. It is the only
// cross-connection shared state; it is constructed once at startup and
// injected into the layers that need it.
type Registry struct {
	rooms map[string]*Room
	mu    sync.RWMutex
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room with the given id, creating an empty lobby
// room on first use. The variant only applies on creation; an existing
// room keeps whatever it was created with.
func (reg *Registry) GetOrCreate(id string, variant engine.Variant) (*Room, error) {
	switch variant {
	case engine.VariantRace, engine.VariantFloors:
	default:
		return nil, ErrUnknownVariant
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if r, exists := reg.rooms[id]; exists {
		return r, nil
	}
	r := newRoom(id, variant)
	reg.rooms[id] = r
	return r, nil
}

// Get retrieves an existing room.
func (reg *Registry) Get(id string) (*Room, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	r, exists := reg.rooms[id]
	if !exists {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// Remove deletes a room; no-op if absent.
func (reg *Registry) Remove(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, id)
}

// List returns all rooms.
func (reg *Registry) List() []*Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	result := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		result = append(result, r)
	}
	return result
}

// Count returns the number of live rooms.
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

package room

import (
	"errors"
	"sync"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room already exists")
)

// Registry owns every live room, keyed by room code. It is constructed
// once and injected by the caller; there is no package-level instance.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// Create registers a new room for the teacher connection. A code that is
// already live is rejected with ErrRoomExists rather than hijacked.
func (g *Registry) Create(code, teacherConnID, teacherName string) (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.rooms[code]; ok {
		return nil, ErrRoomExists
	}
	r := New(code, teacherConnID, teacherName)
	g.rooms[code] = r
	return r, nil
}

// Get looks up a live room by code.
func (g *Registry) Get(code string) (*Room, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	r, ok := g.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// Remove drops a room from the registry. Removing an absent code is a
// no-op.
func (g *Registry) Remove(code string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.rooms, code)
}

// Count returns the number of live rooms.
func (g *Registry) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

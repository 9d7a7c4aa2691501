// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used in tests and when PLAY_STORE=memory, where durability is not required.
//
// Characteristics:
//   - Plays keyed by instanceID|sessionID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Returned plays are copies; callers persist changes with Save.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memory struct {
	mu    sync.RWMutex
	plays map[string]Play // keyed by playKey
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{plays: make(map[string]Play)}
}

func (m *memory) Get(ctx context.Context, instanceID, sessionID string) (*Play, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.plays[playKey(instanceID, sessionID)]; ok {
		return &p, nil
	}
	return nil, ErrNotFound
}

func (m *memory) GetOrCreate(ctx context.Context, instanceID, sessionID string) (*Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := playKey(instanceID, sessionID)
	if p, ok := m.plays[k]; ok {
		return &p, nil
	}
	now := time.Now().UTC()
	p := Play{
		ID:         uuid.NewString(),
		InstanceID: instanceID,
		SessionID:  sessionID,
		Status:     "playing",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.plays[k] = p
	return &p, nil
}

func (m *memory) Save(ctx context.Context, p *Play) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := playKey(p.InstanceID, p.SessionID)
	if _, ok := m.plays[k]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	m.plays[k] = *p
	return nil
}

func playKey(instanceID, sessionID string) string {
	return instanceID + "|" + sessionID
}

// internal/store/store.go
//
// Persistence for Hangman plays: one row per (instance, session) holding the
// canonical guessed letters plus counters derived from them.
//
// The engine is the source of truth. Counters stored here are a cache that
// callers reconcile against a fresh replay on every read.

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a play does not exist.
var ErrNotFound = errors.New("play not found")

// Play is the stored attempt of one session at one puzzle instance.
type Play struct {
	ID           string     `json:"id"`
	InstanceID   string     `json:"instanceId"`
	SessionID    string     `json:"sessionId"`
	UserID       string     `json:"userId,omitempty"`
	Guessed      string     `json:"guessed"` // sorted unique A–Z, e.g. "AELST"
	WrongGuesses int        `json:"wrongGuesses"`
	Status       string     `json:"status"`
	HintUsed     bool       `json:"hintUsed"`
	HintUsedAt   *time.Time `json:"hintUsedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Store defines the persistence interface for plays.
// Implementations are backed by memory (NewMemoryStore) or SQL (NewSQLStore).
type Store interface {
	// Get returns the play or ErrNotFound.
	Get(ctx context.Context, instanceID, sessionID string) (*Play, error)

	// GetOrCreate returns the play, creating an empty one if missing.
	GetOrCreate(ctx context.Context, instanceID, sessionID string) (*Play, error)

	// Save writes back a play previously returned by Get/GetOrCreate.
	Save(ctx context.Context, p *Play) error
}

// Package storage defines the persistence interfaces for sessions and
// their event journals. Implementations live in subpackages; callers
// depend only on the interfaces here.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrSessionExists indicates a session id collision on create.
var ErrSessionExists = errors.New("session already exists")

// Record is one persisted journal entry. Seq is assigned by the store on
// append and is contiguous per session starting at 1.
type Record struct {
	Seq       int64
	Turn      int
	Phase     phase.Phase
	Type      state.EntryType
	Payload   []byte
	CreatedAt time.Time
}

// SessionRecord carries the structural inputs a session is rebuilt from,
// plus the checkpointed phase cursor and the serialized pending
// instruction. Everything else derives from the journal.
type SessionRecord struct {
	ID         string
	Players    []string
	Roles      []state.Role
	EventCards []string
	Cursor     phase.Snapshot
	Pending    []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SessionStore persists session records and checkpoints.
type SessionStore interface {
	CreateSession(ctx context.Context, rec SessionRecord) error
	GetSession(ctx context.Context, id string) (SessionRecord, error)
	// SaveCheckpoint stores the cursor and the pending instruction after
	// an input is processed, so a restarted process resumes at the same
	// prompt.
	SaveCheckpoint(ctx context.Context, id string, cursor phase.Snapshot, pending []byte) error
	ListSessionIDs(ctx context.Context) ([]string, error)
}

// EventStore persists the append-only journal of each session.
type EventStore interface {
	// AppendEvents assigns sequence numbers and stores the records
	// atomically, in order.
	AppendEvents(ctx context.Context, sessionID string, records []Record) error
	// ListEvents returns the full journal of a session in sequence order.
	ListEvents(ctx context.Context, sessionID string) ([]Record, error)
}

// Store bundles the two facets every backend implements together.
type Store interface {
	SessionStore
	EventStore
}

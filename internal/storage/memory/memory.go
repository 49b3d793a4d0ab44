// Package memory provides an in-memory storage backend for tests and
// ephemeral deployments.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/storage"
)

// Store keeps sessions and journals in process memory. Safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]storage.SessionRecord
	events   map[string][]storage.Record
}

// New builds an empty in-memory store.
func New() *Store {
	return &Store{
		sessions: make(map[string]storage.SessionRecord),
		events:   make(map[string][]storage.Record),
	}
}

// CreateSession implements storage.SessionStore.
func (s *Store) CreateSession(ctx context.Context, rec storage.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[rec.ID]; ok {
		return fmt.Errorf("%w: %s", storage.ErrSessionExists, rec.ID)
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.sessions[rec.ID] = rec
	return nil
}

// GetSession implements storage.SessionStore.
func (s *Store) GetSession(ctx context.Context, id string) (storage.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SessionRecord{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[id]
	if !ok {
		return storage.SessionRecord{}, fmt.Errorf("%w: session %s", storage.ErrNotFound, id)
	}
	return rec, nil
}

// SaveCheckpoint implements storage.SessionStore.
func (s *Store) SaveCheckpoint(ctx context.Context, id string, cursor phase.Snapshot, pending []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("%w: session %s", storage.ErrNotFound, id)
	}
	rec.Cursor = cursor
	rec.Pending = append([]byte(nil), pending...)
	rec.UpdatedAt = time.Now().UTC()
	s.sessions[id] = rec
	return nil
}

// ListSessionIDs implements storage.SessionStore.
func (s *Store) ListSessionIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// AppendEvents implements storage.EventStore.
func (s *Store) AppendEvents(ctx context.Context, sessionID string, records []storage.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: session %s", storage.ErrNotFound, sessionID)
	}
	log := s.events[sessionID]
	next := int64(len(log)) + 1
	now := time.Now().UTC()
	for i, rec := range records {
		rec.Seq = next + int64(i)
		rec.CreatedAt = now
		rec.Payload = append([]byte(nil), rec.Payload...)
		log = append(log, rec)
	}
	s.events[sessionID] = log
	return nil
}

// ListEvents implements storage.EventStore.
func (s *Store) ListEvents(ctx context.Context, sessionID string) ([]storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return nil, fmt.Errorf("%w: session %s", storage.ErrNotFound, sessionID)
	}
	return append([]storage.Record(nil), s.events[sessionID]...), nil
}

// Package sqlite provides the SQLite-backed storage implementation. The
// journal and session checkpoints live in one database file; schema setup
// runs through embedded migrations at open time.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/state"
	"github.com/bicheichane/millers-hollow/internal/platform/sqlitemigrate"
	"github.com/bicheichane/millers-hollow/internal/storage"
	"github.com/bicheichane/millers-hollow/internal/storage/sqlite/migrations"
)

// Store implements storage.Store on a single SQLite database.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the database at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database. Nil-safe so callers can defer it
// in all startup paths.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateSession implements storage.SessionStore.
func (s *Store) CreateSession(ctx context.Context, rec storage.SessionRecord) error {
	players, roles, cards, cursor, err := marshalSessionFields(rec)
	if err != nil {
		return err
	}
	now := time.Now().UTC().UnixMilli()
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO sessions (id, players, roles, event_cards, cursor, pending, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, players, roles, cards, cursor, string(rec.Pending), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", storage.ErrSessionExists, rec.ID)
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetSession implements storage.SessionStore.
func (s *Store) GetSession(ctx context.Context, id string) (storage.SessionRecord, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, players, roles, event_cards, cursor, pending, created_at, updated_at
FROM sessions WHERE id = ?`, id)

	var rec storage.SessionRecord
	var players, roles, cards, cursor, pending string
	var createdAt, updatedAt int64
	err := row.Scan(&rec.ID, &players, &roles, &cards, &cursor, &pending, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.SessionRecord{}, fmt.Errorf("%w: session %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return storage.SessionRecord{}, fmt.Errorf("scan session: %w", err)
	}
	if err := json.Unmarshal([]byte(players), &rec.Players); err != nil {
		return storage.SessionRecord{}, fmt.Errorf("decode players: %w", err)
	}
	if err := json.Unmarshal([]byte(roles), &rec.Roles); err != nil {
		return storage.SessionRecord{}, fmt.Errorf("decode roles: %w", err)
	}
	if err := json.Unmarshal([]byte(cards), &rec.EventCards); err != nil {
		return storage.SessionRecord{}, fmt.Errorf("decode event cards: %w", err)
	}
	if err := json.Unmarshal([]byte(cursor), &rec.Cursor); err != nil {
		return storage.SessionRecord{}, fmt.Errorf("decode cursor: %w", err)
	}
	if pending != "" {
		rec.Pending = []byte(pending)
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	rec.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return rec, nil
}

// SaveCheckpoint implements storage.SessionStore.
func (s *Store) SaveCheckpoint(ctx context.Context, id string, cursor phase.Snapshot, pending []byte) error {
	encoded, err := json.Marshal(cursor)
	if err != nil {
		return fmt.Errorf("encode cursor: %w", err)
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE sessions SET cursor = ?, pending = ?, updated_at = ? WHERE id = ?`,
		string(encoded), string(pending), time.Now().UTC().UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("update cursor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update cursor: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: session %s", storage.ErrNotFound, id)
	}
	return nil
}

// ListSessionIDs implements storage.SessionStore.
func (s *Store) ListSessionIDs(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id FROM sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read session ids: %w", err)
	}
	return ids, nil
}

// AppendEvents implements storage.EventStore. Sequence assignment and the
// inserts happen in one transaction so a crash can never leave a gap.
func (s *Store) AppendEvents(ctx context.Context, sessionID string, records []storage.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM sessions WHERE id = ?`, sessionID).Scan(&exists); err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: session %s", storage.ErrNotFound, sessionID)
	}

	var last sql.NullInt64
	if err := tx.QueryRowContext(ctx,
		`SELECT MAX(seq) FROM events WHERE session_id = ?`, sessionID).Scan(&last); err != nil {
		return fmt.Errorf("read last seq: %w", err)
	}
	next := last.Int64 + 1

	now := time.Now().UTC().UnixMilli()
	for i, rec := range records {
		_, err := tx.ExecContext(ctx, `
INSERT INTO events (session_id, seq, turn, phase, type, payload, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sessionID, next+int64(i), rec.Turn, string(rec.Phase), string(rec.Type), string(rec.Payload), now)
		if err != nil {
			return fmt.Errorf("insert event %s: %w", rec.Type, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit events: %w", err)
	}
	return nil
}

// ListEvents implements storage.EventStore.
func (s *Store) ListEvents(ctx context.Context, sessionID string) ([]storage.Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT seq, turn, phase, type, payload, created_at
FROM events WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var records []storage.Record
	for rows.Next() {
		var rec storage.Record
		var phaseTag, entryType, payload string
		var createdAt int64
		if err := rows.Scan(&rec.Seq, &rec.Turn, &phaseTag, &entryType, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec.Phase = phase.Phase(phaseTag)
		rec.Type = state.EntryType(entryType)
		rec.Payload = []byte(payload)
		rec.CreatedAt = time.UnixMilli(createdAt).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return records, nil
}

func marshalSessionFields(rec storage.SessionRecord) (players, roles, cards, cursor string, err error) {
	p, err := json.Marshal(rec.Players)
	if err != nil {
		return "", "", "", "", fmt.Errorf("encode players: %w", err)
	}
	r, err := json.Marshal(rec.Roles)
	if err != nil {
		return "", "", "", "", fmt.Errorf("encode roles: %w", err)
	}
	c, err := json.Marshal(rec.EventCards)
	if err != nil {
		return "", "", "", "", fmt.Errorf("encode event cards: %w", err)
	}
	cur, err := json.Marshal(rec.Cursor)
	if err != nil {
		return "", "", "", "", fmt.Errorf("encode cursor: %w", err)
	}
	return string(p), string(r), string(c), string(cur), nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

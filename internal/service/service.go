// Package service coordinates sessions between the transport layer, the
// flow engine, and the stores. It owns per-session locking, the live
// session cache, and the persistence of journal entries and checkpoints.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/flow"
	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
	"github.com/bicheichane/millers-hollow/internal/metrics"
	"github.com/bicheichane/millers-hollow/internal/storage"
)

// StartRequest carries the roster a moderator submits to open a session.
type StartRequest struct {
	Players    []string `json:"players"`
	Roles      []string `json:"roles"`
	EventCards []string `json:"event_cards,omitempty"`
}

// Result is the moderator-facing outcome of any session operation: the
// current game view plus the instruction awaiting an answer.
type Result struct {
	SessionID string               `json:"session_id"`
	State     state.View           `json:"state"`
	Pending   protocol.Instruction `json:"pending"`
}

// Service exposes the session lifecycle. All methods are safe for
// concurrent use; inputs to the same session are serialized.
type Service struct {
	store   storage.Store
	flow    *flow.Flow
	metrics *metrics.Metrics
	log     zerolog.Logger

	mu   sync.Mutex
	live map[string]*liveSession
}

// liveSession is one cached in-memory session. Its mutex serializes all
// reads and inputs for that session.
type liveSession struct {
	mu      sync.Mutex
	session *state.Session
	pending protocol.Instruction
}

// New creates a session service over the given store and flow.
func New(store storage.Store, fl *flow.Flow, m *metrics.Metrics, log zerolog.Logger) *Service {
	return &Service{
		store:   store,
		flow:    fl,
		metrics: m,
		log:     log.With().Str("component", "service").Logger(),
		live:    make(map[string]*liveSession),
	}
}

// StartSession validates the roster, creates the session, and returns the
// first pending instruction.
func (svc *Service) StartSession(ctx context.Context, req StartRequest) (Result, error) {
	roles, err := parseRoles(req.Roles)
	if err != nil {
		return Result{}, err
	}
	if err := validateRoster(req.Players, roles); err != nil {
		return Result{}, err
	}
	if len(req.EventCards) > 0 {
		return Result{}, gameerrors.Newf(gameerrors.CodeInputUnknownEvent,
			"no event cards are available in this edition: %v", req.EventCards)
	}

	id := uuid.NewString()
	sess, err := state.NewSession(id, req.Players, roles, nil)
	if err != nil {
		return Result{}, gameerrors.Newf(gameerrors.CodeInputRosterInvalid, "%v", err)
	}
	pending, err := svc.flow.HandleInput(sess, nil)
	if err != nil {
		return Result{}, err
	}

	rec := storage.SessionRecord{
		ID:         id,
		Players:    append([]string(nil), req.Players...),
		Roles:      roles,
		EventCards: nil,
		Cursor:     sess.Cursor().Snapshot(),
		Pending:    marshalPending(pending),
	}
	if err := svc.store.CreateSession(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("create session: %w", err)
	}

	ls := &liveSession{session: sess, pending: pending}
	svc.mu.Lock()
	svc.live[id] = ls
	svc.metrics.SessionsActive.Set(float64(len(svc.live)))
	svc.mu.Unlock()
	svc.metrics.SessionsStarted.Inc()

	svc.log.Info().
		Str("session", id).
		Int("players", len(req.Players)).
		Msg("session started")

	return Result{SessionID: id, State: sess.View(), Pending: pending}, nil
}

// SubmitInput feeds one moderator response to a session and persists the
// resulting journal entries and checkpoint before acknowledging.
func (svc *Service) SubmitInput(ctx context.Context, id string, resp *protocol.Response) (Result, error) {
	ls, err := svc.acquire(ctx, id)
	if err != nil {
		return Result{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()

	sess := ls.session
	phaseLabel := string(sess.Cursor().MainPhase())
	baseline := sess.LogLen()
	started := time.Now()

	pending, err := svc.flow.HandleInput(sess, resp)
	svc.metrics.ObserveInputDuration(phaseLabel, time.Since(started).Seconds())
	if err != nil {
		code := gameerrors.CodeOf(err)
		svc.metrics.RecordInput(phaseLabel, "rejected")
		svc.metrics.RecordViolation(string(code))
		if code.Kind() == gameerrors.KindInternal {
			svc.evict(id)
		}
		svc.log.Warn().
			Str("session", id).
			Str("code", string(code)).
			Msg("input rejected")
		return Result{}, err
	}

	if err := svc.persist(ctx, sess, baseline, pending); err != nil {
		// The in-memory session is now ahead of the store; drop it so
		// the next request rebuilds from what was durably written.
		svc.evict(id)
		return Result{}, fmt.Errorf("persist session %s: %w", id, err)
	}
	ls.pending = pending
	svc.metrics.RecordInput(phaseLabel, "accepted")

	svc.log.Info().
		Str("session", id).
		Str("phase", string(sess.Cursor().MainPhase())).
		Int("entries", sess.LogLen()-baseline).
		Msg("input accepted")

	return Result{SessionID: id, State: sess.View(), Pending: pending}, nil
}

// ReadState returns the current view and pending instruction without
// advancing the session.
func (svc *Service) ReadState(ctx context.Context, id string) (Result, error) {
	ls, err := svc.acquire(ctx, id)
	if err != nil {
		return Result{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return Result{SessionID: id, State: ls.session.View(), Pending: ls.pending}, nil
}

// ListSessions returns every known session id, cached or not.
func (svc *Service) ListSessions(ctx context.Context) ([]string, error) {
	ids, err := svc.store.ListSessionIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return ids, nil
}

// acquire returns the cached live session, rebuilding it from the store
// on a miss.
func (svc *Service) acquire(ctx context.Context, id string) (*liveSession, error) {
	svc.mu.Lock()
	if ls, ok := svc.live[id]; ok {
		svc.mu.Unlock()
		return ls, nil
	}
	svc.mu.Unlock()

	ls, err := svc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	// Another request may have loaded it concurrently; keep the first.
	if existing, ok := svc.live[id]; ok {
		return existing, nil
	}
	svc.live[id] = ls
	svc.metrics.SessionsActive.Set(float64(len(svc.live)))
	return ls, nil
}

// load rebuilds a session by replaying its journal and restoring the
// checkpointed cursor and pending instruction.
func (svc *Service) load(ctx context.Context, id string) (*liveSession, error) {
	rec, err := svc.store.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, gameerrors.Newf(gameerrors.CodeSessionNotFound, "session %s does not exist", id)
		}
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	records, err := svc.store.ListEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load journal %s: %w", id, err)
	}
	entries := make([]state.Entry, 0, len(records))
	for _, r := range records {
		e, err := journal.Unmarshal(r.Type, r.Payload)
		if err != nil {
			return nil, fmt.Errorf("decode entry %d of %s: %w", r.Seq, id, err)
		}
		entries = append(entries, e)
	}
	sess, err := state.Replay(id, rec.Players, rec.Roles, rec.EventCards, entries)
	if err != nil {
		return nil, fmt.Errorf("replay session %s: %w", id, err)
	}
	sess.Cursor().Restore(rec.Cursor)

	var pending protocol.Instruction
	if len(rec.Pending) > 0 {
		if err := json.Unmarshal(rec.Pending, &pending); err != nil {
			return nil, fmt.Errorf("decode pending instruction of %s: %w", id, err)
		}
	}

	svc.log.Info().
		Str("session", id).
		Int("entries", len(entries)).
		Msg("session rebuilt from journal")

	return &liveSession{session: sess, pending: pending}, nil
}

// persist appends the entries produced since baseline and checkpoints the
// cursor with the new pending instruction.
func (svc *Service) persist(ctx context.Context, sess *state.Session, baseline int, pending protocol.Instruction) error {
	entries := sess.Log()[baseline:]
	if len(entries) > 0 {
		records := make([]storage.Record, 0, len(entries))
		for _, e := range entries {
			typ, payload, err := journal.Marshal(e)
			if err != nil {
				return fmt.Errorf("encode entry: %w", err)
			}
			records = append(records, storage.Record{
				Turn:    e.Turn(),
				Phase:   e.Phase(),
				Type:    typ,
				Payload: payload,
			})
		}
		if err := svc.store.AppendEvents(ctx, sess.ID(), records); err != nil {
			return fmt.Errorf("append events: %w", err)
		}
	}
	if err := svc.store.SaveCheckpoint(ctx, sess.ID(), sess.Cursor().Snapshot(), marshalPending(pending)); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

// evict drops a session from the live cache.
func (svc *Service) evict(id string) {
	svc.mu.Lock()
	delete(svc.live, id)
	svc.metrics.SessionsActive.Set(float64(len(svc.live)))
	svc.mu.Unlock()
}

func parseRoles(raw []string) ([]state.Role, error) {
	roles := make([]state.Role, 0, len(raw))
	for _, r := range raw {
		role := state.Role(r)
		if !role.Valid() {
			return nil, gameerrors.Newf(gameerrors.CodeInputUnknownRole, "unknown role %q", r)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func validateRoster(players []string, roles []state.Role) error {
	if len(players) == 0 {
		return gameerrors.New(gameerrors.CodeInputRosterInvalid, "at least one player is required")
	}
	if len(roles) != len(players) {
		return gameerrors.Newf(gameerrors.CodeInputRosterInvalid,
			"%d roles for %d players", len(roles), len(players))
	}
	wolves := 0
	for _, r := range roles {
		if r == state.RoleWerewolf {
			wolves++
		}
	}
	if wolves == 0 {
		return gameerrors.New(gameerrors.CodeInputRosterInvalid, "at least one werewolf is required")
	}
	if wolves == len(roles) {
		return gameerrors.New(gameerrors.CodeInputRosterInvalid, "at least one non-werewolf is required")
	}
	return nil
}

func marshalPending(instr protocol.Instruction) []byte {
	encoded, err := json.Marshal(instr)
	if err != nil {
		return nil
	}
	return encoded
}

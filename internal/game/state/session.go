package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bicheichane/millers-hollow/internal/game/phase"
)

var (
	// ErrRosterEmpty indicates a session created without players.
	ErrRosterEmpty = errors.New("roster must not be empty")
	// ErrRosterNamesDuplicate indicates duplicate player names.
	ErrRosterNamesDuplicate = errors.New("player names must be unique")
	// ErrRosterRoleCount indicates a role list not matching the roster size.
	ErrRosterRoleCount = errors.New("role list must match roster size")
	// ErrEntryNil indicates a nil entry append.
	ErrEntryNil = errors.New("entry is required")
)

// EntryType identifies an entry kind in the log. Concrete values live with
// the concrete entry types in the journal package.
type EntryType string

// Entry is one immutable record of a non-deterministic fact. Appending an
// entry is the only way session state changes; Apply receives the privileged
// writer exactly once, during Session.Append.
type Entry interface {
	Type() EntryType
	Turn() int
	Phase() phase.Phase
	Apply(w Writer) error
}

// Inspection records one seer inspection, queryable for audit.
type Inspection struct {
	Turn   int
	Seer   PlayerID
	Target PlayerID
}

// nightBoard caches the current night's pending facts. Cleared by turn
// advancement; written only through entry application.
type nightBoard struct {
	wolfTarget   PlayerID
	protected    PlayerID
	healed       bool
	poisonTarget PlayerID
}

// voteRecord caches the latest resolved vote outcome.
type voteRecord struct {
	turn       int
	eliminated PlayerID
	tie        bool
}

// Session is the root aggregate: roster in fixed seating order, the full
// entry log, the phase cursor, and a small set of hot caches that are
// cheaper to keep than to recompute from the log on every query.
type Session struct {
	id         string
	players    []*Player
	byID       map[PlayerID]*Player
	roles      []Role
	eventCards []string

	log    []Entry
	cursor phase.Cursor

	turn          int
	winner        Faction
	won           bool
	night         nightBoard
	lastProtected PlayerID
	lastVote      voteRecord
	sheriff       PlayerID
	inspections   []Inspection
}

// NewSession creates a session with the given roster in seating order. The
// role list is the set of cards physically dealt; which player holds which
// card is learned later through identification and reveal entries.
func NewSession(id string, playerNames []string, roles []Role, eventCards []string) (*Session, error) {
	if len(playerNames) == 0 {
		return nil, ErrRosterEmpty
	}
	if len(roles) != len(playerNames) {
		return nil, fmt.Errorf("%w: %d roles for %d players", ErrRosterRoleCount, len(roles), len(playerNames))
	}
	seen := make(map[string]struct{}, len(playerNames))
	players := make([]*Player, 0, len(playerNames))
	byID := make(map[PlayerID]*Player, len(playerNames))
	for seat, name := range playerNames {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: seat %d has empty name", ErrRosterEmpty, seat)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrRosterNamesDuplicate, name)
		}
		seen[name] = struct{}{}
		p := &Player{id: playerIDForSeat(seat), name: name, seat: seat, alive: true}
		players = append(players, p)
		byID[p.id] = p
	}
	s := &Session{
		id:         id,
		players:    players,
		byID:       byID,
		roles:      append([]Role(nil), roles...),
		eventCards: append([]string(nil), eventCards...),
	}
	s.cursor.TransitionMainPhase(phase.PhaseSetup)
	s.cursor.TransitionSubPhase(phase.SubPhaseSetupConfirmRoster)
	return s, nil
}

// Append applies the entry through the privileged writer and records it at
// the end of the log. A failing apply indicates a precondition the caller
// should have checked before constructing the entry; the log and state are
// left unchanged in that case.
func (s *Session) Append(e Entry) error {
	if e == nil {
		return ErrEntryNil
	}
	if err := e.Apply(&mutator{s: s}); err != nil {
		return fmt.Errorf("apply %s: %w", e.Type(), err)
	}
	s.log = append(s.log, e)
	return nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Turn returns the current turn number; zero before the first night.
func (s *Session) Turn() int { return s.turn }

// Cursor returns the session's phase cursor. The cursor is live execution
// bookkeeping, not log-derived truth, so orchestration code mutates it
// directly.
func (s *Session) Cursor() *phase.Cursor { return &s.cursor }

// Log returns the entries appended so far, in order.
func (s *Session) Log() []Entry { return append([]Entry(nil), s.log...) }

// LogLen returns the number of appended entries.
func (s *Session) LogLen() int { return len(s.log) }

// Players returns the roster in seating order.
func (s *Session) Players() []*Player { return append([]*Player(nil), s.players...) }

// Player returns the player with the given id.
func (s *Session) Player(id PlayerID) (*Player, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Alive reports whether the given player exists and is alive.
func (s *Session) Alive(id PlayerID) bool {
	p, ok := s.byID[id]
	return ok && p.alive
}

// AlivePlayers returns the living players in seating order.
func (s *Session) AlivePlayers() []*Player {
	alive := make([]*Player, 0, len(s.players))
	for _, p := range s.players {
		if p.alive {
			alive = append(alive, p)
		}
	}
	return alive
}

// AliveIDs returns the ids of living players in seating order.
func (s *Session) AliveIDs() []PlayerID {
	ids := make([]PlayerID, 0, len(s.players))
	for _, p := range s.players {
		if p.alive {
			ids = append(ids, p.id)
		}
	}
	return ids
}

// RolesInPlay returns the dealt role cards, duplicates included.
func (s *Session) RolesInPlay() []Role { return append([]Role(nil), s.roles...) }

// HasRole reports whether the given role card was dealt.
func (s *Session) HasRole(r Role) bool {
	for _, dealt := range s.roles {
		if dealt == r {
			return true
		}
	}
	return false
}

// RoleCount returns how many cards of the role were dealt.
func (s *Session) RoleCount(r Role) int {
	n := 0
	for _, dealt := range s.roles {
		if dealt == r {
			n++
		}
	}
	return n
}

// AssignedCount returns how many players, dead or alive, are known to hold
// the role.
func (s *Session) AssignedCount(r Role) int {
	n := 0
	for _, p := range s.players {
		if p.role == r {
			n++
		}
	}
	return n
}

// AliveWithRole returns the living players known to hold the role.
func (s *Session) AliveWithRole(r Role) []*Player {
	var out []*Player
	for _, p := range s.players {
		if p.alive && p.role == r {
			out = append(out, p)
		}
	}
	return out
}

// HolderOf returns the first known holder of the role, alive or dead.
func (s *Session) HolderOf(r Role) (*Player, bool) {
	for _, p := range s.players {
		if p.role == r {
			return p, true
		}
	}
	return nil, false
}

// EventCards returns the event-card ids selected at setup.
func (s *Session) EventCards() []string { return append([]string(nil), s.eventCards...) }

// WolfTarget returns the pack's victim choice for the current night.
func (s *Session) WolfTarget() (PlayerID, bool) {
	return s.night.wolfTarget, s.night.wolfTarget != PlayerIDNone
}

// ProtectedPlayer returns who the defender guards this night.
func (s *Session) ProtectedPlayer() PlayerID { return s.night.protected }

// LastProtected returns the defender's previous-night target, for the
// no-repeat rule.
func (s *Session) LastProtected() PlayerID { return s.lastProtected }

// Healed reports whether the witch spent the heal potion this night.
func (s *Session) Healed() bool { return s.night.healed }

// PoisonTarget returns the witch's poison victim for this night.
func (s *Session) PoisonTarget() (PlayerID, bool) {
	return s.night.poisonTarget, s.night.poisonTarget != PlayerIDNone
}

// Sheriff returns the current sheriff, if one was elected.
func (s *Session) Sheriff() (PlayerID, bool) {
	return s.sheriff, s.sheriff != PlayerIDNone
}

// VoteOutcome returns the resolved vote for the given turn.
func (s *Session) VoteOutcome(turn int) (eliminated PlayerID, tie bool, ok bool) {
	if s.lastVote.turn != turn || turn == 0 {
		return PlayerIDNone, false, false
	}
	return s.lastVote.eliminated, s.lastVote.tie, true
}

// Inspections returns the seer's inspection history.
func (s *Session) Inspections() []Inspection { return append([]Inspection(nil), s.inspections...) }

// DeathsAtTurn returns the players who died on the given turn, in seating
// order.
func (s *Session) DeathsAtTurn(turn int) []*Player {
	var out []*Player
	for _, p := range s.players {
		if !p.alive && p.deathTurn == turn {
			out = append(out, p)
		}
	}
	return out
}

// Winner returns the recorded winning faction, if the game is decided.
func (s *Session) Winner() (Faction, bool) { return s.winner, s.won }

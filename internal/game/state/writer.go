package state

import (
	"errors"
	"fmt"
)

var (
	// ErrPlayerUnknown indicates a write addressing a player not in the roster.
	ErrPlayerUnknown = errors.New("player is not in the roster")
	// ErrPlayerDead indicates a write requiring a living player.
	ErrPlayerDead = errors.New("player is already dead")
	// ErrRoleConflict indicates a role write contradicting an earlier one.
	ErrRoleConflict = errors.New("player already holds a different role")
)

// Writer is the privileged mutation surface of the state store. It is
// implemented only by the session's internal mutator, which exists solely
// for the duration of one Session.Append call. Listener and orchestration
// code never sees a Writer; constructing a log entry is the only way to
// reach it.
//
// Writer methods check structural integrity (the player exists, role writes
// don't contradict), not game rules. Rule legality is the caller's job
// before the entry is built.
type Writer interface {
	AdvanceTurn()
	AssignRole(id PlayerID, role Role) error
	RevealRole(id PlayerID, role Role) error
	MarkDead(id PlayerID, reason DeathReason) error
	RecordHunterShot(shooter PlayerID) error
	BindLovers(a, b PlayerID) error
	SetWolfTarget(id PlayerID) error
	GrantProtection(id PlayerID) error
	UsePotion(actor PlayerID, kind PotionKind, target PlayerID) error
	RecordInspection(seer, target PlayerID) error
	ElectSheriff(id PlayerID) error
	PassSheriff(from, to PlayerID) error
	RecordVoteOutcome(eliminated PlayerID, tie bool)
	RecordWinner(f Faction)
}

type mutator struct {
	s *Session
}

func (m *mutator) player(id PlayerID) (*Player, error) {
	p, ok := m.s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerUnknown, id)
	}
	return p, nil
}

// AdvanceTurn increments the turn counter and clears the night board. The
// defender's previous target survives the clear to feed the no-repeat rule.
func (m *mutator) AdvanceTurn() {
	m.s.turn++
	if m.s.night.protected != PlayerIDNone {
		m.s.lastProtected = m.s.night.protected
	}
	m.s.night = nightBoard{}
}

func (m *mutator) AssignRole(id PlayerID, role Role) error {
	p, err := m.player(id)
	if err != nil {
		return err
	}
	if p.role != "" && p.role != role {
		return fmt.Errorf("%w: %s holds %s", ErrRoleConflict, id, p.role)
	}
	p.role = role
	return nil
}

func (m *mutator) RevealRole(id PlayerID, role Role) error {
	if err := m.AssignRole(id, role); err != nil {
		return err
	}
	p, _ := m.s.byID[id]
	p.revealed = true
	return nil
}

func (m *mutator) MarkDead(id PlayerID, reason DeathReason) error {
	p, err := m.player(id)
	if err != nil {
		return err
	}
	if !p.alive {
		return fmt.Errorf("%w: %s", ErrPlayerDead, id)
	}
	p.alive = false
	p.deathReason = reason
	p.deathTurn = m.s.turn
	return nil
}

func (m *mutator) RecordHunterShot(shooter PlayerID) error {
	p, err := m.player(shooter)
	if err != nil {
		return err
	}
	p.firedShot = true
	return nil
}

func (m *mutator) BindLovers(a, b PlayerID) error {
	pa, err := m.player(a)
	if err != nil {
		return err
	}
	pb, err := m.player(b)
	if err != nil {
		return err
	}
	pa.lover = b
	pb.lover = a
	return nil
}

func (m *mutator) SetWolfTarget(id PlayerID) error {
	if _, err := m.player(id); err != nil {
		return err
	}
	m.s.night.wolfTarget = id
	return nil
}

func (m *mutator) GrantProtection(id PlayerID) error {
	if _, err := m.player(id); err != nil {
		return err
	}
	m.s.night.protected = id
	return nil
}

func (m *mutator) UsePotion(actor PlayerID, kind PotionKind, target PlayerID) error {
	p, err := m.player(actor)
	if err != nil {
		return err
	}
	switch kind {
	case PotionHeal:
		p.usedHeal = true
		m.s.night.healed = true
	case PotionPoison:
		if _, err := m.player(target); err != nil {
			return err
		}
		p.usedPoison = true
		m.s.night.poisonTarget = target
	default:
		return fmt.Errorf("unknown potion kind %q", kind)
	}
	return nil
}

func (m *mutator) RecordInspection(seer, target PlayerID) error {
	if _, err := m.player(seer); err != nil {
		return err
	}
	if _, err := m.player(target); err != nil {
		return err
	}
	m.s.inspections = append(m.s.inspections, Inspection{Turn: m.s.turn, Seer: seer, Target: target})
	return nil
}

func (m *mutator) ElectSheriff(id PlayerID) error {
	p, err := m.player(id)
	if err != nil {
		return err
	}
	p.sheriff = true
	m.s.sheriff = id
	return nil
}

func (m *mutator) PassSheriff(from, to PlayerID) error {
	pf, err := m.player(from)
	if err != nil {
		return err
	}
	pt, err := m.player(to)
	if err != nil {
		return err
	}
	pf.sheriff = false
	pt.sheriff = true
	m.s.sheriff = to
	return nil
}

func (m *mutator) RecordVoteOutcome(eliminated PlayerID, tie bool) {
	m.s.lastVote = voteRecord{turn: m.s.turn, eliminated: eliminated, tie: tie}
}

func (m *mutator) RecordWinner(f Faction) {
	m.s.winner = f
	m.s.won = true
}

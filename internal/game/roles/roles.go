// Package roles implements the hook listeners for every base role. Night
// roles listen on the night action hook in canonical wake order; death
// rules listen on the death resolution hook in precedence order. Each
// listener is a resumable state machine whose only persistence is the
// phase cursor.
package roles

import (
	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/hook"
	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// Listener identifiers, one per registered rule.
const (
	ListenerCupid      phase.ListenerID = "role.cupid"
	ListenerDefender   phase.ListenerID = "role.defender"
	ListenerWerewolves phase.ListenerID = "role.werewolves"
	ListenerWitch      phase.ListenerID = "role.witch"
	ListenerSeer       phase.ListenerID = "role.seer"
	ListenerLovers     phase.ListenerID = "death.lovers"
	ListenerSheriff    phase.ListenerID = "death.sheriff"
	ListenerHunter     phase.ListenerID = "death.hunter"
)

// Listener resumption states. The zero value means the listener has not
// started; everything else names the pending instruction it paused on.
const (
	stateIdentify phase.ListenerState = iota + 1
	stateAction
	stateWitchHeal
	stateWitchPoison
	stateConfirm
)

// pause records the listener's resumption state on the cursor and returns
// the pending instruction.
func pause(s *state.Session, id phase.ListenerID, st phase.ListenerState, instr protocol.Instruction) hook.Result {
	s.Cursor().TransitionListenerAndState(id, st)
	return hook.NeedInput(instr)
}

func badState(id phase.ListenerID, st phase.ListenerState) hook.Result {
	return hook.Fail(gameerrors.Newf(gameerrors.CodeInternalListenerMissing,
		"listener %s resumed in unknown state %d", id, st))
}

// needsIdentification reports whether the first-night identification step
// is still pending for the role.
func needsIdentification(s *state.Session, role state.Role) bool {
	return s.Turn() == 1 && s.AssignedCount(role) < s.RoleCount(role)
}

// identifyInstruction asks the moderator to point out which sleeping
// players hold the role.
func identifyInstruction(s *state.Session, role state.Role, key string) protocol.Instruction {
	want := s.RoleCount(role) - s.AssignedCount(role)
	return protocol.Instruction{
		Kind:         protocol.KindRoleAssignment,
		Key:          key,
		Args:         []any{string(role), want},
		Roles:        []state.Role{role},
		MinSelection: want,
		MaxSelection: want,
	}
}

// applyIdentification validates the moderator's holder mapping and appends
// one assignment entry per player.
func applyIdentification(s *state.Session, role state.Role, resp *protocol.Response) error {
	assignments, err := resp.Assignments()
	if err != nil {
		return err
	}
	want := s.RoleCount(role) - s.AssignedCount(role)
	if len(assignments) != want {
		return gameerrors.Newf(gameerrors.CodeInputSelectionCount,
			"expected %d holder(s) of %s, got %d", want, role, len(assignments)).
			With("role", string(role))
	}
	// Validate the whole mapping before any entry lands: a rejected
	// response must leave the log and derived state untouched so the
	// moderator can resubmit the full answer.
	for id, r := range assignments {
		if r != role {
			return gameerrors.Newf(gameerrors.CodeRuleRoleMismatch,
				"expected assignment of %s, got %s for %s", role, r, id)
		}
		p, ok := s.Player(id)
		if !ok {
			return gameerrors.Newf(gameerrors.CodeInputUnknownPlayer, "unknown player %s", id)
		}
		if !p.Alive() {
			return gameerrors.Newf(gameerrors.CodeRuleTargetDead, "%s is dead", id)
		}
		if p.Role() != "" {
			return gameerrors.Newf(gameerrors.CodeRuleRoleMismatch,
				"%s already holds %s", id, p.Role())
		}
	}
	for id := range assignments {
		entry := journal.RoleAssigned{Header: journal.NewHeader(s), Player: id, Role: role}
		if err := s.Append(entry); err != nil {
			return err
		}
	}
	return nil
}

// livingTarget resolves a selected player and rejects dead targets.
func livingTarget(s *state.Session, id state.PlayerID) (*state.Player, error) {
	p, ok := s.Player(id)
	if !ok {
		return nil, gameerrors.Newf(gameerrors.CodeInputUnknownPlayer, "unknown player %s", id)
	}
	if !p.Alive() {
		return nil, gameerrors.Newf(gameerrors.CodeRuleTargetDead, "%s is dead", id)
	}
	return p, nil
}

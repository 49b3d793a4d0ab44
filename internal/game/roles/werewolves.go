package roles

import (
	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/hook"
	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// Message keys emitted by the werewolf listener.
const (
	KeyWerewolvesIdentify = "night.werewolves.identify"
	KeyWerewolvesChoose   = "night.werewolves.choose"
)

// Werewolves runs the pack's collective night attack. The pack wakes as
// one: a single target selection stands for the whole table.
type Werewolves struct{}

// ID implements hook.Listener.
func (Werewolves) ID() phase.ListenerID { return ListenerWerewolves }

// Advance implements hook.Listener.
func (l Werewolves) Advance(s *state.Session, resp *protocol.Response) hook.Result {
	cur := s.Cursor()
	switch cur.ListenerState() {
	case phase.ListenerStateNone:
		if needsIdentification(s, state.RoleWerewolf) {
			return pause(s, l.ID(), stateIdentify,
				identifyInstruction(s, state.RoleWerewolf, KeyWerewolvesIdentify))
		}
		return l.wake(s)
	case stateIdentify:
		if err := applyIdentification(s, state.RoleWerewolf, resp); err != nil {
			return hook.Fail(err)
		}
		return l.wake(s)
	case stateAction:
		return l.attack(s, resp)
	}
	return badState(l.ID(), cur.ListenerState())
}

func (l Werewolves) wake(s *state.Session) hook.Result {
	pack := s.AliveWithRole(state.RoleWerewolf)
	if len(pack) == 0 {
		return hook.Complete()
	}
	var wolves, prey []state.PlayerID
	for _, p := range s.AlivePlayers() {
		if p.Role() == state.RoleWerewolf {
			wolves = append(wolves, p.ID())
		} else {
			prey = append(prey, p.ID())
		}
	}
	return pause(s, l.ID(), stateAction, protocol.Instruction{
		Kind:         protocol.KindPlayerSelection,
		Key:          KeyWerewolvesChoose,
		Players:      prey,
		Concerns:     wolves,
		MinSelection: 1,
		MaxSelection: 1,
	})
}

func (l Werewolves) attack(s *state.Session, resp *protocol.Response) hook.Result {
	sel, err := resp.Selection(1, 1)
	if err != nil {
		return hook.Fail(err)
	}
	target, err := livingTarget(s, sel[0])
	if err != nil {
		return hook.Fail(err)
	}
	if target.Role() == state.RoleWerewolf {
		return hook.Fail(gameerrors.Newf(gameerrors.CodeRuleTargetAlly,
			"the pack cannot devour %s, a fellow werewolf", target.ID()))
	}
	entry := journal.WolvesTargeted{Header: journal.NewHeader(s), Target: target.ID()}
	if err := s.Append(entry); err != nil {
		return hook.Fail(err)
	}
	return hook.Complete()
}

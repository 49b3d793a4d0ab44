package roles

import (
	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/hook"
	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// Message keys emitted by the seer listener.
const (
	KeySeerIdentify = "night.seer.identify"
	KeySeerChoose   = "night.seer.choose"
	KeySeerReveal   = "night.seer.reveal"
)

// Seer inspects one player's card each night. The engine records the
// inspection; physically showing the card stays with the moderator.
type Seer struct{}

// ID implements hook.Listener.
func (Seer) ID() phase.ListenerID { return ListenerSeer }

// Advance implements hook.Listener.
func (l Seer) Advance(s *state.Session, resp *protocol.Response) hook.Result {
	if !s.HasRole(state.RoleSeer) {
		return hook.Complete()
	}
	cur := s.Cursor()
	switch cur.ListenerState() {
	case phase.ListenerStateNone:
		if needsIdentification(s, state.RoleSeer) {
			return pause(s, l.ID(), stateIdentify,
				identifyInstruction(s, state.RoleSeer, KeySeerIdentify))
		}
		return l.wake(s)
	case stateIdentify:
		if err := applyIdentification(s, state.RoleSeer, resp); err != nil {
			return hook.Fail(err)
		}
		return l.wake(s)
	case stateAction:
		return l.inspect(s, resp)
	case stateConfirm:
		confirmed, err := resp.Confirm()
		if err != nil {
			return hook.Fail(err)
		}
		if !confirmed {
			// The reveal is still owed; keep asking.
			if ins := s.Inspections(); len(ins) > 0 {
				return pause(s, l.ID(), stateConfirm, revealInstruction(ins[len(ins)-1].Target))
			}
		}
		return hook.Complete()
	}
	return badState(l.ID(), cur.ListenerState())
}

func (l Seer) wake(s *state.Session) hook.Result {
	holders := s.AliveWithRole(state.RoleSeer)
	if len(holders) == 0 {
		return hook.Complete()
	}
	seer := holders[0]
	var candidates []state.PlayerID
	for _, p := range s.AlivePlayers() {
		if p.ID() != seer.ID() {
			candidates = append(candidates, p.ID())
		}
	}
	return pause(s, l.ID(), stateAction, protocol.Instruction{
		Kind:         protocol.KindPlayerSelection,
		Key:          KeySeerChoose,
		Players:      candidates,
		Concerns:     []state.PlayerID{seer.ID()},
		MinSelection: 1,
		MaxSelection: 1,
	})
}

func (l Seer) inspect(s *state.Session, resp *protocol.Response) hook.Result {
	holders := s.AliveWithRole(state.RoleSeer)
	if len(holders) == 0 {
		return hook.Complete()
	}
	seer := holders[0]
	sel, err := resp.Selection(1, 1)
	if err != nil {
		return hook.Fail(err)
	}
	target, err := livingTarget(s, sel[0])
	if err != nil {
		return hook.Fail(err)
	}
	if target.ID() == seer.ID() {
		return hook.Fail(gameerrors.Newf(gameerrors.CodeRuleTargetSelf,
			"the seer already knows their own card"))
	}
	entry := journal.InspectionPerformed{Header: journal.NewHeader(s), Seer: seer.ID(), Target: target.ID()}
	if err := s.Append(entry); err != nil {
		return hook.Fail(err)
	}
	// Pause until the moderator has shown the card; the hook must not
	// finish with the reveal still owed.
	return pause(s, l.ID(), stateConfirm, revealInstruction(target.ID()))
}

func revealInstruction(target state.PlayerID) protocol.Instruction {
	return protocol.Instruction{
		Kind:     protocol.KindConfirm,
		Key:      KeySeerReveal,
		Args:     []any{string(target)},
		Concerns: []state.PlayerID{target},
	}
}

package roles

import (
	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/hook"
	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// Message keys emitted by the defender listener.
const (
	KeyDefenderIdentify = "night.defender.identify"
	KeyDefenderChoose   = "night.defender.choose"
)

// Defender shields one player from the pack each night. Guarding the same
// player on two consecutive nights is forbidden; guarding themselves is
// allowed.
type Defender struct{}

// ID implements hook.Listener.
func (Defender) ID() phase.ListenerID { return ListenerDefender }

// Advance implements hook.Listener.
func (l Defender) Advance(s *state.Session, resp *protocol.Response) hook.Result {
	if !s.HasRole(state.RoleDefender) {
		return hook.Complete()
	}
	cur := s.Cursor()
	switch cur.ListenerState() {
	case phase.ListenerStateNone:
		if needsIdentification(s, state.RoleDefender) {
			return pause(s, l.ID(), stateIdentify,
				identifyInstruction(s, state.RoleDefender, KeyDefenderIdentify))
		}
		return l.wake(s)
	case stateIdentify:
		if err := applyIdentification(s, state.RoleDefender, resp); err != nil {
			return hook.Fail(err)
		}
		return l.wake(s)
	case stateAction:
		return l.protect(s, resp)
	}
	return badState(l.ID(), cur.ListenerState())
}

func (l Defender) wake(s *state.Session) hook.Result {
	holders := s.AliveWithRole(state.RoleDefender)
	if len(holders) == 0 {
		return hook.Complete()
	}
	return pause(s, l.ID(), stateAction, protocol.Instruction{
		Kind:         protocol.KindPlayerSelection,
		Key:          KeyDefenderChoose,
		Players:      s.AliveIDs(),
		Concerns:     []state.PlayerID{holders[0].ID()},
		MinSelection: 1,
		MaxSelection: 1,
	})
}

func (l Defender) protect(s *state.Session, resp *protocol.Response) hook.Result {
	holders := s.AliveWithRole(state.RoleDefender)
	if len(holders) == 0 {
		return hook.Complete()
	}
	sel, err := resp.Selection(1, 1)
	if err != nil {
		return hook.Fail(err)
	}
	target, err := livingTarget(s, sel[0])
	if err != nil {
		return hook.Fail(err)
	}
	if target.ID() == s.LastProtected() {
		return hook.Fail(gameerrors.Newf(gameerrors.CodeRuleRepeatTarget,
			"%s was already protected last night", target.ID()))
	}
	entry := journal.ProtectionGranted{
		Header:   journal.NewHeader(s),
		Defender: holders[0].ID(),
		Target:   target.ID(),
	}
	if err := s.Append(entry); err != nil {
		return hook.Fail(err)
	}
	return hook.Complete()
}

package roles

import (
	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/hook"
	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// Message keys emitted by the cupid listener.
const (
	KeyCupidIdentify = "night.cupid.identify"
	KeyCupidChoose   = "night.cupid.choose"
)

// Cupid binds two players as lovers on the first night only. Cupid may
// pick themselves as one of the pair.
type Cupid struct{}

// ID implements hook.Listener.
func (Cupid) ID() phase.ListenerID { return ListenerCupid }

// Advance implements hook.Listener.
func (l Cupid) Advance(s *state.Session, resp *protocol.Response) hook.Result {
	if !s.HasRole(state.RoleCupid) || s.Turn() != 1 {
		return hook.Complete()
	}
	cur := s.Cursor()
	switch cur.ListenerState() {
	case phase.ListenerStateNone:
		if needsIdentification(s, state.RoleCupid) {
			return pause(s, l.ID(), stateIdentify,
				identifyInstruction(s, state.RoleCupid, KeyCupidIdentify))
		}
		return l.wake(s)
	case stateIdentify:
		if err := applyIdentification(s, state.RoleCupid, resp); err != nil {
			return hook.Fail(err)
		}
		return l.wake(s)
	case stateAction:
		return l.bind(s, resp)
	}
	return badState(l.ID(), cur.ListenerState())
}

func (l Cupid) wake(s *state.Session) hook.Result {
	holders := s.AliveWithRole(state.RoleCupid)
	if len(holders) == 0 {
		return hook.Complete()
	}
	return pause(s, l.ID(), stateAction, protocol.Instruction{
		Kind:         protocol.KindPlayerSelection,
		Key:          KeyCupidChoose,
		Players:      s.AliveIDs(),
		Concerns:     []state.PlayerID{holders[0].ID()},
		MinSelection: 2,
		MaxSelection: 2,
	})
}

func (l Cupid) bind(s *state.Session, resp *protocol.Response) hook.Result {
	sel, err := resp.Selection(2, 2)
	if err != nil {
		return hook.Fail(err)
	}
	if sel[0] == sel[1] {
		return hook.Fail(gameerrors.Newf(gameerrors.CodeRuleTargetSelf,
			"the lovers must be two different players"))
	}
	first, err := livingTarget(s, sel[0])
	if err != nil {
		return hook.Fail(err)
	}
	second, err := livingTarget(s, sel[1])
	if err != nil {
		return hook.Fail(err)
	}
	entry := journal.LoversBound{Header: journal.NewHeader(s), First: first.ID(), Second: second.ID()}
	if err := s.Append(entry); err != nil {
		return hook.Fail(err)
	}
	return hook.Complete()
}

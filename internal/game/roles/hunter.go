package roles

import (
	"github.com/bicheichane/millers-hollow/internal/game/hook"
	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// KeyHunterShot asks the dying hunter to fire their last shot.
const KeyHunterShot = "death.hunter.shot"

// Hunter fires one revenge shot when they die. The shot lands regardless
// of protection; the new death feeds back into death resolution so lover
// bonds and the badge still apply to it.
type Hunter struct{}

// ID implements hook.Listener.
func (Hunter) ID() phase.ListenerID { return ListenerHunter }

// Advance implements hook.Listener.
func (l Hunter) Advance(s *state.Session, resp *protocol.Response) hook.Result {
	hunter := pendingHunter(s)
	if hunter == nil {
		return hook.Complete()
	}
	alive := s.AliveIDs()
	if len(alive) == 0 {
		return hook.Complete()
	}

	cur := s.Cursor()
	switch cur.ListenerState() {
	case phase.ListenerStateNone:
		return pause(s, l.ID(), stateAction, protocol.Instruction{
			Kind:         protocol.KindPlayerSelection,
			Key:          KeyHunterShot,
			Args:         []any{string(hunter.ID())},
			Players:      alive,
			Concerns:     []state.PlayerID{hunter.ID()},
			MinSelection: 1,
			MaxSelection: 1,
		})
	case stateAction:
		sel, err := resp.Selection(1, 1)
		if err != nil {
			return hook.Fail(err)
		}
		target, err := livingTarget(s, sel[0])
		if err != nil {
			return hook.Fail(err)
		}
		entry := journal.PlayerDied{
			Header:  journal.NewHeader(s),
			Player:  target.ID(),
			Reason:  state.DeathHunterShot,
			Shooter: hunter.ID(),
		}
		if err := s.Append(entry); err != nil {
			return hook.Fail(err)
		}
		return hook.Complete()
	}
	return badState(l.ID(), cur.ListenerState())
}

// pendingHunter returns the first dead hunter whose card is known and
// whose shot is still owed, in seat order. Rosters may field more than
// one hunter card; each dying hunter fires exactly once.
func pendingHunter(s *state.Session) *state.Player {
	for _, p := range s.Players() {
		if !p.Alive() && p.Role() == state.RoleHunter && !p.FiredShot() {
			return p
		}
	}
	return nil
}

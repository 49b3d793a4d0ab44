package roles

import (
	"github.com/bicheichane/millers-hollow/internal/game/hook"
	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// KeySheriffSuccession asks the dying sheriff to name a successor.
const KeySheriffSuccession = "death.sheriff.succession"

// SheriffSuccession passes the badge when the sitting sheriff dies. The
// dying sheriff names any living player; the badge never lapses while
// the village stands.
type SheriffSuccession struct{}

// ID implements hook.Listener.
func (SheriffSuccession) ID() phase.ListenerID { return ListenerSheriff }

// Advance implements hook.Listener.
func (l SheriffSuccession) Advance(s *state.Session, resp *protocol.Response) hook.Result {
	holder, elected := s.Sheriff()
	if !elected {
		return hook.Complete()
	}
	dead, ok := s.Player(holder)
	if !ok || dead.Alive() {
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
			Key:          KeySheriffSuccession,
			Args:         []any{string(holder)},
			Players:      alive,
			Concerns:     []state.PlayerID{holder},
			MinSelection: 1,
			MaxSelection: 1,
		})
	case stateAction:
		sel, err := resp.Selection(1, 1)
		if err != nil {
			return hook.Fail(err)
		}
		successor, err := livingTarget(s, sel[0])
		if err != nil {
			return hook.Fail(err)
		}
		entry := journal.SheriffPassed{
			Header: journal.NewHeader(s),
			From:   holder,
			To:     successor.ID(),
		}
		if err := s.Append(entry); err != nil {
			return hook.Fail(err)
		}
		return hook.Complete()
	}
	return badState(l.ID(), cur.ListenerState())
}

package roles

import (
	"github.com/bicheichane/millers-hollow/internal/game/hook"
	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// KeyLoversHeartbreak announces a lover following their partner into the
// grave.
const KeyLoversHeartbreak = "death.lovers.heartbreak"

// Lovers enforces the bond: when one lover dies the survivor dies of
// heartbreak in the same resolution pass. Runs before any other death
// rule so downstream rules see the full casualty list.
type Lovers struct{}

// ID implements hook.Listener.
func (Lovers) ID() phase.ListenerID { return ListenerLovers }

// Advance implements hook.Listener.
func (l Lovers) Advance(s *state.Session, resp *protocol.Response) hook.Result {
	var broken *state.Player
	for _, p := range s.Players() {
		if p.Alive() || p.Lover() == "" {
			continue
		}
		partner, ok := s.Player(p.Lover())
		if ok && partner.Alive() {
			broken = partner
			break
		}
	}
	if broken == nil {
		return hook.Complete()
	}
	entry := journal.PlayerDied{
		Header: journal.NewHeader(s),
		Player: broken.ID(),
		Reason: state.DeathHeartbreak,
	}
	if err := s.Append(entry); err != nil {
		return hook.Fail(err)
	}
	return hook.CompleteWith(protocol.Instruction{
		Kind:     protocol.KindConfirm,
		Key:      KeyLoversHeartbreak,
		Args:     []any{string(broken.ID())},
		Concerns: []state.PlayerID{broken.ID()},
	})
}

package roles

import (
	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/hook"
	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// Message keys emitted by the witch listener.
const (
	KeyWitchIdentify = "night.witch.identify"
	KeyWitchHeal     = "night.witch.heal"
	KeyWitchPoison   = "night.witch.poison"
)

// Witch holds two single-use potions. After the pack attacks she is shown
// the victim and may spend the healing potion, then may spend the poison
// on any living player. Each potion works once per game.
type Witch struct{}

// ID implements hook.Listener.
func (Witch) ID() phase.ListenerID { return ListenerWitch }

// Advance implements hook.Listener.
func (l Witch) Advance(s *state.Session, resp *protocol.Response) hook.Result {
	if !s.HasRole(state.RoleWitch) {
		return hook.Complete()
	}
	cur := s.Cursor()
	switch cur.ListenerState() {
	case phase.ListenerStateNone:
		if needsIdentification(s, state.RoleWitch) {
			return pause(s, l.ID(), stateIdentify,
				identifyInstruction(s, state.RoleWitch, KeyWitchIdentify))
		}
		return l.healStep(s)
	case stateIdentify:
		if err := applyIdentification(s, state.RoleWitch, resp); err != nil {
			return hook.Fail(err)
		}
		return l.healStep(s)
	case stateWitchHeal:
		return l.heal(s, resp)
	case stateWitchPoison:
		return l.poison(s, resp)
	}
	return badState(l.ID(), cur.ListenerState())
}

// healStep offers the healing potion when there is a victim to save.
func (l Witch) healStep(s *state.Session) hook.Result {
	witch, ok := l.holder(s)
	if !ok {
		return hook.Complete()
	}
	victim, attacked := s.WolfTarget()
	if !attacked || witch.UsedPotion(state.PotionHeal) {
		return l.poisonStep(s)
	}
	return pause(s, l.ID(), stateWitchHeal, protocol.Instruction{
		Kind:     protocol.KindConfirm,
		Key:      KeyWitchHeal,
		Args:     []any{string(victim)},
		Concerns: []state.PlayerID{witch.ID(), victim},
	})
}

func (l Witch) heal(s *state.Session, resp *protocol.Response) hook.Result {
	witch, ok := l.holder(s)
	if !ok {
		return hook.Complete()
	}
	confirmed, err := resp.Confirm()
	if err != nil {
		return hook.Fail(err)
	}
	if confirmed {
		if witch.UsedPotion(state.PotionHeal) {
			return hook.Fail(gameerrors.Newf(gameerrors.CodeRulePowerExhausted,
				"the healing potion is already spent"))
		}
		victim, _ := s.WolfTarget()
		entry := journal.PotionUsed{
			Header: journal.NewHeader(s),
			Witch:  witch.ID(),
			Kind:   state.PotionHeal,
			Target: victim,
		}
		if err := s.Append(entry); err != nil {
			return hook.Fail(err)
		}
	}
	return l.poisonStep(s)
}

// poisonStep offers the poison potion. An empty selection declines.
func (l Witch) poisonStep(s *state.Session) hook.Result {
	witch, ok := l.holder(s)
	if !ok || witch.UsedPotion(state.PotionPoison) {
		return hook.Complete()
	}
	var candidates []state.PlayerID
	for _, p := range s.AlivePlayers() {
		if p.ID() != witch.ID() {
			candidates = append(candidates, p.ID())
		}
	}
	return pause(s, l.ID(), stateWitchPoison, protocol.Instruction{
		Kind:         protocol.KindPlayerSelection,
		Key:          KeyWitchPoison,
		Players:      candidates,
		Concerns:     []state.PlayerID{witch.ID()},
		MinSelection: 0,
		MaxSelection: 1,
	})
}

func (l Witch) poison(s *state.Session, resp *protocol.Response) hook.Result {
	witch, ok := l.holder(s)
	if !ok {
		return hook.Complete()
	}
	sel, err := resp.Selection(0, 1)
	if err != nil {
		return hook.Fail(err)
	}
	if len(sel) == 0 {
		return hook.Complete()
	}
	if witch.UsedPotion(state.PotionPoison) {
		return hook.Fail(gameerrors.Newf(gameerrors.CodeRulePowerExhausted,
			"the poison potion is already spent"))
	}
	target, err := livingTarget(s, sel[0])
	if err != nil {
		return hook.Fail(err)
	}
	if target.ID() == witch.ID() {
		return hook.Fail(gameerrors.Newf(gameerrors.CodeRuleTargetSelf,
			"the witch cannot poison herself"))
	}
	entry := journal.PotionUsed{
		Header: journal.NewHeader(s),
		Witch:  witch.ID(),
		Kind:   state.PotionPoison,
		Target: target.ID(),
	}
	if err := s.Append(entry); err != nil {
		return hook.Fail(err)
	}
	return hook.Complete()
}

func (Witch) holder(s *state.Session) (*state.Player, bool) {
	holders := s.AliveWithRole(state.RoleWitch)
	if len(holders) == 0 {
		return nil, false
	}
	return holders[0], true
}

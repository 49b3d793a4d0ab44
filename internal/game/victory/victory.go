// Package victory evaluates win conditions. The evaluator is a pluggable
// policy invoked at declared checkpoints (dawn finalization, dusk handoff);
// the flow never hardcodes a faction-counting algorithm.
package victory

import "github.com/bicheichane/millers-hollow/internal/game/state"

// Evaluator decides whether a faction has won.
type Evaluator interface {
	Evaluate(s *state.Session) (state.Faction, bool)
}

// Parity is the default evaluator. It reasons over dealt cards, not only
// identified holders: a werewolf card whose holder was never identified
// still counts as a potentially living wolf.
//
// Rules, in precedence order:
//   - Lovers win if exactly the two lovers survive.
//   - Villagers win when every dealt werewolf card is accounted dead.
//   - Werewolves win when no living player can be a non-wolf.
type Parity struct{}

// Evaluate implements Evaluator.
func (Parity) Evaluate(s *state.Session) (state.Faction, bool) {
	alive := s.AlivePlayers()
	if len(alive) == 0 {
		return state.FactionVillagers, false
	}

	if len(alive) == 2 && alive[0].Lover() == alive[1].ID() && alive[1].Lover() == alive[0].ID() {
		return state.FactionLovers, true
	}

	dealtWolves := s.RoleCount(state.RoleWerewolf)
	deadWolves := 0
	aliveKnownWolves := 0
	aliveKnownNonWolves := 0
	for _, p := range s.Players() {
		switch {
		case p.Role() == state.RoleWerewolf && !p.Alive():
			deadWolves++
		case p.Role() == state.RoleWerewolf:
			aliveKnownWolves++
		case p.Role() != "" && p.Alive():
			aliveKnownNonWolves++
		}
	}

	if deadWolves >= dealtWolves && len(alive) > 0 {
		return state.FactionVillagers, true
	}

	// Wolves win when every survivor is a known wolf, or when the only
	// unidentified survivors cannot cover a single non-wolf card.
	unknownAlive := len(alive) - aliveKnownWolves - aliveKnownNonWolves
	possibleWolvesAlive := dealtWolves - deadWolves - aliveKnownWolves
	if aliveKnownNonWolves == 0 && unknownAlive <= 0 && aliveKnownWolves > 0 {
		return state.FactionWerewolves, true
	}
	if aliveKnownNonWolves == 0 && unknownAlive > 0 && unknownAlive <= possibleWolvesAlive {
		return state.FactionWerewolves, true
	}

	return state.FactionVillagers, false
}

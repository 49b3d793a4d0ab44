package state

import "github.com/bicheichane/millers-hollow/internal/game/phase"

// PlayerView is a read-only projection of one player.
type PlayerView struct {
	ID          PlayerID    `json:"id"`
	Name        string      `json:"name"`
	Seat        int         `json:"seat"`
	Alive       bool        `json:"alive"`
	Role        Role        `json:"role,omitempty"`
	Revealed    bool        `json:"revealed"`
	Sheriff     bool        `json:"sheriff"`
	Lover       PlayerID    `json:"lover,omitempty"`
	DeathReason DeathReason `json:"death_reason,omitempty"`
	DeathTurn   int         `json:"death_turn,omitempty"`
}

// View is a read-only projection of the session for display and debugging.
// It carries no references back into the aggregate, so handing it out can
// never mutate state.
type View struct {
	ID       string         `json:"id"`
	Turn     int            `json:"turn"`
	Phase    phase.Phase    `json:"phase"`
	SubPhase phase.SubPhase `json:"sub_phase"`
	Players  []PlayerView   `json:"players"`
	Roles    []Role         `json:"roles"`
	Events   []string       `json:"event_cards,omitempty"`
	LogLen   int            `json:"log_len"`
	Winner   Faction        `json:"winner,omitempty"`
	GameOver bool           `json:"game_over"`
}

// View builds the read-only projection of the current state.
func (s *Session) View() View {
	players := make([]PlayerView, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, PlayerView{
			ID:          p.id,
			Name:        p.name,
			Seat:        p.seat,
			Alive:       p.alive,
			Role:        p.role,
			Revealed:    p.revealed,
			Sheriff:     p.sheriff,
			Lover:       p.lover,
			DeathReason: p.deathReason,
			DeathTurn:   p.deathTurn,
		})
	}
	winner, won := s.Winner()
	return View{
		ID:       s.id,
		Turn:     s.turn,
		Phase:    s.cursor.MainPhase(),
		SubPhase: s.cursor.SubPhase(),
		Players:  players,
		Roles:    s.RolesInPlay(),
		Events:   s.EventCards(),
		LogLen:   len(s.log),
		Winner:   winner,
		GameOver: won,
	}
}

// Replay rebuilds a session by applying the given entries, in order, to a
// fresh aggregate built from the same structural inputs. Replaying the full
// log from empty initial state must always reproduce identical derived
// state; that determinism is the core correctness property of the store.
func Replay(id string, playerNames []string, roles []Role, eventCards []string, entries []Entry) (*Session, error) {
	s, err := NewSession(id, playerNames, roles, eventCards)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := s.Append(e); err != nil {
			return nil, err
		}
	}
	return s, nil
}

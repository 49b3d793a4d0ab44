package victory

import (
	"testing"

	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

func buildSession(t *testing.T, roles []state.Role, entries ...state.Entry) *state.Session {
	t.Helper()
	names := make([]string, len(roles))
	for i := range roles {
		names[i] = string(rune('A' + i))
	}
	s, err := state.NewSession("s", names, roles, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	for _, e := range entries {
		if err := s.Append(e); err != nil {
			t.Fatalf("append %s: %v", e.Type(), err)
		}
	}
	return s
}

func TestVillagersWinWhenAllWolvesDead(t *testing.T) {
	s := buildSession(t,
		[]state.Role{state.RoleWerewolf, state.RoleVillager, state.RoleVillager},
		journal.RoleRevealed{Player: "p1", Role: state.RoleWerewolf},
		journal.PlayerDied{Player: "p1", Reason: state.DeathLynch},
	)
	winner, won := Parity{}.Evaluate(s)
	if !won || winner != state.FactionVillagers {
		t.Fatalf("winner = %s/%v, want villagers", winner, won)
	}
}

func TestNoWinnerWhileWolfCardUnaccounted(t *testing.T) {
	// One wolf card dealt, nobody identified: the game is undecided even
	// though no known wolf is alive.
	s := buildSession(t,
		[]state.Role{state.RoleWerewolf, state.RoleVillager, state.RoleVillager},
	)
	if _, won := (Parity{}).Evaluate(s); won {
		t.Fatal("no winner should be declared with an unaccounted wolf card")
	}
}

func TestWolvesWinWhenNoNonWolfCanSurvive(t *testing.T) {
	s := buildSession(t,
		[]state.Role{state.RoleWerewolf, state.RoleVillager, state.RoleVillager},
		journal.RoleAssigned{Player: "p1", Role: state.RoleWerewolf},
		journal.RoleRevealed{Player: "p2", Role: state.RoleVillager},
		journal.PlayerDied{Player: "p2", Reason: state.DeathWerewolfAttack},
		journal.RoleRevealed{Player: "p3", Role: state.RoleVillager},
		journal.PlayerDied{Player: "p3", Reason: state.DeathLynch},
	)
	winner, won := Parity{}.Evaluate(s)
	if !won || winner != state.FactionWerewolves {
		t.Fatalf("winner = %s/%v, want werewolves", winner, won)
	}
}

func TestLoversWinAsLastSurvivors(t *testing.T) {
	s := buildSession(t,
		[]state.Role{state.RoleWerewolf, state.RoleVillager, state.RoleCupid},
		journal.LoversBound{First: "p1", Second: "p3"},
		journal.RoleRevealed{Player: "p2", Role: state.RoleVillager},
		journal.PlayerDied{Player: "p2", Reason: state.DeathWerewolfAttack},
	)
	winner, won := Parity{}.Evaluate(s)
	if !won || winner != state.FactionLovers {
		t.Fatalf("winner = %s/%v, want lovers", winner, won)
	}
}

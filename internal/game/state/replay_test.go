package state_test

import (
	"reflect"
	"testing"

	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

func scriptedEntries(s *state.Session) []state.Entry {
	return []state.Entry{
		journal.TurnAdvanced{Header: journal.NewHeader(s)},
		journal.RoleAssigned{Player: "p1", Role: state.RoleWerewolf},
		journal.RoleAssigned{Player: "p3", Role: state.RoleWitch},
		journal.WolvesTargeted{Target: "p2"},
		journal.PotionUsed{Witch: "p3", Kind: state.PotionPoison, Target: "p1"},
		journal.PlayerDied{Player: "p2", Reason: state.DeathWerewolfAttack},
		journal.PlayerDied{Player: "p1", Reason: state.DeathPoison},
		journal.RoleRevealed{Player: "p2", Role: state.RoleVillager},
		journal.WinnerRecorded{Faction: state.FactionVillagers},
	}
}

func TestReplayDeterminism(t *testing.T) {
	names := []string{"Alice", "Bob", "Carol"}
	roles := []state.Role{state.RoleWerewolf, state.RoleVillager, state.RoleWitch}

	base, err := state.NewSession("sess-r", names, roles, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	entries := scriptedEntries(base)

	first, err := state.Replay("sess-r", names, roles, nil, entries)
	if err != nil {
		t.Fatalf("first replay: %v", err)
	}
	second, err := state.Replay("sess-r", names, roles, nil, entries)
	if err != nil {
		t.Fatalf("second replay: %v", err)
	}

	if !reflect.DeepEqual(first.View(), second.View()) {
		t.Fatalf("replays diverged:\n%+v\n%+v", first.View(), second.View())
	}
}

func TestReplayMatchesLiveSession(t *testing.T) {
	names := []string{"Alice", "Bob", "Carol"}
	roles := []state.Role{state.RoleWerewolf, state.RoleVillager, state.RoleWitch}

	live, err := state.NewSession("sess-r", names, roles, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	for _, e := range scriptedEntries(live) {
		if err := live.Append(e); err != nil {
			t.Fatalf("append %s: %v", e.Type(), err)
		}
	}

	replayed, err := state.Replay("sess-r", names, roles, nil, live.Log())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !reflect.DeepEqual(live.View(), replayed.View()) {
		t.Fatalf("replay diverged from live session:\n%+v\n%+v", live.View(), replayed.View())
	}
	if winner, won := replayed.Winner(); !won || winner != state.FactionVillagers {
		t.Fatalf("winner = %s/%v", winner, won)
	}
}

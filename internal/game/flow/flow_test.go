package flow

import (
	"reflect"
	"testing"

	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/roles"
	"github.com/bicheichane/millers-hollow/internal/game/state"
	"github.com/bicheichane/millers-hollow/internal/game/victory"
)

func newFlow(t *testing.T) *Flow {
	t.Helper()
	registry, err := roles.BuildRegistry()
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	f, err := New(registry, victory.Parity{})
	if err != nil {
		t.Fatalf("new flow: %v", err)
	}
	return f
}

func newGame(t *testing.T, names []string, gameRoles []state.Role) *state.Session {
	t.Helper()
	s, err := state.NewSession("game", names, gameRoles, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func drive(t *testing.T, f *Flow, s *state.Session, resp *protocol.Response, wantKey string) protocol.Instruction {
	t.Helper()
	instr, err := f.HandleInput(s, resp)
	if err != nil {
		t.Fatalf("handle input: %v", err)
	}
	if instr.Key != wantKey {
		t.Fatalf("instruction key = %s, want %s", instr.Key, wantKey)
	}
	return instr
}

func confirm() *protocol.Response {
	return &protocol.Response{Kind: protocol.KindConfirm, Confirmed: true}
}

func decline() *protocol.Response {
	return &protocol.Response{Kind: protocol.KindConfirm, Confirmed: false}
}

func pick(ids ...state.PlayerID) *protocol.Response {
	return &protocol.Response{Kind: protocol.KindPlayerSelection, Players: ids}
}

func assign(id state.PlayerID, role state.Role) *protocol.Response {
	return &protocol.Response{
		Kind:  protocol.KindRoleAssignment,
		Roles: map[state.PlayerID]state.Role{id: role},
	}
}

func TestFullFirstCycleEndsInVillagerVictory(t *testing.T) {
	f := newFlow(t)
	s := newGame(t,
		[]string{"Ava", "Ben", "Cleo", "Dan"},
		[]state.Role{state.RoleWerewolf, state.RoleSeer, state.RoleVillager, state.RoleVillager},
	)

	drive(t, f, s, nil, KeySetupConfirm)
	drive(t, f, s, confirm(), roles.KeyWerewolvesIdentify)
	if s.Turn() != 1 {
		t.Fatalf("turn = %d after night fell, want 1", s.Turn())
	}

	drive(t, f, s, assign("p1", state.RoleWerewolf), roles.KeyWerewolvesChoose)
	drive(t, f, s, pick("p3"), roles.KeySeerIdentify)
	drive(t, f, s, assign("p2", state.RoleSeer), roles.KeySeerChoose)
	drive(t, f, s, pick("p4"), roles.KeySeerReveal)

	announce := drive(t, f, s, confirm(), KeyDawnAnnounce)
	if len(announce.Concerns) != 1 || announce.Concerns[0] != "p3" {
		t.Fatalf("announced victims = %v, want [p3]", announce.Concerns)
	}

	reveal := drive(t, f, s, confirm(), KeyRevealRole)
	if len(reveal.Players) != 1 || reveal.Players[0] != "p3" {
		t.Fatalf("reveal prompt targets %v, want [p3]", reveal.Players)
	}

	drive(t, f, s, assign("p3", state.RoleVillager), KeyDebateOpen)
	drive(t, f, s, confirm(), KeyElectSheriff)
	drive(t, f, s, pick("p2"), KeyVoteCast)
	drive(t, f, s, pick("p1"), KeyRevealRole)

	report := drive(t, f, s, assign("p1", state.RoleWerewolf), KeyGameOver)
	if !report.GameOver || report.Winner != state.FactionVillagers {
		t.Fatalf("report = %+v, want villager victory", report)
	}
	if s.Cursor().MainPhase() != phase.PhaseGameOver {
		t.Fatalf("phase = %s, want game over", s.Cursor().MainPhase())
	}

	_, err := f.HandleInput(s, confirm())
	if !gameerrors.Is(err, gameerrors.CodeOpGameOver) {
		t.Fatalf("error = %v, want OPERATION_GAME_OVER", err)
	}
}

func TestRejectedInputLeavesSessionUntouched(t *testing.T) {
	f := newFlow(t)
	s := newGame(t,
		[]string{"Ava", "Ben", "Cleo"},
		[]state.Role{state.RoleWerewolf, state.RoleVillager, state.RoleVillager},
	)

	drive(t, f, s, nil, KeySetupConfirm)
	drive(t, f, s, confirm(), roles.KeyWerewolvesIdentify)
	drive(t, f, s, assign("p1", state.RoleWerewolf), roles.KeyWerewolvesChoose)

	before := s.View()
	logBefore := s.LogLen()

	_, err := f.HandleInput(s, pick("p1"))
	if !gameerrors.Is(err, gameerrors.CodeRuleTargetAlly) {
		t.Fatalf("error = %v, want RULE_TARGET_ALLY", err)
	}
	if s.LogLen() != logBefore {
		t.Fatal("rejected input must not grow the log")
	}
	if !reflect.DeepEqual(before, s.View()) {
		t.Fatal("rejected input must leave the projection unchanged")
	}

	// The same pending instruction stays answerable.
	drive(t, f, s, pick("p2"), KeyDawnAnnounce)
}

func TestDeclinedConfirmationRepeatsThePrompt(t *testing.T) {
	f := newFlow(t)
	s := newGame(t,
		[]string{"Ava", "Ben", "Cleo", "Dan"},
		[]state.Role{state.RoleWerewolf, state.RoleSeer, state.RoleVillager, state.RoleVillager},
	)

	drive(t, f, s, nil, KeySetupConfirm)
	drive(t, f, s, confirm(), roles.KeyWerewolvesIdentify)
	drive(t, f, s, assign("p1", state.RoleWerewolf), roles.KeyWerewolvesChoose)
	drive(t, f, s, pick("p3"), roles.KeySeerIdentify)
	drive(t, f, s, assign("p2", state.RoleSeer), roles.KeySeerChoose)

	// Answering "no" re-issues the same prompt at every confirm stop.
	reveal := drive(t, f, s, pick("p4"), roles.KeySeerReveal)
	logBefore := s.LogLen()
	again := drive(t, f, s, decline(), roles.KeySeerReveal)
	if !reflect.DeepEqual(reveal, again) {
		t.Fatalf("repeated reveal prompt diverged:\nfirst: %+v\nagain: %+v", reveal, again)
	}
	if s.LogLen() != logBefore {
		t.Fatal("a declined confirmation must not grow the log")
	}

	drive(t, f, s, confirm(), KeyDawnAnnounce)
	drive(t, f, s, decline(), KeyDawnAnnounce)
	drive(t, f, s, confirm(), KeyRevealRole)

	drive(t, f, s, assign("p3", state.RoleVillager), KeyDebateOpen)
	drive(t, f, s, decline(), KeyDebateOpen)
	drive(t, f, s, confirm(), KeyElectSheriff)
}

func TestWrongResponseKindIsRefused(t *testing.T) {
	f := newFlow(t)
	s := newGame(t,
		[]string{"Ava", "Ben", "Cleo"},
		[]state.Role{state.RoleWerewolf, state.RoleVillager, state.RoleVillager},
	)

	drive(t, f, s, nil, KeySetupConfirm)
	_, err := f.HandleInput(s, pick("p1"))
	if !gameerrors.Is(err, gameerrors.CodeInputKindMismatch) {
		t.Fatalf("error = %v, want INPUT_KIND_MISMATCH", err)
	}
	if s.Cursor().MainPhase() != phase.PhaseSetup {
		t.Fatalf("phase = %s, setup must not advance", s.Cursor().MainPhase())
	}
}

func TestTiedVoteLoopsIntoNextNightAndSkipsElection(t *testing.T) {
	f := newFlow(t)
	s := newGame(t,
		[]string{"Ava", "Ben", "Cleo", "Dan"},
		[]state.Role{state.RoleWerewolf, state.RoleVillager, state.RoleVillager, state.RoleVillager},
	)

	drive(t, f, s, nil, KeySetupConfirm)
	drive(t, f, s, confirm(), roles.KeyWerewolvesIdentify)
	drive(t, f, s, assign("p1", state.RoleWerewolf), roles.KeyWerewolvesChoose)
	drive(t, f, s, pick("p2"), KeyDawnAnnounce)
	drive(t, f, s, confirm(), KeyRevealRole)
	drive(t, f, s, assign("p2", state.RoleVillager), KeyDebateOpen)
	drive(t, f, s, confirm(), KeyElectSheriff)
	drive(t, f, s, pick("p3"), KeyVoteCast)

	// Nobody reaches a majority: the village goes back to sleep.
	next := drive(t, f, s, pick(), roles.KeyWerewolvesChoose)
	if s.Turn() != 2 {
		t.Fatalf("turn = %d after tied vote, want 2", s.Turn())
	}
	for _, id := range next.Players {
		if id == "p2" {
			t.Fatal("a dead player must not be offered as prey")
		}
	}

	drive(t, f, s, pick("p3"), KeyDawnAnnounce)
	drive(t, f, s, confirm(), KeyRevealRole)
	drive(t, f, s, assign("p3", state.RoleVillager), KeyDebateOpen)

	// Day two: the badge question never comes back.
	drive(t, f, s, confirm(), KeyVoteCast)
	drive(t, f, s, pick("p1"), KeyRevealRole)
	report := drive(t, f, s, assign("p1", state.RoleWerewolf), KeyGameOver)
	if report.Winner != state.FactionVillagers {
		t.Fatalf("winner = %s, want villagers", report.Winner)
	}
}

func TestHunterShotChainsThroughDawn(t *testing.T) {
	f := newFlow(t)
	s := newGame(t,
		[]string{"Ava", "Ben", "Cleo", "Dan", "Eula"},
		[]state.Role{state.RoleWerewolf, state.RoleHunter, state.RoleVillager, state.RoleVillager, state.RoleVillager},
	)

	drive(t, f, s, nil, KeySetupConfirm)
	drive(t, f, s, confirm(), roles.KeyWerewolvesIdentify)
	drive(t, f, s, assign("p1", state.RoleWerewolf), roles.KeyWerewolvesChoose)
	drive(t, f, s, pick("p2"), KeyDawnAnnounce)

	// The hunter card is flipped at dawn; the dying hunter fires.
	drive(t, f, s, confirm(), KeyRevealRole)
	shot := drive(t, f, s, assign("p2", state.RoleHunter), roles.KeyHunterShot)
	if len(shot.Concerns) != 1 || shot.Concerns[0] != "p2" {
		t.Fatalf("shot prompt concerns %v, want [p2]", shot.Concerns)
	}

	// The shot victim's card gets revealed in the same pass.
	drive(t, f, s, pick("p3"), KeyRevealRole)
	drive(t, f, s, assign("p3", state.RoleVillager), KeyDebateOpen)

	if victim, _ := s.Player("p3"); victim.Alive() || victim.DeathReason() != state.DeathHunterShot {
		t.Fatalf("shot victim = alive:%v reason:%s", victim.Alive(), victim.DeathReason())
	}
}

func TestEachDyingHunterFiresOnce(t *testing.T) {
	f := newFlow(t)
	s := newGame(t,
		[]string{"Ava", "Ben", "Cleo", "Dan", "Eula", "Finn"},
		[]state.Role{state.RoleWerewolf, state.RoleHunter, state.RoleHunter,
			state.RoleVillager, state.RoleVillager, state.RoleVillager},
	)

	drive(t, f, s, nil, KeySetupConfirm)
	drive(t, f, s, confirm(), roles.KeyWerewolvesIdentify)
	drive(t, f, s, assign("p1", state.RoleWerewolf), roles.KeyWerewolvesChoose)
	drive(t, f, s, pick("p2"), KeyDawnAnnounce)
	drive(t, f, s, confirm(), KeyRevealRole)

	// The first hunter dies and shoots the second hunter.
	first := drive(t, f, s, assign("p2", state.RoleHunter), roles.KeyHunterShot)
	if len(first.Concerns) != 1 || first.Concerns[0] != "p2" {
		t.Fatalf("first shot prompt concerns %v, want [p2]", first.Concerns)
	}
	drive(t, f, s, pick("p3"), KeyRevealRole)

	// The second hunter's card flips; their shot is still owed even though
	// one hunter shot was already recorded this dawn.
	second := drive(t, f, s, assign("p3", state.RoleHunter), roles.KeyHunterShot)
	if len(second.Concerns) != 1 || second.Concerns[0] != "p3" {
		t.Fatalf("second shot prompt concerns %v, want [p3]", second.Concerns)
	}
	drive(t, f, s, pick("p4"), KeyRevealRole)
	drive(t, f, s, assign("p4", state.RoleVillager), KeyDebateOpen)

	if victim, _ := s.Player("p4"); victim.Alive() || victim.DeathReason() != state.DeathHunterShot {
		t.Fatalf("second shot victim = alive:%v reason:%s", victim.Alive(), victim.DeathReason())
	}
	for _, id := range []state.PlayerID{"p2", "p3"} {
		p, _ := s.Player(id)
		if !p.FiredShot() {
			t.Fatalf("%s should have fired their shot", id)
		}
	}
}

func TestReplayReproducesTheLiveSession(t *testing.T) {
	f := newFlow(t)
	names := []string{"Ava", "Ben", "Cleo", "Dan"}
	gameRoles := []state.Role{state.RoleWerewolf, state.RoleSeer, state.RoleVillager, state.RoleVillager}
	s := newGame(t, names, gameRoles)

	drive(t, f, s, nil, KeySetupConfirm)
	drive(t, f, s, confirm(), roles.KeyWerewolvesIdentify)
	drive(t, f, s, assign("p1", state.RoleWerewolf), roles.KeyWerewolvesChoose)
	drive(t, f, s, pick("p3"), roles.KeySeerIdentify)
	drive(t, f, s, assign("p2", state.RoleSeer), roles.KeySeerChoose)
	drive(t, f, s, pick("p1"), roles.KeySeerReveal)
	drive(t, f, s, confirm(), KeyDawnAnnounce)
	drive(t, f, s, confirm(), KeyRevealRole)
	drive(t, f, s, assign("p3", state.RoleVillager), KeyDebateOpen)

	replayed, err := state.Replay("game", names, gameRoles, nil, s.Log())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	replayed.Cursor().Restore(s.Cursor().Snapshot())

	if !reflect.DeepEqual(s.View(), replayed.View()) {
		t.Fatalf("replayed view diverged:\nlive:     %+v\nreplayed: %+v", s.View(), replayed.View())
	}

	// The replayed session keeps answering from where the live one paused.
	drive(t, f, replayed, confirm(), KeyElectSheriff)
}

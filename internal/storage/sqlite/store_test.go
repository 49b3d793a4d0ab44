package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/state"
	"github.com/bicheichane/millers-hollow/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "game.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	rec := storage.SessionRecord{
		ID:         "s1",
		Players:    []string{"Ava", "Ben", "Cleo"},
		Roles:      []state.Role{state.RoleWerewolf, state.RoleSeer, state.RoleVillager},
		EventCards: []string{},
		Cursor: phase.Snapshot{
			MainPhase: phase.PhaseSetup,
			SubPhase:  phase.SubPhaseSetupConfirmRoster,
		},
	}
	if err := s.CreateSession(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.CreateSession(ctx, rec); !errors.Is(err, storage.ErrSessionExists) {
		t.Fatalf("duplicate create error = %v", err)
	}

	got, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Players) != 3 || got.Players[0] != "Ava" {
		t.Fatalf("players = %v", got.Players)
	}
	if got.Roles[1] != state.RoleSeer {
		t.Fatalf("roles = %v", got.Roles)
	}
	if got.Cursor.SubPhase != phase.SubPhaseSetupConfirmRoster {
		t.Fatalf("cursor = %+v", got.Cursor)
	}

	snap := phase.Snapshot{
		MainPhase:     phase.PhaseNight,
		SubPhase:      phase.SubPhaseNightActionLoop,
		Hook:          phase.HookNightAction,
		Listener:      "role.werewolves",
		ListenerState: 2,
	}
	pending := []byte(`{"key":"vote.cast"}`)
	if err := s.SaveCheckpoint(ctx, "s1", snap, pending); err != nil {
		t.Fatalf("save checkpoint: %v", err)
	}
	got, _ = s.GetSession(ctx, "s1")
	if got.Cursor != snap {
		t.Fatalf("cursor after save = %+v, want %+v", got.Cursor, snap)
	}
	if string(got.Pending) != string(pending) {
		t.Fatalf("pending after save = %q, want %q", got.Pending, pending)
	}

	if err := s.SaveCheckpoint(ctx, "nope", snap, nil); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("save checkpoint on missing session error = %v", err)
	}
}

func TestEventsAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.CreateSession(ctx, storage.SessionRecord{ID: "s1", Players: []string{"Ava"}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	batch := []storage.Record{
		{Turn: 1, Phase: phase.PhaseNight, Type: "turn.advanced", Payload: []byte(`{"turn":1}`)},
		{Turn: 1, Phase: phase.PhaseNight, Type: "night.wolves_targeted", Payload: []byte(`{"target":"p2"}`)},
	}
	if err := s.AppendEvents(ctx, "s1", batch); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvents(ctx, "s1", []storage.Record{
		{Turn: 1, Phase: phase.PhaseDayDawn, Type: "player.died", Payload: []byte(`{"player":"p2"}`)},
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.ListEvents(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, rec := range got {
		if rec.Seq != int64(i)+1 {
			t.Fatalf("seq[%d] = %d", i, rec.Seq)
		}
	}
	if got[2].Type != "player.died" || got[2].Phase != phase.PhaseDayDawn {
		t.Fatalf("last record = %+v", got[2])
	}

	if err := s.AppendEvents(ctx, "nope", batch); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("append to missing session error = %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "game.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.CreateSession(ctx, storage.SessionRecord{ID: "s1", Players: []string{"Ava"}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.GetSession(ctx, "s1"); err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
}

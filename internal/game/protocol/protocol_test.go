package protocol

import (
	"testing"

	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

func TestConfirmKindMismatch(t *testing.T) {
	resp := &Response{Kind: KindPlayerSelection}
	if _, err := resp.Confirm(); !gameerrors.Is(err, gameerrors.CodeInputKindMismatch) {
		t.Fatalf("err = %v, want INPUT_KIND_MISMATCH", err)
	}
}

func TestSelectionBounds(t *testing.T) {
	tests := []struct {
		name     string
		players  []state.PlayerID
		min, max int
		wantErr  bool
	}{
		{"within bounds", []state.PlayerID{"p1"}, 1, 1, false},
		{"empty allowed", nil, 0, 1, false},
		{"too few", nil, 1, 1, true},
		{"too many", []state.PlayerID{"p1", "p2"}, 0, 1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := &Response{Kind: KindPlayerSelection, Players: tc.players}
			got, err := resp.Selection(tc.min, tc.max)
			if tc.wantErr {
				if !gameerrors.Is(err, gameerrors.CodeInputSelectionCount) {
					t.Fatalf("err = %v, want INPUT_SELECTION_COUNT_OUT_OF_BOUNDS", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("selection: %v", err)
			}
			if len(got) != len(tc.players) {
				t.Fatalf("got %d players", len(got))
			}
		})
	}
}

func TestAssignmentsKind(t *testing.T) {
	resp := &Response{
		Kind:  KindRoleAssignment,
		Roles: map[state.PlayerID]state.Role{"p1": state.RoleWerewolf},
	}
	roles, err := resp.Assignments()
	if err != nil {
		t.Fatalf("assignments: %v", err)
	}
	if roles["p1"] != state.RoleWerewolf {
		t.Fatalf("roles = %v", roles)
	}
	if _, err := (&Response{Kind: KindConfirm}).Assignments(); err == nil {
		t.Fatal("expected kind mismatch")
	}
}

// Package protocol defines the transport-independent boundary types: the
// moderator's inbound Response and the engine's outbound Instruction. Both
// are tagged unions; the Kind field says which arm is populated.
package protocol

import (
	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// Kind tags the shape of a response or the shape an instruction expects.
type Kind string

const (
	// KindConfirm carries a yes/no acknowledgment.
	KindConfirm Kind = "confirm"
	// KindPlayerSelection carries zero or more selected player ids.
	KindPlayerSelection Kind = "player_selection"
	// KindRoleAssignment carries a player-to-role mapping.
	KindRoleAssignment Kind = "role_assignment"
	// KindOptionChoice carries one choice from an offered option list.
	KindOptionChoice Kind = "option_choice"
)

// Response is one moderator input.
type Response struct {
	Kind      Kind                          `json:"kind"`
	Confirmed bool                          `json:"confirmed,omitempty"`
	Players   []state.PlayerID              `json:"players,omitempty"`
	Roles     map[state.PlayerID]state.Role `json:"roles,omitempty"`
	Option    string                        `json:"option,omitempty"`
}

// Confirm extracts the confirmation arm.
func (r *Response) Confirm() (bool, error) {
	if r == nil || r.Kind != KindConfirm {
		return false, gameerrors.New(gameerrors.CodeInputKindMismatch, "expected a confirmation")
	}
	return r.Confirmed, nil
}

// Selection extracts the player-selection arm and enforces the declared
// count bounds. An empty selection within bounds is a valid answer (it is
// how "tie" and "no target" are expressed).
func (r *Response) Selection(min, max int) ([]state.PlayerID, error) {
	if r == nil || r.Kind != KindPlayerSelection {
		return nil, gameerrors.New(gameerrors.CodeInputKindMismatch, "expected a player selection")
	}
	if len(r.Players) < min || len(r.Players) > max {
		return nil, gameerrors.Newf(gameerrors.CodeInputSelectionCount,
			"expected between %d and %d players, got %d", min, max, len(r.Players)).
			With("min", min).With("max", max).With("got", len(r.Players))
	}
	return r.Players, nil
}

// Assignments extracts the role-assignment arm.
func (r *Response) Assignments() (map[state.PlayerID]state.Role, error) {
	if r == nil || r.Kind != KindRoleAssignment {
		return nil, gameerrors.New(gameerrors.CodeInputKindMismatch, "expected a role assignment")
	}
	return r.Roles, nil
}

// Instruction is one structured prompt for the moderator. The engine emits a
// message key plus arguments; rendering localized text is the adapter's
// concern. Announcement is safe to read aloud; Direction is
// moderator-eyes-only.
type Instruction struct {
	Kind Kind   `json:"kind"`
	Key  string `json:"key"`
	Args []any  `json:"args,omitempty"`

	Announcement string `json:"announcement,omitempty"`
	Direction    string `json:"direction,omitempty"`

	Players      []state.PlayerID `json:"players,omitempty"`
	Roles        []state.Role     `json:"roles,omitempty"`
	Options      []string         `json:"options,omitempty"`
	MinSelection int              `json:"min_selection,omitempty"`
	MaxSelection int              `json:"max_selection,omitempty"`
	Concerns     []state.PlayerID `json:"concerns,omitempty"`

	GameOver bool          `json:"game_over,omitempty"`
	Winner   state.Faction `json:"winner,omitempty"`
}

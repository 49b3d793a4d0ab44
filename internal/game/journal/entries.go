// Package journal defines the concrete log entry types and the codec that
// round-trips them through storage. Each entry records one non-deterministic
// fact and applies its consequence exactly once through the state writer.
// Correcting a mistake means appending a compensating entry; entries are
// never edited or removed.
package journal

import (
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// Entry type identifiers.
const (
	// TypeTurnAdvanced records the turn counter moving to the next night.
	TypeTurnAdvanced state.EntryType = "turn.advanced"
	// TypeRoleAssigned records a first-night role identification.
	TypeRoleAssigned state.EntryType = "role.assigned"
	// TypeRoleRevealed records a public role reveal on death.
	TypeRoleRevealed state.EntryType = "role.revealed"
	// TypeWolvesTargeted records the pack's victim choice.
	TypeWolvesTargeted state.EntryType = "night.wolves_targeted"
	// TypeProtectionGranted records the defender's nightly protection.
	TypeProtectionGranted state.EntryType = "night.protection_granted"
	// TypePotionUsed records the witch spending a potion.
	TypePotionUsed state.EntryType = "night.potion_used"
	// TypeInspectionPerformed records a seer inspection.
	TypeInspectionPerformed state.EntryType = "night.inspection"
	// TypeLoversBound records Cupid binding the lover pair.
	TypeLoversBound state.EntryType = "night.lovers_bound"
	// TypePlayerDied records one death with its cause.
	TypePlayerDied state.EntryType = "player.died"
	// TypeSheriffElected records the first sheriff election.
	TypeSheriffElected state.EntryType = "sheriff.elected"
	// TypeSheriffPassed records the badge passing on death.
	TypeSheriffPassed state.EntryType = "sheriff.passed"
	// TypeVoteResolved records the day vote outcome, tie included.
	TypeVoteResolved state.EntryType = "vote.resolved"
	// TypeWinnerRecorded records the winning faction.
	TypeWinnerRecorded state.EntryType = "game.winner"
)

// Header carries the envelope fields shared by every entry.
type Header struct {
	TurnNumber int         `json:"turn"`
	PhaseTag   phase.Phase `json:"phase"`
}

// NewHeader stamps a header from the session's current turn and phase.
func NewHeader(s *state.Session) Header {
	return Header{TurnNumber: s.Turn(), PhaseTag: s.Cursor().MainPhase()}
}

// Turn returns the turn the entry was recorded on.
func (h Header) Turn() int { return h.TurnNumber }

// Phase returns the main phase the entry was recorded in.
func (h Header) Phase() phase.Phase { return h.PhaseTag }

// TurnAdvanced moves the session into the next night.
type TurnAdvanced struct {
	Header
}

// Type implements state.Entry.
func (TurnAdvanced) Type() state.EntryType { return TypeTurnAdvanced }

// Apply implements state.Entry.
func (e TurnAdvanced) Apply(w state.Writer) error {
	w.AdvanceTurn()
	return nil
}

// RoleAssigned binds a role card to a player after the moderator identifies
// the holder.
type RoleAssigned struct {
	Header
	Player state.PlayerID `json:"player"`
	Role   state.Role     `json:"role"`
}

// Type implements state.Entry.
func (RoleAssigned) Type() state.EntryType { return TypeRoleAssigned }

// Apply implements state.Entry.
func (e RoleAssigned) Apply(w state.Writer) error {
	return w.AssignRole(e.Player, e.Role)
}

// RoleRevealed publicly reveals a dead player's role.
type RoleRevealed struct {
	Header
	Player state.PlayerID `json:"player"`
	Role   state.Role     `json:"role"`
}

// Type implements state.Entry.
func (RoleRevealed) Type() state.EntryType { return TypeRoleRevealed }

// Apply implements state.Entry.
func (e RoleRevealed) Apply(w state.Writer) error {
	return w.RevealRole(e.Player, e.Role)
}

// WolvesTargeted records the pack's chosen victim for the night.
type WolvesTargeted struct {
	Header
	Target state.PlayerID `json:"target"`
}

// Type implements state.Entry.
func (WolvesTargeted) Type() state.EntryType { return TypeWolvesTargeted }

// Apply implements state.Entry.
func (e WolvesTargeted) Apply(w state.Writer) error {
	return w.SetWolfTarget(e.Target)
}

// ProtectionGranted records the defender's nightly guard.
type ProtectionGranted struct {
	Header
	Defender state.PlayerID `json:"defender"`
	Target   state.PlayerID `json:"target"`
}

// Type implements state.Entry.
func (ProtectionGranted) Type() state.EntryType { return TypeProtectionGranted }

// Apply implements state.Entry.
func (e ProtectionGranted) Apply(w state.Writer) error {
	return w.GrantProtection(e.Target)
}

// PotionUsed records the witch spending the heal or poison potion.
type PotionUsed struct {
	Header
	Witch  state.PlayerID   `json:"witch"`
	Kind   state.PotionKind `json:"kind"`
	Target state.PlayerID   `json:"target,omitempty"`
}

// Type implements state.Entry.
func (PotionUsed) Type() state.EntryType { return TypePotionUsed }

// Apply implements state.Entry.
func (e PotionUsed) Apply(w state.Writer) error {
	return w.UsePotion(e.Witch, e.Kind, e.Target)
}

// InspectionPerformed records the seer inspecting a player.
type InspectionPerformed struct {
	Header
	Seer   state.PlayerID `json:"seer"`
	Target state.PlayerID `json:"target"`
}

// Type implements state.Entry.
func (InspectionPerformed) Type() state.EntryType { return TypeInspectionPerformed }

// Apply implements state.Entry.
func (e InspectionPerformed) Apply(w state.Writer) error {
	return w.RecordInspection(e.Seer, e.Target)
}

// LoversBound records Cupid binding two players as lovers.
type LoversBound struct {
	Header
	First  state.PlayerID `json:"first"`
	Second state.PlayerID `json:"second"`
}

// Type implements state.Entry.
func (LoversBound) Type() state.EntryType { return TypeLoversBound }

// Apply implements state.Entry.
func (e LoversBound) Apply(w state.Writer) error {
	return w.BindLovers(e.First, e.Second)
}

// PlayerDied records one death and its cause. Shooter is set only when the
// death is a hunter's revenge shot, and marks that hunter's shot as spent.
type PlayerDied struct {
	Header
	Player  state.PlayerID    `json:"player"`
	Reason  state.DeathReason `json:"reason"`
	Shooter state.PlayerID    `json:"shooter,omitempty"`
}

// Type implements state.Entry.
func (PlayerDied) Type() state.EntryType { return TypePlayerDied }

// Apply implements state.Entry.
func (e PlayerDied) Apply(w state.Writer) error {
	if err := w.MarkDead(e.Player, e.Reason); err != nil {
		return err
	}
	if e.Shooter != state.PlayerIDNone {
		return w.RecordHunterShot(e.Shooter)
	}
	return nil
}

// SheriffElected records the village electing its first sheriff.
type SheriffElected struct {
	Header
	Player state.PlayerID `json:"player"`
}

// Type implements state.Entry.
func (SheriffElected) Type() state.EntryType { return TypeSheriffElected }

// Apply implements state.Entry.
func (e SheriffElected) Apply(w state.Writer) error {
	return w.ElectSheriff(e.Player)
}

// SheriffPassed records the badge passing from a dead sheriff.
type SheriffPassed struct {
	Header
	From state.PlayerID `json:"from"`
	To   state.PlayerID `json:"to"`
}

// Type implements state.Entry.
func (SheriffPassed) Type() state.EntryType { return TypeSheriffPassed }

// Apply implements state.Entry.
func (e SheriffPassed) Apply(w state.Writer) error {
	return w.PassSheriff(e.From, e.To)
}

// VoteResolved records the day vote outcome. An empty Eliminated with Tie
// set records "no elimination".
type VoteResolved struct {
	Header
	Eliminated state.PlayerID `json:"eliminated,omitempty"`
	Tie        bool           `json:"tie"`
}

// Type implements state.Entry.
func (VoteResolved) Type() state.EntryType { return TypeVoteResolved }

// Apply implements state.Entry.
func (e VoteResolved) Apply(w state.Writer) error {
	w.RecordVoteOutcome(e.Eliminated, e.Tie)
	return nil
}

// WinnerRecorded records the winning faction, ending the game.
type WinnerRecorded struct {
	Header
	Faction state.Faction `json:"faction"`
}

// Type implements state.Entry.
func (WinnerRecorded) Type() state.EntryType { return TypeWinnerRecorded }

// Apply implements state.Entry.
func (e WinnerRecorded) Apply(w state.Writer) error {
	w.RecordWinner(e.Faction)
	return nil
}

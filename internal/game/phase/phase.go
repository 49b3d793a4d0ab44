// Package phase defines the game-flow coordinate system: main phases,
// sub-phases, hooks, and the cursor that records where a session is paused.
//
// The declarative transition tables in this package are the single source
// of truth for the flow state machine. The orchestrator validates every
// requested transition against them at runtime; a handler requesting an
// undeclared transition is a defect in static configuration, never bad
// moderator input.
package phase

// Phase identifies a main game phase.
type Phase string

const (
	// PhaseNone is the unset phase value.
	PhaseNone Phase = ""
	// PhaseSetup covers roster confirmation before the first night.
	PhaseSetup Phase = "setup"
	// PhaseNight covers the night action loop.
	PhaseNight Phase = "night"
	// PhaseDayDawn covers victim resolution and role reveals.
	PhaseDayDawn Phase = "day.dawn"
	// PhaseDayDebate covers the open discussion period.
	PhaseDayDebate Phase = "day.debate"
	// PhaseDayVote covers the elimination vote.
	PhaseDayVote Phase = "day.vote"
	// PhaseDayDusk covers vote resolution and the handoff to night.
	PhaseDayDusk Phase = "day.dusk"
	// PhaseGameOver is terminal; it accepts no further input.
	PhaseGameOver Phase = "game_over"
)

// SubPhase identifies a stage within a main phase.
type SubPhase string

const (
	// SubPhaseNone is the unset sub-phase value.
	SubPhaseNone SubPhase = ""

	// Setup stages.
	SubPhaseSetupConfirmRoster SubPhase = "setup.confirm_roster"

	// Night stages.
	SubPhaseNightStart      SubPhase = "night.start"
	SubPhaseNightActionLoop SubPhase = "night.action_loop"

	// Dawn stages.
	SubPhaseDawnCalculateVictims SubPhase = "dawn.calculate_victims"
	SubPhaseDawnAnnounceVictims  SubPhase = "dawn.announce_victims"
	SubPhaseDawnProcessReveals   SubPhase = "dawn.process_role_reveals"
	SubPhaseDawnFinalize         SubPhase = "dawn.finalize"

	// Debate stage.
	SubPhaseDebateOpen SubPhase = "debate.open"

	// Vote stages.
	SubPhaseVoteElectSheriff SubPhase = "vote.elect_sheriff"
	SubPhaseVoteCast         SubPhase = "vote.cast"

	// Dusk stages.
	SubPhaseDuskResolveVote      SubPhase = "dusk.resolve_vote"
	SubPhaseDuskRevealEliminated SubPhase = "dusk.reveal_eliminated"
	SubPhaseDuskTransitionToNext SubPhase = "dusk.transition_to_next"

	// Game-over stage.
	SubPhaseGameOverReport SubPhase = "game_over.report"
)

// Hook names a dispatch point at which registered listeners act.
type Hook string

const (
	// HookNone is the unset hook value.
	HookNone Hook = ""
	// HookNightAction sequences night-acting roles in wake order.
	HookNightAction Hook = "night.action"
	// HookDeathResolution sequences reactions to freshly recorded deaths.
	HookDeathResolution Hook = "death.resolution"
)

// ListenerID identifies a registered hook listener.
type ListenerID string

// ListenerIDNone is the unset listener value.
const ListenerIDNone ListenerID = ""

// ListenerState is a listener-private resumption state. The zero value means
// "not started"; the meaning of other values is opaque to everything except
// the listener that wrote it.
type ListenerState int

// ListenerStateNone is the unset listener state.
const ListenerStateNone ListenerState = 0

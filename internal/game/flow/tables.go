package flow

import "github.com/bicheichane/millers-hollow/internal/game/phase"

// Tables builds the declarative stage table for the base game. Handlers
// name a reason when they finish; the pair (reason, target) must appear
// here or the transition is refused as an internal fault.
func Tables() phase.Table {
	return phase.Table{
		phase.PhaseSetup: {
			Phase:   phase.PhaseSetup,
			Initial: phase.SubPhaseSetupConfirmRoster,
			Stages: map[phase.SubPhase]phase.Stage{
				phase.SubPhaseSetupConfirmRoster: {
					SubPhase:       phase.SubPhaseSetupConfirmRoster,
					InstructionKey: KeySetupConfirm,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonSetupConfirmed, To: phase.Target{Phase: phase.PhaseNight}},
					},
				},
			},
		},
		phase.PhaseNight: {
			Phase:   phase.PhaseNight,
			Initial: phase.SubPhaseNightStart,
			Stages: map[phase.SubPhase]phase.Stage{
				phase.SubPhaseNightStart: {
					SubPhase: phase.SubPhaseNightStart,
					Auto:     true,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonNightStarted, To: phase.Target{SubPhase: phase.SubPhaseNightActionLoop}},
					},
				},
				phase.SubPhaseNightActionLoop: {
					SubPhase: phase.SubPhaseNightActionLoop,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonNightComplete, To: phase.Target{Phase: phase.PhaseDayDawn}},
					},
				},
			},
		},
		phase.PhaseDayDawn: {
			Phase:   phase.PhaseDayDawn,
			Initial: phase.SubPhaseDawnCalculateVictims,
			Stages: map[phase.SubPhase]phase.Stage{
				phase.SubPhaseDawnCalculateVictims: {
					SubPhase: phase.SubPhaseDawnCalculateVictims,
					Auto:     true,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonVictimsCalculated, To: phase.Target{SubPhase: phase.SubPhaseDawnAnnounceVictims}},
					},
				},
				phase.SubPhaseDawnAnnounceVictims: {
					SubPhase:       phase.SubPhaseDawnAnnounceVictims,
					InstructionKey: KeyDawnAnnounce,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonVictimsAnnounced, To: phase.Target{SubPhase: phase.SubPhaseDawnProcessReveals}},
					},
				},
				phase.SubPhaseDawnProcessReveals: {
					SubPhase:       phase.SubPhaseDawnProcessReveals,
					InstructionKey: KeyRevealRole,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonRevealsComplete, To: phase.Target{SubPhase: phase.SubPhaseDawnFinalize}},
					},
				},
				phase.SubPhaseDawnFinalize: {
					SubPhase: phase.SubPhaseDawnFinalize,
					Auto:     true,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonDayBegins, To: phase.Target{Phase: phase.PhaseDayDebate}},
						{Reason: phase.ReasonGameOver, To: phase.Target{Phase: phase.PhaseGameOver}},
					},
				},
			},
		},
		phase.PhaseDayDebate: {
			Phase:   phase.PhaseDayDebate,
			Initial: phase.SubPhaseDebateOpen,
			Stages: map[phase.SubPhase]phase.Stage{
				phase.SubPhaseDebateOpen: {
					SubPhase:       phase.SubPhaseDebateOpen,
					InstructionKey: KeyDebateOpen,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonDebateClosed, To: phase.Target{Phase: phase.PhaseDayVote}},
					},
				},
			},
		},
		phase.PhaseDayVote: {
			Phase:   phase.PhaseDayVote,
			Initial: phase.SubPhaseVoteElectSheriff,
			Stages: map[phase.SubPhase]phase.Stage{
				phase.SubPhaseVoteElectSheriff: {
					SubPhase:       phase.SubPhaseVoteElectSheriff,
					InstructionKey: KeyElectSheriff,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonSheriffElected, To: phase.Target{SubPhase: phase.SubPhaseVoteCast}},
						{Reason: phase.ReasonSheriffSkipped, To: phase.Target{SubPhase: phase.SubPhaseVoteCast}},
					},
				},
				phase.SubPhaseVoteCast: {
					SubPhase:       phase.SubPhaseVoteCast,
					InstructionKey: KeyVoteCast,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonVoteResolved, To: phase.Target{Phase: phase.PhaseDayDusk}},
					},
				},
			},
		},
		phase.PhaseDayDusk: {
			Phase:   phase.PhaseDayDusk,
			Initial: phase.SubPhaseDuskResolveVote,
			Stages: map[phase.SubPhase]phase.Stage{
				phase.SubPhaseDuskResolveVote: {
					SubPhase: phase.SubPhaseDuskResolveVote,
					Auto:     true,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonEliminationRecorded, To: phase.Target{SubPhase: phase.SubPhaseDuskRevealEliminated}},
						{Reason: phase.ReasonVoteTied, To: phase.Target{SubPhase: phase.SubPhaseDuskTransitionToNext}},
					},
				},
				phase.SubPhaseDuskRevealEliminated: {
					SubPhase:       phase.SubPhaseDuskRevealEliminated,
					InstructionKey: KeyRevealRole,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonEliminationRevealed, To: phase.Target{SubPhase: phase.SubPhaseDuskTransitionToNext}},
					},
				},
				phase.SubPhaseDuskTransitionToNext: {
					SubPhase: phase.SubPhaseDuskTransitionToNext,
					Auto:     true,
					Transitions: []phase.Transition{
						{Reason: phase.ReasonNextNight, To: phase.Target{Phase: phase.PhaseNight}},
						{Reason: phase.ReasonGameOver, To: phase.Target{Phase: phase.PhaseGameOver}},
					},
				},
			},
		},
		phase.PhaseGameOver: {
			Phase:   phase.PhaseGameOver,
			Initial: phase.SubPhaseGameOverReport,
			Stages: map[phase.SubPhase]phase.Stage{
				phase.SubPhaseGameOverReport: {
					SubPhase:       phase.SubPhaseGameOverReport,
					InstructionKey: KeyGameOver,
				},
			},
		},
	}
}

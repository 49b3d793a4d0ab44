package phase

import (
	"errors"
	"fmt"
)

var (
	// ErrStageUnknown indicates a sub-phase missing from its definition.
	ErrStageUnknown = errors.New("sub-phase is not declared in phase definition")
	// ErrPhaseUnknown indicates a phase missing from the table.
	ErrPhaseUnknown = errors.New("phase is not declared in transition table")
)

// Reason is the declared reason code attached to a transition. A handler
// must name the reason it transitions under; the pair (reason, target) is
// validated against the stage's declared transition set.
type Reason string

const (
	// ReasonSetupConfirmed records roster confirmation completing setup.
	ReasonSetupConfirmed Reason = "setup_confirmed"
	// ReasonNightStarted records the village falling asleep.
	ReasonNightStarted Reason = "night_started"
	// ReasonNightComplete records the night hook finishing all listeners.
	ReasonNightComplete Reason = "night_complete"
	// ReasonVictimsCalculated records night victims being resolved.
	ReasonVictimsCalculated Reason = "victims_calculated"
	// ReasonVictimsAnnounced records the victim announcement being read.
	ReasonVictimsAnnounced Reason = "victims_announced"
	// ReasonRevealsComplete records all pending role reveals finishing.
	ReasonRevealsComplete Reason = "reveals_complete"
	// ReasonDayBegins records dawn finalization handing off to debate.
	ReasonDayBegins Reason = "day_begins"
	// ReasonDebateClosed records the debate period ending.
	ReasonDebateClosed Reason = "debate_closed"
	// ReasonSheriffElected records the sheriff election resolving.
	ReasonSheriffElected Reason = "sheriff_elected"
	// ReasonSheriffSkipped records the election stage self-skipping.
	ReasonSheriffSkipped Reason = "sheriff_skipped"
	// ReasonVoteResolved records the vote outcome being recorded.
	ReasonVoteResolved Reason = "vote_resolved"
	// ReasonEliminationRecorded records a lynch death entering the log.
	ReasonEliminationRecorded Reason = "elimination_recorded"
	// ReasonVoteTied records a tied vote sparing everyone.
	ReasonVoteTied Reason = "vote_tied"
	// ReasonEliminationRevealed records the lynched player's role reveal.
	ReasonEliminationRevealed Reason = "elimination_revealed"
	// ReasonNextNight records the dusk handoff looping back to night.
	ReasonNextNight Reason = "next_night"
	// ReasonGameOver records a victory predicate holding.
	ReasonGameOver Reason = "game_over"
)

// Target addresses the destination of a transition. An empty Phase means
// "stay within the current main phase".
type Target struct {
	Phase    Phase
	SubPhase SubPhase
}

// Transition pairs a reason code with its declared destination.
type Transition struct {
	Reason Reason
	To     Target
}

// Stage declares one sub-phase: whether it can execute without moderator
// input, its default instruction key, and its legal outbound transitions.
type Stage struct {
	SubPhase       SubPhase
	Auto           bool
	InstructionKey string
	Transitions    []Transition
}

// Allows reports whether the stage declares a transition with the given
// reason and target.
func (s Stage) Allows(reason Reason, to Target) bool {
	for _, t := range s.Transitions {
		if t.Reason == reason && t.To == to {
			return true
		}
	}
	return false
}

// Definition is the declarative stage table of one main phase.
type Definition struct {
	Phase   Phase
	Initial SubPhase
	Stages  map[SubPhase]Stage
}

// Stage returns the declared stage for a sub-phase.
func (d *Definition) Stage(sp SubPhase) (Stage, error) {
	if d == nil {
		return Stage{}, ErrPhaseUnknown
	}
	stage, ok := d.Stages[sp]
	if !ok {
		return Stage{}, fmt.Errorf("%w: %s/%s", ErrStageUnknown, d.Phase, sp)
	}
	return stage, nil
}

// Table maps each main phase to its definition. Built once at process start
// and treated as immutable for the lifetime of the process.
type Table map[Phase]*Definition

// Definition returns the phase definition for a main phase.
func (t Table) Definition(p Phase) (*Definition, error) {
	def, ok := t[p]
	if !ok || def == nil {
		return nil, fmt.Errorf("%w: %s", ErrPhaseUnknown, p)
	}
	return def, nil
}

// Validate checks structural coherence of the table: every declared
// transition must land on a declared stage, and every definition must name
// an initial stage it contains. Run at startup so drift between handlers and
// tables fails loudly before any session exists.
func (t Table) Validate() error {
	for p, def := range t {
		if def == nil {
			return fmt.Errorf("phase %s: nil definition", p)
		}
		if def.Phase != p {
			return fmt.Errorf("phase %s: definition declares phase %s", p, def.Phase)
		}
		if _, ok := def.Stages[def.Initial]; !ok {
			return fmt.Errorf("phase %s: initial stage %s is not declared", p, def.Initial)
		}
		for sp, stage := range def.Stages {
			if stage.SubPhase != sp {
				return fmt.Errorf("phase %s: stage %s declares sub-phase %s", p, sp, stage.SubPhase)
			}
			for _, tr := range stage.Transitions {
				targetPhase := tr.To.Phase
				if targetPhase == PhaseNone {
					targetPhase = p
				}
				targetDef, ok := t[targetPhase]
				if !ok {
					return fmt.Errorf("phase %s stage %s: transition %s targets undeclared phase %s", p, sp, tr.Reason, targetPhase)
				}
				targetSub := tr.To.SubPhase
				if targetSub == SubPhaseNone {
					targetSub = targetDef.Initial
				}
				if _, ok := targetDef.Stages[targetSub]; !ok {
					return fmt.Errorf("phase %s stage %s: transition %s targets undeclared stage %s/%s", p, sp, tr.Reason, targetPhase, targetSub)
				}
			}
		}
	}
	return nil
}

// Package flow orchestrates one session through the phase machine. It owns
// no game rules itself: stage handlers consult the session, append log
// entries, and name a declared reason to move on. The transition table is
// the single authority on which moves are legal.
package flow

import (
	"fmt"

	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/hook"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
	"github.com/bicheichane/millers-hollow/internal/game/victory"
)

// Message keys for the stage-level prompts.
const (
	KeySetupConfirm = "setup.confirm_roster"
	KeyDawnAnnounce = "dawn.announce_victims"
	KeyRevealRole   = "day.reveal_role"
	KeyDebateOpen   = "debate.open"
	KeyElectSheriff = "vote.elect_sheriff"
	KeyVoteCast     = "vote.cast"
	KeyGameOver     = "game_over.report"
)

// step is one handler outcome: a pending instruction that pauses the flow,
// or a reason naming the declared transition to take.
type step struct {
	pending *protocol.Instruction
	reason  phase.Reason
}

func pauseOn(instr protocol.Instruction) step { return step{pending: &instr} }

func advance(reason phase.Reason) step { return step{reason: reason} }

type handler func(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error)

// Flow drives sessions through the stage table.
type Flow struct {
	table    phase.Table
	registry *hook.Registry
	victory  victory.Evaluator
	handlers map[phase.SubPhase]handler
}

// New builds a flow over the given listener registry and victory policy.
// The stage table is validated once here; a handler gap or a dangling
// transition target is a programming error surfaced at startup.
func New(registry *hook.Registry, evaluator victory.Evaluator) (*Flow, error) {
	table := Tables()
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("stage table: %w", err)
	}
	f := &Flow{
		table:    table,
		registry: registry,
		victory:  evaluator,
		handlers: stageHandlers(),
	}
	for _, def := range table {
		for sp := range def.Stages {
			if _, ok := f.handlers[sp]; !ok {
				return nil, fmt.Errorf("stage table: no handler for stage %s", sp)
			}
		}
	}
	return f, nil
}

// HandleInput advances the session as far as it can go: it feeds resp to
// the stage the cursor points at, follows the declared transition, and
// keeps running subsequent stages until one pauses for moderator input.
// Pass a nil resp to obtain the current pending instruction, for example
// right after the session is created.
//
// On error the cursor and log are unchanged and the same pending
// instruction remains answerable.
func (f *Flow) HandleInput(s *state.Session, resp *protocol.Response) (protocol.Instruction, error) {
	if s.Cursor().MainPhase() == phase.PhaseGameOver && resp != nil {
		winner, _ := s.Winner()
		return protocol.Instruction{}, gameerrors.Newf(gameerrors.CodeOpGameOver,
			"the game is over, %s already won", winner)
	}

	for {
		cur := s.Cursor()
		def, err := f.table.Definition(cur.MainPhase())
		if err != nil {
			return protocol.Instruction{}, gameerrors.Newf(gameerrors.CodeInternalUnknownStage,
				"cursor points at undeclared phase %s", cur.MainPhase())
		}
		stage, err := def.Stage(cur.SubPhase())
		if err != nil {
			return protocol.Instruction{}, gameerrors.Newf(gameerrors.CodeInternalUnknownStage,
				"cursor points at undeclared stage %s/%s", cur.MainPhase(), cur.SubPhase())
		}
		if stage.Auto && resp != nil {
			return protocol.Instruction{}, gameerrors.Newf(gameerrors.CodeOpWrongPhase,
				"stage %s takes no moderator input", stage.SubPhase)
		}

		h := f.handlers[stage.SubPhase]
		st, err := h(f, s, stage, resp)
		if err != nil {
			return protocol.Instruction{}, err
		}
		resp = nil
		if st.pending != nil {
			return *st.pending, nil
		}
		if err := f.transition(s, stage, st.reason); err != nil {
			return protocol.Instruction{}, err
		}
	}
}

// transition resolves the declared target for the reason and moves the
// cursor, cascading the clears below the level that changed.
func (f *Flow) transition(s *state.Session, stage phase.Stage, reason phase.Reason) error {
	var to phase.Target
	found := false
	for _, t := range stage.Transitions {
		if t.Reason == reason {
			to, found = t.To, true
			break
		}
	}
	if !found {
		return gameerrors.Newf(gameerrors.CodeInternalUndeclaredTransition,
			"stage %s does not declare a transition for reason %s", stage.SubPhase, reason)
	}

	cur := s.Cursor()
	targetPhase := to.Phase
	if targetPhase == phase.PhaseNone {
		targetPhase = cur.MainPhase()
	}
	def, err := f.table.Definition(targetPhase)
	if err != nil {
		return gameerrors.Newf(gameerrors.CodeInternalUndeclaredTransition,
			"transition %s targets undeclared phase %s", reason, targetPhase)
	}
	targetSub := to.SubPhase
	if targetSub == phase.SubPhaseNone {
		targetSub = def.Initial
	}
	if targetPhase != cur.MainPhase() {
		cur.TransitionMainPhase(targetPhase)
	}
	cur.TransitionSubPhase(targetSub)
	return nil
}

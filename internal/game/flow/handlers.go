package flow

import (
	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/hook"
	"github.com/bicheichane/millers-hollow/internal/game/journal"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

func stageHandlers() map[phase.SubPhase]handler {
	return map[phase.SubPhase]handler{
		phase.SubPhaseSetupConfirmRoster:   handleSetupConfirm,
		phase.SubPhaseNightStart:           handleNightStart,
		phase.SubPhaseNightActionLoop:      handleNightActionLoop,
		phase.SubPhaseDawnCalculateVictims: handleDawnCalculateVictims,
		phase.SubPhaseDawnAnnounceVictims:  handleDawnAnnounceVictims,
		phase.SubPhaseDawnProcessReveals:   handleDawnProcessReveals,
		phase.SubPhaseDawnFinalize:         handleDawnFinalize,
		phase.SubPhaseDebateOpen:           handleDebateOpen,
		phase.SubPhaseVoteElectSheriff:     handleVoteElectSheriff,
		phase.SubPhaseVoteCast:             handleVoteCast,
		phase.SubPhaseDuskResolveVote:      handleDuskResolveVote,
		phase.SubPhaseDuskRevealEliminated: handleDuskRevealEliminated,
		phase.SubPhaseDuskTransitionToNext: handleDuskTransitionToNext,
		phase.SubPhaseGameOverReport:       handleGameOverReport,
	}
}

func handleSetupConfirm(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	prompt := protocol.Instruction{
		Kind:    protocol.KindConfirm,
		Key:     st.InstructionKey,
		Players: playerIDs(s.Players()),
		Roles:   s.RolesInPlay(),
	}
	if resp == nil {
		return pauseOn(prompt), nil
	}
	confirmed, err := resp.Confirm()
	if err != nil {
		return step{}, err
	}
	if !confirmed {
		return pauseOn(prompt), nil
	}
	return advance(phase.ReasonSetupConfirmed), nil
}

func handleNightStart(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	if err := s.Append(journal.TurnAdvanced{Header: journal.NewHeader(s)}); err != nil {
		return step{}, err
	}
	return advance(phase.ReasonNightStarted), nil
}

func handleNightActionLoop(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	out, err := hook.Dispatch(f.registry, s, phase.HookNightAction, resp)
	if err != nil {
		return step{}, err
	}
	if out.Paused {
		return pauseOn(*out.Instruction), nil
	}
	return advance(phase.ReasonNightComplete), nil
}

// handleDawnCalculateVictims settles the night board: the pack's victim
// dies unless protected or healed; the poison victim dies regardless of
// protection.
func handleDawnCalculateVictims(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	type casualty struct {
		id     state.PlayerID
		reason state.DeathReason
	}
	var casualties []casualty
	if victim, attacked := s.WolfTarget(); attacked && !s.Healed() && victim != s.ProtectedPlayer() {
		casualties = append(casualties, casualty{id: victim, reason: state.DeathWerewolfAttack})
	}
	if poisoned, ok := s.PoisonTarget(); ok {
		duplicate := len(casualties) > 0 && casualties[0].id == poisoned
		if !duplicate {
			casualties = append(casualties, casualty{id: poisoned, reason: state.DeathPoison})
		}
	}
	for _, c := range casualties {
		entry := journal.PlayerDied{Header: journal.NewHeader(s), Player: c.id, Reason: c.reason}
		if err := s.Append(entry); err != nil {
			return step{}, err
		}
	}
	return advance(phase.ReasonVictimsCalculated), nil
}

func handleDawnAnnounceVictims(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	victims := s.DeathsAtTurn(s.Turn())
	prompt := protocol.Instruction{
		Kind:     protocol.KindConfirm,
		Key:      st.InstructionKey,
		Args:     []any{len(victims)},
		Concerns: playerIDs(victims),
	}
	if resp == nil {
		return pauseOn(prompt), nil
	}
	confirmed, err := resp.Confirm()
	if err != nil {
		return step{}, err
	}
	if !confirmed {
		return pauseOn(prompt), nil
	}
	return advance(phase.ReasonVictimsAnnounced), nil
}

func handleDawnProcessReveals(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	pending, err := f.resolveDeaths(s, resp)
	if err != nil {
		return step{}, err
	}
	if pending != nil {
		return pauseOn(*pending), nil
	}
	return advance(phase.ReasonRevealsComplete), nil
}

func handleDawnFinalize(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	return checkVictory(f, s, phase.ReasonDayBegins)
}

func handleDebateOpen(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	prompt := protocol.Instruction{
		Kind:    protocol.KindConfirm,
		Key:     st.InstructionKey,
		Players: s.AliveIDs(),
	}
	if resp == nil {
		return pauseOn(prompt), nil
	}
	confirmed, err := resp.Confirm()
	if err != nil {
		return step{}, err
	}
	if !confirmed {
		return pauseOn(prompt), nil
	}
	return advance(phase.ReasonDebateClosed), nil
}

// handleVoteElectSheriff runs the first-day election and self-skips any
// later day, or whenever a sheriff already holds the badge.
func handleVoteElectSheriff(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	if _, elected := s.Sheriff(); elected || s.Turn() != 1 {
		return advance(phase.ReasonSheriffSkipped), nil
	}
	if resp == nil {
		return pauseOn(protocol.Instruction{
			Kind:         protocol.KindPlayerSelection,
			Key:          st.InstructionKey,
			Players:      s.AliveIDs(),
			MinSelection: 1,
			MaxSelection: 1,
		}), nil
	}
	sel, err := resp.Selection(1, 1)
	if err != nil {
		return step{}, err
	}
	if _, err := livingPlayer(s, sel[0]); err != nil {
		return step{}, err
	}
	entry := journal.SheriffElected{Header: journal.NewHeader(s), Player: sel[0]}
	if err := s.Append(entry); err != nil {
		return step{}, err
	}
	return advance(phase.ReasonSheriffElected), nil
}

func handleVoteCast(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	if resp == nil {
		return pauseOn(protocol.Instruction{
			Kind:         protocol.KindPlayerSelection,
			Key:          st.InstructionKey,
			Players:      s.AliveIDs(),
			MinSelection: 0,
			MaxSelection: 1,
		}), nil
	}
	sel, err := resp.Selection(0, 1)
	if err != nil {
		return step{}, err
	}
	entry := journal.VoteResolved{Header: journal.NewHeader(s), Tie: len(sel) == 0}
	if len(sel) == 1 {
		if _, err := livingPlayer(s, sel[0]); err != nil {
			return step{}, err
		}
		entry.Eliminated = sel[0]
	}
	if err := s.Append(entry); err != nil {
		return step{}, err
	}
	return advance(phase.ReasonVoteResolved), nil
}

func handleDuskResolveVote(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	eliminated, tie, ok := s.VoteOutcome(s.Turn())
	if !ok {
		return step{}, gameerrors.Newf(gameerrors.CodeInternalUnknownStage,
			"dusk reached without a vote outcome for turn %d", s.Turn())
	}
	if tie || eliminated == "" {
		return advance(phase.ReasonVoteTied), nil
	}
	entry := journal.PlayerDied{Header: journal.NewHeader(s), Player: eliminated, Reason: state.DeathLynch}
	if err := s.Append(entry); err != nil {
		return step{}, err
	}
	return advance(phase.ReasonEliminationRecorded), nil
}

func handleDuskRevealEliminated(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	pending, err := f.resolveDeaths(s, resp)
	if err != nil {
		return step{}, err
	}
	if pending != nil {
		return pauseOn(*pending), nil
	}
	return advance(phase.ReasonEliminationRevealed), nil
}

func handleDuskTransitionToNext(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	return checkVictory(f, s, phase.ReasonNextNight)
}

func handleGameOverReport(f *Flow, s *state.Session, st phase.Stage, resp *protocol.Response) (step, error) {
	winner, _ := s.Winner()
	return pauseOn(protocol.Instruction{
		Kind:     protocol.KindConfirm,
		Key:      st.InstructionKey,
		Args:     []any{string(winner)},
		GameOver: true,
		Winner:   winner,
	}), nil
}

// checkVictory evaluates the victory policy at a declared checkpoint and
// either records the winner or continues under the given reason.
func checkVictory(f *Flow, s *state.Session, onward phase.Reason) (step, error) {
	faction, won := f.victory.Evaluate(s)
	if !won {
		return advance(onward), nil
	}
	entry := journal.WinnerRecorded{Header: journal.NewHeader(s), Faction: faction}
	if err := s.Append(entry); err != nil {
		return step{}, err
	}
	return advance(phase.ReasonGameOver), nil
}

// resolveDeaths converges the casualty list: every dead player's card gets
// revealed, the death resolution hook runs over the result, and any deaths
// the hook adds loop back in until nothing changes.
func (f *Flow) resolveDeaths(s *state.Session, resp *protocol.Response) (*protocol.Instruction, error) {
	cur := s.Cursor()
	for {
		if cur.Hook() == phase.HookDeathResolution && cur.Listener() != phase.ListenerIDNone {
			out, err := hook.Dispatch(f.registry, s, phase.HookDeathResolution, resp)
			resp = nil
			if err != nil {
				return nil, err
			}
			if out.Paused {
				return out.Instruction, nil
			}
			continue
		}

		if p := unrevealedDead(s); p != nil {
			if resp == nil {
				return &protocol.Instruction{
					Kind:         protocol.KindRoleAssignment,
					Key:          KeyRevealRole,
					Args:         []any{string(p.ID())},
					Players:      []state.PlayerID{p.ID()},
					Concerns:     []state.PlayerID{p.ID()},
					MinSelection: 1,
					MaxSelection: 1,
				}, nil
			}
			if err := applyReveal(s, p, resp); err != nil {
				return nil, err
			}
			resp = nil
			continue
		}

		out, err := hook.Dispatch(f.registry, s, phase.HookDeathResolution, nil)
		if err != nil {
			return nil, err
		}
		if out.Paused {
			return out.Instruction, nil
		}
		if unrevealedDead(s) == nil {
			return nil, nil
		}
	}
}

// unrevealedDead returns the first dead player whose card is still face
// down, in seat order.
func unrevealedDead(s *state.Session) *state.Player {
	for _, p := range s.Players() {
		if !p.Alive() && !p.Revealed() {
			return p
		}
	}
	return nil
}

// applyReveal records the flipped card of a dead player. A card the engine
// already knows must match what the moderator declares.
func applyReveal(s *state.Session, p *state.Player, resp *protocol.Response) error {
	assignments, err := resp.Assignments()
	if err != nil {
		return err
	}
	role, ok := assignments[p.ID()]
	if !ok || len(assignments) != 1 {
		return gameerrors.Newf(gameerrors.CodeInputUnknownPlayer,
			"expected the revealed role of %s", p.ID())
	}
	if !role.Valid() {
		return gameerrors.Newf(gameerrors.CodeInputUnknownRole, "unknown role %s", role)
	}
	if p.Role() != "" && p.Role() != role {
		return gameerrors.Newf(gameerrors.CodeRuleRoleMismatch,
			"%s is known to hold %s, not %s", p.ID(), p.Role(), role)
	}
	entry := journal.RoleRevealed{Header: journal.NewHeader(s), Player: p.ID(), Role: role}
	return s.Append(entry)
}

func livingPlayer(s *state.Session, id state.PlayerID) (*state.Player, error) {
	p, ok := s.Player(id)
	if !ok {
		return nil, gameerrors.Newf(gameerrors.CodeInputUnknownPlayer, "unknown player %s", id)
	}
	if !p.Alive() {
		return nil, gameerrors.Newf(gameerrors.CodeRuleTargetDead, "%s is dead", id)
	}
	return p, nil
}

func playerIDs(players []*state.Player) []state.PlayerID {
	ids := make([]state.PlayerID, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID())
	}
	return ids
}

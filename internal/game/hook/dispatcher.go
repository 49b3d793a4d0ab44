package hook

import (
	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// Outcome reports how a dispatch call ended: paused at a listener awaiting
// input, or finished with every listener complete.
type Outcome struct {
	Paused      bool
	Instruction *protocol.Instruction
}

// Dispatch runs the hook's listeners in registration order.
//
// If the cursor records a paused listener for this hook, dispatch resumes at
// that listener and delivers resp to it; every other listener is invoked
// fresh with a nil response. On NeedInput the cursor keeps (or gains) the
// paused-listener record and the instruction propagates upward unchanged.
// On Complete the listener record is cleared and the next listener runs. A
// failing listener propagates its error with the cursor untouched, so the
// moderator can retry the same pending instruction.
func Dispatch(r *Registry, s *state.Session, h phase.Hook, resp *protocol.Response) (Outcome, error) {
	cur := s.Cursor()
	if cur.Hook() != h {
		cur.TransitionHook(h)
	}

	ids := r.Listeners(h)
	start := 0
	resumed := false
	if paused := cur.Listener(); paused != phase.ListenerIDNone {
		idx := -1
		for i, id := range ids {
			if id == paused {
				idx = i
				break
			}
		}
		if idx < 0 {
			return Outcome{}, gameerrors.Newf(gameerrors.CodeInternalListenerMissing,
				"paused listener %s is not registered on hook %s", paused, h)
		}
		start = idx
		resumed = true
	}

	var lastInstruction *protocol.Instruction
	for i := start; i < len(ids); i++ {
		listener, ok := r.Listener(ids[i])
		if !ok {
			return Outcome{}, gameerrors.Newf(gameerrors.CodeInternalListenerMissing,
				"listener %s has no registered behavior", ids[i])
		}

		var delivered *protocol.Response
		if resumed && i == start {
			delivered = resp
		}

		result := listener.Advance(s, delivered)
		switch {
		case result.NeedsInput():
			if cur.Listener() != ids[i] {
				cur.TransitionListenerAndState(ids[i], cur.ListenerState())
			}
			return Outcome{Paused: true, Instruction: result.Instruction()}, nil
		case result.Completed():
			cur.ClearListener()
			if result.Instruction() != nil {
				lastInstruction = result.Instruction()
			}
		default:
			return Outcome{}, result.Err()
		}
	}
	return Outcome{Paused: false, Instruction: lastInstruction}, nil
}

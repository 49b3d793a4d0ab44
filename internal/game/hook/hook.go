// Package hook implements the listener contract and the dispatcher that
// sequences listeners through named hooks. Every role and event rule is a
// closed box behind the Listener interface; the dispatcher never inspects
// concrete listener identity, only results.
package hook

import (
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// Listener is a self-contained, resumable rule state machine. Advance
// inspects session state and the phase cursor and either requests moderator
// input, completes, or fails.
//
// Contract rules:
//   - Progress between calls is persisted only through the cursor's
//     listener state, never in listener fields; listener values are shared
//     across sessions and must stay stateless.
//   - A listener that is irrelevant this turn must return Complete with no
//     side effect; the dispatcher performs no applicability filtering.
//   - resp is non-nil only when this listener was paused and the moderator
//     answered its pending instruction.
//   - Rule legality is validated before any log entry is appended; failures
//     surface as Fail with a coded error, never silently.
type Listener interface {
	ID() phase.ListenerID
	Advance(s *state.Session, resp *protocol.Response) Result
}

type resultKind int

const (
	resultComplete resultKind = iota
	resultNeedInput
	resultFailed
)

// Result is the outcome of one listener invocation.
type Result struct {
	kind        resultKind
	instruction *protocol.Instruction
	err         error
}

// NeedInput pauses the listener until the moderator answers the given
// instruction. The listener must have recorded its resumption state on the
// cursor before returning this.
func NeedInput(instruction protocol.Instruction) Result {
	return Result{kind: resultNeedInput, instruction: &instruction}
}

// Complete finishes the listener for this hook invocation.
func Complete() Result {
	return Result{kind: resultComplete}
}

// CompleteWith finishes the listener and suggests an instruction to show if
// the whole hook finishes with it.
func CompleteWith(instruction protocol.Instruction) Result {
	return Result{kind: resultComplete, instruction: &instruction}
}

// Fail aborts the listener with an unrecoverable-for-this-call error.
func Fail(err error) Result {
	return Result{kind: resultFailed, err: err}
}

// NeedsInput reports whether the listener paused for input.
func (r Result) NeedsInput() bool { return r.kind == resultNeedInput }

// Completed reports whether the listener finished.
func (r Result) Completed() bool { return r.kind == resultComplete }

// Instruction returns the attached instruction, if any.
func (r Result) Instruction() *protocol.Instruction { return r.instruction }

// Err returns the attached error, if any.
func (r Result) Err() error { return r.err }

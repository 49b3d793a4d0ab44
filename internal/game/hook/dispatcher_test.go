package hook

import (
	"errors"
	"testing"

	gameerrors "github.com/bicheichane/millers-hollow/internal/errors"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
	"github.com/bicheichane/millers-hollow/internal/game/state"
)

const testHook = phase.Hook("test.hook")

type scriptedListener struct {
	id      phase.ListenerID
	advance func(s *state.Session, resp *protocol.Response) Result
	calls   int
}

func (l *scriptedListener) ID() phase.ListenerID { return l.id }

func (l *scriptedListener) Advance(s *state.Session, resp *protocol.Response) Result {
	l.calls++
	return l.advance(s, resp)
}

func newDispatchSession(t *testing.T) *state.Session {
	t.Helper()
	s, err := state.NewSession("s", []string{"A", "B", "C"},
		[]state.Role{state.RoleWerewolf, state.RoleVillager, state.RoleVillager}, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestDispatchOrderingSkipsInapplicableAndPauses(t *testing.T) {
	s := newDispatchSession(t)
	reg := NewRegistry()

	a := &scriptedListener{id: "a", advance: func(*state.Session, *protocol.Response) Result {
		return Complete() // inapplicable this turn
	}}
	b := &scriptedListener{id: "b", advance: func(s *state.Session, _ *protocol.Response) Result {
		s.Cursor().TransitionListenerAndState("b", phase.ListenerState(1))
		return NeedInput(protocol.Instruction{Kind: protocol.KindConfirm, Key: "b.wake"})
	}}
	c := &scriptedListener{id: "c", advance: func(*state.Session, *protocol.Response) Result {
		return Complete()
	}}
	for _, l := range []Listener{a, b, c} {
		if err := reg.Register(testHook, l); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	outcome, err := Dispatch(reg, s, testHook, nil)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !outcome.Paused {
		t.Fatal("expected paused outcome")
	}
	if outcome.Instruction == nil || outcome.Instruction.Key != "b.wake" {
		t.Fatalf("instruction = %+v", outcome.Instruction)
	}
	if a.calls != 1 || b.calls != 1 || c.calls != 0 {
		t.Fatalf("calls a=%d b=%d c=%d, want 1/1/0", a.calls, b.calls, c.calls)
	}
	if s.Cursor().Listener() != "b" {
		t.Fatalf("cursor listener = %s, want b", s.Cursor().Listener())
	}
}

func TestDispatchResumesPausedListenerWithResponse(t *testing.T) {
	s := newDispatchSession(t)
	reg := NewRegistry()

	var resumedWith *protocol.Response
	a := &scriptedListener{id: "a", advance: func(*state.Session, *protocol.Response) Result {
		return Complete()
	}}
	b := &scriptedListener{id: "b", advance: func(s *state.Session, resp *protocol.Response) Result {
		if resp == nil {
			s.Cursor().TransitionListenerAndState("b", phase.ListenerState(1))
			return NeedInput(protocol.Instruction{Kind: protocol.KindConfirm, Key: "b.wake"})
		}
		resumedWith = resp
		if s.Cursor().ListenerState() != phase.ListenerState(1) {
			return Fail(errors.New("resumed with wrong state"))
		}
		return Complete()
	}}
	for _, l := range []Listener{a, b} {
		if err := reg.Register(testHook, l); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	if _, err := Dispatch(reg, s, testHook, nil); err != nil {
		t.Fatalf("first dispatch: %v", err)
	}

	resp := &protocol.Response{Kind: protocol.KindConfirm, Confirmed: true}
	outcome, err := Dispatch(reg, s, testHook, resp)
	if err != nil {
		t.Fatalf("second dispatch: %v", err)
	}
	if outcome.Paused {
		t.Fatal("hook should be finished")
	}
	if resumedWith != resp {
		t.Fatal("paused listener did not receive the response")
	}
	if a.calls != 1 {
		// Resume starts at the paused listener; earlier listeners are not re-run.
		t.Fatalf("a.calls = %d, want 1", a.calls)
	}
}

func TestDispatchFinishedWhenAllComplete(t *testing.T) {
	s := newDispatchSession(t)
	reg := NewRegistry()
	a := &scriptedListener{id: "a", advance: func(*state.Session, *protocol.Response) Result {
		return CompleteWith(protocol.Instruction{Kind: protocol.KindConfirm, Key: "a.done"})
	}}
	if err := reg.Register(testHook, a); err != nil {
		t.Fatalf("register: %v", err)
	}

	outcome, err := Dispatch(reg, s, testHook, nil)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if outcome.Paused {
		t.Fatal("expected finished outcome")
	}
	if outcome.Instruction == nil || outcome.Instruction.Key != "a.done" {
		t.Fatalf("instruction = %+v", outcome.Instruction)
	}
	if s.Cursor().Listener() != phase.ListenerIDNone {
		t.Fatal("listener state should be cleared after completion")
	}
}

func TestDispatchErrorLeavesCursorForRetry(t *testing.T) {
	s := newDispatchSession(t)
	reg := NewRegistry()

	ruleErr := gameerrors.New(gameerrors.CodeRuleTargetDead, "target is dead")
	b := &scriptedListener{id: "b", advance: func(s *state.Session, resp *protocol.Response) Result {
		if resp == nil {
			s.Cursor().TransitionListenerAndState("b", phase.ListenerState(2))
			return NeedInput(protocol.Instruction{Kind: protocol.KindPlayerSelection, Key: "b.target"})
		}
		return Fail(ruleErr)
	}}
	if err := reg.Register(testHook, b); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := Dispatch(reg, s, testHook, nil); err != nil {
		t.Fatalf("first dispatch: %v", err)
	}
	_, err := Dispatch(reg, s, testHook, &protocol.Response{Kind: protocol.KindPlayerSelection, Players: []state.PlayerID{"p2"}})
	if !gameerrors.Is(err, gameerrors.CodeRuleTargetDead) {
		t.Fatalf("err = %v, want RULE_TARGET_DEAD", err)
	}
	if s.Cursor().Listener() != "b" || s.Cursor().ListenerState() != phase.ListenerState(2) {
		t.Fatal("cursor must keep the paused listener for retry")
	}
}

func TestDispatchUnknownPausedListenerIsInternal(t *testing.T) {
	s := newDispatchSession(t)
	reg := NewRegistry()
	s.Cursor().TransitionHook(testHook)
	s.Cursor().TransitionListenerAndState("ghost", phase.ListenerState(1))

	_, err := Dispatch(reg, s, testHook, nil)
	if gameerrors.KindOf(err) != gameerrors.KindInternal {
		t.Fatalf("err = %v, want internal kind", err)
	}
}

func TestRegistryRejectsConflictsAndDuplicates(t *testing.T) {
	reg := NewRegistry()
	a := &scriptedListener{id: "a", advance: func(*state.Session, *protocol.Response) Result { return Complete() }}
	if err := reg.Register(testHook, a); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(testHook, a); !errors.Is(err, ErrListenerDuplicate) {
		t.Fatalf("err = %v, want ErrListenerDuplicate", err)
	}
	other := &scriptedListener{id: "a", advance: func(*state.Session, *protocol.Response) Result { return Complete() }}
	if err := reg.Register(phase.Hook("other"), other); !errors.Is(err, ErrListenerConflict) {
		t.Fatalf("err = %v, want ErrListenerConflict", err)
	}
	// Same listener on a second hook is fine.
	if err := reg.Register(phase.Hook("other"), a); err != nil {
		t.Fatalf("register on second hook: %v", err)
	}
}

package errors

import (
	"fmt"
	"testing"
)

func TestCodeKindClassification(t *testing.T) {
	tests := []struct {
		code Code
		want Kind
	}{
		{CodeSessionNotFound, KindNotFound},
		{CodeInputKindMismatch, KindInvalidInput},
		{CodeInputSelectionCount, KindInvalidInput},
		{CodeRuleTargetDead, KindRuleViolation},
		{CodeRuleRepeatTarget, KindRuleViolation},
		{CodeRulePowerExhausted, KindRuleViolation},
		{CodeOpWrongPhase, KindInvalidOperation},
		{CodeOpGameOver, KindInvalidOperation},
		{CodeInternalUndeclaredTransition, KindInternal},
		{CodeUnknown, KindInternal},
	}
	for _, tc := range tests {
		if got := tc.code.Kind(); got != tc.want {
			t.Errorf("%s: kind = %s, want %s", tc.code, got, tc.want)
		}
	}
}

func TestRecoverable(t *testing.T) {
	if CodeInternalUndeclaredTransition.Recoverable() {
		t.Error("internal errors must not be recoverable")
	}
	if !CodeRuleTargetDead.Recoverable() {
		t.Error("rule violations must be recoverable")
	}
	if !CodeOpGameOver.Recoverable() {
		t.Error("invalid-operation errors must be recoverable")
	}
}

func TestCodeOfUnwrapsChain(t *testing.T) {
	err := fmt.Errorf("submit input: %w", New(CodeRuleTargetDead, "target is dead"))
	if got := CodeOf(err); got != CodeRuleTargetDead {
		t.Fatalf("CodeOf = %s, want %s", got, CodeRuleTargetDead)
	}
	if !Is(err, CodeRuleTargetDead) {
		t.Fatal("Is should match the wrapped code")
	}
}

func TestErrorContext(t *testing.T) {
	err := New(CodeInputUnknownPlayer, "no such player").With("player_id", "p-9")
	if err.Context["player_id"] != "p-9" {
		t.Fatalf("context not attached: %v", err.Context)
	}
	if err.Error() != "INPUT_UNKNOWN_PLAYER: no such player" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

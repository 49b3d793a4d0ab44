// Package errors provides the structured error taxonomy for the moderator engine.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Session errors
	CodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Input errors
	CodeInputKindMismatch   Code = "INPUT_KIND_MISMATCH"
	CodeInputUnknownPlayer  Code = "INPUT_UNKNOWN_PLAYER"
	CodeInputUnknownRole    Code = "INPUT_UNKNOWN_ROLE"
	CodeInputSelectionCount Code = "INPUT_SELECTION_COUNT_OUT_OF_BOUNDS"
	CodeInputRosterInvalid  Code = "INPUT_ROSTER_INVALID"
	CodeInputUnknownEvent   Code = "INPUT_UNKNOWN_EVENT_CARD"

	// Rule violations
	CodeRuleTargetDead     Code = "RULE_TARGET_DEAD"
	CodeRuleTargetSelf     Code = "RULE_TARGET_SELF"
	CodeRuleTargetAlly     Code = "RULE_TARGET_ALLY"
	CodeRuleRepeatTarget   Code = "RULE_REPEAT_TARGET"
	CodeRulePowerExhausted Code = "RULE_POWER_EXHAUSTED"
	CodeRuleRoleMismatch   Code = "RULE_ROLE_MISMATCH"

	// Operation errors
	CodeOpWrongPhase Code = "OPERATION_WRONG_PHASE"
	CodeOpGameOver   Code = "OPERATION_GAME_OVER"

	// Internal errors (defects in static configuration, not user mistakes)
	CodeInternalUndeclaredTransition Code = "INTERNAL_UNDECLARED_TRANSITION"
	CodeInternalUnknownStage         Code = "INTERNAL_UNKNOWN_STAGE"
	CodeInternalListenerMissing      Code = "INTERNAL_LISTENER_MISSING"
	CodeInternalEntryRejected        Code = "INTERNAL_ENTRY_REJECTED"
)

// Kind classifies codes by recovery semantics.
type Kind string

const (
	// KindNotFound indicates the addressed session does not exist.
	KindNotFound Kind = "not_found"
	// KindInvalidInput indicates a malformed or out-of-shape response.
	KindInvalidInput Kind = "invalid_input"
	// KindRuleViolation indicates a well-formed action that breaks a game rule.
	KindRuleViolation Kind = "rule_violation"
	// KindInvalidOperation indicates an action attempted in the wrong phase.
	KindInvalidOperation Kind = "invalid_operation"
	// KindInternal indicates a defect in static tables or handler code.
	KindInternal Kind = "internal"
)

// Kind maps a code to its recovery classification.
func (c Code) Kind() Kind {
	switch c {
	case CodeSessionNotFound:
		return KindNotFound

	case CodeInputKindMismatch,
		CodeInputUnknownPlayer,
		CodeInputUnknownRole,
		CodeInputSelectionCount,
		CodeInputRosterInvalid,
		CodeInputUnknownEvent:
		return KindInvalidInput

	case CodeRuleTargetDead,
		CodeRuleTargetSelf,
		CodeRuleTargetAlly,
		CodeRuleRepeatTarget,
		CodeRulePowerExhausted,
		CodeRuleRoleMismatch:
		return KindRuleViolation

	case CodeOpWrongPhase,
		CodeOpGameOver:
		return KindInvalidOperation

	default:
		return KindInternal
	}
}

// Recoverable reports whether the moderator may retry the same pending
// instruction after receiving this code.
func (c Code) Recoverable() bool {
	switch c.Kind() {
	case KindInvalidInput, KindRuleViolation, KindInvalidOperation:
		return true
	default:
		return false
	}
}

package journal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bicheichane/millers-hollow/internal/game/state"
)

// ErrTypeUnknown indicates a stored record with no registered entry type.
var ErrTypeUnknown = errors.New("entry type is not registered")

// decoders maps each entry type to a factory producing a fresh zero value
// for unmarshaling. Established at init; never mutated at runtime.
var decoders = map[state.EntryType]func() state.Entry{
	TypeTurnAdvanced:        func() state.Entry { return &TurnAdvanced{} },
	TypeRoleAssigned:        func() state.Entry { return &RoleAssigned{} },
	TypeRoleRevealed:        func() state.Entry { return &RoleRevealed{} },
	TypeWolvesTargeted:      func() state.Entry { return &WolvesTargeted{} },
	TypeProtectionGranted:   func() state.Entry { return &ProtectionGranted{} },
	TypePotionUsed:          func() state.Entry { return &PotionUsed{} },
	TypeInspectionPerformed: func() state.Entry { return &InspectionPerformed{} },
	TypeLoversBound:         func() state.Entry { return &LoversBound{} },
	TypePlayerDied:          func() state.Entry { return &PlayerDied{} },
	TypeSheriffElected:      func() state.Entry { return &SheriffElected{} },
	TypeSheriffPassed:       func() state.Entry { return &SheriffPassed{} },
	TypeVoteResolved:        func() state.Entry { return &VoteResolved{} },
	TypeWinnerRecorded:      func() state.Entry { return &WinnerRecorded{} },
}

// Marshal serializes an entry to its type tag and JSON payload.
func Marshal(e state.Entry) (state.EntryType, []byte, error) {
	if e == nil {
		return "", nil, state.ErrEntryNil
	}
	if _, ok := decoders[e.Type()]; !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrTypeUnknown, e.Type())
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", nil, fmt.Errorf("marshal %s: %w", e.Type(), err)
	}
	return e.Type(), payload, nil
}

// Unmarshal reconstructs a typed entry from its stored type tag and payload.
func Unmarshal(typ state.EntryType, payload []byte) (state.Entry, error) {
	factory, ok := decoders[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeUnknown, typ)
	}
	e := factory()
	if err := json.Unmarshal(payload, e); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", typ, err)
	}
	return e, nil
}

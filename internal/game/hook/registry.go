package hook

import (
	"errors"
	"fmt"

	"github.com/bicheichane/millers-hollow/internal/game/phase"
)

var (
	// ErrListenerRequired indicates a nil listener registration.
	ErrListenerRequired = errors.New("listener is required")
	// ErrListenerIDRequired indicates a listener with an empty id.
	ErrListenerIDRequired = errors.New("listener id is required")
	// ErrListenerDuplicate indicates a listener registered twice on a hook.
	ErrListenerDuplicate = errors.New("listener already registered on hook")
	// ErrListenerConflict indicates two different listeners sharing an id.
	ErrListenerConflict = errors.New("listener id registered with a different listener")
)

// Registry is the static hook-registration table: each hook maps to an
// ordered listener list, plus a lookup from id to behavior. Built once at
// process start, then read-only; list order is the authoritative rule
// precedence for listeners reacting to the same hook.
type Registry struct {
	order     map[phase.Hook][]phase.ListenerID
	listeners map[phase.ListenerID]Listener
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		order:     make(map[phase.Hook][]phase.ListenerID),
		listeners: make(map[phase.ListenerID]Listener),
	}
}

// Register appends the listener to the hook's ordered list. Registering the
// same listener on several hooks is allowed; registering two different
// listeners under one id is not.
func (r *Registry) Register(h phase.Hook, l Listener) error {
	if l == nil {
		return ErrListenerRequired
	}
	id := l.ID()
	if id == phase.ListenerIDNone {
		return ErrListenerIDRequired
	}
	if existing, ok := r.listeners[id]; ok && existing != l {
		return fmt.Errorf("%w: %s", ErrListenerConflict, id)
	}
	for _, registered := range r.order[h] {
		if registered == id {
			return fmt.Errorf("%w: %s on %s", ErrListenerDuplicate, id, h)
		}
	}
	r.order[h] = append(r.order[h], id)
	r.listeners[id] = l
	return nil
}

// Listeners returns the ordered listener ids for a hook.
func (r *Registry) Listeners(h phase.Hook) []phase.ListenerID {
	return append([]phase.ListenerID(nil), r.order[h]...)
}

// Listener returns the behavior registered under an id.
func (r *Registry) Listener(id phase.ListenerID) (Listener, bool) {
	l, ok := r.listeners[id]
	return l, ok
}

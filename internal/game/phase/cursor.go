package phase

// Cursor is the program counter of a session's cooperative state machine. It
// tracks exactly one point of suspended execution: main phase, sub-phase,
// active hook, and the paused listener with its private state.
//
// Transitioning a level always clears every level beneath it. Clearing
// unconditionally on upward transitions is what keeps stale listener state
// from one phase from leaking into the next.
type Cursor struct {
	main          Phase
	sub           SubPhase
	hook          Hook
	listener      ListenerID
	listenerState ListenerState
}

// TransitionMainPhase sets the main phase and clears sub-phase, hook, and
// listener state.
func (c *Cursor) TransitionMainPhase(p Phase) {
	c.main = p
	c.sub = SubPhaseNone
	c.hook = HookNone
	c.listener = ListenerIDNone
	c.listenerState = ListenerStateNone
}

// TransitionSubPhase sets the sub-phase within the current main phase and
// clears hook and listener state.
func (c *Cursor) TransitionSubPhase(sp SubPhase) {
	c.sub = sp
	c.hook = HookNone
	c.listener = ListenerIDNone
	c.listenerState = ListenerStateNone
}

// TransitionHook sets the active hook and clears listener state.
func (c *Cursor) TransitionHook(h Hook) {
	c.hook = h
	c.listener = ListenerIDNone
	c.listenerState = ListenerStateNone
}

// TransitionListenerAndState records which listener is paused awaiting input
// and its opaque resumption state.
func (c *Cursor) TransitionListenerAndState(id ListenerID, state ListenerState) {
	c.listener = id
	c.listenerState = state
}

// ClearListener resets the paused-listener record, keeping phase, sub-phase,
// and hook intact.
func (c *Cursor) ClearListener() {
	c.listener = ListenerIDNone
	c.listenerState = ListenerStateNone
}

// MainPhase returns the current main phase.
func (c *Cursor) MainPhase() Phase { return c.main }

// SubPhase returns the current sub-phase.
func (c *Cursor) SubPhase() SubPhase { return c.sub }

// Hook returns the active hook.
func (c *Cursor) Hook() Hook { return c.hook }

// Listener returns the paused listener id.
func (c *Cursor) Listener() ListenerID { return c.listener }

// ListenerState returns the paused listener's private state.
func (c *Cursor) ListenerState() ListenerState { return c.listenerState }

// Snapshot is a serializable copy of a cursor, used as a resume checkpoint
// by the persistence layer. The cursor itself is reconstructible from the
// log in principle; the snapshot exists so a restarted process resumes
// without replaying moderator prompts.
type Snapshot struct {
	MainPhase     Phase         `json:"main_phase"`
	SubPhase      SubPhase      `json:"sub_phase"`
	Hook          Hook          `json:"hook"`
	Listener      ListenerID    `json:"listener"`
	ListenerState ListenerState `json:"listener_state"`
}

// Snapshot returns a serializable copy of the cursor.
func (c *Cursor) Snapshot() Snapshot {
	return Snapshot{
		MainPhase:     c.main,
		SubPhase:      c.sub,
		Hook:          c.hook,
		Listener:      c.listener,
		ListenerState: c.listenerState,
	}
}

// Restore overwrites the cursor from a snapshot.
func (c *Cursor) Restore(s Snapshot) {
	c.main = s.MainPhase
	c.sub = s.SubPhase
	c.hook = s.Hook
	c.listener = s.Listener
	c.listenerState = s.ListenerState
}

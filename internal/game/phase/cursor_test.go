package phase

import "testing"

func pausedCursor() *Cursor {
	c := &Cursor{}
	c.TransitionMainPhase(PhaseNight)
	c.TransitionSubPhase(SubPhaseNightActionLoop)
	c.TransitionHook(HookNightAction)
	c.TransitionListenerAndState(ListenerID("witch"), ListenerState(3))
	return c
}

func TestTransitionMainPhaseClearsEverythingBelow(t *testing.T) {
	c := pausedCursor()
	c.TransitionMainPhase(PhaseDayDawn)

	if c.MainPhase() != PhaseDayDawn {
		t.Fatalf("main phase = %s", c.MainPhase())
	}
	if c.SubPhase() != SubPhaseNone {
		t.Errorf("sub-phase not cleared: %s", c.SubPhase())
	}
	if c.Hook() != HookNone {
		t.Errorf("hook not cleared: %s", c.Hook())
	}
	if c.Listener() != ListenerIDNone || c.ListenerState() != ListenerStateNone {
		t.Errorf("listener state not cleared: %s/%d", c.Listener(), c.ListenerState())
	}
}

func TestTransitionSubPhaseKeepsMainPhase(t *testing.T) {
	c := pausedCursor()
	c.TransitionSubPhase(SubPhaseNightStart)

	if c.MainPhase() != PhaseNight {
		t.Errorf("main phase changed: %s", c.MainPhase())
	}
	if c.SubPhase() != SubPhaseNightStart {
		t.Errorf("sub-phase = %s", c.SubPhase())
	}
	if c.Hook() != HookNone {
		t.Errorf("hook not cleared: %s", c.Hook())
	}
	if c.Listener() != ListenerIDNone {
		t.Errorf("listener not cleared: %s", c.Listener())
	}
}

func TestTransitionHookClearsListenerOnly(t *testing.T) {
	c := pausedCursor()
	c.TransitionHook(HookDeathResolution)

	if c.MainPhase() != PhaseNight || c.SubPhase() != SubPhaseNightActionLoop {
		t.Errorf("phase levels changed: %s/%s", c.MainPhase(), c.SubPhase())
	}
	if c.Hook() != HookDeathResolution {
		t.Errorf("hook = %s", c.Hook())
	}
	if c.Listener() != ListenerIDNone || c.ListenerState() != ListenerStateNone {
		t.Errorf("listener state not cleared: %s/%d", c.Listener(), c.ListenerState())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := pausedCursor()
	snap := c.Snapshot()

	restored := &Cursor{}
	restored.Restore(snap)

	if *restored != *c {
		t.Fatalf("restored cursor %+v != original %+v", restored, c)
	}
}

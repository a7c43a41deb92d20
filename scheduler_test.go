package dock

import "testing"

func TestStepSchedulerRunsPending(t *testing.T) {
	s := NewStepScheduler()
	ran := 0
	s.Schedule(func() { ran++ })
	s.Schedule(func() { ran++ })

	if s.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", s.Pending())
	}
	s.Step()
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending after step = %d, want 0", s.Pending())
	}
}

func TestStepSchedulerReschedulesNextStep(t *testing.T) {
	// A callback scheduled during a step must not run in the same step;
	// that is what makes a tick's output stable once Step returns.
	s := NewStepScheduler()
	ran := 0
	s.Schedule(func() {
		ran++
		s.Schedule(func() { ran++ })
	})

	s.Step()
	if ran != 1 {
		t.Fatalf("ran = %d after first step, want 1", ran)
	}
	if s.Pending() != 1 {
		t.Fatalf("Pending = %d after first step, want 1", s.Pending())
	}
	s.Step()
	if ran != 2 {
		t.Errorf("ran = %d after second step, want 2", ran)
	}
}

func TestStepSchedulerCancel(t *testing.T) {
	s := NewStepScheduler()
	ran := false
	h := s.Schedule(func() { ran = true })
	h.Cancel()

	if s.Pending() != 0 {
		t.Errorf("Pending = %d after cancel, want 0", s.Pending())
	}
	s.Step()
	if ran {
		t.Error("cancelled callback ran")
	}

	// Cancelling after the step is a no-op.
	h.Cancel()
}

func TestStepSchedulerEmptyStep(t *testing.T) {
	s := NewStepScheduler()
	s.Step() // must not panic
}

// --- frameLoop ---

func TestFrameLoopSingleClaim(t *testing.T) {
	s := NewStepScheduler()
	ticks := 0
	l := newFrameLoop(s, func() { ticks++ })

	l.request()
	l.request()
	l.request()
	if s.Pending() != 1 {
		t.Fatalf("Pending = %d after repeated requests, want 1", s.Pending())
	}

	s.Step()
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}
	if l.active() {
		t.Error("loop still active after its tick ran")
	}
}

func TestFrameLoopRequestFromTick(t *testing.T) {
	// The common loop shape: the tick re-requests itself. Each step runs
	// exactly one tick.
	s := NewStepScheduler()
	ticks := 0
	var l *frameLoop
	l = newFrameLoop(s, func() {
		ticks++
		if ticks < 3 {
			l.request()
		}
	})

	l.request()
	for i := 0; i < 5; i++ {
		s.Step()
	}
	if ticks != 3 {
		t.Errorf("ticks = %d, want 3", ticks)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d after loop stopped, want 0", s.Pending())
	}
}

func TestFrameLoopCancel(t *testing.T) {
	s := NewStepScheduler()
	ticks := 0
	l := newFrameLoop(s, func() { ticks++ })

	l.request()
	l.cancel()
	s.Step()
	if ticks != 0 {
		t.Errorf("ticks = %d after cancel, want 0", ticks)
	}
	if l.active() {
		t.Error("loop active after cancel")
	}

	// A fresh request after cancel works again.
	l.request()
	s.Step()
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}
}

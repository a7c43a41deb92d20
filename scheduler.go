package dock

// Scheduler is the engine's only dependency on the hosting environment's
// frame mechanism: it schedules a callback to run on the next frame. Any
// "next tick" primitive works — the ebiten runner in this package drives a
// StepScheduler, and tests step one manually.
type Scheduler interface {
	// Schedule queues fn for the next frame and returns a handle that can
	// cancel it before it runs.
	Schedule(fn func()) TaskHandle
}

// TaskHandle cancels a scheduled callback.
type TaskHandle interface {
	// Cancel prevents the callback from running. Cancelling a callback that
	// already ran is a no-op.
	Cancel()
}

// --- StepScheduler ---

// stepTask is a single queued callback. Cancel nils the function; the task
// stays in the queue and is skipped at step time.
type stepTask struct {
	fn func()
}

// Cancel implements TaskHandle.
func (t *stepTask) Cancel() {
	t.fn = nil
}

// StepScheduler is a frame-driven Scheduler: the host calls Step once per
// frame, which runs every callback that was pending when Step began.
// Callbacks scheduled during a step (loop reschedules) run on the next step,
// so a tick's output is stable once Step returns.
//
// StepScheduler is not safe for concurrent use; like the engine itself it
// assumes a single logical frame producer.
type StepScheduler struct {
	pending []*stepTask
	running []*stepTask // reused buffer for the in-flight step
}

// NewStepScheduler creates an empty StepScheduler.
func NewStepScheduler() *StepScheduler {
	return &StepScheduler{}
}

// Schedule implements Scheduler.
func (s *StepScheduler) Schedule(fn func()) TaskHandle {
	t := &stepTask{fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// Step runs all callbacks pending at entry. Reschedules land in the next step.
func (s *StepScheduler) Step() {
	if len(s.pending) == 0 {
		return
	}
	s.running, s.pending = s.pending, s.running[:0]
	for _, t := range s.running {
		if t.fn != nil {
			t.fn()
		}
	}
	s.running = s.running[:0]
}

// Pending returns the number of scheduled callbacks still due to run.
func (s *StepScheduler) Pending() int {
	n := 0
	for _, t := range s.pending {
		if t.fn != nil {
			n++
		}
	}
	return n
}

// --- frameLoop ---

// frameLoop owns at most one pending scheduled callback for a logical loop.
// The item loop and the particle loop each hold their own claim; request is
// idempotent while a frame is pending, which is what guarantees no duplicate
// loops regardless of how often input events ask for a wake-up.
type frameLoop struct {
	sched   Scheduler
	handle  TaskHandle
	wrapped func() // stored once so request does not allocate per frame
}

// newFrameLoop binds a loop to its scheduler and tick function.
func newFrameLoop(sched Scheduler, tick func()) *frameLoop {
	l := &frameLoop{sched: sched}
	l.wrapped = func() {
		l.handle = nil
		tick()
	}
	return l
}

// request schedules the loop's tick unless one is already pending.
func (l *frameLoop) request() {
	if l.handle != nil {
		return
	}
	l.handle = l.sched.Schedule(l.wrapped)
}

// cancel drops the pending tick, if any. Used on teardown so no callback can
// fire against a disposed engine.
func (l *frameLoop) cancel() {
	if l.handle != nil {
		l.handle.Cancel()
		l.handle = nil
	}
}

// active reports whether a tick is currently scheduled.
func (l *frameLoop) active() bool {
	return l.handle != nil
}

package dock

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// interactionTracker holds the discrete interaction state of the dock:
// which item the pointer is hovering, which items are inside their clicked
// flash window, and the dock-wide loading flag. Transitions are driven by
// input events and by tick; there is no time-based state outside the tick
// countdowns, so the tracker is fully deterministic under stepped ticks.
type interactionTracker struct {
	hovered    int // item index, -1 when none
	clickTicks []int
	pulses     []*gween.Tween
	pulseVals  []float64
	loading    bool
}

func newInteractionTracker(count int) interactionTracker {
	tr := interactionTracker{
		hovered:    -1,
		clickTicks: make([]int, count),
		pulses:     make([]*gween.Tween, count),
		pulseVals:  make([]float64, count),
	}
	for i := range tr.pulseVals {
		tr.pulseVals[i] = 1
	}
	return tr
}

// setHover moves the hover to the given index (-1 for none). Hover is a pure
// consequence of pointer position; callers are responsible for never passing
// a disabled item's index.
func (tr *interactionTracker) setHover(idx int) {
	tr.hovered = idx
}

// click puts an item into its transient clicked state: a tick countdown for
// the discrete flag plus an eased scale pulse that pops to pulseScale and
// settles back to 1 over the same window. Clicking an already clicked item
// restarts the flash.
func (tr *interactionTracker) click(idx, flashTicks int, pulseScale float64, flashSeconds float32) {
	tr.clickTicks[idx] = flashTicks
	tr.pulses[idx] = gween.New(float32(pulseScale), 1, flashSeconds, ease.OutQuad)
	tr.pulseVals[idx] = pulseScale
}

// clicked reports whether the item is inside its clicked flash window.
func (tr *interactionTracker) clicked(idx int) bool {
	return tr.clickTicks[idx] > 0
}

// pulse returns the item's current click-pulse scale multiplier (1 when idle).
func (tr *interactionTracker) pulse(idx int) float64 {
	return tr.pulseVals[idx]
}

// tick advances clicked countdowns and pulse tweens by one tick of dt
// seconds. Returns true while any flash is still animating, which keeps the
// item loop scheduled until every pulse has settled.
func (tr *interactionTracker) tick(dt float32) bool {
	animating := false
	for i := range tr.clickTicks {
		if tr.clickTicks[i] > 0 {
			tr.clickTicks[i]--
		}
		if tw := tr.pulses[i]; tw != nil {
			val, finished := tw.Update(dt)
			tr.pulseVals[i] = float64(val)
			if finished {
				tr.pulses[i] = nil
				tr.pulseVals[i] = 1
			} else {
				animating = true
			}
		}
	}
	return animating
}

// reset drops all transient state, sized for a new item count. Loading is
// externally driven and survives the reset.
func (tr *interactionTracker) reset(count int) {
	loading := tr.loading
	*tr = newInteractionTracker(count)
	tr.loading = loading
}

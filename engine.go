package dock

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"
)

// ItemConfig describes one dock tool as supplied by the embedding
// application's settings store. The engine validates the shape once at
// construction and treats Color as immutable passthrough data.
type ItemConfig struct {
	// ID is the stable identifier reported back on activation.
	ID string
	// Color is the tool's theme color, forwarded to snapshots and bursts.
	Color Color
	// Enabled gates magnification, hover, and activation for the item.
	Enabled bool
}

// Config carries layout and tuning parameters for an Engine. The zero value
// of every numeric field takes a documented default; a malformed value
// degrades to no visual change instead of failing.
type Config struct {
	// Items is the ordered tool list.
	Items []ItemConfig
	// Columns is the grid width. 0 lays all items out in a single row.
	Columns int
	// ItemSize is the unmagnified square item size. Default 48.
	ItemSize float64
	// Spacing is the gap between items. Default 8.
	Spacing float64
	// EffectRadius is the magnification falloff radius. Default 200.
	// A negative radius disables magnification entirely.
	EffectRadius float64
	// MaxMagnification is the scale at distance zero. Default 1.6.
	MaxMagnification float64
	// ActiveLerpFactor is the per-tick interpolation fraction while the
	// pointer is present. Higher is snappier. Default 0.25.
	ActiveLerpFactor float64
	// SettleLerpFactor is the per-tick interpolation fraction while the
	// pointer is absent and items settle back to rest. Default 0.15.
	SettleLerpFactor float64
	// Epsilon is the convergence threshold for scale and position axes.
	// Default 0.001.
	Epsilon float64
	// ShiftFactor scales the positional offset magnified items receive along
	// the row axis. Default 0.1.
	ShiftFactor float64
	// PulseScale is the momentary scale multiplier applied on click before
	// easing back to 1. Default 1.25.
	PulseScale float64
	// ClickFlash is how long an item reports Clicked after activation.
	// Default 700ms.
	ClickFlash time.Duration
	// TickRate is the simulation rate in ticks per second, matching the host
	// frame callback cadence. Default 60.
	TickRate int
	// PointerThrottle is the minimum interval between accepted pointer
	// moves. Default 10ms; negative disables throttling.
	PointerThrottle time.Duration
	// DisableAnimations makes items snap to their targets instead of
	// interpolating.
	DisableAnimations bool
	// DisableParticles suppresses activation bursts.
	DisableParticles bool
	// Burst tunes the activation particle bursts (count, speed, life, ...).
	Burst BurstConfig
	// Seed seeds the particle random source. 0 draws a seed from the clock.
	Seed uint64
	// OnToolActivated fires once per completed activation with the item's
	// ID, after the interaction state transition.
	OnToolActivated func(id string)
}

// Defaults applied by normalize.
const (
	defaultItemSize        = 48
	defaultSpacing         = 8
	defaultEffectRadius    = 200
	defaultMaxMag          = 1.6
	defaultActiveLerp      = 0.25
	defaultSettleLerp      = 0.15
	defaultEpsilon         = 0.001
	defaultShiftFactor     = 0.1
	defaultPulseScale      = 1.25
	defaultClickFlash      = 700 * time.Millisecond
	defaultTickRate        = 60
	defaultPointerThrottle = 10 * time.Millisecond
)

// normalize applies defaults and clamps malformed values. NaN and infinite
// tuning values fall back to defaults so the convergence invariant cannot be
// broken by configuration alone.
func (c *Config) normalize() {
	if c.Columns == 0 {
		c.Columns = len(c.Items)
	}
	if c.Columns <= 0 {
		c.Columns = 1
	}
	if c.ItemSize <= 0 || math.IsNaN(c.ItemSize) || math.IsInf(c.ItemSize, 0) {
		c.ItemSize = defaultItemSize
	}
	if c.Spacing < 0 || math.IsNaN(c.Spacing) || math.IsInf(c.Spacing, 0) {
		c.Spacing = defaultSpacing
	}
	if c.EffectRadius == 0 || math.IsNaN(c.EffectRadius) || math.IsInf(c.EffectRadius, 0) {
		c.EffectRadius = defaultEffectRadius
	}
	c.MaxMagnification = finiteOr(c.MaxMagnification, defaultMaxMag)
	if c.MaxMagnification == 0 {
		c.MaxMagnification = defaultMaxMag
	}
	if c.MaxMagnification < 1 {
		c.MaxMagnification = 1
	}
	if f := finiteOr(c.ActiveLerpFactor, 0); f <= 0 || f > 1 {
		c.ActiveLerpFactor = defaultActiveLerp
	}
	if f := finiteOr(c.SettleLerpFactor, 0); f <= 0 || f > 1 {
		c.SettleLerpFactor = defaultSettleLerp
	}
	if f := finiteOr(c.Epsilon, 0); f <= 0 {
		c.Epsilon = defaultEpsilon
	}
	if c.ShiftFactor == 0 || math.IsNaN(c.ShiftFactor) || math.IsInf(c.ShiftFactor, 0) {
		c.ShiftFactor = defaultShiftFactor
	}
	if f := finiteOr(c.PulseScale, 0); f <= 0 {
		c.PulseScale = defaultPulseScale
	}
	if c.ClickFlash <= 0 {
		c.ClickFlash = defaultClickFlash
	}
	if c.TickRate <= 0 {
		c.TickRate = defaultTickRate
	}
	if c.PointerThrottle == 0 {
		c.PointerThrottle = defaultPointerThrottle
	} else if c.PointerThrottle < 0 {
		c.PointerThrottle = 0
	}
}

// item is the per-tool animated state. A single flat struct for all items,
// updated in place every tick.
type item struct {
	id      string
	color   Color
	enabled bool

	resting  Vec2
	curScale float64
	tgtScale float64
	curPos   Vec2
	tgtPos   Vec2
}

// Engine is the dock layout and particle-feedback engine. It owns the item
// animation loop and the particle loop as two independent scheduling claims
// on one Scheduler, mutates all state synchronously inside tick callbacks,
// and exposes the result as a per-tick Snapshot for an external renderer.
//
// The engine is single-threaded by design: input methods and Snapshot must
// be called from the same goroutine that drives the Scheduler.
type Engine struct {
	cfg   Config
	items []item

	// Parallel layout buffers, rebuilt by SetItems and reused every tick so
	// the hot path does not allocate.
	resting []Vec2
	centers []Vec2
	scales  []float64
	posBuf  []Vec2

	tracker interactionTracker
	field   *ParticleField

	itemLoop     *frameLoop
	particleLoop *frameLoop

	pointerX, pointerY float64
	pointerIn          bool
	lastMove           time.Time
	clock              func() time.Time

	dt         float32 // seconds per tick
	flashTicks int

	snapItems []ItemSnapshot
	snapParts []ParticleSnapshot

	disposed bool
	debug    bool
}

// ItemSnapshot is one item's per-tick output state.
type ItemSnapshot struct {
	ID       string
	Scale    float64
	Position Vec2
	Color    Color
	Enabled  bool
	Hovered  bool
	Clicked  bool
}

// ParticleSnapshot is one live particle's per-tick output state. Opacity is
// the remaining life fraction, for the renderer's alpha fade.
type ParticleSnapshot struct {
	Position Vec2
	Color    Color
	Size     float64
	Opacity  float64
}

// Snapshot is the engine's complete per-tick output. The slices alias
// engine-owned buffers and are valid until the next Snapshot call.
type Snapshot struct {
	Items     []ItemSnapshot
	Particles []ParticleSnapshot
}

// New creates an Engine bound to the given scheduler. The config is
// normalized once; malformed values degrade to defaults rather than erroring
// so a broken theme or settings payload cannot take down the surface.
func New(sched Scheduler, cfg Config) *Engine {
	cfg.normalize()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	e := &Engine{
		cfg:   cfg,
		clock: time.Now,
		field: newParticleField(cfg.Burst, rng),
		dt:    float32(1.0 / float64(cfg.TickRate)),
	}
	e.itemLoop = newFrameLoop(sched, e.itemTick)
	e.particleLoop = newFrameLoop(sched, e.particleTick)
	e.flashTicks = int(cfg.ClickFlash.Seconds()*float64(cfg.TickRate) + 0.5)
	if e.flashTicks < 1 {
		e.flashTicks = 1
	}
	e.SetItems(cfg.Items)
	return e
}

// Config returns a pointer to the engine's config for live tuning of the
// magnification and animation parameters. Changing Items, Columns, ItemSize,
// or Spacing through it has no effect; re-layout goes through SetItems.
func (e *Engine) Config() *Config {
	return &e.cfg
}

// SetItems replaces the tool list and recomputes the resting layout using
// the current layout parameters. All transient interaction state is dropped;
// the loading flag survives.
func (e *Engine) SetItems(items []ItemConfig) {
	if e.disposed {
		return
	}
	e.cfg.Items = items
	e.resting = GridPositions(len(items), e.cfg.Columns, e.cfg.ItemSize, e.cfg.Spacing)
	e.centers = gridCenters(e.resting, e.cfg.ItemSize)
	e.scales = make([]float64, len(items))
	e.posBuf = make([]Vec2, len(items))

	e.items = make([]item, len(items))
	for i, ic := range items {
		e.items[i] = item{
			id:       ic.ID,
			color:    ic.Color,
			enabled:  ic.Enabled,
			resting:  e.resting[i],
			curScale: 1,
			tgtScale: 1,
			curPos:   e.resting[i],
			tgtPos:   e.resting[i],
		}
	}
	e.tracker.reset(len(items))
	e.itemLoop.request()
}

// ContentSize returns the extent of the resting grid, for hosts sizing a
// window or paint surface around the dock.
func (e *Engine) ContentSize() (w, h float64) {
	for _, p := range e.resting {
		if x := p.X + e.cfg.ItemSize; x > w {
			w = x
		}
		if y := p.Y + e.cfg.ItemSize; y > h {
			h = y
		}
	}
	return w, h
}

// ItemAt returns the ID of the item whose resting bounds contain (x, y).
// Disabled items are still reported; activation eligibility is checked by
// Activate.
func (e *Engine) ItemAt(x, y float64) (string, bool) {
	for i := range e.items {
		r := Rect{X: e.items[i].resting.X, Y: e.items[i].resting.Y,
			Width: e.cfg.ItemSize, Height: e.cfg.ItemSize}
		if r.Contains(x, y) {
			return e.items[i].id, true
		}
	}
	return "", false
}

// --- Input surface ---

// PointerMove records a pointer position in the dock's local coordinate
// space and wakes the item loop. Moves arriving faster than PointerThrottle
// are dropped; the next accepted move carries the latest position, so the
// fixed tick cadence is never starved by high-frequency input.
func (e *Engine) PointerMove(x, y float64) {
	if e.disposed {
		return
	}
	now := e.clock()
	if e.pointerIn && e.cfg.PointerThrottle > 0 && now.Sub(e.lastMove) < e.cfg.PointerThrottle {
		return
	}
	e.lastMove = now
	e.pointerX = finiteOr(x, 0)
	e.pointerY = finiteOr(y, 0)
	e.pointerIn = true
	e.itemLoop.request()
}

// PointerLeave clears the pointer. The loop keeps running until every item
// has settled back to rest, then stops on its own.
func (e *Engine) PointerLeave() {
	if e.disposed {
		return
	}
	e.pointerIn = false
	e.itemLoop.request()
}

// Activate performs a click on the item with the given ID: the clicked
// transition, the particle burst, and the OnToolActivated callback, in that
// order. Activating an unknown or disabled item, or any item while the
// loading flag is set, is a silent no-op.
func (e *Engine) Activate(id string) {
	if e.disposed || e.tracker.loading {
		return
	}
	idx := -1
	for i := range e.items {
		if e.items[i].id == id {
			idx = i
			break
		}
	}
	if idx < 0 || !e.items[idx].enabled {
		return
	}

	e.tracker.click(idx, e.flashTicks, e.cfg.PulseScale, float32(e.cfg.ClickFlash.Seconds()))

	if !e.cfg.DisableParticles {
		it := &e.items[idx]
		half := e.cfg.ItemSize / 2
		e.field.Burst(Vec2{X: it.curPos.X + half, Y: it.curPos.Y + half}, it.color)
		e.particleLoop.request()
	}

	e.itemLoop.request()

	if e.cfg.OnToolActivated != nil {
		e.cfg.OnToolActivated(id)
	}
}

// SetLoading sets the dock-wide loading flag. While true, all activations
// are suppressed (one action in flight at a time); magnification is not
// affected.
func (e *Engine) SetLoading(loading bool) {
	e.tracker.loading = loading
}

// Loading reports the dock-wide loading flag.
func (e *Engine) Loading() bool {
	return e.tracker.loading
}

// SetDebugMode enables per-tick timing stats on stderr.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// Dispose cancels any pending scheduled ticks for both loops and detaches
// the engine. All further input is ignored. Required on teardown: a pending
// callback against a destroyed item collection is a leak.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.itemLoop.cancel()
	e.particleLoop.cancel()
	e.field.Reset()
}

// --- Ticks ---

// itemTick is the item loop body: recompute targets from the latest pointer
// state, interpolate current values toward them, refresh hover, advance the
// click flashes, and decide whether another frame is needed. The loop stops
// only when every value is within epsilon of its target, no flash is
// animating, and the pointer is absent.
func (e *Engine) itemTick() {
	if e.disposed {
		return
	}
	var t0 time.Time
	if e.debug {
		t0 = e.clock()
	}

	magnifyScales(e.scales, e.pointerX, e.pointerY, e.pointerIn,
		e.centers, e.cfg.EffectRadius, e.cfg.MaxMagnification)
	for i := range e.items {
		if !e.items[i].enabled {
			e.scales[i] = 1
		}
	}
	resolvePositions(e.posBuf, e.resting, e.scales, e.cfg.ItemSize, e.cfg.ShiftFactor)

	factor := e.cfg.SettleLerpFactor
	if e.pointerIn {
		factor = e.cfg.ActiveLerpFactor
	}
	if e.cfg.DisableAnimations {
		factor = 1
	}

	eps := e.cfg.Epsilon
	converged := true
	for i := range e.items {
		it := &e.items[i]
		it.tgtScale = e.scales[i]
		it.tgtPos = e.posBuf[i]

		it.curScale = lerp(it.curScale, it.tgtScale, factor)
		it.curPos.X = lerp(it.curPos.X, it.tgtPos.X, factor)
		it.curPos.Y = lerp(it.curPos.Y, it.tgtPos.Y, factor)

		if math.Abs(it.tgtScale-it.curScale) > eps ||
			math.Abs(it.tgtPos.X-it.curPos.X) > eps ||
			math.Abs(it.tgtPos.Y-it.curPos.Y) > eps {
			converged = false
		}
	}

	e.updateHover()
	animating := e.tracker.tick(e.dt)

	if e.pointerIn || !converged || animating {
		e.itemLoop.request()
	}

	if e.debug {
		fmt.Fprintf(os.Stderr, "[dock] tick: %v | items: %d | converged: %v | particles: %d\n",
			e.clock().Sub(t0), len(e.items), converged, e.field.AliveCount())
	}
}

// updateHover derives the hovered item from the pointer position and the
// resting bounds. Disabled items are never eligible.
func (e *Engine) updateHover() {
	idx := -1
	if e.pointerIn {
		for i := range e.items {
			if !e.items[i].enabled {
				continue
			}
			r := Rect{X: e.items[i].resting.X, Y: e.items[i].resting.Y,
				Width: e.cfg.ItemSize, Height: e.cfg.ItemSize}
			if r.Contains(e.pointerX, e.pointerY) {
				idx = i
				break
			}
		}
	}
	e.tracker.setHover(idx)
}

// particleTick is the particle loop body. It holds its own scheduling claim:
// frames are requested only while particles are alive, so an idle field
// costs nothing.
func (e *Engine) particleTick() {
	if e.disposed {
		return
	}
	e.field.integrate()
	if e.field.AliveCount() > 0 {
		e.particleLoop.request()
	}
}

// --- Output ---

// Snapshot returns the current output state for the external renderer. Item
// scale includes the click pulse multiplier. Call it between scheduler steps;
// within a step the state may be mid-tick.
func (e *Engine) Snapshot() Snapshot {
	e.snapItems = e.snapItems[:0]
	for i := range e.items {
		it := &e.items[i]
		e.snapItems = append(e.snapItems, ItemSnapshot{
			ID:       it.id,
			Scale:    it.curScale * e.tracker.pulse(i),
			Position: it.curPos,
			Color:    it.color,
			Enabled:  it.enabled,
			Hovered:  e.tracker.hovered == i,
			Clicked:  e.tracker.clicked(i),
		})
	}
	e.snapParts = e.field.appendSnapshot(e.snapParts[:0])
	return Snapshot{Items: e.snapItems, Particles: e.snapParts}
}

// Particles returns the particle field for direct inspection and live
// tuning of burst parameters.
func (e *Engine) Particles() *ParticleField {
	return e.field
}

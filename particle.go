package dock

import (
	"math"
	"math/rand/v2"
)

// particle holds per-particle simulation state. Unexported; managed by
// ParticleField. Life is an integer tick countdown, strictly decreasing, so
// decay is bounded by construction rather than by caller discipline.
type particle struct {
	id      uint32
	x, y    float64
	vx, vy  float64
	size    float64
	life    int
	maxLife int
	color   Color
}

// BurstConfig controls how activation bursts are spawned and behave.
// Zero values take the documented defaults when the field is created.
type BurstConfig struct {
	// Count is the number of particles spawned per burst. Negative disables
	// bursts entirely.
	Count int
	// Speed is the range of initial speeds in units per tick.
	Speed Range
	// Life is the particle lifetime in ticks.
	Life int
	// Size is the range of initial particle sizes.
	Size Range
	// AngleJitter is the random angular deviation in radians added to the
	// evenly distributed burst directions.
	AngleJitter float64
	// Friction is the per-tick velocity damping factor.
	Friction float64
	// Gravity is the constant downward velocity bias added each tick.
	Gravity float64
	// Shrink is the per-tick size multiplier.
	Shrink float64
	// Palette is the decorative color set mixed with the triggering item's
	// color. An empty non-nil slice disables palette colors entirely.
	Palette []Color
	// PaletteChance is the probability that a particle takes a palette color
	// instead of the item color. Negative disables palette colors.
	PaletteChance float64
	// MaxParticles is the pool size. New particles are silently dropped when
	// the pool is full.
	MaxParticles int
}

// Defaults applied by newParticleField.
const (
	defaultBurstCount    = 12
	defaultBurstLife     = 80
	defaultFriction      = 0.97
	defaultGravity       = 0.15
	defaultShrink        = 0.99
	defaultAngleJitter   = 0.35
	defaultPaletteChance = 0.4
	defaultMaxParticles  = 256
)

// defaultPalette is the decorative accent set mixed into bursts. Warm tones
// chosen for contrast against arbitrary theme colors.
var defaultPalette = []Color{
	{R: 1.0, G: 0.84, B: 0.3, A: 1},
	{R: 1.0, G: 0.55, B: 0.25, A: 1},
	{R: 0.95, G: 0.35, B: 0.45, A: 1},
	{R: 0.55, G: 0.75, B: 1.0, A: 1},
}

// ParticleField manages a pool of burst particles with CPU-based simulation.
// It exclusively owns the particle collection: callers append bursts via
// Burst and read state via snapshots, nothing else mutates particles.
type ParticleField struct {
	config    BurstConfig
	particles []particle
	alive     int
	rng       *rand.Rand
	nextID    uint32
}

// newParticleField creates a ParticleField with a preallocated pool and an
// injected random source so burst shapes are reproducible under a fixed seed.
func newParticleField(cfg BurstConfig, rng *rand.Rand) *ParticleField {
	if cfg.Count == 0 {
		cfg.Count = defaultBurstCount
	}
	if cfg.Life <= 0 {
		cfg.Life = defaultBurstLife
	}
	if cfg.Speed == (Range{}) {
		cfg.Speed = Range{Min: 3, Max: 7}
	}
	if cfg.Size == (Range{}) {
		cfg.Size = Range{Min: 2, Max: 5}
	}
	if cfg.AngleJitter == 0 {
		cfg.AngleJitter = defaultAngleJitter
	}
	if cfg.Friction == 0 {
		cfg.Friction = defaultFriction
	}
	if cfg.Gravity == 0 {
		cfg.Gravity = defaultGravity
	}
	if cfg.Shrink == 0 {
		cfg.Shrink = defaultShrink
	}
	if cfg.Palette == nil {
		cfg.Palette = defaultPalette
	}
	if cfg.PaletteChance == 0 {
		cfg.PaletteChance = defaultPaletteChance
	} else if cfg.PaletteChance < 0 {
		cfg.PaletteChance = 0
	}
	if cfg.MaxParticles <= 0 {
		cfg.MaxParticles = defaultMaxParticles
	}
	return &ParticleField{
		config:    cfg,
		particles: make([]particle, cfg.MaxParticles),
		rng:       rng,
	}
}

// AliveCount returns the number of alive particles.
func (f *ParticleField) AliveCount() int {
	return f.alive
}

// Config returns a pointer to the field's config for live tuning.
func (f *ParticleField) Config() *BurstConfig {
	return &f.config
}

// Reset kills all alive particles.
func (f *ParticleField) Reset() {
	f.alive = 0
}

// Burst spawns Count particles at the given origin. Initial directions are
// distributed evenly around a full circle with a small random jitter; speed
// and size are randomized within their configured ranges. Each particle
// takes either the item color or a palette color, chosen per particle.
// A zero count is a legal no-op.
func (f *ParticleField) Burst(origin Vec2, itemColor Color) {
	n := f.config.Count
	if n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		if f.alive >= len(f.particles) {
			return
		}
		p := &f.particles[f.alive]
		f.alive++
		f.nextID++

		angle := float64(i)/float64(n)*2*math.Pi +
			(f.rng.Float64()*2-1)*f.config.AngleJitter
		speed := f.config.Speed.random(f.rng)

		p.id = f.nextID
		p.x = origin.X
		p.y = origin.Y
		p.vx = math.Cos(angle) * speed
		p.vy = math.Sin(angle) * speed
		p.size = f.config.Size.random(f.rng)
		p.life = f.config.Life
		p.maxLife = f.config.Life

		if len(f.config.Palette) > 0 && f.rng.Float64() < f.config.PaletteChance {
			p.color = f.config.Palette[f.rng.IntN(len(f.config.Palette))]
		} else {
			p.color = itemColor
		}
	}
}

// integrate advances the simulation by one tick: move, damp, apply the
// gravity bias, shrink, and count down life. A particle whose life reaches
// zero is swap-removed within the same tick, so life is never observed
// negative. Runs with zero allocations.
func (f *ParticleField) integrate() {
	friction := f.config.Friction
	gravity := f.config.Gravity
	shrink := f.config.Shrink

	i := 0
	for i < f.alive {
		p := &f.particles[i]

		p.x += p.vx
		p.y += p.vy
		p.vx *= friction
		p.vy = p.vy*friction + gravity
		p.size *= shrink

		p.life--
		if p.life <= 0 {
			// Swap with last alive particle.
			f.alive--
			f.particles[i] = f.particles[f.alive]
			continue
		}
		i++
	}
}

// appendSnapshot appends one ParticleSnapshot per alive particle to dst and
// returns the extended slice. Opacity is the remaining life fraction.
func (f *ParticleField) appendSnapshot(dst []ParticleSnapshot) []ParticleSnapshot {
	for i := 0; i < f.alive; i++ {
		p := &f.particles[i]
		dst = append(dst, ParticleSnapshot{
			Position: Vec2{X: p.x, Y: p.y},
			Color:    p.color,
			Size:     p.size,
			Opacity:  float64(p.life) / float64(p.maxLife),
		})
	}
	return dst
}

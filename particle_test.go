package dock

import (
	"math"
	"math/rand/v2"
	"testing"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestBurstSpawnsConfiguredCount(t *testing.T) {
	f := newParticleField(BurstConfig{}, testRNG(1))
	f.Burst(Vec2{X: 24, Y: 24}, ColorWhite)
	if f.AliveCount() != defaultBurstCount {
		t.Errorf("alive = %d, want %d", f.AliveCount(), defaultBurstCount)
	}

	f2 := newParticleField(BurstConfig{Count: 5}, testRNG(1))
	f2.Burst(Vec2{}, ColorWhite)
	if f2.AliveCount() != 5 {
		t.Errorf("alive = %d, want 5", f2.AliveCount())
	}
}

func TestBurstNegativeCountIsNoOp(t *testing.T) {
	f := newParticleField(BurstConfig{Count: -1}, testRNG(1))
	f.Burst(Vec2{}, ColorWhite)
	if f.AliveCount() != 0 {
		t.Errorf("alive = %d, want 0 for disabled bursts", f.AliveCount())
	}
}

func TestBurstPoolCap(t *testing.T) {
	f := newParticleField(BurstConfig{Count: 12, MaxParticles: 5}, testRNG(1))
	f.Burst(Vec2{}, ColorWhite)
	if f.AliveCount() != 5 {
		t.Errorf("alive = %d, want pool cap 5", f.AliveCount())
	}
}

func TestLifeConservation(t *testing.T) {
	// One burst of N particles: after maxLife ticks with no further spawns
	// the collection is empty, and life is never observed negative.
	f := newParticleField(BurstConfig{Count: 12, Life: 80}, testRNG(3))
	f.Burst(Vec2{X: 10, Y: 10}, Color{R: 191.0 / 255, G: 77.0 / 255, B: 20.0 / 255, A: 1})

	var snap []ParticleSnapshot
	for tick := 0; tick < 80; tick++ {
		f.integrate()
		snap = f.appendSnapshot(snap[:0])
		for _, p := range snap {
			if p.Opacity <= 0 {
				t.Fatalf("tick %d: particle with non-positive life fraction %v still alive", tick, p.Opacity)
			}
		}
	}
	if f.AliveCount() != 0 {
		t.Errorf("alive = %d after maxLife ticks, want 0", f.AliveCount())
	}
}

func TestIntegrateMotion(t *testing.T) {
	// Deterministic single particle: near-zero jitter fires it along +X.
	f := newParticleField(BurstConfig{
		Count:       1,
		Speed:       Range{Min: 2, Max: 2},
		AngleJitter: 1e-12,
		Friction:    1,
		Gravity:     5,
		Shrink:      1,
		Life:        10,
	}, testRNG(7))
	f.Burst(Vec2{}, ColorWhite)

	f.integrate()
	p := &f.particles[0]
	assertNear(t, "x after 1 tick", p.x, 2)
	assertNear(t, "vy after 1 tick", p.vy, 5)

	f.integrate()
	// Position moves before the gravity bias of the same tick is applied.
	assertNear(t, "y after 2 ticks", p.y, 5)
	assertNear(t, "vy after 2 ticks", p.vy, 10)
}

func TestIntegrateFriction(t *testing.T) {
	f := newParticleField(BurstConfig{
		Count:       1,
		Speed:       Range{Min: 4, Max: 4},
		AngleJitter: 1e-12,
		Friction:    0.5,
		Gravity:     -1, // negative bias still applies; magnitude is what matters here
		Shrink:      1,
		Life:        10,
	}, testRNG(7))
	f.Burst(Vec2{}, ColorWhite)

	f.integrate()
	assertNear(t, "vx damped", f.particles[0].vx, 2)
	f.integrate()
	assertNear(t, "vx damped twice", f.particles[0].vx, 1)
}

func TestIntegrateShrink(t *testing.T) {
	f := newParticleField(BurstConfig{
		Count:  1,
		Size:   Range{Min: 4, Max: 4},
		Shrink: 0.5,
		Life:   10,
	}, testRNG(7))
	f.Burst(Vec2{}, ColorWhite)

	f.integrate()
	assertNear(t, "size", f.particles[0].size, 2)
}

func TestBurstReproducibleUnderSeed(t *testing.T) {
	a := newParticleField(BurstConfig{}, testRNG(42))
	b := newParticleField(BurstConfig{}, testRNG(42))
	a.Burst(Vec2{X: 1, Y: 2}, ColorWhite)
	b.Burst(Vec2{X: 1, Y: 2}, ColorWhite)

	for i := 0; i < a.AliveCount(); i++ {
		pa, pb := a.particles[i], b.particles[i]
		if pa.vx != pb.vx || pa.vy != pb.vy || pa.size != pb.size || pa.color != pb.color {
			t.Fatalf("particle %d differs under identical seeds: %+v vs %+v", i, pa, pb)
		}
	}
}

func TestBurstDirectionsCoverCircle(t *testing.T) {
	f := newParticleField(BurstConfig{Count: 12, Speed: Range{Min: 5, Max: 5}}, testRNG(9))
	f.Burst(Vec2{}, ColorWhite)

	var left, right, up, down bool
	for i := 0; i < f.AliveCount(); i++ {
		p := &f.particles[i]
		if p.vx < 0 {
			left = true
		}
		if p.vx > 0 {
			right = true
		}
		if p.vy < 0 {
			up = true
		}
		if p.vy > 0 {
			down = true
		}
	}
	if !(left && right && up && down) {
		t.Errorf("burst not spread around the circle: left=%v right=%v up=%v down=%v", left, right, up, down)
	}
}

func TestPaletteMix(t *testing.T) {
	item := Color{R: 191.0 / 255, G: 77.0 / 255, B: 20.0 / 255, A: 1}

	// Chance 1: every particle takes a palette color.
	all := newParticleField(BurstConfig{Count: 20, MaxParticles: 32, PaletteChance: 1}, testRNG(5))
	all.Burst(Vec2{}, item)
	for i := 0; i < all.AliveCount(); i++ {
		c := all.particles[i].color
		found := false
		for _, pc := range defaultPalette {
			if c == pc {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("particle %d color %v not from palette at chance 1", i, c)
		}
	}

	// Negative chance: every particle keeps the item color.
	none := newParticleField(BurstConfig{Count: 20, MaxParticles: 32, PaletteChance: -1}, testRNG(5))
	none.Burst(Vec2{}, item)
	for i := 0; i < none.AliveCount(); i++ {
		if none.particles[i].color != item {
			t.Fatalf("particle %d color %v, want item color at chance 0", i, none.particles[i].color)
		}
	}
}

func TestSpeedWithinRange(t *testing.T) {
	f := newParticleField(BurstConfig{Count: 30, MaxParticles: 64}, testRNG(11))
	f.Burst(Vec2{}, ColorWhite)
	for i := 0; i < f.AliveCount(); i++ {
		p := &f.particles[i]
		speed := math.Sqrt(p.vx*p.vx + p.vy*p.vy)
		if speed < 3-epsilon || speed > 7+epsilon {
			t.Fatalf("particle %d speed %v outside default [3, 7]", i, speed)
		}
	}
}

func TestFieldReset(t *testing.T) {
	f := newParticleField(BurstConfig{}, testRNG(1))
	f.Burst(Vec2{}, ColorWhite)
	f.Reset()
	if f.AliveCount() != 0 {
		t.Errorf("alive = %d after Reset, want 0", f.AliveCount())
	}
}

func TestConfigPointerForLiveTuning(t *testing.T) {
	f := newParticleField(BurstConfig{}, testRNG(1))
	f.Config().Count = 3
	f.Burst(Vec2{}, ColorWhite)
	if f.AliveCount() != 3 {
		t.Errorf("alive = %d, want 3 after live tuning", f.AliveCount())
	}
}

func TestZeroAllocsDuringIntegrate(t *testing.T) {
	f := newParticleField(BurstConfig{Life: 1 << 30}, testRNG(1))
	f.Burst(Vec2{}, ColorWhite)

	allocs := testing.AllocsPerRun(100, func() {
		f.integrate()
	})
	if allocs > 0 {
		t.Errorf("integrate allocs = %f, want 0", allocs)
	}
}

// --- Benchmarks ---

func BenchmarkParticleIntegrate_256(b *testing.B) {
	f := newParticleField(BurstConfig{Count: 256, MaxParticles: 256, Life: 1 << 30}, testRNG(1))
	f.Burst(Vec2{}, ColorWhite)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		f.integrate()
	}
}

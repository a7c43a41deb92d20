package dock

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the windowed runner.
type RunConfig struct {
	Title         string
	Width, Height int
	// Padding offsets the dock content from the window's top-left. Pointer
	// coordinates handed to the engine are already adjusted for it.
	Padding    float64
	Background Color
	ShowFPS    bool
}

// Run opens a window and drives the engine with real mouse input: cursor
// moves feed PointerMove/PointerLeave, presses hit-test and Activate, and
// the scheduler is stepped once per ebiten tick. Each frame paints the
// engine's snapshot — items as scaled colored quads growing around their
// centers, particles as fading squares.
//
// Run blocks until the window is closed. The engine core never touches
// ebiten; this adapter is the only place the two meet.
func Run(e *Engine, sched *StepScheduler, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)

	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	g := &game{engine: e, sched: sched, cfg: cfg, pixel: pixel}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run dock: %w", err)
	}
	return nil
}

// game adapts an Engine to the ebiten.Game interface.
type game struct {
	engine      *Engine
	sched       *StepScheduler
	cfg         RunConfig
	pixel       *ebiten.Image
	prevPressed bool
}

func (g *game) Update() error {
	mx, my := ebiten.CursorPosition()
	inside := mx >= 0 && my >= 0 && mx < g.cfg.Width && my < g.cfg.Height
	lx := float64(mx) - g.cfg.Padding
	ly := float64(my) - g.cfg.Padding

	if inside {
		g.engine.PointerMove(lx, ly)
	} else {
		g.engine.PointerLeave()
	}

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if pressed && !g.prevPressed && inside {
		if id, ok := g.engine.ItemAt(lx, ly); ok {
			g.engine.Activate(id)
		}
	}
	g.prevPressed = pressed

	g.sched.Step()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	bg := g.cfg.Background
	screen.Fill(color.RGBA{
		R: uint8(bg.R * 255), G: uint8(bg.G * 255), B: uint8(bg.B * 255), A: 255,
	})

	snap := g.engine.Snapshot()
	itemSize := g.engine.Config().ItemSize

	for _, it := range snap.Items {
		size := itemSize * it.Scale
		// Grow around the item center.
		x := g.cfg.Padding + it.Position.X - (size-itemSize)/2
		y := g.cfg.Padding + it.Position.Y - (size-itemSize)/2

		alpha := it.Color.A
		if !it.Enabled {
			alpha *= 0.35
		}
		c := it.Color
		if it.Hovered {
			c = Color{R: min1(c.R * 1.2), G: min1(c.G * 1.2), B: min1(c.B * 1.2), A: c.A}
		}
		g.drawQuad(screen, x, y, size, size, c, alpha)
	}

	for _, p := range snap.Particles {
		x := g.cfg.Padding + p.Position.X - p.Size/2
		y := g.cfg.Padding + p.Position.Y - p.Size/2
		g.drawQuad(screen, x, y, p.Size, p.Size, p.Color, p.Color.A*p.Opacity)
	}

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f",
			ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// drawQuad paints the shared white pixel scaled and tinted. Color components
// are premultiplied by alpha at submission time.
func (g *game) drawQuad(screen *ebiten.Image, x, y, w, h float64, c Color, alpha float64) {
	if w <= 0 || h <= 0 || alpha <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(
		float32(c.R*alpha), float32(c.G*alpha), float32(c.B*alpha), float32(alpha),
	)
	screen.DrawImage(g.pixel, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

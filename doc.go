// Package dock is an interactive dock layout and particle-feedback engine.
//
// Dock renders nothing itself: it simulates a grid of actionable items whose
// scale and position continuously track a moving pointer through a cosine
// distance falloff, animates every value toward its target frame by frame,
// and spawns short-lived particle bursts on activation. The per-tick output
// is a plain [Snapshot] an external rendering adapter paints however it
// likes.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens an [Ebitengine]
// window, wires real mouse input, and paints snapshots for you:
//
//	sched := dock.NewStepScheduler()
//	engine := dock.New(sched, dock.Config{
//		Items: []dock.ItemConfig{
//			{ID: "files", Color: dock.Color{R: 0.75, G: 0.3, B: 0.08, A: 1}, Enabled: true},
//			{ID: "search", Color: dock.Color{R: 0.2, G: 0.55, B: 0.9, A: 1}, Enabled: true},
//		},
//		OnToolActivated: func(id string) { log.Printf("activated %s", id) },
//	})
//	dock.Run(engine, sched, dock.RunConfig{Title: "Dock", Width: 640, Height: 480})
//
// For full control, drive the engine from any frame callback yourself: feed
// input with [Engine.PointerMove], [Engine.PointerLeave], and
// [Engine.Activate], call [StepScheduler.Step] once per frame, and read
// [Engine.Snapshot] after each step.
//
// # Scheduling model
//
// The engine is single-threaded and cooperative. It owns two independent
// loops (item animation and particle simulation), each holding at most one
// pending callback on its [Scheduler] at a time. Loops stop on their own
// when converged and idle, and [Engine.Dispose] cancels anything still
// pending. Input events only update state; the next scheduled tick picks
// them up.
//
// [Ebitengine]: https://ebitengine.org
package dock

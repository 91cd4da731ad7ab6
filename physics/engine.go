// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvlogic/diffphys/render"

// Engine owns the bodies and static ground segments of one simulation and
// advances them by fixed substeps each frame. Construction mirrors the
// teacher's windowed-app constructor-argument style (width, height,
// scale, dt, substeps) rather than a config struct.
type Engine struct {
	Width, Height int
	Scale         float64

	Dt       float64
	Substeps int

	gravity  float64
	bodies   []*Body
	segments []*GroundSegment
	renderer render.Renderer
}

// NewEngine constructs an engine with the given view dimensions, world-to-
// screen scale, per-substep timestep, and substep count. Gravity defaults
// to -10, matching the teacher's mover default magnitude (sign flipped to
// point down the Y axis, the convention spec.md's free-fall scenario
// uses).
func NewEngine(width, height int, scale, dt float64, substeps int) *Engine {
	return &Engine{
		Width: width, Height: height, Scale: scale,
		Dt: dt, Substeps: substeps,
		gravity:  -10,
		renderer: render.NewHeadless(),
	}
}

// SetGravity sets the signed Y-axis gravitational acceleration.
func (e *Engine) SetGravity(g float64) { e.gravity = g }

// SetRenderer swaps the renderer used by Render. Passing nil restores a
// headless, no-op renderer so Render remains safe to call.
func (e *Engine) SetRenderer(r render.Renderer) {
	if r == nil {
		r = render.NewHeadless()
	}
	e.renderer = r
}

// AddBody registers a body with the engine.
func (e *Engine) AddBody(b *Body) { e.bodies = append(e.bodies, b) }

// Bodies returns the engine's registered bodies.
func (e *Engine) Bodies() []*Body { return e.bodies }

// AddGroundSegment registers a static ground segment.
func (e *Engine) AddGroundSegment(s *GroundSegment) { e.segments = append(e.segments, s) }

// ClearGroundSegments removes every registered ground segment.
func (e *Engine) ClearGroundSegments() { e.segments = e.segments[:0] }

// Step advances the simulation by one frame, running Substeps
// sub-iterations of dt each. Per substep, per-body operations occur in
// registered order: apply gravity, apply segment contact forces, apply
// motor forces, integrate, then clear forces — grounded on move.go's
// mover.Step pipeline (predict -> broadphase/narrowphase -> solve ->
// integrate -> clear), adapted since this engine's sole active contact
// path is the soft-penalty segment kernel rather than an impulse solver.
func (e *Engine) Step() {
	for s := 0; s < e.Substeps; s++ {
		e.substep(e.Dt)
	}
}

func (e *Engine) substep(dt float64) {
	for _, b := range e.bodies {
		if b.Static {
			continue
		}
		b.applyGravity(e.gravity)
		apply_segment_contacts(b, e.segments)
		b.applyMotorForces()
		b.integrate(dt)
		b.clearForces()
	}
}

// Render draws every body's shapes through the engine's renderer and
// flips the frame. Returns false if the renderer requests a quit; the
// headless and raster backends never do.
func (e *Engine) Render() bool {
	if !e.renderer.ProcessEvents() {
		return false
	}
	e.renderer.Clear()
	for _, b := range e.bodies {
		drawBody(e.renderer, b)
	}
	e.renderer.Present()
	return true
}

func drawBody(r render.Renderer, b *Body) {
	x, y := b.Pos.At(0, 0), b.Pos.At(1, 0)
	rot := b.Rot.Item()
	for _, s := range b.Shapes {
		switch s.Kind {
		case Box:
			r.DrawBoxOutline(x+s.LX, y+s.LY, s.W, s.H, rot, 1, 1, 1)
		case Circle:
			r.DrawCircleOutline(x+s.LX, y+s.LY, s.W, 1, 1, 1)
		}
	}
}

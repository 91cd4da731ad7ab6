// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package physics simulates planar rigid-body dynamics where every state
// quantity is a tensor.Tensor node, so an entire trajectory forms one
// differentiable computation graph. Bodies carry position, velocity,
// rotation, and angular velocity as graph leaves; Engine.Step advances
// every body by semi-implicit Euler integration after applying gravity,
// motor thrust, and soft-penalty ground contact forces.
package physics

import (
	"fmt"
	"log"
	"log/slog"
	"math"
	"sync"

	"github.com/galvlogic/diffphys/tensor"
)

// ShapeKind distinguishes the two supported collision primitives.
type ShapeKind int

const (
	Box ShapeKind = iota
	Circle
)

// Shape is a single collider attached to a Body, in the body's local frame.
type Shape struct {
	Kind ShapeKind

	// Box: full width/height. Circle: W is the radius, H unused.
	W, H float64

	// Local offset from the body origin.
	LX, LY float64
}

// bodyUUID is a process-wide incrementing id, used to order manifold-cache
// pair keys reproducibly rather than by pointer identity — stable across a
// recorded/replayed trajectory, which addresses are not.
var (
	bodyUUID      uint32
	bodyUUIDMutex sync.Mutex
)

// Body is a single rigid body participating in the simulation. All motion
// state is held as requires-grad tensor leaves so that a loss computed
// anywhere downstream of a trajectory can backpropagate into mass,
// position, or any other state this body owns.
type Body struct {
	bid uint32

	Pos  *tensor.Tensor // (2,1) world position
	Vel  *tensor.Tensor // (2,1) linear velocity
	Rot  *tensor.Tensor // (1,1) rotation, radians
	AVel *tensor.Tensor // (1,1) angular velocity
	Mass *tensor.Tensor // (1,1)
	Inertia *tensor.Tensor // (1,1)

	force  *tensor.Tensor // (2,1) accumulator, cleared each step
	torque *tensor.Tensor // (1,1) accumulator, cleared each step

	Shapes []Shape
	Motors []*Motor

	Friction    float64
	Restitution float64

	Static bool

	Arena *tensor.Arena
}

// NewBody constructs a dynamic body at the origin with unit mass and
// inertia, no shapes, friction 0.5, restitution 0.
func NewBody() *Body {
	b := newBodyCommon()
	b.Mass = tensor.Scalar(1).RequiresGrad(true)
	b.Inertia = tensor.Scalar(1).RequiresGrad(true)
	b.Friction = 0.5
	return b
}

// NewStaticBody constructs an immovable body (infinite mass, inverse mass
// zero during contact) at the origin. Static bodies still carry
// requires-grad state tensors per the data model's invariant, even though
// Engine.Step never integrates them.
func NewStaticBody() *Body {
	b := newBodyCommon()
	b.Mass = tensor.Scalar(0).RequiresGrad(true)
	b.Inertia = tensor.Scalar(0).RequiresGrad(true)
	b.Static = true
	return b
}

func newBodyCommon() *Body {
	b := &Body{
		Pos:    tensor.New(2, 1).RequiresGrad(true),
		Vel:    tensor.New(2, 1).RequiresGrad(true),
		Rot:    tensor.Scalar(0).RequiresGrad(true),
		AVel:   tensor.Scalar(0).RequiresGrad(true),
		force:  tensor.New(2, 1),
		torque: tensor.Scalar(0),
		Arena:  tensor.NewArena(),
	}
	bodyUUIDMutex.Lock()
	b.bid = bodyUUID
	if bodyUUID++; bodyUUID == 0 {
		log.Printf("physics: body id counter wrapped")
	}
	bodyUUIDMutex.Unlock()
	return b
}

// ID returns this body's process-wide unique identifier.
func (b *Body) ID() uint32 { return b.bid }

// AddShape attaches a collision shape in the body's local frame.
func (b *Body) AddShape(s Shape) { b.Shapes = append(b.Shapes, s) }

// SetMaterial sets friction ([0,1]) and restitution ([0,1]) and returns the
// body for chaining, matching the teacher's SetMaterial builder idiom.
func (b *Body) SetMaterial(friction, restitution float64) *Body {
	b.Friction = friction
	b.Restitution = restitution
	return b
}

// pairID orders (b, other) by bid so the resulting key is independent of
// call order, used by the manifold cache.
func (b *Body) pairID(other *Body) uint64 {
	a, c := b.bid, other.bid
	if a > c {
		a, c = c, a
	}
	return uint64(a)<<32 + uint64(c)
}

// addScalarLeafConst mutates a (1,1) leaf tensor in place by a plain
// constant, preserving its identity and requires-grad status. Used when
// attaching a motor folds its mass/inertia into the body's own mass and
// inertia leaves rather than building a graph node for a one-time,
// construction-phase adjustment.
func addScalarLeafConst(t *tensor.Tensor, delta float64) *tensor.Tensor {
	t.Set(0, 0, t.Item()+delta)
	return t
}

// ApplyForce adds a plain constant world-space force to this step's force
// accumulator via a tensor Add; gravity is applied this way. A constant
// added to an accumulator that holds only constants yields a tensor that
// does not track gradients. Static bodies ignore it.
func (b *Body) ApplyForce(fx, fy float64) {
	if b.Static {
		return
	}
	b.force = tensor.Add(b.force, tensor.FromValues([]float64{fx, fy}))
}

// ApplyTorque adds a plain constant to this step's torque accumulator.
func (b *Body) ApplyTorque(t float64) {
	if b.Static {
		return
	}
	b.torque = tensor.Add(b.torque, tensor.Scalar(t))
}

// ApplyForceAtPoint applies a constant world-space force at a constant
// world-space point, adding the resulting torque (r x F, 2D scalar cross
// product) about the body's center of mass. Neither the force nor the
// point is a graph quantity; the lever arm is read from the current
// position as a plain float.
func (b *Body) ApplyForceAtPoint(fx, fy, px, py float64) {
	if b.Static {
		return
	}
	rx := px - b.Pos.At(0, 0)
	ry := py - b.Pos.At(1, 0)
	b.ApplyForce(fx, fy)
	b.ApplyTorque(rx*fy - ry*fx)
}

// applyForceAtPointT is ApplyForceAtPoint's tensor-valued counterpart: fx,
// fy, px, py are themselves graph nodes (as produced by the soft contact
// kernel), so the resulting force and torque contribution stay connected
// to whatever upstream state — position, velocity, mass — they were
// derived from.
func (b *Body) applyForceAtPointT(fx, fy, px, py *tensor.Tensor) {
	if b.Static {
		return
	}
	rx := tensor.Sub(px, tensor.Select(b.Pos, 0))
	ry := tensor.Sub(py, tensor.Select(b.Pos, 1))
	b.force = tensor.Add(b.force, tensor.Stack([]*tensor.Tensor{fx, fy}))
	torqueContrib := tensor.Sub(tensor.Mul(rx, fy), tensor.Mul(ry, fx))
	b.torque = tensor.Add(b.torque, torqueContrib)
}

// applyGravity adds a constant g to the force accumulator's y component —
// as if mass were 1 — for a movable body. Dividing by mass happens later,
// in integrate, via a tensor op on b.Mass itself; applying gravity as a
// mass-independent force here, rather than as mass*g, is what keeps the
// per-body free-fall acceleration g/mass differentiable with respect to
// mass instead of cancelling out.
func (b *Body) applyGravity(g float64) {
	if b.Static {
		return
	}
	b.ApplyForce(0, g)
}

// integrate advances velocity then position by semi-implicit Euler:
// v(t+dt) = v(t) + a(t)*dt; x(t+dt) = x(t) + v(t+dt)*dt. Mass and inertia
// are read through tensor ops (not .Item()) so the whole trajectory,
// including its dependence on mass and inertia, stays differentiable.
func (b *Body) integrate(dt float64) {
	if b.Static {
		return
	}
	invMass := tensor.Div(tensor.Scalar(1), b.Mass)
	invInertia := tensor.Div(tensor.Scalar(1), b.Inertia)

	accel := tensor.Scale(tensor.Mul(b.force, invMass), dt)
	b.Vel = tensor.Add(b.Vel, accel)
	velDt := tensor.Scale(b.Vel, dt)
	b.Pos = tensor.Add(b.Pos, velDt)

	angAccel := tensor.Scale(tensor.Mul(b.torque, invInertia), dt)
	b.AVel = tensor.Add(b.AVel, angAccel)
	b.Rot = tensor.Add(b.Rot, tensor.Scale(b.AVel, dt))
}

// clearForces zeros the force and torque accumulators. Called at the end
// of each Engine substep, matching mover.clearForces.
func (b *Body) clearForces() {
	b.force = tensor.New(2, 1)
	b.torque = tensor.Scalar(0)
}

// corners returns the box shape's four world-space corner tensors in
// order TR, TL, BL, BR, derived as pos + R(rot)*(+-w/2, +-h/2). Panics if
// the body has no box shape. Every intermediate tensor is pushed into the
// body's arena; the arena is cleared first, so any caller must run
// Backward on a graph depending on a previous call's corners before
// calling corners again.
func (b *Body) corners(shapeIdx int) []*tensor.Tensor {
	if shapeIdx >= len(b.Shapes) || b.Shapes[shapeIdx].Kind != Box {
		panic(fmt.Sprintf("physics: corners requires a box shape at index %d", shapeIdx))
	}
	b.Arena.Clear()
	s := b.Shapes[shapeIdx]

	hw, hh := s.W/2, s.H/2
	local := [4][2]float64{
		{hw + s.LX, hh + s.LY},  // TR
		{-hw + s.LX, hh + s.LY}, // TL
		{-hw + s.LX, -hh + s.LY}, // BL
		{hw + s.LX, -hh + s.LY},  // BR
	}

	cosT := b.Arena.Put(tensor.Cos(b.Rot))
	sinT := b.Arena.Put(tensor.Sin(b.Rot))

	out := make([]*tensor.Tensor, 0, 4)
	for _, lp := range local {
		lx, ly := lp[0], lp[1]
		// world = pos + R(rot)*(lx,ly), R = [[cos,-sin],[sin,cos]]
		rx := b.Arena.Put(tensor.Sub(
			b.Arena.Put(tensor.Scale(cosT, lx)),
			b.Arena.Put(tensor.Scale(sinT, ly)),
		))
		ry := b.Arena.Put(tensor.Add(
			b.Arena.Put(tensor.Scale(sinT, lx)),
			b.Arena.Put(tensor.Scale(cosT, ly)),
		))
		wx := b.Arena.Put(tensor.Add(tensor.Select(b.Pos, 0), rx))
		wy := b.Arena.Put(tensor.Add(tensor.Select(b.Pos, 1), ry))
		out = append(out, wx, wy)
	}
	return out
}

// Corners returns the flat [x0,y0,x1,y1,x2,y2,x3,y3] scalar tensors for
// the body's first box shape, ordered TR, TL, BL, BR.
func (b *Body) Corners() []*tensor.Tensor { return b.corners(0) }

// AABB returns a conservative axis-aligned bounding radius for broadphase:
// the circumscribing disc of the first box shape (or the circle's
// radius), centered on the body's current position. It intentionally may
// be loose but must never miss a true overlap.
func (b *Body) AABB() (cx, cy, radius float64) {
	cx, cy = b.Pos.At(0, 0), b.Pos.At(1, 0)
	if len(b.Shapes) == 0 {
		return cx, cy, 0
	}
	s := b.Shapes[0]
	switch s.Kind {
	case Circle:
		return cx, cy, s.W
	default:
		hw, hh := s.W/2, s.H/2
		return cx, cy, math.Sqrt(hw*hw + hh*hh)
	}
}

func logDegenerate(kind string, detail any) {
	slog.Warn("physics: degenerate state", "kind", kind, "detail", detail)
}

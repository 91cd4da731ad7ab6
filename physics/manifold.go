// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "math"

// maxManifoldPoints bounds the points tracked per manifold, mirroring
// Bullet's two-point 2D contact manifold.
const maxManifoldPoints = 2

// contactPoint is one point of contact within a manifold, with local
// offsets into both bodies (for re-deriving world position as the bodies
// move) and warm-started impulse accumulators.
type contactPoint struct {
	localA, localB       [2]float64
	normalMass           float64
	tangentMass          float64
	normalImpulse        float64
	tangentImpulse       float64
}

// manifold is a persistent record of contact between two bodies, keyed by
// ordered body pair so lookup is independent of call order. Named and
// shaped after move.go's contactPair: this subsystem is a direct port of
// that bullet-style manifold cache, kept separate from the newer
// snake_case soft-contact kernel in contact.go because the two are
// genuinely different subsystems from different eras of the same
// codebase, not a stylistic inconsistency to paper over.
type manifold struct {
	bodyA, bodyB   *Body
	normalX, normalY float64
	tangentX, tangentY float64
	points         []contactPoint

	combinedFriction    float64
	combinedRestitution float64

	touching    bool
	wasTouching bool
}

// newManifold creates an empty manifold for the ordered pair (a, b).
func newManifold(a, b *Body) *manifold {
	return &manifold{
		bodyA:               a,
		bodyB:               b,
		combinedFriction:     math.Sqrt(a.Friction * b.Friction),
		combinedRestitution: math.Max(a.Restitution, b.Restitution),
	}
}

// ManifoldCache tracks one manifold per overlapping body pair across
// frames so the solver that eventually consumes it can warm-start from
// the previous frame's impulses. The narrowphase that populates per-pair
// contact points is a caller-supplied collaborator (not specified here);
// this type only owns the cache lifecycle.
type ManifoldCache struct {
	pairs  map[uint64]*manifold
	active []*manifold
}

// NewManifoldCache returns an empty cache.
func NewManifoldCache() *ManifoldCache {
	return &ManifoldCache{pairs: make(map[uint64]*manifold)}
}

// BeginFrame copies touching into wasTouching for every cached manifold,
// resets touching to false, and clears the active list. Call once per
// frame before narrowphase runs.
func (c *ManifoldCache) BeginFrame() {
	for _, m := range c.pairs {
		m.wasTouching = m.touching
		m.touching = false
	}
	c.active = c.active[:0]
}

// GetOrCreate returns the manifold for the ordered pair (a, b), creating
// one if this is the first detected overlap between them. The caller
// (narrowphase) is expected to set normal/tangent/points and mark
// touching = true on the result.
func (c *ManifoldCache) GetOrCreate(a, b *Body) *manifold {
	key := a.pairID(b)
	m, ok := c.pairs[key]
	if !ok {
		m = newManifold(a, b)
		c.pairs[key] = m
	}
	return m
}

// ComputeMass fills every point's normal and tangent effective mass using
// k_n = 1/mA + 1/mB + (rA x n)^2/IA + (rB x n)^2/IB (tangent analogous,
// with the tangent direction in place of the normal). A denominator of
// zero (two static bodies) stores zero rather than dividing.
func (m *manifold) ComputeMass() {
	invMA, invIA := bodyInvMass(m.bodyA), bodyInvInertia(m.bodyA)
	invMB, invIB := bodyInvMass(m.bodyB), bodyInvInertia(m.bodyB)

	for i := range m.points {
		p := &m.points[i]

		rAx, rAy := p.localA[0], p.localA[1]
		rBx, rBy := p.localB[0], p.localB[1]

		rAxn := rAx*m.normalY - rAy*m.normalX
		rBxn := rBx*m.normalY - rBy*m.normalX
		kNormal := invMA + invMB + rAxn*rAxn*invIA + rBxn*rBxn*invIB
		if kNormal > 0 {
			p.normalMass = 1 / kNormal
		} else {
			p.normalMass = 0
		}

		rAxt := rAx*m.tangentY - rAy*m.tangentX
		rBxt := rBx*m.tangentY - rBy*m.tangentX
		kTangent := invMA + invMB + rAxt*rAxt*invIA + rBxt*rBxt*invIB
		if kTangent > 0 {
			p.tangentMass = 1 / kTangent
		} else {
			p.tangentMass = 0
		}
	}
}

// bodyInvMass and bodyInvInertia read a body's current mass/inertia as
// plain floats for the manifold cache's bookkeeping math, which is not
// part of the differentiable trajectory graph (no impulse solver consumes
// it yet — see EndFrame).
func bodyInvMass(b *Body) float64 {
	if b.Static {
		return 0
	}
	m := b.Mass.Item()
	if m == 0 {
		return 0
	}
	return 1 / m
}

func bodyInvInertia(b *Body) float64 {
	if b.Static {
		return 0
	}
	i := b.Inertia.Item()
	if i == 0 {
		return 0
	}
	return 1 / i
}

// EndFrame removes every manifold whose touching flag is still false
// (contact ended this frame) and appends every surviving manifold to the
// active list used by an impulse solver. No solver is implemented here:
// spec.md documents normal_impulse/tangent_impulse as reserved fields for
// a solver that was not present in the inspected source, and instructs
// against guessing whether one should be wired up. This cache only keeps
// the field alive and warm-started; it does not resolve contacts.
func (c *ManifoldCache) EndFrame() []*manifold {
	for key, m := range c.pairs {
		if !m.touching {
			delete(c.pairs, key)
			continue
		}
		c.active = append(c.active, m)
	}
	return c.active
}

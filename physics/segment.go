// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "github.com/galvlogic/diffphys/math/lin"

const (
	segmentStiffness = 20000.0
	segmentDamping   = 100.0
	aabbMargin       = 1.0
)

// GroundSegment is a static line segment the soft-penalty contact kernel
// tests box corners against: two endpoints, a unit left-hand outward
// normal, and a friction coefficient. Stiffness and damping are shared
// constants across every segment, matching spec.md's fixed k=20000,
// damping=100. Endpoints, normal, and AABB are plain lin.V2 geometry, not
// tensor.Tensor: a segment is static, so none of it ever needs a gradient.
type GroundSegment struct {
	P1, P2   lin.V2
	Normal   lin.V2
	Friction float64

	// precomputed AABB, expanded by aabbMargin, used for broadphase culling
	min, max lin.V2
}

// NewGroundSegment builds a segment from p1 to p2 with the given friction
// coefficient, computing its left-hand outward normal and AABB. A
// degenerate (zero-length) segment takes normal (0,1) and logs a warning,
// since it carries no direction to derive one from.
func NewGroundSegment(x1, y1, x2, y2, friction float64) *GroundSegment {
	s := &GroundSegment{
		P1:       lin.V2{X: x1, Y: y1},
		P2:       lin.V2{X: x2, Y: y2},
		Friction: friction,
	}
	s.computeNormal()
	s.computeAABB()
	return s
}

func (s *GroundSegment) computeNormal() {
	dir := lin.V2{}
	dir.Sub(&s.P2, &s.P1)
	if dir.AeqZ() {
		s.Normal = lin.V2{X: 0, Y: 1}
		logDegenerate("zero-length ground segment", [2]float64{s.P1.X, s.P1.Y})
		return
	}
	// left-hand outward normal: rotate the unit segment direction 90
	// degrees counter-clockwise, so a segment from (-10,0) to (10,0)
	// gets the upward normal (0,1) a ground underfoot needs.
	dir.Unit()
	s.Normal.Perp(&dir)
}

func (s *GroundSegment) computeAABB() {
	s.min.Min(&s.P1, &s.P2)
	s.max.Max(&s.P1, &s.P2)
	s.min.X -= aabbMargin
	s.min.Y -= aabbMargin
	s.max.X += aabbMargin
	s.max.Y += aabbMargin
}

// overlapsAABB reports whether a circle with the given center/radius
// could plausibly touch this segment's expanded AABB. Broadphase only;
// may be loose but must never miss a true overlap.
func (s *GroundSegment) overlapsAABB(cx, cy, radius float64) bool {
	return cx+radius >= s.min.X && cx-radius <= s.max.X &&
		cy+radius >= s.min.Y && cy-radius <= s.max.Y
}


// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"math"
	"testing"
)

func TestSegmentNormalPointsUp(t *testing.T) {
	s := NewGroundSegment(-10, 0, 10, 0, 0.5)
	if math.Abs(s.Normal.X) > 1e-9 || math.Abs(s.Normal.Y-1) > 1e-9 {
		t.Errorf("normal = (%v,%v), want (0,1)", s.Normal.X, s.Normal.Y)
	}
}

func TestSegmentNormalIsUnitLength(t *testing.T) {
	s := NewGroundSegment(0, 0, 3, 4, 0.5)
	if got := s.Normal.Len(); math.Abs(got-1) > 1e-9 {
		t.Errorf("normal length = %v, want 1", got)
	}
}

func TestDegenerateSegmentNormal(t *testing.T) {
	s := NewGroundSegment(1, 1, 1, 1, 0.5)
	if s.Normal.X != 0 || s.Normal.Y != 1 {
		t.Errorf("degenerate segment normal = (%v,%v), want (0,1)", s.Normal.X, s.Normal.Y)
	}
}

func TestSegmentAABBOverlap(t *testing.T) {
	s := NewGroundSegment(-10, 0, 10, 0, 0.5)
	if !s.overlapsAABB(0, 0.5, 0.5) {
		t.Error("expected body just above the segment to overlap its AABB")
	}
	if s.overlapsAABB(0, 100, 1) {
		t.Error("expected a body far above the segment to not overlap its AABB")
	}
}

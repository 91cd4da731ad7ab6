// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "testing"

func TestEngineStepAppliesGravity(t *testing.T) {
	e := NewEngine(800, 600, 50, 0.01, 4)
	b := NewBody()
	e.SetGravity(-10)
	e.AddBody(b)
	e.Step()
	if b.Vel.At(1, 0) >= 0 {
		t.Error("expected downward velocity after stepping under gravity")
	}
}

func TestEngineStaticBodyNeverIntegrates(t *testing.T) {
	e := NewEngine(800, 600, 50, 0.01, 10)
	e.SetGravity(-10)
	static := NewStaticBody()
	static.Pos.Set(1, 0, 5)
	e.AddBody(static)
	e.Step()
	if static.Pos.At(1, 0) != 5 {
		t.Errorf("static body moved to y=%v", static.Pos.At(1, 0))
	}
}

func TestEngineClearGroundSegments(t *testing.T) {
	e := NewEngine(800, 600, 50, 0.01, 1)
	e.AddGroundSegment(NewGroundSegment(-10, 0, 10, 0, 0.5))
	e.ClearGroundSegments()
	if len(e.segments) != 0 {
		t.Errorf("got %d segments after ClearGroundSegments, want 0", len(e.segments))
	}
}

func TestEngineRenderHeadlessNeverQuits(t *testing.T) {
	e := NewEngine(800, 600, 50, 0.01, 1)
	e.AddBody(NewBody())
	if !e.Render() {
		t.Error("headless renderer should never request quit")
	}
}

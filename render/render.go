// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package render provides the drawing surface physics.Engine draws to.
// It makes a simulation's bodies visible by sending 2D primitives to a
// target. The main steps involved are:
//     • Create a Renderer with NewRaster or NewHeadless.
//     • Each frame, call Clear, draw primitives, then Present.
//     • Call ProcessEvents once per frame to detect a quit request.
// Package render is provided as part of a 2D rigid-body simulation core.
package render

// Renderer is used to draw a frame of 2D primitives in world coordinates.
// Two implementations are provided: NewRaster (software, no GL) and
// NewHeadless (no drawing surface at all). The physics core is agnostic
// between them.
type Renderer interface {
	// Clear erases the frame buffer before drawing.
	Clear()
	// Present flips the frame buffer to the screen (or is a no-op for a
	// backend with no screen).
	Present()
	// ProcessEvents pumps any pending input/window events. Returns false
	// if a quit was requested.
	ProcessEvents() bool

	DrawLine(x1, y1, x2, y2, r, g, b float64)
	DrawBoxOutline(x, y, w, h, rot, r, g, b float64)
	DrawBoxFill(x, y, w, h, rot, r, g, b float64)
	DrawCircleOutline(x, y, radius, r, g, b float64)
	DrawCircleFill(x, y, radius, r, g, b float64)
	DrawTriangleOutline(x1, y1, x2, y2, x3, y3, r, g, b float64)
	DrawTriangleFill(x1, y1, x2, y2, x3, y3, r, g, b float64)

	// DrawText draws s at screen pixel coordinates (sx, sy). Optional:
	// a backend that cannot render text is allowed to no-op.
	DrawText(s string, sx, sy int, r, g, b float64)
}

// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

// headless is a no-op Renderer for running simulations with no drawing
// surface at all: training loops, headless tests, batch rollouts. It is
// not one of the two "legal" backends a windowed application picks
// between; it is the degraded mode a renderer init failure leaves a
// caller in, promoted here to a named, intentionally-constructible type.
type headless struct{}

// NewHeadless returns a Renderer whose every method is a no-op.
// ProcessEvents always reports no quit requested.
func NewHeadless() Renderer { return headless{} }

func (headless) Clear()          {}
func (headless) Present()        {}
func (headless) ProcessEvents() bool { return true }

func (headless) DrawLine(x1, y1, x2, y2, r, g, b float64)                    {}
func (headless) DrawBoxOutline(x, y, w, h, rot, r, g, b float64)             {}
func (headless) DrawBoxFill(x, y, w, h, rot, r, g, b float64)                {}
func (headless) DrawCircleOutline(x, y, radius, r, g, b float64)             {}
func (headless) DrawCircleFill(x, y, radius, r, g, b float64)                {}
func (headless) DrawTriangleOutline(x1, y1, x2, y2, x3, y3, r, g, b float64) {}
func (headless) DrawTriangleFill(x1, y1, x2, y2, x3, y3, r, g, b float64)    {}
func (headless) DrawText(s string, sx, sy int, r, g, b float64)             {}

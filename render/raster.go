// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/galvlogic/diffphys/math/lin"
)

// circleSegments is the polygon approximation used for circle primitives.
const circleSegments = 32

// raster is a software Renderer: every primitive is rasterized into an
// in-memory image.RGBA with golang.org/x/image/vector, with no GL context
// and no OS window. Present has nothing to flip to a screen; it exists so
// callers can treat raster and headless uniformly. A caller that wants the
// pixels calls Image after Present.
type raster struct {
	width, height int
	scale         float64
	img           *image.RGBA
	bg            color.RGBA
	face          font.Face
}

// NewRaster returns a software Renderer over a width x height image.RGBA,
// with world units mapped to pixels by scale (world Y points up, screen Y
// points down). Returns an error — logged via slog.Error, matching the
// renderer-init-failure row of the error handling table — if width,
// height, or scale is non-positive; the Renderer returned with the error
// is a headless one whose calls are no-ops.
func NewRaster(width, height int, scale float64) (Renderer, error) {
	if width <= 0 || height <= 0 || scale <= 0 {
		err := fmt.Errorf("render: invalid raster size %dx%d scale %v", width, height, scale)
		slog.Error("renderer init failed", "err", err)
		return NewHeadless(), err
	}
	r := &raster{
		width:  width,
		height: height,
		scale:  scale,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		bg:     color.RGBA{0, 0, 0, 255},
		face:   basicfont.Face7x13,
	}
	r.Clear()
	return r, nil
}

// Image returns the raster's current frame buffer.
func (r *raster) Image() *image.RGBA { return r.img }

func (r *raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.bg), image.Point{}, draw.Src)
}

// Present is a no-op: there is no window surface to flip. It exists so a
// caller can treat raster and headless identically in a frame loop; call
// Image after Present to read the frame.
func (r *raster) Present() {}

// ProcessEvents always reports no quit requested: a software raster has no
// input device to poll.
func (r *raster) ProcessEvents() bool { return true }

func (r *raster) toScreen(wx, wy float64) (float32, float32) {
	sx := float64(r.width)/2 + wx*r.scale
	sy := float64(r.height)/2 - wy*r.scale
	return float32(sx), float32(sy)
}

func rgba(rr, gg, bb float64) color.RGBA {
	clamp := func(v float64) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{clamp(rr), clamp(gg), clamp(bb), 255}
}

// fillPolygon rasterizes the closed path through pts (world coordinates)
// with the given color.
func (r *raster) fillPolygon(pts [][2]float64, col color.RGBA) {
	if len(pts) < 3 {
		return
	}
	z := vector.NewRasterizer(r.width, r.height)
	x0, y0 := r.toScreen(pts[0][0], pts[0][1])
	z.MoveTo(x0, y0)
	for _, p := range pts[1:] {
		x, y := r.toScreen(p[0], p[1])
		z.LineTo(x, y)
	}
	z.ClosePath()
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(col), image.Point{})
}

// strokePolyline draws each segment of an open or closed polyline as a
// thin quad, approximating a 1.5px stroke.
func (r *raster) strokePolyline(pts [][2]float64, closed bool, col color.RGBA) {
	n := len(pts)
	if n < 2 {
		return
	}
	segs := n - 1
	if closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		r.strokeSegment(a[0], a[1], b[0], b[1], col)
	}
}

func (r *raster) strokeSegment(x1, y1, x2, y2 float64, col color.RGBA) {
	const halfWidth = 0.75 // screen pixels, applied after projection below
	sx1, sy1 := r.toScreen(x1, y1)
	sx2, sy2 := r.toScreen(x2, y2)
	dx, dy := float64(sx2-sx1), float64(sy2-sy1)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*halfWidth, dx/length*halfWidth
	z := vector.NewRasterizer(r.width, r.height)
	z.MoveTo(sx1+float32(nx), sy1+float32(ny))
	z.LineTo(sx2+float32(nx), sy2+float32(ny))
	z.LineTo(sx2-float32(nx), sy2-float32(ny))
	z.LineTo(sx1-float32(nx), sy1-float32(ny))
	z.ClosePath()
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(col), image.Point{})
}

func boxCorners(x, y, w, h, rot float64) [][2]float64 {
	hw, hh := w/2, h/2
	local := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	out := make([][2]float64, 4)
	for i, p := range local {
		rx, ry := lin.RotS(p[0], p[1], rot)
		out[i] = [2]float64{x + rx, y + ry}
	}
	return out
}

func circlePoints(x, y, radius float64) [][2]float64 {
	out := make([][2]float64, circleSegments)
	for i := 0; i < circleSegments; i++ {
		theta := 2 * math.Pi * float64(i) / circleSegments
		out[i] = [2]float64{x + radius*math.Cos(theta), y + radius*math.Sin(theta)}
	}
	return out
}

func (r *raster) DrawLine(x1, y1, x2, y2, rr, gg, bb float64) {
	r.strokeSegment(x1, y1, x2, y2, rgba(rr, gg, bb))
}

func (r *raster) DrawBoxOutline(x, y, w, h, rot, rr, gg, bb float64) {
	r.strokePolyline(boxCorners(x, y, w, h, rot), true, rgba(rr, gg, bb))
}

func (r *raster) DrawBoxFill(x, y, w, h, rot, rr, gg, bb float64) {
	r.fillPolygon(boxCorners(x, y, w, h, rot), rgba(rr, gg, bb))
}

func (r *raster) DrawCircleOutline(x, y, radius, rr, gg, bb float64) {
	r.strokePolyline(circlePoints(x, y, radius), true, rgba(rr, gg, bb))
}

func (r *raster) DrawCircleFill(x, y, radius, rr, gg, bb float64) {
	r.fillPolygon(circlePoints(x, y, radius), rgba(rr, gg, bb))
}

func (r *raster) DrawTriangleOutline(x1, y1, x2, y2, x3, y3, rr, gg, bb float64) {
	pts := [][2]float64{{x1, y1}, {x2, y2}, {x3, y3}}
	r.strokePolyline(pts, true, rgba(rr, gg, bb))
}

func (r *raster) DrawTriangleFill(x1, y1, x2, y2, x3, y3, rr, gg, bb float64) {
	pts := [][2]float64{{x1, y1}, {x2, y2}, {x3, y3}}
	r.fillPolygon(pts, rgba(rr, gg, bb))
}

// DrawText draws s at screen pixel coordinates using a fixed 7x13 bitmap
// font. Screen coordinates, unlike the other primitives, are not world
// coordinates — text is meant for on-screen HUD/debug overlays, not
// world-anchored labels.
func (r *raster) DrawText(s string, sx, sy int, rr, gg, bb float64) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(rgba(rr, gg, bb)),
		Face: r.face,
		Dot:  fixed.P(sx, sy),
	}
	d.DrawString(s)
}

// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"fmt"
	"math"

	"github.com/galvlogic/diffphys/math/lin"
	"github.com/galvlogic/diffphys/tensor"
)

// Motor is a thruster rigidly attached to a body's local frame: a fixed
// rectangular footprint, a fixed thrust direction, and a clamp on the
// magnitude of thrust that can be commanded.
type Motor struct {
	LX, LY       float64 // local offset
	W, H         float64 // rectangular footprint, local frame
	Mass         float64
	Angle        float64 // fixed thrust direction, local frame, radians
	MaxThrust    float64
	thrust       float64
	parent       *Body
}

// NewMotor constructs a motor with the given local offset, footprint,
// mass, fixed thrust angle, and maximum thrust. Thrust starts at zero.
func NewMotor(lx, ly, w, h, mass, angle, maxThrust float64) *Motor {
	return &Motor{LX: lx, LY: ly, W: w, H: h, Mass: mass, Angle: angle, MaxThrust: maxThrust}
}

// SetThrust clamps t to [0, MaxThrust] and stores it as the current
// commanded thrust.
func (m *Motor) SetThrust(t float64) {
	switch {
	case t < 0:
		m.thrust = 0
	case t > m.MaxThrust:
		m.thrust = m.MaxThrust
	default:
		m.thrust = t
	}
}

// Thrust returns the current commanded thrust.
func (m *Motor) Thrust() float64 { return m.thrust }

// footprint returns the motor's axis-aligned local-frame bounding box as
// (min, max) lin.V2 corners.
func (m *Motor) footprint() (min, max lin.V2) {
	return lin.V2{X: m.LX - m.W/2, Y: m.LY - m.H/2}, lin.V2{X: m.LX + m.W/2, Y: m.LY + m.H/2}
}

// overlaps reports whether m and other's axis-aligned local footprints
// overlap, both expressed in the same body's local frame.
func (m *Motor) overlaps(other *Motor) bool {
	aMin, aMax := m.footprint()
	bMin, bMax := other.footprint()
	return aMin.X < bMax.X && bMin.X < aMax.X && aMin.Y < bMax.Y && bMin.Y < aMax.Y
}

// AddMotor attaches m to b. Attaching fails if m's local footprint
// overlaps an already-attached motor's footprint. On success, m's mass
// and parallel-axis inertia contribution are folded into b's mass and
// inertia tensors (mass += motor.mass; inertia += motor.mass*(lx^2+ly^2)).
func (b *Body) AddMotor(m *Motor) error {
	for _, existing := range b.Motors {
		if existing.overlaps(m) {
			return fmt.Errorf("physics: motor at (%.3f,%.3f) overlaps existing motor footprint", m.LX, m.LY)
		}
	}
	m.parent = b
	b.Motors = append(b.Motors, m)

	b.Mass = addScalarLeafConst(b.Mass, m.Mass)
	b.Inertia = addScalarLeafConst(b.Inertia, m.Mass*(m.LX*m.LX+m.LY*m.LY))
	return nil
}

// applyMotorForces applies every attached motor's thrust as a world-space
// force at the motor's world-space position, via applyForceAtPointT.
// Motor thrust magnitudes are treated as non-differentiable constants in
// this design, but rotating them into world space and locating the
// application point both run through tensor ops on the body's rotation
// and position, so a future change could lift thrust itself into the
// graph without touching this loop.
func (b *Body) applyMotorForces() {
	cosR := tensor.Cos(b.Rot)
	sinR := tensor.Sin(b.Rot)
	for _, m := range b.Motors {
		if m.thrust <= 0 {
			continue
		}
		lfx := math.Cos(m.Angle) * m.thrust
		lfy := math.Sin(m.Angle) * m.thrust

		fx := tensor.Sub(tensor.Scale(cosR, lfx), tensor.Scale(sinR, lfy))
		fy := tensor.Add(tensor.Scale(sinR, lfx), tensor.Scale(cosR, lfy))

		wx := tensor.Add(tensor.Select(b.Pos, 0), tensor.Sub(tensor.Scale(cosR, m.LX), tensor.Scale(sinR, m.LY)))
		wy := tensor.Add(tensor.Select(b.Pos, 1), tensor.Add(tensor.Scale(sinR, m.LX), tensor.Scale(cosR, m.LY)))

		b.applyForceAtPointT(fx, fy, wx, wy)
	}
}

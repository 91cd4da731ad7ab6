// Copyright © 2024 Galvanized Logic Inc.

package physics

import "github.com/galvlogic/diffphys/tensor"

// apply_segment_contacts runs the soft-penalty contact kernel for one
// body's box corners against a list of candidate ground segments. Every
// intermediate value is a tensor op, kept alive in the body's arena, so
// the resulting forces are differentiable all the way back to position,
// rotation, velocity, and mass.
//
// For each corner: accumulate a penetration-weighted average of the
// spring-damper force contributed by every segment it overlaps, then
// apply that averaged force at the corner. Averaging (rather than
// summing) smooths the transition across segment seams — a corner
// straddling two segments would otherwise receive a doubled force and
// over-brake.
func apply_segment_contacts(b *Body, segments []*GroundSegment) {
	if len(b.Shapes) == 0 || b.Shapes[0].Kind != Box {
		return
	}
	candidates := broadphaseSegments(b, segments)
	if len(candidates) == 0 {
		return
	}
	flat := b.corners(0) // clears and repopulates b.Arena

	for i := 0; i < 4; i++ {
		cx := flat[2*i]
		cy := flat[2*i+1]
		apply_corner_contacts(b, cx, cy, candidates)
	}
}

// broadphaseSegments narrows segments down to those whose AABB overlaps
// the body's conservative bounding circle, per the coarse-then-precise
// broadphase/narrowphase split: cheap here, so the per-corner loop only
// runs the expensive tensor math against segments that could plausibly
// touch.
func broadphaseSegments(b *Body, segments []*GroundSegment) []*GroundSegment {
	cx, cy, radius := b.AABB()
	candidates := make([]*GroundSegment, 0, len(segments))
	for _, seg := range segments {
		if seg.overlapsAABB(cx, cy, radius) {
			candidates = append(candidates, seg)
		}
	}
	return candidates
}

// apply_corner_contacts computes the weighted-average segment contact
// force at one corner and applies it via apply_force_at_point.
func apply_corner_contacts(b *Body, cx, cy *tensor.Tensor, segments []*GroundSegment) {
	arena := b.Arena
	sumFx := arena.Put(tensor.Scalar(0))
	sumFy := arena.Put(tensor.Scalar(0))
	sumWeight := arena.Put(tensor.Scalar(0))
	anyContact := false

	for _, seg := range segments {
		// the contact test itself (which segment, in or out of range) is an
		// inherently discrete decision and uses plain floats; the force
		// magnitude derived from the penetration depth does not, so it
		// keeps a gradient path back to the corner position.
		dx := cx.Item() - seg.P1.X
		dy := cy.Item() - seg.P1.Y
		dTest := dx*seg.Normal.X + dy*seg.Normal.Y
		if dTest >= 0 {
			continue
		}
		sx, sy := seg.P2.X-seg.P1.X, seg.P2.Y-seg.P1.Y
		segLenSqr := sx*sx + sy*sy
		if segLenSqr == 0 {
			continue
		}
		t := (dx*sx + dy*sy) / segLenSqr
		if t < -0.05 || t > 1.05 {
			continue
		}

		d := arena.Put(tensor.Add(
			arena.Put(tensor.Scale(arena.Put(tensor.Sub(cx, tensor.Scalar(seg.P1.X))), seg.Normal.X)),
			arena.Put(tensor.Scale(arena.Put(tensor.Sub(cy, tensor.Scalar(seg.P1.Y))), seg.Normal.Y)),
		))
		fx, fy, w := segment_contact_force(b, cx, cy, seg, d)
		sumFx = arena.Put(tensor.Add(sumFx, arena.Put(tensor.Mul(w, fx))))
		sumFy = arena.Put(tensor.Add(sumFy, arena.Put(tensor.Mul(w, fy))))
		sumWeight = arena.Put(tensor.Add(sumWeight, w))
		anyContact = true
	}

	if !anyContact {
		return
	}

	avgFx := arena.Put(tensor.Div(sumFx, sumWeight))
	avgFy := arena.Put(tensor.Div(sumFy, sumWeight))
	apply_force_at_point(b, avgFx, avgFy, cx, cy)
}

// segment_contact_force computes one segment's contribution to a corner's
// contact force as (fx, fy, weight) tensors: a spring-damper normal force
// plus a soft (tanh-smoothed) tangential friction force, weighted by
// penetration depth.
func segment_contact_force(b *Body, cx, cy *tensor.Tensor, seg *GroundSegment, d *tensor.Tensor) (fx, fy, weight *tensor.Tensor) {
	arena := b.Arena

	// point velocity at the corner: v_body + omega x r, r = corner - pos.
	rx := arena.Put(tensor.Sub(cx, tensor.Select(b.Pos, 0)))
	ry := arena.Put(tensor.Sub(cy, tensor.Select(b.Pos, 1)))
	omega := b.AVel
	// 2D omega x r = (-omega*ry, omega*rx)
	vpx := arena.Put(tensor.Add(tensor.Select(b.Vel, 0), arena.Put(tensor.Neg(tensor.Mul(omega, ry)))))
	vpy := arena.Put(tensor.Add(tensor.Select(b.Vel, 1), arena.Put(tensor.Mul(omega, rx))))

	// normal spring force magnitude: -k*d (positive, since d<0).
	springMag := arena.Put(tensor.Scale(d, -segmentStiffness))

	// normal damping magnitude: -damping*(v_point . n).
	vDotN := arena.Put(tensor.Add(
		arena.Put(tensor.Scale(vpx, seg.Normal.X)),
		arena.Put(tensor.Scale(vpy, seg.Normal.Y)),
	))
	dampMag := arena.Put(tensor.Scale(vDotN, -segmentDamping))

	normalMag := arena.Put(tensor.Add(springMag, dampMag))

	// tangential velocity v_t = v_point . t_hat.
	vT := arena.Put(tensor.Add(
		arena.Put(tensor.Scale(vpx, -seg.Normal.Y)),
		arena.Put(tensor.Scale(vpy, seg.Normal.X)),
	))

	// soft friction: direction = tanh(2*v_t); magnitude = -mu*normal*direction.
	frictionDir := arena.Put(tensor.Tanh(arena.Put(tensor.Scale(vT, 2))))
	frictionMag := arena.Put(tensor.Neg(arena.Put(tensor.Scale(
		arena.Put(tensor.Mul(normalMag, frictionDir)), seg.Friction))))

	nx := arena.Put(tensor.Scale(normalMag, seg.Normal.X))
	ny := arena.Put(tensor.Scale(normalMag, seg.Normal.Y))
	tx := arena.Put(tensor.Scale(frictionMag, -seg.Normal.Y))
	ty := arena.Put(tensor.Scale(frictionMag, seg.Normal.X))

	fx = arena.Put(tensor.Add(nx, tx))
	fy = arena.Put(tensor.Add(ny, ty))
	weight = arena.Put(tensor.Neg(d))
	return fx, fy, weight
}

// apply_force_at_point applies world-space force (fx, fy), given as
// scalar tensors already connected to the upstream graph, at world point
// (px, py), also tensors. Keeping the whole call tensor-valued (rather
// than reading .Item() here) is what lets a loss on a later step's
// position backpropagate through the contact kernel into this step's
// mass, rotation, and velocity.
func apply_force_at_point(b *Body, fx, fy, px, py *tensor.Tensor) {
	b.applyForceAtPointT(fx, fy, px, py)
}

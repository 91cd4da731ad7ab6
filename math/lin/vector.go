// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Vector performs 2 element vector math needed for 2D physics and geometry.
// This supports the non-differentiable supporting geometry only: segment
// endpoints, normals, AABBs, and broadphase predicates. Quantities that must
// flow gradients use tensor.Tensor instead, never V2.

import "math"

// V2 is a 2 element vector. This can also be used as a point.
type V2 struct {
	X float64 // increments as X moves to the right.
	Y float64 // increments as Y moves up.
}

// Eq (==) returns true if each element in the vector v has the same value
// as the corresponding element in vector a.
func (v *V2) Eq(a *V2) bool { return v.X == a.X && v.Y == a.Y }

// Aeq (~=) almost-equals returns true if all the elements in vector v have
// essentially the same value as the corresponding elements in vector a.
// Used where a direct comparison is unlikely to return true due to floats.
func (v *V2) Aeq(a *V2) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) }

// AeqZ (~=) almost equals zero returns true if the square length of the
// vector is close enough to zero that it makes no difference.
func (v *V2) AeqZ() bool { return v.Dot(v) < Epsilon }

// GetS returns the float64 values of the vector.
func (v *V2) GetS() (x, y float64) { return v.X, v.Y }

// SetS (=) sets the vector elements to the given values.
// The updated vector v is returned.
func (v *V2) SetS(x, y float64) *V2 {
	v.X, v.Y = x, y
	return v
}

// Set (=, copy, clone) sets the elements of vector v to have the same values
// as the elements of vector a. The updated vector v is returned.
func (v *V2) Set(a *V2) *V2 {
	v.X, v.Y = a.X, a.Y
	return v
}

// Min updates the vector v elements to be the minimum of the corresponding
// elements from either vectors a or b. The updated vector v is returned.
func (v *V2) Min(a, b *V2) *V2 {
	v.X, v.Y = math.Min(b.X, a.X), math.Min(b.Y, a.Y)
	return v
}

// Max updates the vector v elements to be the maximum of the corresponding
// elements from either vectors a or b. The updated vector v is returned.
func (v *V2) Max(a, b *V2) *V2 {
	v.X, v.Y = math.Max(b.X, a.X), math.Max(b.Y, a.Y)
	return v
}

// Abs updates vector v to have the absolute value of its own elements.
// The updated vector v is returned.
func (v *V2) Abs() *V2 {
	v.X, v.Y = math.Abs(v.X), math.Abs(v.Y)
	return v
}

// Neg (-) sets vector v to be the negative values of vector a.
// The updated vector v is returned.
func (v *V2) Neg(a *V2) *V2 {
	v.X, v.Y = -a.X, -a.Y
	return v
}

// Add (+) adds vectors a and b storing the results of the addition in v.
// Vector v may be used as one or both of the parameters.
// The updated vector v is returned.
func (v *V2) Add(a, b *V2) *V2 {
	v.X, v.Y = a.X+b.X, a.Y+b.Y
	return v
}

// Sub (-) subtracts vector b from a storing the result in v.
// Vector v may be used as one or both of the parameters.
// The updated vector v is returned.
func (v *V2) Sub(a, b *V2) *V2 {
	v.X, v.Y = a.X-b.X, a.Y-b.Y
	return v
}

// Mult (*) multiplies the elements of vectors a and b storing the result in v.
// The updated vector v is returned.
func (v *V2) Mult(a, b *V2) *V2 {
	v.X, v.Y = a.X*b.X, a.Y*b.Y
	return v
}

// Scale (*=) updates the elements in vector v by multiplying the
// corresponding elements in vector a by the given scalar value.
// The updated vector v is returned.
func (v *V2) Scale(a *V2, s float64) *V2 {
	v.X, v.Y = a.X*s, a.Y*s
	return v
}

// Div (/= inverse-scale) divides each element in v by the given scalar value.
// The updated vector v is returned. Vector v is not changed if scalar s is zero.
func (v *V2) Div(s float64) *V2 {
	if s != 0 {
		inv := 1 / s
		v.X, v.Y = v.X*inv, v.Y*inv
	}
	return v
}

// Dot vector v with input vector a. Both vectors v and a are unchanged.
func (v *V2) Dot(a *V2) float64 { return v.X*a.X + v.Y*a.Y }

// Len returns the length of vector v.
func (v *V2) Len() float64 { return math.Sqrt(v.Dot(v)) }

// LenSqr returns the length of vector v squared.
func (v *V2) LenSqr() float64 { return v.Dot(v) }

// Dist returns the distance between vector end-points v and a.
func (v *V2) Dist(a *V2) float64 { return math.Sqrt(v.DistSqr(a)) }

// DistSqr returns the distance squared between vector end-points v and a.
func (v *V2) DistSqr(a *V2) float64 {
	dx, dy := a.X-v.X, a.Y-v.Y
	return dx*dx + dy*dy
}

// Unit updates vector v such that its length is 1.
// Calling vector v is unchanged if its length is zero.
// The updated vector v is returned.
func (v *V2) Unit() *V2 {
	length := v.Len()
	if length != 0 {
		return v.Div(length)
	}
	return v
}

// Cross returns the 2D (scalar) cross product of v and a: v.X*a.Y - v.Y*a.X.
// This is the z-component of the 3D cross product of the two planar vectors,
// positive when a is counter-clockwise from v.
func (v *V2) Cross(a *V2) float64 { return v.X*a.Y - v.Y*a.X }

// Perp updates v to be vector a rotated 90 degrees counter-clockwise:
// (x,y) -> (-y,x). Used to build a ground segment's normal from its direction.
func (v *V2) Perp(a *V2) *V2 {
	v.X, v.Y = -a.Y, a.X
	return v
}

// RotS rotates scalar vector (x,y) by angle radians and returns the result.
func RotS(x, y, angle float64) (rx, ry float64) {
	c, s := math.Cos(angle), math.Sin(angle)
	return x*c-y*s, x*s+y*c
}

// Rot updates v to be vector a rotated by angle radians about the origin.
// Vector v may be used as the input parameter a.
func (v *V2) Rot(a *V2, angle float64) *V2 {
	v.X, v.Y = RotS(a.X, a.Y, angle)
	return v
}

// Lerp updates vector v to be a fraction of the distance (linear
// interpolation) between the input vectors a and b.
func (v *V2) Lerp(a, b *V2, fraction float64) *V2 {
	v.X = (b.X-a.X)*fraction + a.X
	v.Y = (b.Y-a.Y)*fraction + a.Y
	return v
}

// convenience functions for allocating vectors. Nothing else should allocate.

// NewV2 creates a new, all zero, 2D vector.
func NewV2() *V2 { return &V2{} }

// NewV2S creates a new 2D vector using the given scalars.
func NewV2S(x, y float64) *V2 { return &V2{x, y} }

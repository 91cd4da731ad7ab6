// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package tensor

// Elementwise binary operators: Add, Sub, Mul (Hadamard), Div. Operand
// shapes must match, except that a (1,1) right-hand operand broadcasts to
// the left-hand shape for Mul and Div.

// Add computes a + b elementwise. Gradient: dA = dOut, dB = dOut.
func Add(a, b *Tensor) *Tensor {
	if !sameShape(a, b) {
		shapeMismatch("Add", a, b)
	}
	out := make([]float64, len(a.data))
	for i := range out {
		out[i] = a.data[i] + b.data[i]
	}
	result := makeResult(a.rows, a.cols, out, nil, a, b)
	if result.requiresGrad {
		result.backward = func() {
			if a.requiresGrad {
				a.accumulate(result.grad)
			}
			if b.requiresGrad {
				b.accumulate(result.grad)
			}
		}
	}
	return result
}

// Sub computes a - b elementwise. Gradient: dA = dOut, dB = -dOut.
func Sub(a, b *Tensor) *Tensor {
	if !sameShape(a, b) {
		shapeMismatch("Sub", a, b)
	}
	out := make([]float64, len(a.data))
	for i := range out {
		out[i] = a.data[i] - b.data[i]
	}
	result := makeResult(a.rows, a.cols, out, nil, a, b)
	if result.requiresGrad {
		result.backward = func() {
			if a.requiresGrad {
				a.accumulate(result.grad)
			}
			if b.requiresGrad {
				neg := make([]float64, len(result.grad))
				for i, g := range result.grad {
					neg[i] = -g
				}
				b.accumulate(neg)
			}
		}
	}
	return result
}

// broadcastScalar reports whether b is a (1,1) tensor that should broadcast
// against a's shape for Mul/Div, and panics if the shapes are otherwise
// incompatible.
func broadcastScalar(op string, a, b *Tensor) bool {
	if sameShape(a, b) {
		return false
	}
	if b.rows == 1 && b.cols == 1 {
		return true
	}
	shapeMismatch(op, a, b)
	return false
}

// Mul computes the Hadamard (elementwise) product a*b. A (1,1) b
// broadcasts against a. Gradient: dA = dOut*b, dB = dOut*a, with the
// broadcast side reduced by summation.
func Mul(a, b *Tensor) *Tensor {
	scalarB := broadcastScalar("Mul", a, b)
	out := make([]float64, len(a.data))
	if scalarB {
		s := b.data[0]
		for i, v := range a.data {
			out[i] = v * s
		}
	} else {
		for i := range out {
			out[i] = a.data[i] * b.data[i]
		}
	}
	result := makeResult(a.rows, a.cols, out, nil, a, b)
	if result.requiresGrad {
		result.backward = func() {
			if a.requiresGrad {
				da := make([]float64, len(a.data))
				if scalarB {
					s := b.data[0]
					for i, g := range result.grad {
						da[i] = g * s
					}
				} else {
					for i, g := range result.grad {
						da[i] = g * b.data[i]
					}
				}
				a.accumulate(da)
			}
			if b.requiresGrad {
				if scalarB {
					sum := 0.0
					for i, g := range result.grad {
						sum += g * a.data[i]
					}
					b.accumulate([]float64{sum})
				} else {
					db := make([]float64, len(b.data))
					for i, g := range result.grad {
						db[i] = g * a.data[i]
					}
					b.accumulate(db)
				}
			}
		}
	}
	return result
}

// Div computes the elementwise quotient a/b. A (1,1) b broadcasts against
// a. Gradient follows the quotient rule: dA = dOut/b, dB = -dOut*a/b^2
// (reduced by summation on the broadcast side). Division by zero produces
// +/-Inf with no explicit check; the caller is responsible for not
// requesting it.
func Div(a, b *Tensor) *Tensor {
	scalarB := broadcastScalar("Div", a, b)
	out := make([]float64, len(a.data))
	if scalarB {
		s := b.data[0]
		for i, v := range a.data {
			out[i] = v / s
		}
	} else {
		for i := range out {
			out[i] = a.data[i] / b.data[i]
		}
	}
	result := makeResult(a.rows, a.cols, out, nil, a, b)
	if result.requiresGrad {
		result.backward = func() {
			if a.requiresGrad {
				da := make([]float64, len(a.data))
				if scalarB {
					s := b.data[0]
					for i, g := range result.grad {
						da[i] = g / s
					}
				} else {
					for i, g := range result.grad {
						da[i] = g / b.data[i]
					}
				}
				a.accumulate(da)
			}
			if b.requiresGrad {
				if scalarB {
					s := b.data[0]
					sum := 0.0
					for i, g := range result.grad {
						sum += -g * a.data[i] / (s * s)
					}
					b.accumulate([]float64{sum})
				} else {
					db := make([]float64, len(b.data))
					for i, g := range result.grad {
						db[i] = -g * a.data[i] / (b.data[i] * b.data[i])
					}
					b.accumulate(db)
				}
			}
		}
	}
	return result
}

// Scale multiplies every element of a by a plain (non-tensor) scalar s.
// Gradient: dA = dOut*s.
func Scale(a *Tensor, s float64) *Tensor {
	out := make([]float64, len(a.data))
	for i, v := range a.data {
		out[i] = v * s
	}
	result := makeResult(a.rows, a.cols, out, nil, a)
	if result.requiresGrad {
		result.backward = func() {
			da := make([]float64, len(a.data))
			for i, g := range result.grad {
				da[i] = g * s
			}
			a.accumulate(da)
		}
	}
	return result
}

// Neg negates every element of a. Equivalent to Scale(a, -1).
func Neg(a *Tensor) *Tensor { return Scale(a, -1) }

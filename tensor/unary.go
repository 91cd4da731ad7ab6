// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package tensor

import "math"

// unaryOp builds a shape-preserving elementwise op: forward computes f(v)
// for each element, backward multiplies the incoming gradient by df(v)
// for the corresponding element (the chain rule for a diagonal Jacobian).
func unaryOp(a *Tensor, f func(float64) float64, df func(v, fv float64) float64) *Tensor {
	out := make([]float64, len(a.data))
	for i, v := range a.data {
		out[i] = f(v)
	}
	result := makeResult(a.rows, a.cols, out, nil, a)
	if result.requiresGrad {
		result.backward = func() {
			da := make([]float64, len(a.data))
			for i, g := range result.grad {
				da[i] = g * df(a.data[i], out[i])
			}
			a.accumulate(da)
		}
	}
	return result
}

// Exp computes e^a elementwise. Gradient: dA = dOut*exp(a).
func Exp(a *Tensor) *Tensor {
	return unaryOp(a, math.Exp, func(_, fv float64) float64 { return fv })
}

// Log computes the natural log of a elementwise. Gradient: dA = dOut/a.
func Log(a *Tensor) *Tensor {
	return unaryOp(a, math.Log, func(v, _ float64) float64 { return 1 / v })
}

// Sqrt computes the elementwise square root. Gradient: dA = dOut/(2*sqrt(a)).
func Sqrt(a *Tensor) *Tensor {
	return unaryOp(a, math.Sqrt, func(_, fv float64) float64 { return 1 / (2 * fv) })
}

// Abs computes the elementwise absolute value. Gradient: dA = dOut*sign(a),
// with sign(0) taken as 0.
func Abs(a *Tensor) *Tensor {
	return unaryOp(a, math.Abs, func(v, _ float64) float64 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		default:
			return 0
		}
	})
}

// Pow raises every element of a to the given exponent. Gradient:
// dA = dOut*exponent*a^(exponent-1).
func Pow(a *Tensor, exponent float64) *Tensor {
	return unaryOp(a,
		func(v float64) float64 { return math.Pow(v, exponent) },
		func(v, _ float64) float64 { return exponent * math.Pow(v, exponent-1) },
	)
}

// Sin computes the elementwise sine. Gradient: dA = dOut*cos(a).
func Sin(a *Tensor) *Tensor {
	return unaryOp(a, math.Sin, func(v, _ float64) float64 { return math.Cos(v) })
}

// Cos computes the elementwise cosine. Gradient: dA = -dOut*sin(a).
func Cos(a *Tensor) *Tensor {
	return unaryOp(a, math.Cos, func(v, _ float64) float64 { return -math.Sin(v) })
}

// Clamp restricts every element of a to [lo, hi]. Gradient is zero outside
// the interval and the identity inside it.
func Clamp(a *Tensor, lo, hi float64) *Tensor {
	return unaryOp(a,
		func(v float64) float64 {
			switch {
			case v < lo:
				return lo
			case v > hi:
				return hi
			default:
				return v
			}
		},
		func(v, _ float64) float64 {
			if v < lo || v > hi {
				return 0
			}
			return 1
		},
	)
}

// Relu computes max(0, a) elementwise. Gradient is 1 where a > 0, else 0.
// Available for user networks built atop this package; the soft-friction
// kernel uses Tanh, not Relu.
func Relu(a *Tensor) *Tensor {
	return unaryOp(a,
		func(v float64) float64 {
			if v > 0 {
				return v
			}
			return 0
		},
		func(v, _ float64) float64 {
			if v > 0 {
				return 1
			}
			return 0
		},
	)
}

// Tanh computes the elementwise hyperbolic tangent. Gradient:
// dA = dOut*(1-tanh(a)^2). Used directly by the soft-friction kernel to
// turn tangential velocity into a bounded friction direction.
func Tanh(a *Tensor) *Tensor {
	return unaryOp(a, math.Tanh, func(_, fv float64) float64 { return 1 - fv*fv })
}

// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package tensor

import "fmt"

// Sum reduces all elements of a to a (1,1) tensor. Gradient broadcasts the
// incoming scalar gradient to every element of a.
func Sum(a *Tensor) *Tensor {
	total := 0.0
	for _, v := range a.data {
		total += v
	}
	result := makeResult(1, 1, []float64{total}, nil, a)
	if result.requiresGrad {
		result.backward = func() {
			g := result.grad[0]
			da := make([]float64, len(a.data))
			for i := range da {
				da[i] = g
			}
			a.accumulate(da)
		}
	}
	return result
}

// Mean reduces all elements of a to a (1,1) tensor. Gradient divides the
// incoming scalar gradient by the element count before broadcasting.
func Mean(a *Tensor) *Tensor {
	n := float64(len(a.data))
	total := 0.0
	for _, v := range a.data {
		total += v
	}
	result := makeResult(1, 1, []float64{total / n}, nil, a)
	if result.requiresGrad {
		result.backward = func() {
			g := result.grad[0] / n
			da := make([]float64, len(a.data))
			for i := range da {
				da[i] = g
			}
			a.accumulate(da)
		}
	}
	return result
}

// Max reduces all elements of a to a (1,1) tensor holding the largest
// value. Gradient deposits the full incoming gradient into the single
// argmax cell (ties favor the first occurrence).
func Max(a *Tensor) *Tensor { return extremum(a, true) }

// Min reduces all elements of a to a (1,1) tensor holding the smallest
// value. Gradient deposits the full incoming gradient into the single
// argmin cell (ties favor the first occurrence).
func Min(a *Tensor) *Tensor { return extremum(a, false) }

func extremum(a *Tensor, wantMax bool) *Tensor {
	if len(a.data) == 0 {
		panic("tensor: Max/Min on an empty tensor")
	}
	best := a.data[0]
	bestIdx := 0
	for i, v := range a.data {
		if (wantMax && v > best) || (!wantMax && v < best) {
			best = v
			bestIdx = i
		}
	}
	result := makeResult(1, 1, []float64{best}, nil, a)
	if result.requiresGrad {
		result.backward = func() {
			da := make([]float64, len(a.data))
			da[bestIdx] = result.grad[0]
			a.accumulate(da)
		}
	}
	return result
}

// SumAxis collapses dimension axis (0 = rows, 1 = cols) by summation.
// axis 0 produces a (1, cols) tensor; axis 1 produces a (rows, 1) tensor.
func SumAxis(a *Tensor, axis int) *Tensor { return reduceAxis(a, axis, false) }

// MeanAxis collapses dimension axis (0 = rows, 1 = cols) by averaging.
func MeanAxis(a *Tensor, axis int) *Tensor { return reduceAxis(a, axis, true) }

func reduceAxis(a *Tensor, axis int, mean bool) *Tensor {
	switch axis {
	case 0:
		out := make([]float64, a.cols)
		for c := 0; c < a.cols; c++ {
			s := 0.0
			for r := 0; r < a.rows; r++ {
				s += a.data[c*a.rows+r]
			}
			if mean && a.rows > 0 {
				s /= float64(a.rows)
			}
			out[c] = s
		}
		result := makeResult(1, a.cols, out, nil, a)
		if result.requiresGrad {
			result.backward = func() {
				da := make([]float64, len(a.data))
				for c := 0; c < a.cols; c++ {
					g := result.grad[c]
					if mean && a.rows > 0 {
						g /= float64(a.rows)
					}
					for r := 0; r < a.rows; r++ {
						da[c*a.rows+r] = g
					}
				}
				a.accumulate(da)
			}
		}
		return result
	case 1:
		out := make([]float64, a.rows)
		for r := 0; r < a.rows; r++ {
			s := 0.0
			for c := 0; c < a.cols; c++ {
				s += a.data[c*a.rows+r]
			}
			if mean && a.cols > 0 {
				s /= float64(a.cols)
			}
			out[r] = s
		}
		result := makeResult(a.rows, 1, out, nil, a)
		if result.requiresGrad {
			result.backward = func() {
				da := make([]float64, len(a.data))
				for r := 0; r < a.rows; r++ {
					g := result.grad[r]
					if mean && a.cols > 0 {
						g /= float64(a.cols)
					}
					for c := 0; c < a.cols; c++ {
						da[c*a.rows+r] = g
					}
				}
				a.accumulate(da)
			}
		}
		return result
	default:
		panic(fmt.Sprintf("tensor: axis must be 0 or 1, got %d", axis))
	}
}

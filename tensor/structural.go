// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package tensor

import "fmt"

// Select returns a (1,1) scalar addressing a's flat, column-major index.
// An out-of-range index is a caller bug and panics.
func Select(a *Tensor, idx int) *Tensor {
	if idx < 0 || idx >= len(a.data) {
		panic(fmt.Sprintf("tensor: Select index %d out of range for %d elements", idx, len(a.data)))
	}
	result := makeResult(1, 1, []float64{a.data[idx]}, nil, a)
	if result.requiresGrad {
		result.backward = func() {
			da := make([]float64, len(a.data))
			da[idx] = result.grad[0]
			a.accumulate(da)
		}
	}
	return result
}

// Stack glues n (1,1) scalar tensors into an (n,1) column vector.
// Panics unless every input is a (1,1) tensor.
func Stack(scalars []*Tensor) *Tensor {
	n := len(scalars)
	out := make([]float64, n)
	for i, s := range scalars {
		if s.rows != 1 || s.cols != 1 {
			panic(fmt.Sprintf("tensor: Stack expects (1,1) scalars, element %d has shape (%d,%d)", i, s.rows, s.cols))
		}
		out[i] = s.data[0]
	}
	operands := make([]*Tensor, n)
	copy(operands, scalars)
	result := makeResult(n, 1, out, nil, operands...)
	if result.requiresGrad {
		result.backward = func() {
			for i, s := range scalars {
				if s.requiresGrad {
					s.accumulate([]float64{result.grad[i]})
				}
			}
		}
	}
	return result
}

// Cat concatenates a list of tensors along dim (0 = rows, stacking
// downward; 1 = cols, stacking rightward). All tensors must agree on the
// non-concatenated dimension.
func Cat(tensors []*Tensor, dim int) *Tensor {
	if len(tensors) == 0 {
		panic("tensor: Cat called with no tensors")
	}
	first := tensors[0]
	switch dim {
	case 0:
		cols := first.cols
		totalRows := 0
		for i, t := range tensors {
			if t.cols != cols {
				panic(fmt.Sprintf("tensor: Cat dim 0 expects matching cols, element %d has (%d,%d) vs (%d,%d)", i, t.rows, t.cols, first.rows, first.cols))
			}
			totalRows += t.rows
		}
		out := make([]float64, totalRows*cols)
		rowOffset := 0
		offsets := make([]int, len(tensors))
		for i, t := range tensors {
			offsets[i] = rowOffset
			for c := 0; c < cols; c++ {
				for r := 0; r < t.rows; r++ {
					out[c*totalRows+rowOffset+r] = t.data[c*t.rows+r]
				}
			}
			rowOffset += t.rows
		}
		result := makeResult(totalRows, cols, out, nil, tensors...)
		if result.requiresGrad {
			result.backward = func() {
				for i, t := range tensors {
					if !t.requiresGrad {
						continue
					}
					dt := make([]float64, len(t.data))
					ro := offsets[i]
					for c := 0; c < cols; c++ {
						for r := 0; r < t.rows; r++ {
							dt[c*t.rows+r] = result.grad[c*totalRows+ro+r]
						}
					}
					t.accumulate(dt)
				}
			}
		}
		return result
	case 1:
		rows := first.rows
		totalCols := 0
		for i, t := range tensors {
			if t.rows != rows {
				panic(fmt.Sprintf("tensor: Cat dim 1 expects matching rows, element %d has (%d,%d) vs (%d,%d)", i, t.rows, t.cols, first.rows, first.cols))
			}
			totalCols += t.cols
		}
		out := make([]float64, rows*totalCols)
		colOffset := 0
		offsets := make([]int, len(tensors))
		for i, t := range tensors {
			offsets[i] = colOffset
			copy(out[colOffset*rows:(colOffset+t.cols)*rows], t.data)
			colOffset += t.cols
		}
		result := makeResult(rows, totalCols, out, nil, tensors...)
		if result.requiresGrad {
			result.backward = func() {
				for i, t := range tensors {
					if !t.requiresGrad {
						continue
					}
					co := offsets[i]
					dt := make([]float64, len(t.data))
					copy(dt, result.grad[co*rows:(co+t.cols)*rows])
					t.accumulate(dt)
				}
			}
		}
		return result
	default:
		panic(fmt.Sprintf("tensor: Cat dim must be 0 or 1, got %d", dim))
	}
}

// Reshape returns a with the same data reinterpreted as (rows, cols).
// rows*cols must equal a's element count; mismatch is a caller bug.
func Reshape(a *Tensor, rows, cols int) *Tensor {
	if rows*cols != len(a.data) {
		panic(fmt.Sprintf("tensor: Reshape (%d,%d) has %d elements, source has %d", rows, cols, rows*cols, len(a.data)))
	}
	out := make([]float64, len(a.data))
	copy(out, a.data)
	result := makeResult(rows, cols, out, nil, a)
	if result.requiresGrad {
		result.backward = func() {
			a.accumulate(result.grad)
		}
	}
	return result
}

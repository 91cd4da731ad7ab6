// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package tensor

import "fmt"

// Matmul computes the standard matrix product of a (m,k) and b (k,n),
// producing an (m,n) result. Gradients follow dA = dY*B^T, dB = A^T*dY.
func Matmul(a, b *Tensor) *Tensor {
	if a.cols != b.rows {
		panic(fmt.Sprintf("tensor: Matmul shape mismatch (%d,%d) x (%d,%d)", a.rows, a.cols, b.rows, b.cols))
	}
	m, k, n := a.rows, a.cols, b.cols
	out := make([]float64, m*n)
	for j := 0; j < n; j++ {
		for p := 0; p < k; p++ {
			bv := b.data[j*k+p]
			if bv == 0 {
				continue
			}
			for i := 0; i < m; i++ {
				out[j*m+i] += a.data[p*m+i] * bv
			}
		}
	}
	result := makeResult(m, n, out, nil, a, b)
	if result.requiresGrad {
		result.backward = func() {
			dy := &Tensor{rows: m, cols: n, data: result.grad}
			if a.requiresGrad {
				bt := transposeData(b)
				da := matmulData(dy, bt)
				a.accumulate(da.data)
			}
			if b.requiresGrad {
				at := transposeData(a)
				db := matmulData(at, dy)
				b.accumulate(db.data)
			}
		}
	}
	return result
}

// transposeData returns a plain (no-grad) tensor holding t's transpose,
// used internally by Matmul's backward pass.
func transposeData(t *Tensor) *Tensor {
	out := &Tensor{rows: t.cols, cols: t.rows, data: make([]float64, len(t.data))}
	for c := 0; c < t.cols; c++ {
		for r := 0; r < t.rows; r++ {
			out.data[r*out.rows+c] = t.data[c*t.rows+r]
		}
	}
	return out
}

// matmulData is the plain-tensor matmul used internally for gradient
// computation, avoiding graph construction for intermediate values.
func matmulData(a, b *Tensor) *Tensor {
	m, k, n := a.rows, a.cols, b.cols
	out := make([]float64, m*n)
	for j := 0; j < n; j++ {
		for p := 0; p < k; p++ {
			bv := b.data[j*k+p]
			if bv == 0 {
				continue
			}
			for i := 0; i < m; i++ {
				out[j*m+i] += a.data[p*m+i] * bv
			}
		}
	}
	return &Tensor{rows: m, cols: n, data: out}
}

// Transpose swaps rows and columns. Gradient transposes the incoming
// gradient back.
func Transpose(a *Tensor) *Tensor {
	out := transposeData(a)
	result := makeResult(out.rows, out.cols, out.data, nil, a)
	if result.requiresGrad {
		result.backward = func() {
			dy := &Tensor{rows: result.rows, cols: result.cols, data: result.grad}
			da := transposeData(dy)
			a.accumulate(da.data)
		}
	}
	return result
}

// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package tensor is a reverse-mode automatic differentiation engine over
// dense real-valued matrices. A Tensor holds a (rows, cols) data matrix and,
// optionally, a gradient matrix of identical shape. Operations that combine
// tensors record the tensors they were built from as children and attach a
// backward closure; Backward walks that graph in reverse topological order
// to accumulate gradients into leaf tensors.
//
// Package tensor is provided as the numeric core of a differentiable 2D
// rigid body physics simulation.
package tensor

import (
	"fmt"
	"log/slog"
)

// Tensor is a dense (rows, cols) matrix of float64 values. A 1-D vector is
// represented as (n, 1); a scalar is (1, 1). Data is stored column-major so
// the flat index of element (row, col) is col*rows+row, matching the flat
// addressing used by Select.
type Tensor struct {
	rows, cols int
	data       []float64
	grad       []float64

	requiresGrad bool
	children     []*Tensor
	backward     func()
}

// New creates a zero-filled (rows, cols) tensor. Negative dimensions panic.
func New(rows, cols int) *Tensor {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("tensor: invalid shape (%d,%d)", rows, cols))
	}
	return &Tensor{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// FromValues creates a (len(vals), 1) tensor from a flat value list.
func FromValues(vals []float64) *Tensor {
	t := New(len(vals), 1)
	copy(t.data, vals)
	return t
}

// FromMatrix creates a (rows, cols) tensor from column-major flat data.
// The slice is copied; mutating vals afterward does not affect the tensor.
func FromMatrix(rows, cols int, vals []float64) *Tensor {
	if len(vals) != rows*cols {
		panic(fmt.Sprintf("tensor: FromMatrix expects %d values for (%d,%d), got %d", rows*cols, rows, cols, len(vals)))
	}
	t := New(rows, cols)
	copy(t.data, vals)
	return t
}

// Scalar creates a (1,1) tensor holding v.
func Scalar(v float64) *Tensor { return &Tensor{rows: 1, cols: 1, data: []float64{v}} }

// Rows returns the number of rows.
func (t *Tensor) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *Tensor) Cols() int { return t.cols }

// Len returns the total element count, rows*cols.
func (t *Tensor) Len() int { return t.rows * t.cols }

// index converts a (row, col) pair to a flat, column-major offset. Panics
// on an out-of-range row or column: this is a caller bug, not a runtime
// data condition.
func (t *Tensor) index(row, col int) int {
	if row < 0 || row >= t.rows || col < 0 || col >= t.cols {
		panic(fmt.Sprintf("tensor: index (%d,%d) out of range for shape (%d,%d)", row, col, t.rows, t.cols))
	}
	return col*t.rows + row
}

// At returns the value at (row, col).
func (t *Tensor) At(row, col int) float64 { return t.data[t.index(row, col)] }

// Set assigns the value at (row, col).
func (t *Tensor) Set(row, col int, v float64) { t.data[t.index(row, col)] = v }

// Item returns the single value of a (1,1) tensor. Panics otherwise.
func (t *Tensor) Item() float64 {
	if t.rows != 1 || t.cols != 1 {
		panic(fmt.Sprintf("tensor: Item called on non-scalar shape (%d,%d)", t.rows, t.cols))
	}
	return t.data[0]
}

// Data returns the flat, column-major backing slice. Mutating it mutates
// the tensor directly; this is the "flat data pointer" read-out the public
// numeric API surface requires.
func (t *Tensor) Data() []float64 { return t.data }

// Grad returns the flat, column-major gradient slice, or nil if no
// gradient has been accumulated yet.
func (t *Tensor) Grad() []float64 { return t.grad }

// GradAt returns the gradient value at (row, col), or 0 if no gradient has
// been accumulated yet.
func (t *Tensor) GradAt(row, col int) float64 {
	if t.grad == nil {
		return 0
	}
	return t.grad[t.index(row, col)]
}

// RequiresGrad toggles gradient tracking for this tensor and returns it,
// chainable the way Body.SetMaterial is.
func (t *Tensor) RequiresGrad(v bool) *Tensor {
	t.requiresGrad = v
	return t
}

// Requires reports whether this tensor tracks gradients.
func (t *Tensor) Requires() bool { return t.requiresGrad }

// IsLeaf reports whether this tensor has no children, i.e. it was
// constructed directly rather than produced by an operation.
func (t *Tensor) IsLeaf() bool { return len(t.children) == 0 }

// ZeroGrad zeros the gradient matrix in place, preserving shape. A nil
// gradient matrix is allocated first.
func (t *Tensor) ZeroGrad() {
	if t.grad == nil {
		t.grad = make([]float64, len(t.data))
		return
	}
	for i := range t.grad {
		t.grad[i] = 0
	}
}

// ensureGrad lazily allocates the gradient matrix with t's own shape.
func (t *Tensor) ensureGrad() {
	if t.grad == nil {
		t.grad = make([]float64, len(t.data))
	}
}

// accumulate adds delta into this tensor's gradient matrix, allocating it
// first if necessary. delta must have the same length as t.data.
func (t *Tensor) accumulate(delta []float64) {
	t.ensureGrad()
	for i, d := range delta {
		t.grad[i] += d
	}
}

// sameShape reports whether a and b have identical dimensions.
func sameShape(a, b *Tensor) bool { return a.rows == b.rows && a.cols == b.cols }

// shapeMismatch panics with both offending shapes named, for the ops that
// require matching or broadcastable shapes.
func shapeMismatch(op string, a, b *Tensor) {
	panic(fmt.Sprintf("tensor: %s shape mismatch (%d,%d) vs (%d,%d)", op, a.rows, a.cols, b.rows, b.cols))
}

// makeResult builds the result tensor of a binary op, wiring up
// requires-grad propagation, children, and the backward closure. If
// neither operand requires grad the closure is never attached or invoked.
func makeResult(rows, cols int, data []float64, backward func(), operands ...*Tensor) *Tensor {
	out := &Tensor{rows: rows, cols: cols, data: data}
	needsGrad := false
	children := make([]*Tensor, 0, len(operands))
	for _, op := range operands {
		if op != nil && op.requiresGrad {
			needsGrad = true
		}
	}
	if needsGrad {
		for _, op := range operands {
			if op != nil {
				children = append(children, op)
			}
		}
		out.requiresGrad = true
		out.children = children
		out.backward = backward
	}
	return out
}

func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(%d,%d)%v", t.rows, t.cols, t.data)
}

// warnNoGrad logs when Backward is called on a tensor that never tracked
// gradients, a likely caller mistake rather than a hard failure.
func warnNoGrad() {
	slog.Warn("tensor: Backward called on a tensor that does not require grad")
}

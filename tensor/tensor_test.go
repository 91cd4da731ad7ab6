// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package tensor

import (
	"math"
	"testing"
)

func TestNewShape(t *testing.T) {
	x := New(2, 3)
	if x.Rows() != 2 || x.Cols() != 3 || x.Len() != 6 {
		t.Errorf("got shape (%d,%d) len %d, want (2,3) len 6", x.Rows(), x.Cols(), x.Len())
	}
}

func TestFromMatrixColumnMajor(t *testing.T) {
	// column-major: col0 = [1,2], col1 = [3,4]
	x := FromMatrix(2, 2, []float64{1, 2, 3, 4})
	if x.At(0, 0) != 1 || x.At(1, 0) != 2 || x.At(0, 1) != 3 || x.At(1, 1) != 4 {
		t.Errorf("column-major layout wrong: %v", x.Data())
	}
}

func TestSelectFlatIndex(t *testing.T) {
	x := FromMatrix(2, 2, []float64{1, 2, 3, 4})
	s := Select(x, 2)
	if s.Item() != 3 {
		t.Errorf("Select(2) = %v, want 3", s.Item())
	}
}

func TestSelectOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on out-of-range Select")
		}
	}()
	x := New(2, 2)
	Select(x, 10)
}

func TestReshapeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on Reshape with mismatched element count")
		}
	}()
	x := New(2, 3)
	Reshape(x, 4, 4)
}

func TestAddShapeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on Add shape mismatch")
		}
	}()
	a := New(2, 2)
	b := New(3, 3)
	Add(a, b)
}

func TestAddBackward(t *testing.T) {
	a := Scalar(2).RequiresGrad(true)
	b := Scalar(3).RequiresGrad(true)
	c := Add(a, b)
	c.Backward()
	if c.Item() != 5 {
		t.Errorf("Add forward = %v, want 5", c.Item())
	}
	if a.GradAt(0, 0) != 1 || b.GradAt(0, 0) != 1 {
		t.Errorf("Add backward grads = %v, %v, want 1, 1", a.GradAt(0, 0), b.GradAt(0, 0))
	}
}

func TestMulScalarBroadcastBackward(t *testing.T) {
	a := FromMatrix(2, 1, []float64{2, 3}).RequiresGrad(true)
	s := Scalar(4).RequiresGrad(true)
	c := Mul(a, s)
	loss := Sum(c)
	loss.Backward()
	if c.At(0, 0) != 8 || c.At(1, 0) != 12 {
		t.Errorf("Mul broadcast forward wrong: %v", c.Data())
	}
	if a.GradAt(0, 0) != 4 || a.GradAt(1, 0) != 4 {
		t.Errorf("da wrong: %v", a.Grad())
	}
	if s.GradAt(0, 0) != 5 { // 2+3
		t.Errorf("ds wrong: %v, want 5", s.GradAt(0, 0))
	}
}

func TestMatmulForwardAndBackward(t *testing.T) {
	a := FromMatrix(2, 2, []float64{1, 2, 3, 4}).RequiresGrad(true) // cols: [1,2],[3,4]
	b := FromMatrix(2, 1, []float64{1, 1}).RequiresGrad(true)
	c := Matmul(a, b)
	if c.At(0, 0) != 4 || c.At(1, 0) != 6 {
		t.Errorf("Matmul forward = %v, want [4,6]", c.Data())
	}
	loss := Sum(c)
	loss.Backward()
	// dA = dY * B^T, dY = [1,1]^T, B^T = [1,1] -> dA is 2x2 of ones scaled by b entries
	wantDA := []float64{1, 1, 1, 1}
	for i, v := range a.Grad() {
		if v != wantDA[i] {
			t.Errorf("dA[%d] = %v, want %v", i, v, wantDA[i])
		}
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	a := FromMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
	at := Transpose(a)
	if at.Rows() != 3 || at.Cols() != 2 {
		t.Fatalf("Transpose shape = (%d,%d), want (3,2)", at.Rows(), at.Cols())
	}
	if at.At(0, 0) != a.At(0, 0) || at.At(2, 1) != a.At(1, 2) {
		t.Errorf("Transpose values wrong")
	}
}

func TestSumMeanReduce(t *testing.T) {
	a := FromValues([]float64{1, 2, 3, 4})
	if Sum(a).Item() != 10 {
		t.Errorf("Sum = %v, want 10", Sum(a).Item())
	}
	if Mean(a).Item() != 2.5 {
		t.Errorf("Mean = %v, want 2.5", Mean(a).Item())
	}
}

func TestMaxMinBackwardPicksArgmax(t *testing.T) {
	a := FromValues([]float64{3, 7, 1, 7}).RequiresGrad(true)
	m := Max(a)
	if m.Item() != 7 {
		t.Fatalf("Max = %v, want 7", m.Item())
	}
	m.Backward()
	want := []float64{0, 1, 0, 0} // first occurrence wins ties
	for i, v := range a.Grad() {
		if v != want[i] {
			t.Errorf("Max grad[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestReluTanhGradients(t *testing.T) {
	a := FromValues([]float64{-1, 2}).RequiresGrad(true)
	r := Relu(a)
	Sum(r).Backward()
	if r.At(0, 0) != 0 || r.At(1, 0) != 2 {
		t.Errorf("Relu forward = %v, want [0,2]", r.Data())
	}
	if a.GradAt(0, 0) != 0 || a.GradAt(1, 0) != 1 {
		t.Errorf("Relu grad = %v, want [0,1]", a.Grad())
	}

	b := Scalar(0).RequiresGrad(true)
	th := Tanh(b)
	th.Backward()
	if th.Item() != 0 {
		t.Errorf("Tanh(0) = %v, want 0", th.Item())
	}
	if b.GradAt(0, 0) != 1 {
		t.Errorf("Tanh'(0) = %v, want 1", b.GradAt(0, 0))
	}
}

func TestClampGradientZeroOutsideRange(t *testing.T) {
	a := FromValues([]float64{-2, 0.5, 5}).RequiresGrad(true)
	c := Clamp(a, 0, 1)
	Sum(c).Backward()
	if c.At(0, 0) != 0 || c.At(1, 0) != 0.5 || c.At(2, 0) != 1 {
		t.Errorf("Clamp forward = %v, want [0,0.5,1]", c.Data())
	}
	want := []float64{0, 1, 0}
	for i, v := range a.Grad() {
		if v != want[i] {
			t.Errorf("Clamp grad[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestCatDim0And1(t *testing.T) {
	a := FromMatrix(1, 2, []float64{1, 2})
	b := FromMatrix(1, 2, []float64{3, 4})
	rows := Cat([]*Tensor{a, b}, 0)
	if rows.Rows() != 2 || rows.Cols() != 2 {
		t.Fatalf("Cat dim0 shape = (%d,%d), want (2,2)", rows.Rows(), rows.Cols())
	}
	if rows.At(0, 0) != 1 || rows.At(1, 0) != 3 {
		t.Errorf("Cat dim0 values wrong: %v", rows.Data())
	}

	c := FromMatrix(2, 1, []float64{1, 2})
	d := FromMatrix(2, 1, []float64{3, 4})
	cols := Cat([]*Tensor{c, d}, 1)
	if cols.Rows() != 2 || cols.Cols() != 2 {
		t.Fatalf("Cat dim1 shape = (%d,%d), want (2,2)", cols.Rows(), cols.Cols())
	}
}

func TestStackBackward(t *testing.T) {
	a := Scalar(1).RequiresGrad(true)
	b := Scalar(2).RequiresGrad(true)
	s := Stack([]*Tensor{a, b})
	Sum(s).Backward()
	if a.GradAt(0, 0) != 1 || b.GradAt(0, 0) != 1 {
		t.Errorf("Stack backward grads wrong")
	}
}

func TestGaussianLogProbGradMeanMatchesFormula(t *testing.T) {
	action := Scalar(1.5)
	mean := Scalar(1.0).RequiresGrad(true)
	logStd := Scalar(0.0).RequiresGrad(true) // sigma = 1
	lp := GaussianLogProb(action, mean, logStd)
	lp.Backward()

	sigma := math.Exp(logStd.Item())
	want := (action.Item() - mean.Item()) / (sigma * sigma)
	if math.Abs(mean.GradAt(0, 0)-want) > 1e-9 {
		t.Errorf("d/dmean = %v, want %v", mean.GradAt(0, 0), want)
	}
	if action.Requires() {
		t.Errorf("action must never require grad as a side effect of GaussianLogProb")
	}
}

func TestBackwardSharedSubgraphNoDoubleCount(t *testing.T) {
	// c = a*a via Mul(a,a); both children are the same node.
	a := Scalar(3).RequiresGrad(true)
	c := Mul(a, a)
	c.Backward()
	// d/da (a*a) = 2a = 6
	if math.Abs(a.GradAt(0, 0)-6) > 1e-9 {
		t.Errorf("shared-subgraph grad = %v, want 6", a.GradAt(0, 0))
	}
}

func TestGradientAccumulatesAcrossCalls(t *testing.T) {
	a := Scalar(2).RequiresGrad(true)
	b := Scale(a, 3)
	b.Backward()
	b2 := Scale(a, 3)
	b2.Backward()
	if a.GradAt(0, 0) != 6 {
		t.Errorf("accumulated grad = %v, want 6 after two backward calls", a.GradAt(0, 0))
	}
}

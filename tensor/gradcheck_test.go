// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package tensor

import (
	"math"
	"testing"
)

// gradcheck compares the analytic gradient of f(a).sum() against a central
// difference approximation, element by element, within a relative
// tolerance. a is perturbed and restored in place.
func gradcheck(t *testing.T, name string, a *Tensor, f func(*Tensor) *Tensor, eps float64) {
	t.Helper()
	a.RequiresGrad(true)
	out := Sum(f(a))
	out.Backward()
	analytic := make([]float64, len(a.data))
	copy(analytic, a.Grad())

	for i := range a.data {
		orig := a.data[i]

		a.data[i] = orig + eps
		plus := Sum(f(a)).Item()

		a.data[i] = orig - eps
		minus := Sum(f(a)).Item()

		a.data[i] = orig
		numeric := (plus - minus) / (2 * eps)

		denom := math.Max(1, math.Abs(numeric))
		if math.Abs(numeric-analytic[i])/denom > 1e-3 {
			t.Errorf("%s: grad[%d] analytic=%v numeric=%v", name, i, analytic[i], numeric)
		}
	}
}

func TestGradcheckUnaryOps(t *testing.T) {
	cases := []struct {
		name string
		a    *Tensor
		f    func(*Tensor) *Tensor
	}{
		{"Exp", FromValues([]float64{0.1, -0.5, 1.2}), Exp},
		{"Log", FromValues([]float64{0.5, 1.5, 3.0}), Log},
		{"Sqrt", FromValues([]float64{0.25, 4.0, 9.0}), Sqrt},
		{"Sin", FromValues([]float64{0.3, 1.1, -0.7}), Sin},
		{"Cos", FromValues([]float64{0.3, 1.1, -0.7}), Cos},
		{"Tanh", FromValues([]float64{-1.5, 0.2, 2.0}), Tanh},
		{"Pow3", FromValues([]float64{0.5, 1.5, 2.0}), func(a *Tensor) *Tensor { return Pow(a, 3) }},
	}
	for _, c := range cases {
		gradcheck(t, c.name, c.a, c.f, 1e-5)
	}
}

func TestGradcheckMatmul(t *testing.T) {
	b := FromMatrix(2, 2, []float64{1, 2, 3, 4})
	gradcheck(t, "Matmul", FromMatrix(2, 2, []float64{0.5, -1.2, 2.3, 0.7}),
		func(a *Tensor) *Tensor { return Matmul(a, b) }, 1e-5)
}

func TestGradcheckGaussianLogProbMean(t *testing.T) {
	action := Scalar(0.8)
	logStd := Scalar(-0.2)
	gradcheck(t, "GaussianLogProbMean", Scalar(0.3),
		func(mean *Tensor) *Tensor { return GaussianLogProb(action, mean, logStd) }, 1e-5)
}

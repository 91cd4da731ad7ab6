// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package tensor

import "math"

const halfLog2Pi = 0.9189385332046727 // 0.5*ln(2*pi)

// GaussianLogProb computes the log-density of action under an independent
// diagonal Gaussian with the given mean and log standard deviation, summed
// across dimensions into a (1,1) scalar:
//
//	sum_i [ -0.5*((a_i-mu_i)/sigma_i)^2 - log(sigma_i) - 0.5*log(2*pi) ]
//
// where sigma = exp(logStd). action, mean, and logStd must share shape.
// No gradient flows to action regardless of its requires-grad setting.
func GaussianLogProb(action, mean, logStd *Tensor) *Tensor {
	if !sameShape(action, mean) || !sameShape(action, logStd) {
		panic("tensor: GaussianLogProb operands must share shape")
	}
	n := len(action.data)
	sigma := make([]float64, n)
	diff := make([]float64, n)
	total := 0.0
	for i := 0; i < n; i++ {
		s := math.Exp(logStd.data[i])
		sigma[i] = s
		d := (action.data[i] - mean.data[i]) / s
		diff[i] = d
		total += -0.5*d*d - logStd.data[i] - halfLog2Pi
	}
	result := makeResult(1, 1, []float64{total}, nil, mean, logStd)
	if result.requiresGrad {
		result.backward = func() {
			g := result.grad[0]
			if mean.requiresGrad {
				dmean := make([]float64, n)
				for i := 0; i < n; i++ {
					dmean[i] = g * diff[i] / sigma[i]
				}
				mean.accumulate(dmean)
			}
			if logStd.requiresGrad {
				dlog := make([]float64, n)
				for i := 0; i < n; i++ {
					dlog[i] = g * (diff[i]*diff[i] - 1)
				}
				logStd.accumulate(dlog)
			}
		}
	}
	return result
}

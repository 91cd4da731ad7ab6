// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package optim implements gradient-based parameter optimizers that operate
// directly on tensor.Tensor leaves: SGD, Adam, and AdamW. Each optimizer is
// constructed with a fixed, ordered list of parameter tensors and applies an
// in-place update to their data on Step, reading each parameter's current
// gradient.
package optim

import (
	"math"

	"github.com/galvlogic/diffphys/tensor"
)

// Optimizer is satisfied by every optimizer in this package.
type Optimizer interface {
	Step()
	ZeroGrad()
}

// skip reports whether p should be left untouched this step: either it
// never tracks gradients, or Backward was never run so no gradient has been
// allocated yet.
func skip(p *tensor.Tensor) bool {
	return !p.Requires() || p.Grad() == nil
}

// SGD implements plain stochastic gradient descent: theta -= lr*g.
type SGD struct {
	params []*tensor.Tensor
	lr     float64
}

// NewSGD constructs an SGD optimizer over params with the given learning
// rate. lr must be positive.
func NewSGD(params []*tensor.Tensor, lr float64) *SGD {
	if lr <= 0 {
		panic("optim: SGD learning rate must be positive")
	}
	return &SGD{params: params, lr: lr}
}

// Step applies one SGD update to every tracked parameter. Parameters with
// no gradient or requires-grad false are skipped silently.
func (s *SGD) Step() {
	for _, p := range s.params {
		if skip(p) {
			continue
		}
		data := p.Data()
		grad := p.Grad()
		for i := range data {
			data[i] -= s.lr * grad[i]
		}
	}
}

// ZeroGrad clears the gradient of every tracked parameter.
func (s *SGD) ZeroGrad() {
	for _, p := range s.params {
		p.ZeroGrad()
	}
}

// adamState holds the first and second moment estimates for one parameter.
type adamState struct {
	m, v []float64
}

// Adam implements Adaptive Moment Estimation with bias-corrected moments.
type Adam struct {
	params  []*tensor.Tensor
	lr      float64
	beta1   float64
	beta2   float64
	epsilon float64
	t       int
	state   []adamState
}

// NewAdam constructs an Adam optimizer over params. Typical hyperparameters
// are beta1=0.9, beta2=0.999, epsilon=1e-8.
func NewAdam(params []*tensor.Tensor, lr, beta1, beta2, epsilon float64) *Adam {
	if lr <= 0 {
		panic("optim: Adam learning rate must be positive")
	}
	state := make([]adamState, len(params))
	for i, p := range params {
		state[i] = adamState{m: make([]float64, p.Len()), v: make([]float64, p.Len())}
	}
	return &Adam{params: params, lr: lr, beta1: beta1, beta2: beta2, epsilon: epsilon, state: state}
}

// Step advances the shared time counter once and applies the bias-corrected
// Adam update to every tracked parameter with an allocated gradient.
func (a *Adam) Step() {
	a.t++
	biasCorrection1 := 1 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1 - math.Pow(a.beta2, float64(a.t))
	for i, p := range a.params {
		if skip(p) {
			continue
		}
		a.applyTo(p, &a.state[i], biasCorrection1, biasCorrection2)
	}
}

func (a *Adam) applyTo(p *tensor.Tensor, st *adamState, bc1, bc2 float64) {
	data := p.Data()
	grad := p.Grad()
	for i, g := range grad {
		st.m[i] = a.beta1*st.m[i] + (1-a.beta1)*g
		st.v[i] = a.beta2*st.v[i] + (1-a.beta2)*g*g
		mhat := st.m[i] / bc1
		vhat := st.v[i] / bc2
		data[i] -= a.lr * mhat / (math.Sqrt(vhat) + a.epsilon)
	}
}

// ZeroGrad clears the gradient of every tracked parameter. Moment state is
// untouched; only an explicit new optimizer resets it.
func (a *Adam) ZeroGrad() {
	for _, p := range a.params {
		p.ZeroGrad()
	}
}

// AdamW behaves like Adam but applies decoupled weight decay to each
// parameter before the moment-based update, rather than folding it into
// the gradient.
type AdamW struct {
	adam   *Adam
	decay  float64
	params []*tensor.Tensor
}

// NewAdamW constructs an AdamW optimizer over params with the given
// weight decay coefficient in addition to the usual Adam hyperparameters.
func NewAdamW(params []*tensor.Tensor, lr, beta1, beta2, epsilon, weightDecay float64) *AdamW {
	return &AdamW{
		adam:   NewAdam(params, lr, beta1, beta2, epsilon),
		decay:  weightDecay,
		params: params,
	}
}

// Step applies decoupled weight decay (theta -= lr*wd*theta) to every
// tracked parameter with an allocated gradient, then the Adam update.
func (w *AdamW) Step() {
	for _, p := range w.params {
		if skip(p) {
			continue
		}
		data := p.Data()
		for i := range data {
			data[i] -= w.adam.lr * w.decay * data[i]
		}
	}
	w.adam.Step()
}

// ZeroGrad clears the gradient of every tracked parameter.
func (w *AdamW) ZeroGrad() {
	w.adam.ZeroGrad()
}

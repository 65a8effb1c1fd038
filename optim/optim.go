// Package optim provides gradient descent optimizers.
//
// Optimizers update parameter data in place from a gradient map
// produced by the backward pass; the updates themselves are never
// recorded on the tape.
package optim

import (
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

// Optimizer updates parameters from computed gradients.
type Optimizer interface {
	// Step applies one update using the gradients in the map.
	// Parameters absent from the map are left untouched.
	Step(grads map[*tensor.Tensor]*tensor.Tensor)

	// ZeroGrad clears any accumulated in-place gradients.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float64
}

// SGD is stochastic gradient descent with optional momentum.
type SGD struct {
	params   []*tensor.Tensor
	lr       float64
	momentum float64
	velocity map[*tensor.Tensor][]float64
}

// NewSGD creates an SGD optimizer.
func NewSGD(params []*tensor.Tensor, lr, momentum float64) *SGD {
	return &SGD{
		params:   params,
		lr:       lr,
		momentum: momentum,
		velocity: make(map[*tensor.Tensor][]float64),
	}
}

// Step applies p -= lr·g, with velocity accumulation when momentum is
// set.
func (o *SGD) Step(grads map[*tensor.Tensor]*tensor.Tensor) {
	for _, p := range o.params {
		g, ok := grads[p]
		if !ok {
			continue
		}
		data, gdata := p.Data(), g.Data()
		if o.momentum == 0 {
			for i := range data {
				data[i] -= o.lr * gdata[i]
			}
			continue
		}
		v, ok := o.velocity[p]
		if !ok {
			v = make([]float64, len(data))
			o.velocity[p] = v
		}
		for i := range data {
			v[i] = o.momentum*v[i] - o.lr*gdata[i]
			data[i] += v[i]
		}
	}
}

// ZeroGrad clears parameter gradients.
func (o *SGD) ZeroGrad() { zeroGrads(o.params) }

// LR returns the learning rate.
func (o *SGD) LR() float64 { return o.lr }

func zeroGrads(params []*tensor.Tensor) {
	for _, p := range params {
		p.SetGrad(nil)
	}
}

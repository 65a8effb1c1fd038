package optim

import (
	"math"

	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

// Adam implements the Adam optimizer (Kingma & Ba, 2014).
type Adam struct {
	params []*tensor.Tensor
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	step   int
	m      map[*tensor.Tensor][]float64
	v      map[*tensor.Tensor][]float64
}

// NewAdam creates an Adam optimizer with the usual defaults
// (beta1 0.9, beta2 0.999, eps 1e-8).
func NewAdam(params []*tensor.Tensor, lr float64) *Adam {
	return &Adam{
		params: params,
		lr:     lr,
		beta1:  0.9,
		beta2:  0.999,
		eps:    1e-8,
		m:      make(map[*tensor.Tensor][]float64),
		v:      make(map[*tensor.Tensor][]float64),
	}
}

// Step applies one bias-corrected Adam update.
func (o *Adam) Step(grads map[*tensor.Tensor]*tensor.Tensor) {
	o.step++
	c1 := 1 - math.Pow(o.beta1, float64(o.step))
	c2 := 1 - math.Pow(o.beta2, float64(o.step))
	for _, p := range o.params {
		g, ok := grads[p]
		if !ok {
			continue
		}
		data, gdata := p.Data(), g.Data()
		m, ok := o.m[p]
		if !ok {
			m = make([]float64, len(data))
			o.m[p] = m
		}
		v, ok := o.v[p]
		if !ok {
			v = make([]float64, len(data))
			o.v[p] = v
		}
		for i := range data {
			m[i] = o.beta1*m[i] + (1-o.beta1)*gdata[i]
			v[i] = o.beta2*v[i] + (1-o.beta2)*gdata[i]*gdata[i]
			mhat := m[i] / c1
			vhat := v[i] / c2
			data[i] -= o.lr * mhat / (math.Sqrt(vhat) + o.eps)
		}
	}
}

// ZeroGrad clears parameter gradients.
func (o *Adam) ZeroGrad() { zeroGrads(o.params) }

// LR returns the learning rate.
func (o *Adam) LR() float64 { return o.lr }

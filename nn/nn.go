// Package nn provides neural network building blocks for solving
// differential equations: linear layers, activations, loss reductions
// and a ready-made fully connected network.
package nn

import (
	"math"
	"math/rand"

	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
	"github.com/neuraldiff-ml/neuraldiff/problem/condition"
	"github.com/neuraldiff-ml/neuraldiff/problem/sampler"
)

// Module is anything holding trainable parameters.
type Module interface {
	Parameters() []*tensor.Tensor
}

// Linear is a fully connected layer: y = x·W + b.
type Linear struct {
	W *tensor.Tensor // (in, out)
	B *tensor.Tensor // (1, out), broadcast over rows
}

// NewLinear creates a linear layer with Xavier-uniform weights.
func NewLinear(in, out int, rng *rand.Rand, b tensor.Backend) *Linear {
	limit := math.Sqrt(6.0 / float64(in+out))
	w := tensor.Uniform(tensor.Shape{in, out}, -limit, limit, rng, b)
	bias := tensor.Zeros(tensor.Shape{1, out}, b)
	return &Linear{W: w.RequireGrad(), B: bias.RequireGrad()}
}

// Forward applies the layer.
func (l *Linear) Forward(x *tensor.Tensor) *tensor.Tensor {
	return x.MatMul(l.W).Add(l.B)
}

// Parameters returns the weight and bias.
func (l *Linear) Parameters() []*tensor.Tensor {
	return []*tensor.Tensor{l.W, l.B}
}

// Tanh is the hyperbolic tangent activation.
type Tanh struct{}

// Forward applies the activation elementwise.
func (Tanh) Forward(x *tensor.Tensor) *tensor.Tensor { return x.Tanh() }

// MSELoss reduces to the mean squared error.
type MSELoss struct{}

// NewMSELoss creates an MSE reduction.
func NewMSELoss() *MSELoss { return &MSELoss{} }

// Forward computes mean((pred - target)^2) as a (1, 1) tensor.
func (*MSELoss) Forward(pred, target *tensor.Tensor) *tensor.Tensor {
	d := pred.Sub(target)
	return d.Mul(d).Mean()
}

// L1Loss reduces to the mean (or summed) absolute error.
type L1Loss struct {
	sum bool
}

// NewL1Loss creates a mean absolute error reduction.
func NewL1Loss() *L1Loss { return &L1Loss{} }

// NewSummedL1Loss creates a summed absolute error reduction.
func NewSummedL1Loss() *L1Loss { return &L1Loss{sum: true} }

// Forward computes the reduced |pred - target| as a (1, 1) tensor.
func (l *L1Loss) Forward(pred, target *tensor.Tensor) *tensor.Tensor {
	d := pred.Sub(target).Abs()
	if l.sum {
		return d.Sum()
	}
	return d.Mean()
}

// StackInputs concatenates batch columns into one (n, totalDim) input
// in the given order, marking tracked columns for gradient
// accumulation. A nil order stacks in batch column order.
func StackInputs(batch *sampler.Batch, order []string, track condition.GradientPolicy, b tensor.Backend) *tensor.Tensor {
	if order == nil {
		order = batch.Names()
	}
	cols := make([]*tensor.Tensor, 0, len(order))
	for _, name := range order {
		col := batch.Get(name)
		if track.Tracks(name) {
			col.RequireGrad()
		}
		cols = append(cols, col)
	}
	return b.Concat(cols)
}

package nn

import (
	"math/rand"

	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
	"github.com/neuraldiff-ml/neuraldiff/problem/condition"
	"github.com/neuraldiff-ml/neuraldiff/problem/sampler"
)

// FCNConfig configures a fully connected network.
type FCNConfig struct {
	InputDim  int
	OutputDim int // default 1
	Width     int // default 100
	Depth     int // hidden layers, default 5
	RNG       *rand.Rand
	Backend   tensor.Backend
}

// FCN is a fully connected tanh network mapping stacked variable
// samples to solution values. It implements condition.Model.
type FCN struct {
	layers  []*Linear
	act     Tanh
	order   []string
	backend tensor.Backend
}

// NewFCN creates a network of Depth hidden tanh layers of the given
// Width.
func NewFCN(cfg FCNConfig) *FCN {
	if cfg.OutputDim == 0 {
		cfg.OutputDim = 1
	}
	if cfg.Width == 0 {
		cfg.Width = 100
	}
	if cfg.Depth == 0 {
		cfg.Depth = 5
	}
	if cfg.RNG == nil {
		cfg.RNG = rand.New(rand.NewSource(1))
	}
	layers := make([]*Linear, 0, cfg.Depth+1)
	in := cfg.InputDim
	for i := 0; i < cfg.Depth; i++ {
		layers = append(layers, NewLinear(in, cfg.Width, cfg.RNG, cfg.Backend))
		in = cfg.Width
	}
	layers = append(layers, NewLinear(in, cfg.OutputDim, cfg.RNG, cfg.Backend))
	return &FCN{layers: layers, backend: cfg.Backend}
}

// BindVariables fixes the input stacking order. Called by the trainer
// with the problem's declaration order so every condition feeds the
// network identically.
func (f *FCN) BindVariables(order []string) {
	f.order = append([]string(nil), order...)
}

// Forward stacks the batch columns and runs the network.
func (f *FCN) Forward(batch *sampler.Batch, track condition.GradientPolicy) *tensor.Tensor {
	x := StackInputs(batch, f.order, track, f.backend)
	return f.Apply(x)
}

// Apply runs the network on an already stacked input.
func (f *FCN) Apply(x *tensor.Tensor) *tensor.Tensor {
	for i, l := range f.layers {
		x = l.Forward(x)
		if i < len(f.layers)-1 {
			x = f.act.Forward(x)
		}
	}
	return x
}

// Parameters returns all layer parameters.
func (f *FCN) Parameters() []*tensor.Tensor {
	var out []*tensor.Tensor
	for _, l := range f.layers {
		out = append(out, l.Parameters()...)
	}
	return out
}

package condition

import (
	"fmt"
	"math/rand"

	"github.com/neuraldiff-ml/neuraldiff/geometry"
	"github.com/neuraldiff-ml/neuraldiff/internal/autodiff"
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
	"github.com/neuraldiff-ml/neuraldiff/problem/sampler"
	"github.com/neuraldiff-ml/neuraldiff/problem/variable"
)

// BoundaryFunc evaluates the prescribed boundary values on a sampled
// batch.
type BoundaryFunc func(batch *sampler.Batch) *tensor.Tensor

// BoundaryConfig configures Dirichlet and Neumann conditions. Func,
// Norm and Backend are required. BoundaryVariable may be left empty
// and bound later with SetBoundaryVariable.
type BoundaryConfig struct {
	Name             string // default per condition type
	Func             BoundaryFunc
	Norm             Norm
	Weight           float64          // default 1
	DatasetSize      sampler.SizeSpec // default Total(5000)
	Strategy         string           // interior strategy, default random
	BoundaryStrategy string           // default random
	BoundaryVariable string
	Track            GradientPolicy
	Plot             PlotSelection
	RNG              *rand.Rand
	Backend          tensor.Backend
}

// boundaryCore is the sampling state shared by boundary conditions.
type boundaryCore struct {
	base
	fn      BoundaryFunc
	creator sampler.BoundaryDataCreator
}

func newBoundaryCore(cfg BoundaryConfig, defaultName string, defaultTrack GradientPolicy) boundaryCore {
	if cfg.Name == "" {
		cfg.Name = defaultName
	}
	if cfg.Weight < 0 {
		panic(fmt.Sprintf("condition: negative weight %v for %q", cfg.Weight, cfg.Name))
	}
	if cfg.Weight == 0 {
		cfg.Weight = 1
	}
	if cfg.DatasetSize.IsZero() {
		cfg.DatasetSize = sampler.Total(5000)
	}
	if cfg.Strategy == "" {
		cfg.Strategy = geometry.StrategyRandom
	}
	if cfg.BoundaryStrategy == "" {
		cfg.BoundaryStrategy = geometry.StrategyRandom
	}
	if cfg.RNG == nil {
		cfg.RNG = rand.New(rand.NewSource(1))
	}
	return boundaryCore{
		base: base{
			name:   cfg.Name,
			norm:   cfg.Norm,
			weight: cfg.Weight,
			track:  cfg.Track.orDefault(defaultTrack),
			plot:   cfg.Plot,
		},
		fn: cfg.Func,
		creator: sampler.BoundaryDataCreator{
			DataCreator: sampler.DataCreator{
				DatasetSize: cfg.DatasetSize,
				Strategy:    cfg.Strategy,
				RNG:         cfg.RNG,
				Backend:     cfg.Backend,
			},
			BoundaryVariable: cfg.BoundaryVariable,
			BoundaryStrategy: cfg.BoundaryStrategy,
		},
	}
}

// Register binds the condition and its sampler to the variables.
func (c *boundaryCore) Register(vars *variable.Set) error {
	if err := c.base.Register(vars); err != nil {
		return err
	}
	c.creator.Variables = vars
	return nil
}

// SetBoundaryVariable names the variable the condition constrains.
// Usually called by the problem when the condition is added.
func (c *boundaryCore) SetBoundaryVariable(name string) {
	c.creator.BoundaryVariable = name
}

// BoundaryVariable returns the constrained variable name.
func (c *boundaryCore) BoundaryVariable() string { return c.creator.BoundaryVariable }

// PlotVariables resolves the plot selection, pinning the "all" case to
// the boundary variable.
func (c *boundaryCore) PlotVariables() []string {
	var names []string
	if c.vars != nil {
		names = c.vars.Names()
	}
	return c.plot.Resolve(names, c.creator.BoundaryVariable)
}

// sampleBatch draws one epoch's boundary batch and its target values.
func (c *boundaryCore) sampleBatch() (*sampler.Batch, *tensor.Tensor, error) {
	if !c.IsRegistered() {
		return nil, nil, ErrNotRegistered
	}
	batch, err := c.creator.GetData()
	if err != nil {
		return nil, nil, err
	}
	return batch, c.fn(batch), nil
}

func (c *boundaryCore) serializeBoundary() Record {
	rec := c.serialize()
	rec["boundary_function"] = funcName(c.fn)
	rec["boundary_variable"] = c.creator.BoundaryVariable
	rec["dataset_size"] = c.creator.DatasetSize.Describe()
	rec["sampling_strategy"] = c.creator.Strategy
	rec["boundary_sampling_strategy"] = c.creator.BoundaryStrategy
	return rec
}

// DirichletCondition prescribes the model value on a domain boundary.
type DirichletCondition struct {
	boundaryCore
}

// NewDirichlet creates a Dirichlet boundary condition. Panics if the
// weight is negative.
func NewDirichlet(cfg BoundaryConfig) *DirichletCondition {
	return &DirichletCondition{
		boundaryCore: newBoundaryCore(cfg, "dirichlet", TrackNone()),
	}
}

// GetData samples boundary points and the prescribed values.
func (c *DirichletCondition) GetData() (*Data, error) {
	batch, target, err := c.sampleBatch()
	if err != nil {
		return nil, err
	}
	return &Data{Batch: batch, Target: target}, nil
}

// Forward reduces the model predictions against the prescribed values.
func (c *DirichletCondition) Forward(model Model, data *Data) (*tensor.Tensor, error) {
	u := model.Forward(data.Batch, c.track)
	return c.weigh(c.norm.Forward(u, data.Target)), nil
}

// Serialize describes the condition.
func (c *DirichletCondition) Serialize() Record { return c.serializeBoundary() }

// NeumannCondition prescribes the outward normal derivative of the
// model on a domain boundary.
type NeumannCondition struct {
	boundaryCore
}

// NewNeumann creates a Neumann boundary condition. Gradients for the
// boundary variable must stay tracked, so the default policy is
// TrackAll. Panics if the weight is negative.
func NewNeumann(cfg BoundaryConfig) *NeumannCondition {
	return &NeumannCondition{
		boundaryCore: newBoundaryCore(cfg, "neumann", TrackAll()),
	}
}

// GetData samples boundary points, prescribed derivative values and
// the outward unit normals at the sample points.
func (c *NeumannCondition) GetData() (*Data, error) {
	batch, target, err := c.sampleBatch()
	if err != nil {
		return nil, err
	}
	bv := c.vars.Get(c.creator.BoundaryVariable)
	if bv == nil {
		return nil, fmt.Errorf("condition: boundary variable %q not in variable set", c.creator.BoundaryVariable)
	}
	normals := bv.Domain.BoundaryNormal(batch.Get(bv.Name))
	return &Data{Batch: batch, Target: target, Normals: normals}, nil
}

// Forward differentiates the model output with respect to the boundary
// variable through the gradient tape, projects onto the outward
// normals and reduces against the prescribed values. The tape keeps
// recording during the inner backward pass, so the resulting loss is
// still differentiable with respect to the model parameters.
func (c *NeumannCondition) Forward(model Model, data *Data) (*tensor.Tensor, error) {
	if !c.track.Tracks(c.creator.BoundaryVariable) {
		return nil, fmt.Errorf("condition: gradient tracking disabled for boundary variable %q", c.creator.BoundaryVariable)
	}
	u := model.Forward(data.Batch, c.track)
	be, ok := u.Backend().(autodiff.BackwardCapable)
	if !ok {
		return nil, fmt.Errorf("condition: backend %q cannot differentiate the model output", u.Backend().Name())
	}
	grads := autodiff.Backward(u, be)

	grad := grads[data.Batch.Get(c.creator.BoundaryVariable)]
	if grad == nil {
		return nil, fmt.Errorf("condition: no gradient recorded for boundary variable %q", c.creator.BoundaryVariable)
	}
	normalDeriv := grad.Mul(data.Normals).SumCols()
	return c.weigh(c.norm.Forward(normalDeriv, data.Target)), nil
}

// Serialize describes the condition.
func (c *NeumannCondition) Serialize() Record { return c.serializeBoundary() }

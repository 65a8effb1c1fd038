package condition

import (
	"fmt"
	"math/rand"

	"github.com/neuraldiff-ml/neuraldiff/geometry"
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
	"github.com/neuraldiff-ml/neuraldiff/problem/sampler"
	"github.com/neuraldiff-ml/neuraldiff/problem/variable"
)

// ResidualFunc evaluates the differential equation residual for a
// model output and the batch it was computed on. A solved equation
// has residual zero everywhere.
type ResidualFunc func(u *tensor.Tensor, batch *sampler.Batch) *tensor.Tensor

// DiffEqConfig configures a DiffEqCondition. Residual, Norm and
// Backend are required; everything else has defaults.
type DiffEqConfig struct {
	Name        string // default "pde"
	Residual    ResidualFunc
	Norm        Norm
	Weight      float64          // default 1
	DatasetSize sampler.SizeSpec // default Total(10000)
	Strategy    string           // default random
	Track       GradientPolicy   // default TrackAll
	Plot        PlotSelection
	RNG         *rand.Rand
	Backend     tensor.Backend
}

// DiffEqCondition enforces a differential equation on interior samples
// of the whole variable domain.
type DiffEqCondition struct {
	base
	residual ResidualFunc
	creator  sampler.DataCreator
}

// NewDiffEq creates a differential equation condition. Panics if the
// weight is negative.
func NewDiffEq(cfg DiffEqConfig) *DiffEqCondition {
	if cfg.Name == "" {
		cfg.Name = "pde"
	}
	if cfg.Weight < 0 {
		panic(fmt.Sprintf("condition: negative weight %v for %q", cfg.Weight, cfg.Name))
	}
	if cfg.Weight == 0 {
		cfg.Weight = 1
	}
	if cfg.DatasetSize.IsZero() {
		cfg.DatasetSize = sampler.Total(10000)
	}
	if cfg.Strategy == "" {
		cfg.Strategy = geometry.StrategyRandom
	}
	if cfg.RNG == nil {
		cfg.RNG = rand.New(rand.NewSource(1))
	}
	return &DiffEqCondition{
		base: base{
			name:   cfg.Name,
			norm:   cfg.Norm,
			weight: cfg.Weight,
			track:  cfg.Track.orDefault(TrackAll()),
			plot:   cfg.Plot,
		},
		residual: cfg.Residual,
		creator: sampler.DataCreator{
			DatasetSize: cfg.DatasetSize,
			Strategy:    cfg.Strategy,
			RNG:         cfg.RNG,
			Backend:     cfg.Backend,
		},
	}
}

// Register binds the condition and its sampler to the variables.
func (c *DiffEqCondition) Register(vars *variable.Set) error {
	if err := c.base.Register(vars); err != nil {
		return err
	}
	c.creator.Variables = vars
	return nil
}

// GetData samples interior points and a zero residual target.
func (c *DiffEqCondition) GetData() (*Data, error) {
	if !c.IsRegistered() {
		return nil, ErrNotRegistered
	}
	batch, err := c.creator.GetData()
	if err != nil {
		return nil, err
	}
	target := tensor.Zeros(tensor.Shape{batch.Rows(), 1}, c.creator.Backend)
	return &Data{Batch: batch, Target: target}, nil
}

// Forward evaluates the model, forms the residual and reduces it
// against the zero target.
func (c *DiffEqCondition) Forward(model Model, data *Data) (*tensor.Tensor, error) {
	u := model.Forward(data.Batch, c.track)
	res := c.residual(u, data.Batch)
	return c.weigh(c.norm.Forward(res, data.Target)), nil
}

// Serialize describes the condition.
func (c *DiffEqCondition) Serialize() Record {
	rec := c.serialize()
	rec["pde"] = funcName(c.residual)
	rec["dataset_size"] = c.creator.DatasetSize.Describe()
	rec["sampling_strategy"] = c.creator.Strategy
	return rec
}

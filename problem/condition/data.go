package condition

import (
	"fmt"

	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
	"github.com/neuraldiff-ml/neuraldiff/problem/sampler"
)

// DataConfig configures a DataCondition. Points, Values and Norm are
// required.
type DataConfig struct {
	Name   string // default "data"
	Points *sampler.Batch
	Values *tensor.Tensor
	Norm   Norm
	Weight float64        // default 1
	Track  GradientPolicy // default TrackNone
	Plot   PlotSelection
}

// DataCondition fits the model to externally measured values at fixed
// sample points. The same data is returned every epoch.
type DataCondition struct {
	base
	points *sampler.Batch
	values *tensor.Tensor
}

// NewData creates a data-fit condition. Panics if the weight is
// negative.
func NewData(cfg DataConfig) *DataCondition {
	if cfg.Name == "" {
		cfg.Name = "data"
	}
	if cfg.Weight < 0 {
		panic(fmt.Sprintf("condition: negative weight %v for %q", cfg.Weight, cfg.Name))
	}
	if cfg.Weight == 0 {
		cfg.Weight = 1
	}
	return &DataCondition{
		base: base{
			name:   cfg.Name,
			norm:   cfg.Norm,
			weight: cfg.Weight,
			track:  cfg.Track.orDefault(TrackNone()),
			plot:   cfg.Plot,
		},
		points: cfg.Points,
		values: cfg.Values,
	}
}

// GetData returns the stored measurement points and values.
func (c *DataCondition) GetData() (*Data, error) {
	if !c.IsRegistered() {
		return nil, ErrNotRegistered
	}
	return &Data{Batch: c.points, Target: c.values}, nil
}

// Forward reduces the model predictions against the measured values.
func (c *DataCondition) Forward(model Model, data *Data) (*tensor.Tensor, error) {
	u := model.Forward(data.Batch, c.track)
	return c.weigh(c.norm.Forward(u, data.Target)), nil
}

// Serialize describes the condition.
func (c *DataCondition) Serialize() Record {
	rec := c.serialize()
	rec["dataset_size"] = c.values.Rows()
	return rec
}

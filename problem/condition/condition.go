// Package condition defines the training objectives of a neural
// differential equation problem.
//
// Each condition contributes one loss term: the PDE residual on
// interior samples, a fit to measured data, or a Dirichlet or Neumann
// constraint on a domain boundary. Conditions are registered with a
// problem's variable set once and sample a fresh batch every epoch.
package condition

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
	"github.com/neuraldiff-ml/neuraldiff/problem/sampler"
	"github.com/neuraldiff-ml/neuraldiff/problem/variable"
)

// Model maps a batch of variable samples to predictions. The policy
// tells the model which input columns need gradient tracking.
type Model interface {
	Forward(batch *sampler.Batch, track GradientPolicy) *tensor.Tensor
}

// Norm reduces a prediction/target pair to a scalar loss tensor.
type Norm interface {
	Forward(pred, target *tensor.Tensor) *tensor.Tensor
}

// Data is one epoch's training data for a condition.
type Data struct {
	Batch  *sampler.Batch
	Target *tensor.Tensor

	// Normals holds outward unit boundary normals for Neumann
	// conditions, nil otherwise.
	Normals *tensor.Tensor
}

// Record is a serialized condition description.
type Record map[string]any

// Condition is one loss term of a problem.
type Condition interface {
	// Name identifies the condition within its problem.
	Name() string

	// GetData samples the condition's training data for one epoch.
	// Returns ErrNotRegistered before Register has been called.
	GetData() (*Data, error)

	// Forward computes the condition's weighted loss on data obtained
	// from GetData.
	Forward(model Model, data *Data) (*tensor.Tensor, error)

	// Serialize describes the condition's configuration.
	Serialize() Record

	// IsRegistered reports whether the condition is bound to a
	// variable set.
	IsRegistered() bool

	// Register binds the condition to the problem's variables.
	// Registering twice is an error.
	Register(vars *variable.Set) error
}

// base carries the state shared by all conditions.
type base struct {
	name   string
	norm   Norm
	weight float64
	track  GradientPolicy
	plot   PlotSelection
	vars   *variable.Set
}

func (b *base) Name() string       { return b.name }
func (b *base) IsRegistered() bool { return b.vars != nil }

func (b *base) Register(vars *variable.Set) error {
	if b.vars != nil {
		return ErrAlreadyRegistered
	}
	b.vars = vars
	return nil
}

// PlotVariables returns the variables a monitoring layer should plot
// this condition over.
func (b *base) PlotVariables() []string {
	if b.vars == nil {
		return b.plot.Resolve(nil, "")
	}
	return b.plot.Resolve(b.vars.Names(), "")
}

func (b *base) serialize() Record {
	return Record{
		"name":            b.name,
		"norm":            normName(b.norm),
		"weight":          b.weight,
		"track_gradients": b.track.Describe(),
	}
}

// weigh scales a loss by the condition weight.
func (b *base) weigh(loss *tensor.Tensor) *tensor.Tensor {
	if b.weight == 1 {
		return loss
	}
	return loss.Scale(b.weight)
}

// normName reports the reduction's concrete type name, e.g. "MSELoss".
func normName(n Norm) string {
	if n == nil {
		return ""
	}
	t := reflect.TypeOf(n)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// funcName reports the short name of a function value, for serialized
// records.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.IsNil() {
		return ""
	}
	full := runtime.FuncForPC(v.Pointer()).Name()
	if i := strings.LastIndexByte(full, '/'); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.IndexByte(full, '.'); i >= 0 {
		full = full[i+1:]
	}
	return strings.TrimSuffix(full, "-fm")
}

package trainer_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuraldiff-ml/neuraldiff/geometry"
	"github.com/neuraldiff-ml/neuraldiff/internal/autodiff"
	"github.com/neuraldiff-ml/neuraldiff/internal/backend/cpu"
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
	"github.com/neuraldiff-ml/neuraldiff/nn"
	"github.com/neuraldiff-ml/neuraldiff/optim"
	"github.com/neuraldiff-ml/neuraldiff/problem/condition"
	"github.com/neuraldiff-ml/neuraldiff/problem/sampler"
	"github.com/neuraldiff-ml/neuraldiff/problem/variable"
	"github.com/neuraldiff-ml/neuraldiff/trainer"
)

func fitSetup(t *testing.T) (*trainer.Problem, *nn.FCN, *autodiff.AutodiffBackend) {
	t.Helper()
	b := autodiff.New(cpu.New())

	iv, err := geometry.NewInterval(0, 1)
	require.NoError(t, err)
	vars, err := variable.NewSet(variable.New("x", iv))
	require.NoError(t, err)

	points := sampler.NewBatch()
	points.Put("x", tensor.New([]float64{0, 0.33, 0.66, 1}, tensor.Shape{4, 1}, b))
	values := tensor.New([]float64{1, 1, 1, 1}, tensor.Shape{4, 1}, b)

	p := trainer.NewProblem(vars)
	require.NoError(t, p.AddCondition(condition.NewData(condition.DataConfig{
		Points: points,
		Values: values,
		Norm:   nn.NewMSELoss(),
	})))

	model := nn.NewFCN(nn.FCNConfig{
		InputDim: 1,
		Width:    8,
		Depth:    1,
		RNG:      rand.New(rand.NewSource(5)),
		Backend:  b,
	})
	return p, model, b
}

func TestTrainReducesLoss(t *testing.T) {
	p, model, b := fitSetup(t)
	tr, err := trainer.New(trainer.Config{
		Problem:   p,
		Model:     model,
		Optimizer: optim.NewAdam(model.Parameters(), 0.05),
		Backend:   b,
		LogEvery:  -1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tr.RunID())

	first, err := tr.Train(context.Background(), 1)
	require.NoError(t, err)
	last, err := tr.Train(context.Background(), 100)
	require.NoError(t, err)
	assert.Less(t, last, first)
}

func TestTrainDiffEqProblem(t *testing.T) {
	// du/dx = 0 with u(0) = 1: the residual consumes a gradient from
	// the tape, so training exercises the second-order path.
	b := autodiff.New(cpu.New())
	iv, err := geometry.NewInterval(0, 1)
	require.NoError(t, err)
	vars, err := variable.NewSet(variable.New("x", iv))
	require.NoError(t, err)

	p := trainer.NewProblem(vars)

	pde := condition.NewDiffEq(condition.DiffEqConfig{
		Residual: func(u *tensor.Tensor, batch *sampler.Batch) *tensor.Tensor {
			grads := autodiff.Backward(u, b)
			return grads[batch.Get("x")]
		},
		Norm:        nn.NewMSELoss(),
		DatasetSize: sampler.Total(16),
		RNG:         rand.New(rand.NewSource(1)),
		Backend:     b,
	})
	require.NoError(t, p.AddCondition(pde))

	bc := condition.NewDirichlet(condition.BoundaryConfig{
		Func: func(batch *sampler.Batch) *tensor.Tensor {
			return tensor.Ones(tensor.Shape{batch.Rows(), 1}, b)
		},
		Norm:             nn.NewMSELoss(),
		DatasetSize:      sampler.Total(4),
		Strategy:         geometry.StrategyGrid,
		BoundaryStrategy: geometry.StrategyLowerBoundOnly,
		RNG:              rand.New(rand.NewSource(2)),
		Backend:          b,
	})
	require.NoError(t, p.AddBoundaryCondition("x", bc))

	model := nn.NewFCN(nn.FCNConfig{
		InputDim: 1,
		Width:    8,
		Depth:    1,
		RNG:      rand.New(rand.NewSource(5)),
		Backend:  b,
	})
	tr, err := trainer.New(trainer.Config{
		Problem:   p,
		Model:     model,
		Optimizer: optim.NewAdam(model.Parameters(), 0.02),
		Backend:   b,
		LogEvery:  -1,
	})
	require.NoError(t, err)

	first, err := tr.Train(context.Background(), 1)
	require.NoError(t, err)
	last, err := tr.Train(context.Background(), 60)
	require.NoError(t, err)
	assert.Less(t, last, first)
}

func TestTrainHonorsContext(t *testing.T) {
	p, model, b := fitSetup(t)
	tr, err := trainer.New(trainer.Config{
		Problem:   p,
		Model:     model,
		Optimizer: optim.NewSGD(model.Parameters(), 0.01, 0),
		Backend:   b,
		LogEvery:  -1,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tr.Train(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProblemRejectsDuplicates(t *testing.T) {
	p, _, b := fitSetup(t)
	dup := condition.NewData(condition.DataConfig{
		Points: sampler.NewBatch(),
		Values: tensor.Zeros(tensor.Shape{1, 1}, b),
		Norm:   nn.NewMSELoss(),
	})
	assert.Error(t, p.AddCondition(dup), "name \"data\" already taken")
}

func TestProblemUnknownBoundaryVariable(t *testing.T) {
	p, _, b := fitSetup(t)
	bc := condition.NewDirichlet(condition.BoundaryConfig{
		Func: func(batch *sampler.Batch) *tensor.Tensor {
			return tensor.Zeros(tensor.Shape{batch.Rows(), 1}, b)
		},
		Norm:    nn.NewMSELoss(),
		Backend: b,
	})
	assert.Error(t, p.AddBoundaryCondition("y", bc))
}

func TestTrainerDescribe(t *testing.T) {
	p, model, b := fitSetup(t)
	tr, err := trainer.New(trainer.Config{
		Problem:   p,
		Model:     model,
		Optimizer: optim.NewAdam(model.Parameters(), 0.01),
		Backend:   b,
		LogEvery:  -1,
	})
	require.NoError(t, err)

	desc := tr.Describe()
	assert.Equal(t, tr.RunID(), desc["run_id"])
	assert.Equal(t, []string{"x"}, desc["variables"])
	assert.Equal(t, 0.01, desc["learning_rate"])
	conds := desc["conditions"].([]condition.Record)
	require.Len(t, conds, 1)
	assert.Equal(t, "data", conds[0]["name"])
}

func TestTrainerConfigValidation(t *testing.T) {
	_, err := trainer.New(trainer.Config{})
	assert.Error(t, err)

	p, model, b := fitSetup(t)
	empty := trainer.NewProblem(p.Variables)
	_, err = trainer.New(trainer.Config{
		Problem:   empty,
		Model:     model,
		Optimizer: optim.NewAdam(model.Parameters(), 0.01),
		Backend:   b,
	})
	assert.Error(t, err)
}

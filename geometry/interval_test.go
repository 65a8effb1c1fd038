package geometry

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuraldiff-ml/neuraldiff/internal/backend/cpu"
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

func TestNewInterval(t *testing.T) {
	iv, err := NewInterval(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, iv.Dim())
	assert.Equal(t, 1.0, iv.Length())

	_, err = NewInterval(1, 1)
	assert.Error(t, err)
	_, err = NewInterval(2, 1)
	assert.Error(t, err)
}

func TestIntervalSampleInteriorRandom(t *testing.T) {
	b := cpu.New()
	rng := rand.New(rand.NewSource(42))
	iv, _ := NewInterval(-1, 3)

	pts, err := iv.SampleInterior(200, StrategyRandom, rng, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{200, 1}, pts.Shape())
	for i := 0; i < pts.Rows(); i++ {
		x := pts.At(i, 0)
		assert.GreaterOrEqual(t, x, -1.0)
		assert.Less(t, x, 3.0)
	}
}

func TestIntervalSampleInteriorGrid(t *testing.T) {
	b := cpu.New()
	iv, _ := NewInterval(0, 1)

	pts, err := iv.SampleInterior(5, StrategyGrid, nil, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, pts.Data())
}

func TestIntervalSampleBoundary(t *testing.T) {
	b := cpu.New()
	rng := rand.New(rand.NewSource(7))
	iv, _ := NewInterval(0, 2)

	pts, err := iv.SampleBoundary(4, StrategyGrid, rng, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 0, 2}, pts.Data())

	pts, err = iv.SampleBoundary(3, StrategyLowerBoundOnly, rng, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, pts.Data())

	pts, err = iv.SampleBoundary(3, StrategyUpperBoundOnly, rng, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2}, pts.Data())

	pts, err = iv.SampleBoundary(50, StrategyRandom, rng, b)
	require.NoError(t, err)
	for i := 0; i < pts.Rows(); i++ {
		x := pts.At(i, 0)
		assert.True(t, x == 0 || x == 2)
	}
}

func TestIntervalUnknownStrategy(t *testing.T) {
	b := cpu.New()
	iv, _ := NewInterval(0, 1)

	_, err := iv.SampleInterior(10, "sobol", nil, b)
	assert.True(t, errors.Is(err, ErrUnknownStrategy))

	_, err = iv.SampleBoundary(10, "sobol", nil, b)
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}

func TestIntervalMembership(t *testing.T) {
	b := cpu.New()
	iv, _ := NewInterval(0, 1)
	pts := tensor.New([]float64{0, 0.5, 1, 1.5}, tensor.Shape{4, 1}, b)

	assert.Equal(t, []bool{true, true, true, false}, iv.IsInside(pts))
	assert.Equal(t, []bool{true, false, true, false}, iv.IsOnBoundary(pts))
}

func TestIntervalBoundaryNormal(t *testing.T) {
	b := cpu.New()
	iv, _ := NewInterval(0, 1)
	pts := tensor.New([]float64{0, 1}, tensor.Shape{2, 1}, b)

	normals := iv.BoundaryNormal(pts)
	assert.Equal(t, []float64{-1, 1}, normals.Data())
}

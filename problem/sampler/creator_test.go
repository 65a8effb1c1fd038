package sampler

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuraldiff-ml/neuraldiff/geometry"
	"github.com/neuraldiff-ml/neuraldiff/internal/backend/cpu"
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
	"github.com/neuraldiff-ml/neuraldiff/problem/variable"
)

func testVars(t *testing.T) *variable.Set {
	t.Helper()
	rect, err := geometry.NewRectangle(geometry.Point2{X: 0, Y: 0}, geometry.Point2{X: 1, Y: 0}, geometry.Point2{X: 0, Y: 1})
	require.NoError(t, err)
	iv, err := geometry.NewInterval(0, 1)
	require.NoError(t, err)
	vs, err := variable.NewSet(variable.New("x", rect), variable.New("t", iv))
	require.NoError(t, err)
	return vs
}

func TestDataCreatorNilVariables(t *testing.T) {
	c := &DataCreator{DatasetSize: Total(100), Strategy: geometry.StrategyRandom}
	batch, err := c.GetData()
	assert.NoError(t, err)
	assert.Nil(t, batch)
}

func TestDataCreatorRandomScalar(t *testing.T) {
	c := &DataCreator{
		Variables:   testVars(t),
		DatasetSize: Total(500),
		Strategy:    geometry.StrategyRandom,
		RNG:         rand.New(rand.NewSource(0)),
		Backend:     cpu.New(),
	}
	batch, err := c.GetData()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "t"}, batch.Names())
	assert.Equal(t, tensor.Shape{500, 2}, batch.Get("x").Shape())
	assert.Equal(t, tensor.Shape{500, 1}, batch.Get("t").Shape())
}

func TestDataCreatorGridScalarMeshes(t *testing.T) {
	// r = ceil(1000^(1/3)) = 10: the rectangle gets 100 grid points,
	// the interval 10, meshed to 1000 rows with x varying slowest.
	c := &DataCreator{
		Variables:   testVars(t),
		DatasetSize: Total(1000),
		Strategy:    geometry.StrategyGrid,
		RNG:         rand.New(rand.NewSource(0)),
		Backend:     cpu.New(),
	}
	batch, err := c.GetData()
	require.NoError(t, err)
	x, tt := batch.Get("x"), batch.Get("t")
	require.Equal(t, 1000, batch.Rows())
	assert.Equal(t, tensor.Shape{1000, 2}, x.Shape())
	assert.Equal(t, tensor.Shape{1000, 1}, tt.Shape())

	// each x point held fixed over 10 consecutive t points
	for j := 0; j < 10; j++ {
		assert.Equal(t, x.At(0, 0), x.At(j, 0))
		assert.Equal(t, x.At(0, 1), x.At(j, 1))
	}
	assert.NotEqual(t, x.At(0, 1), x.At(10, 1))
	// t repeats with period 10
	assert.Equal(t, tt.At(0, 0), tt.At(10, 0))
	assert.Equal(t, tt.At(3, 0), tt.At(13, 0))
}

func TestDataCreatorGridPowRounding(t *testing.T) {
	// 100 points over 2 dims must give resolution 10, not 11.
	assert.Equal(t, 10, axisResolution(100, 2))
	assert.Equal(t, 10, axisResolution(1000, 3))
	assert.Equal(t, 8, axisResolution(50, 2))
	assert.Equal(t, 4, axisResolution(50, 3))
	assert.Equal(t, 15, axisResolution(15, 1))
}

func TestDataCreatorPerVariableGrid(t *testing.T) {
	iv, _ := geometry.NewInterval(0, 1)
	vs, err := variable.NewSet(variable.New("a", iv), variable.New("b", iv))
	require.NoError(t, err)

	c := &DataCreator{
		Variables:   vs,
		DatasetSize: PerVariable(4, 3),
		Strategy:    geometry.StrategyGrid,
		Backend:     cpu.New(),
	}
	batch, err := c.GetData()
	require.NoError(t, err)
	require.Equal(t, 12, batch.Rows())

	a, b := batch.Get("a"), batch.Get("b")
	// a varies slowest: constant over blocks of 3
	assert.Equal(t, a.At(0, 0), a.At(2, 0))
	assert.NotEqual(t, a.At(0, 0), a.At(3, 0))
	// b cycles with period 3
	assert.Equal(t, b.At(0, 0), b.At(3, 0))
}

func TestDataCreatorNamedRandomZips(t *testing.T) {
	c := &DataCreator{
		Variables:   testVars(t),
		DatasetSize: Named(map[string]int{"x": 2, "t": 5}),
		Strategy:    geometry.StrategyRandom,
		RNG:         rand.New(rand.NewSource(0)),
		Backend:     cpu.New(),
	}
	batch, err := c.GetData()
	require.NoError(t, err)
	// random lists multiply out to a common total, no meshing
	assert.Equal(t, 10, batch.Rows())
	assert.Equal(t, tensor.Shape{10, 2}, batch.Get("x").Shape())
	assert.Equal(t, tensor.Shape{10, 1}, batch.Get("t").Shape())
}

func TestDataCreatorInvalidSize(t *testing.T) {
	c := &DataCreator{
		Variables:   testVars(t),
		DatasetSize: SizeOf("42"),
		Strategy:    geometry.StrategyRandom,
		Backend:     cpu.New(),
	}
	_, err := c.GetData()
	assert.True(t, errors.Is(err, ErrInvalidSizeSpec))

	c.DatasetSize = SizeOf(map[string]int{"x": 2, "t": 5})
	c.RNG = rand.New(rand.NewSource(0))
	_, err = c.GetData()
	assert.NoError(t, err)
}

func TestDataCreatorUnknownStrategyLazy(t *testing.T) {
	c := &DataCreator{DatasetSize: Total(10), Strategy: "sobol"}
	// without variables the creator is inert
	batch, err := c.GetData()
	assert.NoError(t, err)
	assert.Nil(t, batch)

	c.Variables = testVars(t)
	c.Backend = cpu.New()
	_, err = c.GetData()
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}

func TestDataCreatorMissingNamedCount(t *testing.T) {
	c := &DataCreator{
		Variables:   testVars(t),
		DatasetSize: Named(map[string]int{"x": 2}),
		Strategy:    geometry.StrategyGrid,
		Backend:     cpu.New(),
	}
	_, err := c.GetData()
	assert.True(t, errors.Is(err, ErrInvalidSizeSpec))
}

func TestSizeSpecDescribe(t *testing.T) {
	assert.Equal(t, 50, Total(50).Describe())
	assert.Equal(t, []int{2, 3}, PerVariable(2, 3).Describe())
	assert.Equal(t, map[string]int{"x": 1}, Named(map[string]int{"x": 1}).Describe())
	assert.Equal(t, "42", SizeOf("42").Describe())
	assert.True(t, SizeSpec{}.IsZero())
	assert.False(t, Total(1).IsZero())
}

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

func boundaryCreator(t *testing.T, size SizeSpec, inner, bound string) *BoundaryDataCreator {
	t.Helper()
	return &BoundaryDataCreator{
		DataCreator: DataCreator{
			Variables:   testVars(t),
			DatasetSize: size,
			Strategy:    inner,
			RNG:         rand.New(rand.NewSource(0)),
			Backend:     cpu.New(),
		},
		BoundaryVariable: "t",
		BoundaryStrategy: bound,
	}
}

func TestBoundaryCreatorRandomInnerZips(t *testing.T) {
	c := boundaryCreator(t, Total(500), geometry.StrategyRandom, geometry.StrategyGrid)
	batch, err := c.GetData()
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{500, 2}, batch.Get("x").Shape())
	assert.Equal(t, tensor.Shape{500, 1}, batch.Get("t").Shape())
	for i := 0; i < 500; i++ {
		v := batch.Get("t").At(i, 0)
		assert.True(t, v == 0 || v == 1)
	}
}

func TestBoundaryCreatorLowerBoundOnly(t *testing.T) {
	// one boundary point, the whole budget goes to the interior grid:
	// ceil(sqrt(50)) = 8 per axis of the rectangle, 64 rows total.
	c := boundaryCreator(t, Total(50), geometry.StrategyGrid, geometry.StrategyLowerBoundOnly)
	batch, err := c.GetData()
	require.NoError(t, err)
	assert.Equal(t, 64, batch.Rows())
	for i := 0; i < batch.Rows(); i++ {
		assert.Equal(t, 0.0, batch.Get("t").At(i, 0))
	}
}

func TestBoundaryCreatorUpperBoundOnly(t *testing.T) {
	c := boundaryCreator(t, Total(50), geometry.StrategyGrid, geometry.StrategyUpperBoundOnly)
	batch, err := c.GetData()
	require.NoError(t, err)
	assert.Equal(t, 64, batch.Rows())
	for i := 0; i < batch.Rows(); i++ {
		assert.Equal(t, 1.0, batch.Get("t").At(i, 0))
	}
}

func TestBoundaryCreatorGridIntervalBoundary(t *testing.T) {
	// grid boundary on a 1-D domain: the two endpoints, interior gets
	// ceil(30/2) = 15, meshed to 30 rows with t slowest.
	iv, _ := geometry.NewInterval(0, 1)
	vs, err := variable.NewSet(variable.New("x", iv), variable.New("t", iv))
	require.NoError(t, err)

	c := &BoundaryDataCreator{
		DataCreator: DataCreator{
			Variables:   vs,
			DatasetSize: Total(30),
			Strategy:    geometry.StrategyGrid,
			RNG:         rand.New(rand.NewSource(0)),
			Backend:     cpu.New(),
		},
		BoundaryVariable: "t",
		BoundaryStrategy: geometry.StrategyGrid,
	}
	batch, err := c.GetData()
	require.NoError(t, err)
	require.Equal(t, 30, batch.Rows())

	tt := batch.Get("t")
	for i := 0; i < 15; i++ {
		assert.Equal(t, 0.0, tt.At(i, 0))
		assert.Equal(t, 1.0, tt.At(15+i, 0))
	}
	// interior block repeats under both endpoints
	x := batch.Get("x")
	for i := 0; i < 15; i++ {
		assert.Equal(t, x.At(i, 0), x.At(15+i, 0))
	}
}

func TestBoundaryCreatorGridRectangleBoundary(t *testing.T) {
	// boundary variable with a 2-D ambient domain: r = ceil(50^(1/3))
	// = 4, so the rectangle boundary gets 16 points and the interval
	// interior 4, meshed to 64 rows.
	rect, err := geometry.NewRectangle(geometry.Point2{X: 0, Y: 0}, geometry.Point2{X: 1, Y: 0}, geometry.Point2{X: 0, Y: 1})
	require.NoError(t, err)
	iv, _ := geometry.NewInterval(0, 1)
	vs, err := variable.NewSet(variable.New("t", iv), variable.New("x", rect))
	require.NoError(t, err)

	c := &BoundaryDataCreator{
		DataCreator: DataCreator{
			Variables:   vs,
			DatasetSize: Total(50),
			Strategy:    geometry.StrategyGrid,
			RNG:         rand.New(rand.NewSource(0)),
			Backend:     cpu.New(),
		},
		BoundaryVariable: "x",
		BoundaryStrategy: geometry.StrategyGrid,
	}
	batch, err := c.GetData()
	require.NoError(t, err)
	assert.Equal(t, 64, batch.Rows())
	assert.Equal(t, tensor.Shape{64, 2}, batch.Get("x").Shape())

	for i, on := range rect.IsOnBoundary(batch.Get("x")) {
		assert.True(t, on, "row %d not on rectangle boundary", i)
	}
}

func TestBoundaryCreatorRandomBoundaryUnderGrid(t *testing.T) {
	// r = ceil(100^(1/2)) = 10 per variable, meshed to 100 rows.
	iv, _ := geometry.NewInterval(0, 1)
	vs, err := variable.NewSet(variable.New("x", iv), variable.New("t", iv))
	require.NoError(t, err)

	c := &BoundaryDataCreator{
		DataCreator: DataCreator{
			Variables:   vs,
			DatasetSize: Total(100),
			Strategy:    geometry.StrategyGrid,
			RNG:         rand.New(rand.NewSource(0)),
			Backend:     cpu.New(),
		},
		BoundaryVariable: "t",
		BoundaryStrategy: geometry.StrategyRandom,
	}
	batch, err := c.GetData()
	require.NoError(t, err)
	assert.Equal(t, 100, batch.Rows())
}

func TestBoundaryCreatorExplicitCounts(t *testing.T) {
	c := boundaryCreator(t, Named(map[string]int{"x": 5, "t": 3}),
		geometry.StrategyGrid, geometry.StrategyLowerBoundOnly)
	batch, err := c.GetData()
	require.NoError(t, err)
	// 5 interior points meshed against the endpoint repeated 3 times
	assert.Equal(t, 15, batch.Rows())
	for i := 0; i < batch.Rows(); i++ {
		assert.Equal(t, 0.0, batch.Get("t").At(i, 0))
	}
}

func TestBoundaryCreatorErrors(t *testing.T) {
	c := boundaryCreator(t, Total(10), geometry.StrategyGrid, "sobol")
	_, err := c.GetData()
	assert.True(t, errors.Is(err, ErrUnknownStrategy))

	c = boundaryCreator(t, SizeOf(3.5), geometry.StrategyGrid, geometry.StrategyGrid)
	_, err = c.GetData()
	assert.True(t, errors.Is(err, ErrInvalidSizeSpec))

	c = boundaryCreator(t, Total(10), geometry.StrategyGrid, geometry.StrategyGrid)
	c.BoundaryVariable = "missing"
	_, err = c.GetData()
	assert.Error(t, err)

	c = boundaryCreator(t, Total(10), geometry.StrategyGrid, geometry.StrategyGrid)
	c.Variables = nil
	batch, err := c.GetData()
	assert.NoError(t, err)
	assert.Nil(t, batch)
}

func TestMeshInnerAndBoundary(t *testing.T) {
	b := cpu.New()
	inner := NewBatch()
	inner.Put("x", tensor.New([]float64{1, 1, 1, 2, 3, 0}, tensor.Shape{2, 3}, b))
	boundary := tensor.New([]float64{0, 1}, tensor.Shape{2, 1}, b)

	out := MeshInnerAndBoundary(inner, "t", boundary)
	require.Equal(t, 4, out.Rows())
	assert.Equal(t, []string{"x", "t"}, out.Names())
	assert.Equal(t, []float64{1, 1, 1, 2, 3, 0, 1, 1, 1, 2, 3, 0}, out.Get("x").Data())
	assert.Equal(t, []float64{0, 0, 1, 1}, out.Get("t").Data())
}

func TestMeshInnerAndBoundaryNoInner(t *testing.T) {
	b := cpu.New()
	boundary := tensor.New([]float64{0, 1}, tensor.Shape{2, 1}, b)
	out := MeshInnerAndBoundary(nil, "t", boundary)
	assert.Equal(t, 2, out.Rows())
	assert.Same(t, boundary, out.Get("t"))
}

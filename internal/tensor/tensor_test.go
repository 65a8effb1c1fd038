package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuraldiff-ml/neuraldiff/internal/backend/cpu"
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

func TestNewPanicsOnShapeMismatch(t *testing.T) {
	b := cpu.New()
	assert.Panics(t, func() {
		tensor.New([]float64{1, 2, 3}, tensor.Shape{2, 2}, b)
	})
}

func TestFromSlice(t *testing.T) {
	b := cpu.New()
	src := []float64{1, 2, 3, 4}
	x, err := tensor.FromSlice(src, tensor.Shape{2, 2}, b)
	require.NoError(t, err)

	src[0] = 99
	assert.Equal(t, 1.0, x.At(0, 0), "FromSlice must copy")

	_, err = tensor.FromSlice(src, tensor.Shape{3, 2}, b)
	assert.Error(t, err)
}

func TestAccessors(t *testing.T) {
	b := cpu.New()
	x := tensor.New([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)

	assert.Equal(t, 2, x.Rows())
	assert.Equal(t, 3, x.Cols())
	assert.Equal(t, 6, x.NumElements())
	assert.Equal(t, 6.0, x.At(1, 2))

	x.Set(9, 1, 2)
	assert.Equal(t, 9.0, x.At(1, 2))
}

func TestItem(t *testing.T) {
	b := cpu.New()
	s := tensor.Full(tensor.Shape{1, 1}, 3.5, b)
	assert.Equal(t, 3.5, s.Item())

	m := tensor.Zeros(tensor.Shape{2, 2}, b)
	assert.Panics(t, func() { m.Item() })
}

func TestClone(t *testing.T) {
	b := cpu.New()
	x := tensor.Ones(tensor.Shape{2, 2}, b)
	y := x.Clone()
	y.Set(5, 0, 0)
	assert.Equal(t, 1.0, x.At(0, 0))
	assert.Equal(t, 5.0, y.At(0, 0))
}

func TestLinspace(t *testing.T) {
	b := cpu.New()
	x := tensor.Linspace(0, 1, 5, b)
	assert.Equal(t, tensor.Shape{5, 1}, x.Shape())
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, x.Data())

	single := tensor.Linspace(0, 2, 1, b)
	assert.Equal(t, []float64{1}, single.Data(), "single point sits at the midpoint")
}

func TestUniform(t *testing.T) {
	b := cpu.New()
	rng := rand.New(rand.NewSource(11))
	x := tensor.Uniform(tensor.Shape{100, 2}, -2, 3, rng, b)
	for _, v := range x.Data() {
		assert.GreaterOrEqual(t, v, -2.0)
		assert.Less(t, v, 3.0)
	}
}

func TestRepeatAndTileRows(t *testing.T) {
	b := cpu.New()
	x := tensor.New([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, b)

	r := tensor.RepeatRows(x, 2)
	assert.Equal(t, []float64{1, 2, 1, 2, 3, 4, 3, 4}, r.Data())

	tl := tensor.TileRows(x, 2)
	assert.Equal(t, []float64{1, 2, 3, 4, 1, 2, 3, 4}, tl.Data())
}

func TestGradFlags(t *testing.T) {
	b := cpu.New()
	x := tensor.Zeros(tensor.Shape{2, 2}, b)
	assert.False(t, x.RequiresGrad())
	assert.Nil(t, x.Grad())

	x.RequireGrad()
	assert.True(t, x.RequiresGrad())

	g := tensor.Ones(tensor.Shape{2, 2}, b)
	x.SetGrad(g)
	assert.Same(t, g, x.Grad())
	x.SetGrad(nil)
	assert.Nil(t, x.Grad())
}

func TestShape(t *testing.T) {
	s := tensor.Shape{3, 4}
	assert.Equal(t, 12, s.NumElements())
	assert.True(t, s.Equal(tensor.Shape{3, 4}))
	assert.False(t, s.Equal(tensor.Shape{4, 3}))

	c := s.Clone()
	c[0] = 9
	assert.Equal(t, 3, s[0])
}

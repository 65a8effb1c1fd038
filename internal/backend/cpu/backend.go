// Package cpu implements the tensor.Backend interface in pure Go.
//
// Shape mismatches are programmer errors and panic, matching the
// convention of the tensor layer. The matrix-multiplication hot loop is
// parallelized across rows for large batches.
package cpu

import (
	"fmt"
	"math"

	"github.com/neuraldiff-ml/neuraldiff/internal/parallel"
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

// CPUBackend is the pure-Go computation backend.
type CPUBackend struct {
	par parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{par: parallel.DefaultConfig()}
}

// Name returns the backend name.
func (b *CPUBackend) Name() string {
	return "CPU"
}

func sameShape(op string, a, c *tensor.Tensor) {
	if !a.Shape().Equal(c.Shape()) {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", op, a.Shape(), c.Shape()))
	}
}

func (b *CPUBackend) binary(op string, a, c *tensor.Tensor, f func(x, y float64) float64) *tensor.Tensor {
	// Row broadcast: (n, d) op (1, d).
	if c.Rows() == 1 && a.Rows() > 1 && a.Cols() == c.Cols() {
		out := tensor.Zeros(a.Shape(), b)
		ad, cd, od := a.Data(), c.Data(), out.Data()
		cols := a.Cols()
		for i := range ad {
			od[i] = f(ad[i], cd[i%cols])
		}
		return out
	}
	sameShape(op, a, c)
	out := tensor.Zeros(a.Shape(), b)
	ad, cd, od := a.Data(), c.Data(), out.Data()
	for i := range ad {
		od[i] = f(ad[i], cd[i])
	}
	return out
}

// Add performs element-wise addition with (1, d) row broadcast.
func (b *CPUBackend) Add(a, c *tensor.Tensor) *tensor.Tensor {
	return b.binary("add", a, c, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction.
func (b *CPUBackend) Sub(a, c *tensor.Tensor) *tensor.Tensor {
	return b.binary("sub", a, c, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication.
func (b *CPUBackend) Mul(a, c *tensor.Tensor) *tensor.Tensor {
	return b.binary("mul", a, c, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division.
func (b *CPUBackend) Div(a, c *tensor.Tensor) *tensor.Tensor {
	return b.binary("div", a, c, func(x, y float64) float64 { return x / y })
}

// Scale multiplies every element by s.
func (b *CPUBackend) Scale(a *tensor.Tensor, s float64) *tensor.Tensor {
	out := tensor.Zeros(a.Shape(), b)
	ad, od := a.Data(), out.Data()
	for i := range ad {
		od[i] = ad[i] * s
	}
	return out
}

// MatMul performs 2-D matrix multiplication.
func (b *CPUBackend) MatMul(a, c *tensor.Tensor) *tensor.Tensor {
	n, k := a.Rows(), a.Cols()
	k2, m := c.Rows(), c.Cols()
	if k != k2 {
		panic(fmt.Sprintf("matmul: inner dimensions mismatch %v vs %v", a.Shape(), c.Shape()))
	}
	out := tensor.Zeros(tensor.Shape{n, m}, b)
	ad, cd, od := a.Data(), c.Data(), out.Data()
	parallel.For(n, func(i int) {
		for p := 0; p < k; p++ {
			aip := ad[i*k+p]
			if aip == 0 {
				continue
			}
			row := cd[p*m : (p+1)*m]
			o := od[i*m : (i+1)*m]
			for j := range row {
				o[j] += aip * row[j]
			}
		}
	}, b.par)
	return out
}

// Transpose swaps the two dimensions of a 2-D tensor.
func (b *CPUBackend) Transpose(a *tensor.Tensor) *tensor.Tensor {
	n, m := a.Rows(), a.Cols()
	out := tensor.Zeros(tensor.Shape{m, n}, b)
	ad, od := a.Data(), out.Data()
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			od[j*n+i] = ad[i*m+j]
		}
	}
	return out
}

func (b *CPUBackend) unary(a *tensor.Tensor, f func(x float64) float64) *tensor.Tensor {
	out := tensor.Zeros(a.Shape(), b)
	ad, od := a.Data(), out.Data()
	for i := range ad {
		od[i] = f(ad[i])
	}
	return out
}

// Tanh applies the hyperbolic tangent element-wise.
func (b *CPUBackend) Tanh(a *tensor.Tensor) *tensor.Tensor { return b.unary(a, math.Tanh) }

// Sin applies the sine element-wise.
func (b *CPUBackend) Sin(a *tensor.Tensor) *tensor.Tensor { return b.unary(a, math.Sin) }

// Cos applies the cosine element-wise.
func (b *CPUBackend) Cos(a *tensor.Tensor) *tensor.Tensor { return b.unary(a, math.Cos) }

// Exp applies the exponential element-wise.
func (b *CPUBackend) Exp(a *tensor.Tensor) *tensor.Tensor { return b.unary(a, math.Exp) }

// Abs applies the absolute value element-wise.
func (b *CPUBackend) Abs(a *tensor.Tensor) *tensor.Tensor { return b.unary(a, math.Abs) }

// Mean reduces all elements to their (1, 1) mean.
func (b *CPUBackend) Mean(a *tensor.Tensor) *tensor.Tensor {
	s := b.Sum(a)
	s.Data()[0] /= float64(a.NumElements())
	return s
}

// Sum reduces all elements to their (1, 1) sum.
func (b *CPUBackend) Sum(a *tensor.Tensor) *tensor.Tensor {
	var acc float64
	for _, v := range a.Data() {
		acc += v
	}
	return tensor.New([]float64{acc}, tensor.Shape{1, 1}, b)
}

// SumCols reduces (n, d) to the per-row sum (n, 1).
func (b *CPUBackend) SumCols(a *tensor.Tensor) *tensor.Tensor {
	n, d := a.Rows(), a.Cols()
	out := tensor.Zeros(tensor.Shape{n, 1}, b)
	ad, od := a.Data(), out.Data()
	for i := 0; i < n; i++ {
		var acc float64
		for j := 0; j < d; j++ {
			acc += ad[i*d+j]
		}
		od[i] = acc
	}
	return out
}

// SumRows reduces (n, d) to the per-column sum (1, d).
func (b *CPUBackend) SumRows(a *tensor.Tensor) *tensor.Tensor {
	n, d := a.Rows(), a.Cols()
	out := tensor.Zeros(tensor.Shape{1, d}, b)
	ad, od := a.Data(), out.Data()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			od[j] += ad[i*d+j]
		}
	}
	return out
}

// ExpandCols repeats an (n, 1) column d times to (n, d).
func (b *CPUBackend) ExpandCols(a *tensor.Tensor, d int) *tensor.Tensor {
	if a.Cols() != 1 {
		panic(fmt.Sprintf("expandcols: expected (n, 1) tensor, got %v", a.Shape()))
	}
	n := a.Rows()
	out := tensor.Zeros(tensor.Shape{n, d}, b)
	ad, od := a.Data(), out.Data()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			od[i*d+j] = ad[i]
		}
	}
	return out
}

// ExpandRows repeats a (1, d) row n times to (n, d).
func (b *CPUBackend) ExpandRows(a *tensor.Tensor, n int) *tensor.Tensor {
	if a.Rows() != 1 {
		panic(fmt.Sprintf("expandrows: expected (1, d) tensor, got %v", a.Shape()))
	}
	d := a.Cols()
	out := tensor.Zeros(tensor.Shape{n, d}, b)
	ad, od := a.Data(), out.Data()
	for i := 0; i < n; i++ {
		copy(od[i*d:(i+1)*d], ad)
	}
	return out
}

// Concat joins tensors with equal row counts column-wise.
func (b *CPUBackend) Concat(ts []*tensor.Tensor) *tensor.Tensor {
	if len(ts) == 0 {
		panic("concat: no tensors")
	}
	n := ts[0].Rows()
	total := 0
	for _, t := range ts {
		if t.Rows() != n {
			panic(fmt.Sprintf("concat: row count mismatch %d vs %d", t.Rows(), n))
		}
		total += t.Cols()
	}
	out := tensor.Zeros(tensor.Shape{n, total}, b)
	od := out.Data()
	for i := 0; i < n; i++ {
		off := i * total
		for _, t := range ts {
			d := t.Cols()
			copy(od[off:off+d], t.Data()[i*d:(i+1)*d])
			off += d
		}
	}
	return out
}

// Narrow selects the column range [start, start+width) of a 2-D tensor.
func (b *CPUBackend) Narrow(a *tensor.Tensor, start, width int) *tensor.Tensor {
	n, d := a.Rows(), a.Cols()
	if start < 0 || start+width > d {
		panic(fmt.Sprintf("narrow: columns [%d, %d) out of range for %v", start, start+width, a.Shape()))
	}
	out := tensor.Zeros(tensor.Shape{n, width}, b)
	ad, od := a.Data(), out.Data()
	for i := 0; i < n; i++ {
		copy(od[i*width:(i+1)*width], ad[i*d+start:i*d+start+width])
	}
	return out
}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// Package autodiff implements automatic differentiation using the
// decorator pattern.
//
// AutodiffBackend wraps any tensor.Backend and records every operation
// it executes on a GradientTape. Walking the tape in reverse computes
// gradients for all tensors in the recorded graph.
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	y := x.Mul(x)
//	grads := autodiff.Backward(y, backend)
//	fmt.Println(grads[x]) // dy/dx = 2x
package autodiff

import (
	"github.com/neuraldiff-ml/neuraldiff/internal/autodiff/ops"
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements tensor.Backend and records operations in a GradientTape.
type AutodiffBackend struct {
	inner tensor.Backend
	tape  *GradientTape
}

// New creates a new AutodiffBackend wrapping the given backend.
func New(backend tensor.Backend) *AutodiffBackend {
	return &AutodiffBackend{inner: backend, tape: NewGradientTape()}
}

// Tape returns the gradient tape for manual control.
func (b *AutodiffBackend) Tape() *GradientTape { return b.tape }

// GetTape returns the gradient tape (implements BackwardCapable).
func (b *AutodiffBackend) GetTape() *GradientTape { return b.tape }

// Inner returns the wrapped backend.
func (b *AutodiffBackend) Inner() tensor.Backend { return b.inner }

// Name returns the backend name.
func (b *AutodiffBackend) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend) Add(a, c *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Add(a, c)
	result.SetBackend(b)
	b.tape.Record(ops.NewAddOp(a, c, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend) Sub(a, c *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Sub(a, c)
	result.SetBackend(b)
	b.tape.Record(ops.NewSubOp(a, c, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend) Mul(a, c *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Mul(a, c)
	result.SetBackend(b)
	b.tape.Record(ops.NewMulOp(a, c, result))
	return result
}

// Div performs element-wise division and records the operation.
func (b *AutodiffBackend) Div(a, c *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Div(a, c)
	result.SetBackend(b)
	b.tape.Record(ops.NewDivOp(a, c, result))
	return result
}

// Scale performs scalar multiplication and records the operation.
func (b *AutodiffBackend) Scale(a *tensor.Tensor, s float64) *tensor.Tensor {
	result := b.inner.Scale(a, s)
	result.SetBackend(b)
	b.tape.Record(ops.NewScaleOp(a, s, result))
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *AutodiffBackend) MatMul(a, c *tensor.Tensor) *tensor.Tensor {
	result := b.inner.MatMul(a, c)
	result.SetBackend(b)
	b.tape.Record(ops.NewMatMulOp(a, c, result))
	return result
}

// Transpose transposes and records the operation.
func (b *AutodiffBackend) Transpose(a *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Transpose(a)
	result.SetBackend(b)
	b.tape.Record(ops.NewTransposeOp(a, result))
	return result
}

// Tanh applies tanh and records the operation.
func (b *AutodiffBackend) Tanh(a *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Tanh(a)
	result.SetBackend(b)
	b.tape.Record(ops.NewTanhOp(a, result))
	return result
}

// Sin applies sine and records the operation.
func (b *AutodiffBackend) Sin(a *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Sin(a)
	result.SetBackend(b)
	b.tape.Record(ops.NewSinOp(a, result))
	return result
}

// Cos applies cosine and records the operation.
func (b *AutodiffBackend) Cos(a *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Cos(a)
	result.SetBackend(b)
	b.tape.Record(ops.NewCosOp(a, result))
	return result
}

// Exp applies the exponential and records the operation.
func (b *AutodiffBackend) Exp(a *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Exp(a)
	result.SetBackend(b)
	b.tape.Record(ops.NewExpOp(a, result))
	return result
}

// Abs applies the absolute value and records the operation.
func (b *AutodiffBackend) Abs(a *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Abs(a)
	result.SetBackend(b)
	b.tape.Record(ops.NewAbsOp(a, result))
	return result
}

// Mean reduces to the mean and records the operation.
func (b *AutodiffBackend) Mean(a *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Mean(a)
	result.SetBackend(b)
	b.tape.Record(ops.NewMeanOp(a, result))
	return result
}

// Sum reduces to the sum and records the operation.
func (b *AutodiffBackend) Sum(a *tensor.Tensor) *tensor.Tensor {
	result := b.inner.Sum(a)
	result.SetBackend(b)
	b.tape.Record(ops.NewSumOp(a, result))
	return result
}

// SumCols reduces per-row and records the operation.
func (b *AutodiffBackend) SumCols(a *tensor.Tensor) *tensor.Tensor {
	result := b.inner.SumCols(a)
	result.SetBackend(b)
	b.tape.Record(ops.NewSumColsOp(a, result))
	return result
}

// SumRows reduces per-column and records the operation.
func (b *AutodiffBackend) SumRows(a *tensor.Tensor) *tensor.Tensor {
	result := b.inner.SumRows(a)
	result.SetBackend(b)
	b.tape.Record(ops.NewSumRowsOp(a, result))
	return result
}

// ExpandCols expands a column and records the operation.
func (b *AutodiffBackend) ExpandCols(a *tensor.Tensor, d int) *tensor.Tensor {
	result := b.inner.ExpandCols(a, d)
	result.SetBackend(b)
	b.tape.Record(ops.NewExpandColsOp(a, result))
	return result
}

// ExpandRows expands a row and records the operation.
func (b *AutodiffBackend) ExpandRows(a *tensor.Tensor, n int) *tensor.Tensor {
	result := b.inner.ExpandRows(a, n)
	result.SetBackend(b)
	b.tape.Record(ops.NewExpandRowsOp(a, result))
	return result
}

// Concat concatenates column-wise and records the operation.
func (b *AutodiffBackend) Concat(ts []*tensor.Tensor) *tensor.Tensor {
	result := b.inner.Concat(ts)
	result.SetBackend(b)
	b.tape.Record(ops.NewConcatOp(ts, result))
	return result
}

// Narrow selects columns and records the operation.
func (b *AutodiffBackend) Narrow(a *tensor.Tensor, start, width int) *tensor.Tensor {
	result := b.inner.Narrow(a, start, width)
	result.SetBackend(b)
	b.tape.Record(ops.NewNarrowOp(a, start, width, result))
	return result
}

// Compile-time check that AutodiffBackend implements tensor.Backend.
var _ tensor.Backend = (*AutodiffBackend)(nil)

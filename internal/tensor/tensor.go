package tensor

import "fmt"

// Tensor is a dense float64 tensor bound to a computation backend.
//
// All tensors in this framework are two-dimensional: sample batches are
// (n, dim) matrices and scalar losses are (1, 1). The backend performs
// the actual arithmetic; when the backend is an autodiff decorator the
// operations are additionally recorded on its gradient tape.
type Tensor struct {
	data         []float64
	shape        Shape
	backend      Backend
	grad         *Tensor // Gradient tensor, set by the optimizer plumbing.
	requiresGrad bool
}

// New creates a Tensor over the given data slice without copying.
// Panics if the shape does not match the data length.
func New(data []float64, shape Shape, b Backend) *Tensor {
	if shape.NumElements() != len(data) {
		panic(fmt.Sprintf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data)))
	}
	return &Tensor{data: data, shape: shape, backend: b}
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
func FromSlice(data []float64, shape Shape, b Backend) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	cp := make([]float64, len(data))
	copy(cp, data)
	return New(cp, shape.Clone(), b), nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// Rows returns the leading dimension.
func (t *Tensor) Rows() int {
	return t.shape.Rows()
}

// Cols returns the trailing dimension.
func (t *Tensor) Cols() int {
	return t.shape.Cols()
}

// Backend returns the computation backend.
func (t *Tensor) Backend() Backend {
	return t.backend
}

// Data returns the underlying data slice (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// At returns the element at row i, column j of a 2-D tensor.
func (t *Tensor) At(i, j int) float64 {
	cols := t.shape.Cols()
	return t.data[i*cols+j]
}

// Set sets the element at row i, column j of a 2-D tensor.
func (t *Tensor) Set(v float64, i, j int) {
	cols := t.shape.Cols()
	t.data[i*cols+j] = v
}

// Item returns the value of a single-element tensor.
// Panics if the tensor holds more than one element.
func (t *Tensor) Item() float64 {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", t.shape))
	}
	return t.data[0]
}

// Clone creates a deep copy of the tensor. The copy does not carry
// gradient state.
func (t *Tensor) Clone() *Tensor {
	cp := make([]float64, len(t.data))
	copy(cp, t.data)
	return New(cp, t.shape.Clone(), t.backend)
}

// RequireGrad marks this tensor for gradient computation and returns it
// for chaining. The autodiff tape computes gradients for every tensor in
// the recorded graph; this flag states the caller's intent and lets
// collaborators check whether differentiation was requested.
func (t *Tensor) RequireGrad() *Tensor {
	t.requiresGrad = true
	return t
}

// RequiresGrad reports whether gradient tracking was requested.
func (t *Tensor) RequiresGrad() bool {
	return t.requiresGrad
}

// SetBackend rebinds the tensor to another backend. Used by backend
// decorators so that results of wrapped operations keep routing
// through the decorator.
func (t *Tensor) SetBackend(b Backend) {
	t.backend = b
}

// Grad returns the stored gradient tensor, if any.
func (t *Tensor) Grad() *Tensor {
	return t.grad
}

// SetGrad stores a gradient tensor.
func (t *Tensor) SetGrad(g *Tensor) {
	t.grad = g
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v on %s", t.shape, t.backend.Name())
}

// Method forms of the backend operations.

// Add returns t + o element-wise (o may be a (1, d) row to broadcast).
func (t *Tensor) Add(o *Tensor) *Tensor { return t.backend.Add(t, o) }

// Sub returns t - o element-wise.
func (t *Tensor) Sub(o *Tensor) *Tensor { return t.backend.Sub(t, o) }

// Mul returns t * o element-wise.
func (t *Tensor) Mul(o *Tensor) *Tensor { return t.backend.Mul(t, o) }

// Div returns t / o element-wise.
func (t *Tensor) Div(o *Tensor) *Tensor { return t.backend.Div(t, o) }

// Scale returns t multiplied by a scalar.
func (t *Tensor) Scale(s float64) *Tensor { return t.backend.Scale(t, s) }

// MatMul returns the matrix product t @ o.
func (t *Tensor) MatMul(o *Tensor) *Tensor { return t.backend.MatMul(t, o) }

// Transpose returns the transposed 2-D tensor.
func (t *Tensor) Transpose() *Tensor { return t.backend.Transpose(t) }

// Tanh applies the hyperbolic tangent element-wise.
func (t *Tensor) Tanh() *Tensor { return t.backend.Tanh(t) }

// Sin applies the sine element-wise.
func (t *Tensor) Sin() *Tensor { return t.backend.Sin(t) }

// Cos applies the cosine element-wise.
func (t *Tensor) Cos() *Tensor { return t.backend.Cos(t) }

// Exp applies the exponential element-wise.
func (t *Tensor) Exp() *Tensor { return t.backend.Exp(t) }

// Abs applies the absolute value element-wise.
func (t *Tensor) Abs() *Tensor { return t.backend.Abs(t) }

// Mean reduces to the (1, 1) mean of all elements.
func (t *Tensor) Mean() *Tensor { return t.backend.Mean(t) }

// Sum reduces to the (1, 1) sum of all elements.
func (t *Tensor) Sum() *Tensor { return t.backend.Sum(t) }

// SumCols reduces (n, d) to the per-row sum (n, 1).
func (t *Tensor) SumCols() *Tensor { return t.backend.SumCols(t) }

// SumRows reduces (n, d) to the per-column sum (1, d).
func (t *Tensor) SumRows() *Tensor { return t.backend.SumRows(t) }

// Narrow selects the columns [start, start+width).
func (t *Tensor) Narrow(start, width int) *Tensor { return t.backend.Narrow(t, start, width) }

package ops

import "github.com/neuraldiff-ml/neuraldiff/internal/tensor"

// ConcatOp represents a column-wise concatenation of several tensors.
//
// Backward narrows the output gradient back into per-input column
// ranges, which is how gradients reach individual sample variables after
// they were stacked into one model input.
type ConcatOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewConcatOp creates a new ConcatOp.
func NewConcatOp(inputs []*tensor.Tensor, output *tensor.Tensor) *ConcatOp {
	return &ConcatOp{inputs: inputs, output: output}
}

// Backward splits the output gradient by input column widths.
func (op *ConcatOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	grads := make([]*tensor.Tensor, len(op.inputs))
	start := 0
	for i, in := range op.inputs {
		w := in.Cols()
		grads[i] = backend.Narrow(outputGrad, start, w)
		start += w
	}
	return grads
}

// Inputs returns the concatenated tensors.
func (op *ConcatOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the concatenation.
func (op *ConcatOp) Output() *tensor.Tensor { return op.output }

// NarrowOp represents a column-range selection of a 2-D tensor.
type NarrowOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
	start  int
	width  int
}

// NewNarrowOp creates a new NarrowOp.
func NewNarrowOp(a *tensor.Tensor, start, width int, output *tensor.Tensor) *NarrowOp {
	return &NarrowOp{inputs: []*tensor.Tensor{a}, output: output, start: start, width: width}
}

// Backward pads the gradient with zero columns on both sides.
func (op *NarrowOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a := op.inputs[0]
	n, d := a.Rows(), a.Cols()
	parts := make([]*tensor.Tensor, 0, 3)
	if op.start > 0 {
		parts = append(parts, tensor.Zeros(tensor.Shape{n, op.start}, a.Backend()))
	}
	parts = append(parts, outputGrad)
	if rest := d - op.start - op.width; rest > 0 {
		parts = append(parts, tensor.Zeros(tensor.Shape{n, rest}, a.Backend()))
	}
	if len(parts) == 1 {
		return []*tensor.Tensor{outputGrad}
	}
	return []*tensor.Tensor{backend.Concat(parts)}
}

// Inputs returns [a].
func (op *NarrowOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the selected columns.
func (op *NarrowOp) Output() *tensor.Tensor { return op.output }

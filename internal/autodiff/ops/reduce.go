package ops

import "github.com/neuraldiff-ml/neuraldiff/internal/tensor"

// expandTo spreads a (1, 1) gradient over an arbitrary 2-D shape.
func expandTo(grad *tensor.Tensor, shape tensor.Shape, backend tensor.Backend) *tensor.Tensor {
	col := backend.ExpandRows(grad, shape.Rows()) // (n, 1)
	if shape.Cols() == 1 {
		return col
	}
	return backend.ExpandCols(col, shape.Cols())
}

// SumOp represents the full reduction: output = Σ a, shape (1, 1).
type SumOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(a, output *tensor.Tensor) *SumOp {
	return &SumOp{inputs: []*tensor.Tensor{a}, output: output}
}

// Backward spreads the scalar gradient over the input shape.
func (op *SumOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{expandTo(outputGrad, op.inputs[0].Shape(), backend)}
}

// Inputs returns [a].
func (op *SumOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns Σ a.
func (op *SumOp) Output() *tensor.Tensor { return op.output }

// MeanOp represents the full mean reduction: output = Σ a / n, shape (1, 1).
type MeanOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewMeanOp creates a new MeanOp.
func NewMeanOp(a, output *tensor.Tensor) *MeanOp {
	return &MeanOp{inputs: []*tensor.Tensor{a}, output: output}
}

// Backward spreads the scalar gradient divided by the element count.
func (op *MeanOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a := op.inputs[0]
	g := expandTo(outputGrad, a.Shape(), backend)
	return []*tensor.Tensor{backend.Scale(g, 1/float64(a.NumElements()))}
}

// Inputs returns [a].
func (op *MeanOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the mean of a.
func (op *MeanOp) Output() *tensor.Tensor { return op.output }

// SumColsOp represents a per-row reduction: (n, d) -> (n, 1).
type SumColsOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewSumColsOp creates a new SumColsOp.
func NewSumColsOp(a, output *tensor.Tensor) *SumColsOp {
	return &SumColsOp{inputs: []*tensor.Tensor{a}, output: output}
}

// Backward repeats the column gradient across the reduced columns.
func (op *SumColsOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.ExpandCols(outputGrad, op.inputs[0].Cols())}
}

// Inputs returns [a].
func (op *SumColsOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the per-row sums.
func (op *SumColsOp) Output() *tensor.Tensor { return op.output }

// SumRowsOp represents a per-column reduction: (n, d) -> (1, d).
type SumRowsOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewSumRowsOp creates a new SumRowsOp.
func NewSumRowsOp(a, output *tensor.Tensor) *SumRowsOp {
	return &SumRowsOp{inputs: []*tensor.Tensor{a}, output: output}
}

// Backward repeats the row gradient across the reduced rows.
func (op *SumRowsOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.ExpandRows(outputGrad, op.inputs[0].Rows())}
}

// Inputs returns [a].
func (op *SumRowsOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the per-column sums.
func (op *SumRowsOp) Output() *tensor.Tensor { return op.output }

// ExpandColsOp represents column expansion: (n, 1) -> (n, d).
type ExpandColsOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewExpandColsOp creates a new ExpandColsOp.
func NewExpandColsOp(a, output *tensor.Tensor) *ExpandColsOp {
	return &ExpandColsOp{inputs: []*tensor.Tensor{a}, output: output}
}

// Backward sums the expanded gradient back to one column.
func (op *ExpandColsOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.SumCols(outputGrad)}
}

// Inputs returns [a].
func (op *ExpandColsOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the expanded tensor.
func (op *ExpandColsOp) Output() *tensor.Tensor { return op.output }

// ExpandRowsOp represents row expansion: (1, d) -> (n, d).
type ExpandRowsOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewExpandRowsOp creates a new ExpandRowsOp.
func NewExpandRowsOp(a, output *tensor.Tensor) *ExpandRowsOp {
	return &ExpandRowsOp{inputs: []*tensor.Tensor{a}, output: output}
}

// Backward sums the expanded gradient back to one row.
func (op *ExpandRowsOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.SumRows(outputGrad)}
}

// Inputs returns [a].
func (op *ExpandRowsOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the expanded tensor.
func (op *ExpandRowsOp) Output() *tensor.Tensor { return op.output }

package ops

import "github.com/neuraldiff-ml/neuraldiff/internal/tensor"

// MatMulOp represents matrix multiplication: output = a @ b.
//
// Backward: d(A@B)/dA = grad @ Bᵀ, d(A@B)/dB = Aᵀ @ grad.
type MatMulOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewMatMulOp creates a new MatMulOp.
func NewMatMulOp(a, b, output *tensor.Tensor) *MatMulOp {
	return &MatMulOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes input gradients for matrix multiplication.
func (op *MatMulOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]
	gradA := backend.MatMul(outputGrad, backend.Transpose(b))
	gradB := backend.MatMul(backend.Transpose(a), outputGrad)
	return []*tensor.Tensor{gradA, gradB}
}

// Inputs returns [a, b].
func (op *MatMulOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns a @ b.
func (op *MatMulOp) Output() *tensor.Tensor { return op.output }

// TransposeOp represents 2-D transposition: output = aᵀ.
type TransposeOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewTransposeOp creates a new TransposeOp.
func NewTransposeOp(a, output *tensor.Tensor) *TransposeOp {
	return &TransposeOp{inputs: []*tensor.Tensor{a}, output: output}
}

// Backward transposes the output gradient back.
func (op *TransposeOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.Transpose(outputGrad)}
}

// Inputs returns [a].
func (op *TransposeOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns aᵀ.
func (op *TransposeOp) Output() *tensor.Tensor { return op.output }

package ops

import "github.com/neuraldiff-ml/neuraldiff/internal/tensor"

// AddOp represents element-wise addition: output = a + b.
//
// Backward: d(a+b)/da = 1 and d(a+b)/db = 1, with a row-sum reduction
// when b was broadcast.
type AddOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, output *tensor.Tensor) *AddOp {
	return &AddOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes input gradients for addition.
func (op *AddOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.Tensor{
		reduceBroadcast(outputGrad, a.Shape(), backend),
		reduceBroadcast(outputGrad, b.Shape(), backend),
	}
}

// Inputs returns [a, b].
func (op *AddOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns a + b.
func (op *AddOp) Output() *tensor.Tensor { return op.output }

// SubOp represents element-wise subtraction: output = a - b.
type SubOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewSubOp creates a new SubOp.
func NewSubOp(a, b, output *tensor.Tensor) *SubOp {
	return &SubOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes input gradients for subtraction.
func (op *SubOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.Tensor{
		reduceBroadcast(outputGrad, a.Shape(), backend),
		reduceBroadcast(backend.Scale(outputGrad, -1), b.Shape(), backend),
	}
}

// Inputs returns [a, b].
func (op *SubOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns a - b.
func (op *SubOp) Output() *tensor.Tensor { return op.output }

// MulOp represents element-wise multiplication: output = a * b.
//
// Backward: d(a*b)/da = b, d(a*b)/db = a.
type MulOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewMulOp creates a new MulOp.
func NewMulOp(a, b, output *tensor.Tensor) *MulOp {
	return &MulOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.Tensor{
		reduceBroadcast(backend.Mul(outputGrad, b), a.Shape(), backend),
		reduceBroadcast(backend.Mul(outputGrad, a), b.Shape(), backend),
	}
}

// Inputs returns [a, b].
func (op *MulOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns a * b.
func (op *MulOp) Output() *tensor.Tensor { return op.output }

// DivOp represents element-wise division: output = a / b.
//
// Backward: d(a/b)/da = 1/b, d(a/b)/db = -a/b².
type DivOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewDivOp creates a new DivOp.
func NewDivOp(a, b, output *tensor.Tensor) *DivOp {
	return &DivOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes input gradients for division.
func (op *DivOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]
	gradA := backend.Div(outputGrad, b)
	// grad_b = -outputGrad * a / b² = -gradA * (a/b) ... computed from
	// the recorded output to reuse a/b.
	gradB := backend.Scale(backend.Mul(gradA, op.output), -1)
	return []*tensor.Tensor{
		reduceBroadcast(gradA, a.Shape(), backend),
		reduceBroadcast(gradB, b.Shape(), backend),
	}
}

// Inputs returns [a, b].
func (op *DivOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns a / b.
func (op *DivOp) Output() *tensor.Tensor { return op.output }

// ScaleOp represents scalar multiplication: output = s * a.
type ScaleOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
	s      float64
}

// NewScaleOp creates a new ScaleOp.
func NewScaleOp(a *tensor.Tensor, s float64, output *tensor.Tensor) *ScaleOp {
	return &ScaleOp{inputs: []*tensor.Tensor{a}, output: output, s: s}
}

// Backward computes the input gradient for scalar multiplication.
func (op *ScaleOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.Scale(outputGrad, op.s)}
}

// Inputs returns [a].
func (op *ScaleOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns s * a.
func (op *ScaleOp) Output() *tensor.Tensor { return op.output }

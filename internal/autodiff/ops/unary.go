package ops

import "github.com/neuraldiff-ml/neuraldiff/internal/tensor"

// TanhOp represents the hyperbolic tangent: output = tanh(a).
//
// Backward: d(tanh(a))/da = 1 - tanh(a)², reusing the recorded output.
type TanhOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewTanhOp creates a new TanhOp.
func NewTanhOp(a, output *tensor.Tensor) *TanhOp {
	return &TanhOp{inputs: []*tensor.Tensor{a}, output: output}
}

// Backward computes the input gradient for tanh.
func (op *TanhOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	sq := backend.Mul(op.output, op.output)
	deriv := backend.Sub(tensor.OnesLike(sq), sq)
	return []*tensor.Tensor{backend.Mul(outputGrad, deriv)}
}

// Inputs returns [a].
func (op *TanhOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns tanh(a).
func (op *TanhOp) Output() *tensor.Tensor { return op.output }

// SinOp represents the sine: output = sin(a).
type SinOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewSinOp creates a new SinOp.
func NewSinOp(a, output *tensor.Tensor) *SinOp {
	return &SinOp{inputs: []*tensor.Tensor{a}, output: output}
}

// Backward computes the input gradient for sine.
func (op *SinOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.Mul(outputGrad, backend.Cos(op.inputs[0]))}
}

// Inputs returns [a].
func (op *SinOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns sin(a).
func (op *SinOp) Output() *tensor.Tensor { return op.output }

// CosOp represents the cosine: output = cos(a).
type CosOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewCosOp creates a new CosOp.
func NewCosOp(a, output *tensor.Tensor) *CosOp {
	return &CosOp{inputs: []*tensor.Tensor{a}, output: output}
}

// Backward computes the input gradient for cosine.
func (op *CosOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.Mul(outputGrad, backend.Scale(backend.Sin(op.inputs[0]), -1))}
}

// Inputs returns [a].
func (op *CosOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns cos(a).
func (op *CosOp) Output() *tensor.Tensor { return op.output }

// ExpOp represents the exponential: output = exp(a).
type ExpOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewExpOp creates a new ExpOp.
func NewExpOp(a, output *tensor.Tensor) *ExpOp {
	return &ExpOp{inputs: []*tensor.Tensor{a}, output: output}
}

// Backward computes the input gradient for exp, reusing the output.
func (op *ExpOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.Mul(outputGrad, op.output)}
}

// Inputs returns [a].
func (op *ExpOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns exp(a).
func (op *ExpOp) Output() *tensor.Tensor { return op.output }

// AbsOp represents the absolute value: output = |a|.
//
// Backward: d|a|/da = sign(a). The sign is treated as a constant; the
// second derivative of |a| is zero almost everywhere.
type AbsOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewAbsOp creates a new AbsOp.
func NewAbsOp(a, output *tensor.Tensor) *AbsOp {
	return &AbsOp{inputs: []*tensor.Tensor{a}, output: output}
}

// Backward computes the input gradient for the absolute value.
func (op *AbsOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a := op.inputs[0]
	sign := tensor.ZerosLike(a)
	sd := sign.Data()
	for i, v := range a.Data() {
		switch {
		case v > 0:
			sd[i] = 1
		case v < 0:
			sd[i] = -1
		}
	}
	return []*tensor.Tensor{backend.Mul(outputGrad, sign)}
}

// Inputs returns [a].
func (op *AbsOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns |a|.
func (op *AbsOp) Output() *tensor.Tensor { return op.output }

// Package ops defines the differentiable operations recorded on the
// gradient tape.
//
// Each operation stores its input and output tensors during the forward
// pass and computes input gradients from the output gradient during the
// backward pass. The backward passes are themselves expressed through
// backend operations, so when the backend is the recording autodiff
// decorator the computed gradients stay differentiable. That property is
// what lets differential-equation residuals consume first derivatives of
// a network and still be trained by backpropagation.
package ops

import "github.com/neuraldiff-ml/neuraldiff/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Backward computes gradients for the inputs given the output gradient.
	// The returned slice corresponds index-wise to Inputs().
	Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.Tensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.Tensor
}

// reduceBroadcast reduces a gradient back to the shape of a broadcast
// operand: a (1, d) operand broadcast over n rows accumulates its
// gradient with a row sum.
func reduceBroadcast(grad *tensor.Tensor, shape tensor.Shape, backend tensor.Backend) *tensor.Tensor {
	if grad.Shape().Equal(shape) {
		return grad
	}
	if shape.Rows() == 1 && shape.Cols() == grad.Cols() {
		return backend.SumRows(grad)
	}
	return grad
}

package autodiff

import (
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

// BackwardCapable is an interface for backends that support a backward pass.
// AutodiffBackend implements this interface.
type BackwardCapable interface {
	tensor.Backend
	// GetTape returns the gradient tape for backward computation.
	GetTape() *GradientTape
}

// Backward computes gradients of t with respect to every tensor in the
// recorded graph, seeded with ones of t's shape.
//
// For an (n, 1) output whose rows are independent functions of the
// corresponding input rows (the usual pointwise-network case), the
// gradient of an (n, d) input holds the per-row partial derivatives.
//
// Panics if nothing was recorded, which almost always means the tape was
// never started.
func Backward(t *tensor.Tensor, backend BackwardCapable) map[*tensor.Tensor]*tensor.Tensor {
	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget to call Tape().StartRecording()?)")
	}
	seed := tensor.OnesLike(t)
	grads := tape.Backward(t, seed, backend)
	for tt, g := range grads {
		if !tt.RequiresGrad() {
			continue
		}
		if existing := tt.Grad(); existing != nil {
			tt.SetGrad(backend.Add(existing, g))
		} else {
			tt.SetGrad(g)
		}
	}
	return grads
}

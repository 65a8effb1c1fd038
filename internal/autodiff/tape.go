package autodiff

import (
	"github.com/neuraldiff-ml/neuraldiff/internal/autodiff/ops"
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass using reverse-mode automatic
// differentiation.
type GradientTape struct {
	operations []ops.Operation // Recorded operations (in execution order)
	recording  bool
}

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{operations: make([]ops.Operation, 0, 64)}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() { t.recording = true }

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() { t.recording = false }

// IsRecording returns true if the tape is currently recording operations.
func (t *GradientTape) IsRecording() bool { return t.recording }

// Record adds an operation to the tape if recording is enabled.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear resets the tape, removing all recorded operations.
// Recording state is preserved.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int { return len(t.operations) }

// Backward computes gradients by walking the tape in reverse from the
// given output tensor, seeded with outputGrad.
//
// Recording stays ENABLED during the walk: the backward computations are
// appended to the tape as ordinary operations, so a later Backward call
// can differentiate through them. Differential-equation residuals rely
// on this to consume ∂u/∂x while remaining trainable.
//
// Only the operations recorded before the call are walked; the walk
// snapshots the tape length first.
func (t *GradientTape) Backward(output, outputGrad *tensor.Tensor, backend tensor.Backend) map[*tensor.Tensor]*tensor.Tensor {
	recorded := t.operations[:len(t.operations):len(t.operations)]
	grads := make(map[*tensor.Tensor]*tensor.Tensor)
	if len(recorded) == 0 {
		return grads
	}
	grads[output] = outputGrad

	for i := len(recorded) - 1; i >= 0; i-- {
		op := recorded[i]
		outGrad, ok := grads[op.Output()]
		if !ok {
			continue
		}
		inputGrads := op.Backward(outGrad, backend)
		for j, in := range op.Inputs() {
			if j >= len(inputGrads) || inputGrads[j] == nil {
				continue
			}
			if existing, ok := grads[in]; ok {
				grads[in] = backend.Add(existing, inputGrads[j])
			} else {
				grads[in] = inputGrads[j]
			}
		}
	}
	return grads
}

package tensor

// Backend is the computation backend for tensor operations.
//
// The CPU backend (internal/backend/cpu) provides the plain implementation;
// the autodiff backend (internal/autodiff) wraps any Backend and records
// every operation on a gradient tape.
//
// Binary operations require matching shapes, with one exception: a
// (1, d) right operand against an (n, d) left operand is broadcast
// across rows (the bias-add case).
type Backend interface {
	// Name returns a human-readable backend identifier.
	Name() string

	// Element-wise arithmetic with (1, d) row broadcast on the right.
	Add(a, b *Tensor) *Tensor
	Sub(a, b *Tensor) *Tensor
	Mul(a, b *Tensor) *Tensor
	Div(a, b *Tensor) *Tensor

	// Scale multiplies every element by a scalar.
	Scale(a *Tensor, s float64) *Tensor

	// MatMul performs 2-D matrix multiplication: (n, k) x (k, m) -> (n, m).
	MatMul(a, b *Tensor) *Tensor

	// Transpose swaps the two dimensions of a 2-D tensor.
	Transpose(a *Tensor) *Tensor

	// Element-wise math functions.
	Tanh(a *Tensor) *Tensor
	Sin(a *Tensor) *Tensor
	Cos(a *Tensor) *Tensor
	Exp(a *Tensor) *Tensor
	Abs(a *Tensor) *Tensor

	// Reductions. Mean and Sum reduce to a (1, 1) tensor; SumCols reduces
	// (n, d) -> (n, 1); SumRows reduces (n, d) -> (1, d).
	Mean(a *Tensor) *Tensor
	Sum(a *Tensor) *Tensor
	SumCols(a *Tensor) *Tensor
	SumRows(a *Tensor) *Tensor

	// Expansions, the adjoints of the reductions above.
	// ExpandCols repeats a (n, 1) column d times to (n, d);
	// ExpandRows repeats a (1, d) row n times to (n, d).
	ExpandCols(a *Tensor, d int) *Tensor
	ExpandRows(a *Tensor, n int) *Tensor

	// Concat joins tensors with equal row counts column-wise.
	Concat(ts []*Tensor) *Tensor

	// Narrow selects the column range [start, start+width) of a 2-D tensor.
	Narrow(a *Tensor, start, width int) *Tensor
}

package tensor

// Data-layout helpers used when meshing sample batches. These construct
// fresh tensors directly and are never recorded on an autodiff tape:
// sample preparation happens before any differentiable computation.

// RepeatRows repeats each row of t k times consecutively:
// rows (a, b) with k=2 become (a, a, b, b).
func RepeatRows(t *Tensor, k int) *Tensor {
	rows, cols := t.Rows(), t.Cols()
	out := make([]float64, rows*k*cols)
	src := t.Data()
	for i := 0; i < rows; i++ {
		row := src[i*cols : (i+1)*cols]
		for r := 0; r < k; r++ {
			copy(out[(i*k+r)*cols:], row)
		}
	}
	return New(out, Shape{rows * k, cols}, t.Backend())
}

// TileRows repeats the whole row block of t k times:
// rows (a, b) with k=2 become (a, b, a, b).
func TileRows(t *Tensor, k int) *Tensor {
	rows, cols := t.Rows(), t.Cols()
	out := make([]float64, rows*k*cols)
	src := t.Data()
	for r := 0; r < k; r++ {
		copy(out[r*rows*cols:], src)
	}
	return New(out, Shape{rows * k, cols}, t.Backend())
}

package sampler

import (
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

// Batch is an ordered map from variable names to sampled point
// tensors. All columns of a finished batch share the same number of
// rows; row i across all columns forms one training point.
type Batch struct {
	names []string
	cols  map[string]*tensor.Tensor
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{cols: make(map[string]*tensor.Tensor)}
}

// Put stores a column under the given name. Overwriting an existing
// name keeps its position.
func (b *Batch) Put(name string, t *tensor.Tensor) {
	if _, ok := b.cols[name]; !ok {
		b.names = append(b.names, name)
	}
	b.cols[name] = t
}

// Get returns the column for the given name, or nil.
func (b *Batch) Get(name string) *tensor.Tensor { return b.cols[name] }

// Names returns the column names in insertion order.
func (b *Batch) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Len returns the number of columns.
func (b *Batch) Len() int { return len(b.names) }

// Rows returns the leading dimension shared by the columns, or 0 for
// an empty batch.
func (b *Batch) Rows() int {
	if len(b.names) == 0 {
		return 0
	}
	return b.cols[b.names[0]].Rows()
}

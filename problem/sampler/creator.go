// Package sampler draws per-epoch training batches from problem
// variable domains.
//
// A DataCreator samples the interior of every variable domain; a
// BoundaryDataCreator pins one variable to its domain boundary and
// meshes it against the interior samples. Grid batches are full
// Cartesian products with the first declared variable varying slowest
// and the boundary variable, when present, slowest of all.
package sampler

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/neuraldiff-ml/neuraldiff/geometry"
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
	"github.com/neuraldiff-ml/neuraldiff/problem/variable"
)

// DataCreator samples interior points for every variable of a set.
//
// A creator with nil Variables is a no-op sentinel: GetData returns
// (nil, nil). Strategy and size validation happen at GetData time.
type DataCreator struct {
	Variables   *variable.Set
	DatasetSize SizeSpec
	Strategy    string
	RNG         *rand.Rand
	Backend     tensor.Backend
}

// GetData samples one batch. Every column has the same number of rows.
func (c *DataCreator) GetData() (*Batch, error) {
	if c.Variables == nil {
		return nil, nil
	}
	if err := c.checkStrategy(); err != nil {
		return nil, err
	}
	counts, err := c.resolveCounts()
	if err != nil {
		return nil, err
	}
	return c.sample(counts)
}

func (c *DataCreator) checkStrategy() error {
	switch c.Strategy {
	case geometry.StrategyRandom, geometry.StrategyGrid:
		return nil
	default:
		return fmt.Errorf("%w: %q for interior sampling", ErrUnknownStrategy, c.Strategy)
	}
}

// resolveCounts turns the dataset size into a per-variable point
// count, in declaration order.
func (c *DataCreator) resolveCounts() ([]int, error) {
	vars := c.Variables.Variables()
	switch c.DatasetSize.kind {
	case sizeTotal:
		n := c.DatasetSize.total
		counts := make([]int, len(vars))
		if c.Strategy == geometry.StrategyRandom {
			for i := range counts {
				counts[i] = n
			}
			return counts, nil
		}
		r := axisResolution(n, c.Variables.TotalDim())
		for i, v := range vars {
			counts[i] = intPow(r, v.Domain.Dim())
		}
		return counts, nil
	case sizePerVariable:
		if len(c.DatasetSize.perVar) != len(vars) {
			return nil, fmt.Errorf("%w: %d counts for %d variables",
				ErrInvalidSizeSpec, len(c.DatasetSize.perVar), len(vars))
		}
		return c.spread(c.DatasetSize.perVar), nil
	case sizeNamed:
		counts := make([]int, len(vars))
		for i, v := range vars {
			n, ok := c.DatasetSize.named[v.Name]
			if !ok {
				return nil, fmt.Errorf("%w: no count for variable %q", ErrInvalidSizeSpec, v.Name)
			}
			counts[i] = n
		}
		return c.spread(counts), nil
	default:
		return nil, c.DatasetSize.errInvalid()
	}
}

// spread adjusts explicit per-variable counts for the strategy: random
// batches zip all variables at the product of the counts, grid batches
// keep the counts and mesh.
func (c *DataCreator) spread(counts []int) []int {
	if c.Strategy != geometry.StrategyRandom {
		out := make([]int, len(counts))
		copy(out, counts)
		return out
	}
	total := 1
	for _, n := range counts {
		total *= n
	}
	out := make([]int, len(counts))
	for i := range out {
		out[i] = total
	}
	return out
}

func (c *DataCreator) sample(counts []int) (*Batch, error) {
	vars := c.Variables.Variables()
	blocks := make([]*tensor.Tensor, len(vars))
	for i, v := range vars {
		pts, err := v.Domain.SampleInterior(counts[i], c.Strategy, c.RNG, c.Backend)
		if err != nil {
			return nil, err
		}
		blocks[i] = pts
	}
	if c.Strategy == geometry.StrategyRandom {
		batch := NewBatch()
		for i, v := range vars {
			batch.Put(v.Name, blocks[i])
		}
		return batch, nil
	}
	return meshBlocks(c.Variables.Names(), blocks), nil
}

// meshBlocks builds the full Cartesian product of per-variable point
// blocks. The first block varies slowest.
func meshBlocks(names []string, blocks []*tensor.Tensor) *Batch {
	batch := NewBatch()
	for i, name := range names {
		rep, tile := 1, 1
		for _, b := range blocks[i+1:] {
			rep *= b.Rows()
		}
		for _, b := range blocks[:i] {
			tile *= b.Rows()
		}
		col := blocks[i]
		if rep > 1 {
			col = tensor.RepeatRows(col, rep)
		}
		if tile > 1 {
			col = tensor.TileRows(col, tile)
		}
		batch.Put(name, col)
	}
	return batch
}

// axisResolution is the per-axis grid resolution for n total points
// spread over d dimensions. The epsilon guards against pow results
// like 10.000000000000002 rounding up a whole extra axis point.
func axisResolution(n, d int) int {
	if d <= 0 {
		return n
	}
	return int(math.Ceil(math.Pow(float64(n), 1/float64(d)) - 1e-9))
}

func intPow(base, exp int) int {
	out := 1
	for i := 0; i < exp; i++ {
		out *= base
	}
	return out
}

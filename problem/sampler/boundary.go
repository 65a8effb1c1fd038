package sampler

import (
	"fmt"

	"github.com/neuraldiff-ml/neuraldiff/geometry"
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
	"github.com/neuraldiff-ml/neuraldiff/problem/variable"
)

// BoundaryDataCreator samples one variable from its domain boundary
// and the remaining variables from their interiors, then meshes the
// two point sets. The boundary variable varies slowest in the meshed
// batch.
type BoundaryDataCreator struct {
	DataCreator

	// BoundaryVariable names the variable pinned to its boundary.
	BoundaryVariable string

	// BoundaryStrategy selects boundary sampling: random, grid,
	// lower_bound_only or upper_bound_only.
	BoundaryStrategy string
}

// GetData samples one boundary batch.
func (c *BoundaryDataCreator) GetData() (*Batch, error) {
	if c.Variables == nil {
		return nil, nil
	}
	bv := c.Variables.Get(c.BoundaryVariable)
	if bv == nil {
		return nil, fmt.Errorf("sampler: boundary variable %q not in variable set", c.BoundaryVariable)
	}
	if err := c.checkStrategies(); err != nil {
		return nil, err
	}
	inner := c.Variables.Without(c.BoundaryVariable)

	switch c.DatasetSize.kind {
	case sizeTotal:
		return c.sampleTotal(inner, bv.Domain, c.DatasetSize.total)
	case sizePerVariable, sizeNamed:
		return c.sampleExplicit(inner, bv.Domain)
	default:
		return nil, c.DatasetSize.errInvalid()
	}
}

func (c *BoundaryDataCreator) checkStrategies() error {
	if err := c.checkStrategy(); err != nil {
		return err
	}
	switch c.BoundaryStrategy {
	case geometry.StrategyRandom, geometry.StrategyGrid,
		geometry.StrategyLowerBoundOnly, geometry.StrategyUpperBoundOnly:
		return nil
	default:
		return fmt.Errorf("%w: %q for boundary sampling", ErrUnknownStrategy, c.BoundaryStrategy)
	}
}

// sampleTotal splits a single total count over the boundary and
// interior variables.
//
// Random interior sampling skips meshing entirely: every variable is
// drawn n times and the columns are zipped row-wise. Grid interior
// sampling meshes, with the boundary count depending on the boundary
// strategy.
func (c *BoundaryDataCreator) sampleTotal(inner *variable.Set, bdom geometry.Domain, n int) (*Batch, error) {
	if c.Strategy == geometry.StrategyRandom {
		batch := NewBatch()
		for _, v := range inner.Variables() {
			pts, err := v.Domain.SampleInterior(n, geometry.StrategyRandom, c.RNG, c.Backend)
			if err != nil {
				return nil, err
			}
			batch.Put(v.Name, pts)
		}
		bpts, err := bdom.SampleBoundary(n, c.BoundaryStrategy, c.RNG, c.Backend)
		if err != nil {
			return nil, err
		}
		batch.Put(c.BoundaryVariable, bpts)
		return batch, nil
	}

	var innerBatch *Batch
	var boundaryCount int
	switch {
	case c.BoundaryStrategy == geometry.StrategyLowerBoundOnly ||
		c.BoundaryStrategy == geometry.StrategyUpperBoundOnly:
		// a single boundary point, the whole budget goes inside
		boundaryCount = 1
		b, err := c.innerGrid(inner, Total(n))
		if err != nil {
			return nil, err
		}
		innerBatch = b
	case c.BoundaryStrategy == geometry.StrategyGrid && bdom.Dim() == 1:
		// the two endpoints, the budget is halved
		boundaryCount = 2
		b, err := c.innerGrid(inner, Total((n+1)/2))
		if err != nil {
			return nil, err
		}
		innerBatch = b
	case c.BoundaryStrategy == geometry.StrategyGrid:
		// dimension-aware split over all variables, the boundary
		// variable counted at its ambient dimension
		r := axisResolution(n, inner.TotalDim()+bdom.Dim())
		boundaryCount = intPow(r, bdom.Dim())
		counts := make([]int, inner.Len())
		for i, v := range inner.Variables() {
			counts[i] = intPow(r, v.Domain.Dim())
		}
		b, err := c.innerGrid(inner, PerVariable(counts...))
		if err != nil {
			return nil, err
		}
		innerBatch = b
	default: // random boundary under a grid interior
		r := axisResolution(n, c.Variables.Len())
		boundaryCount = r
		counts := make([]int, inner.Len())
		for i := range counts {
			counts[i] = r
		}
		b, err := c.innerGrid(inner, PerVariable(counts...))
		if err != nil {
			return nil, err
		}
		innerBatch = b
	}

	bpts, err := bdom.SampleBoundary(boundaryCount, c.BoundaryStrategy, c.RNG, c.Backend)
	if err != nil {
		return nil, err
	}
	return MeshInnerAndBoundary(innerBatch, c.BoundaryVariable, bpts), nil
}

// sampleExplicit uses per-variable counts verbatim: the interior
// variables are sampled by the interior rules with the boundary
// variable's count removed, and the result is meshed against the
// boundary samples.
func (c *BoundaryDataCreator) sampleExplicit(inner *variable.Set, bdom geometry.Domain) (*Batch, error) {
	var boundaryCount int
	var innerSpec SizeSpec
	switch c.DatasetSize.kind {
	case sizePerVariable:
		counts := c.DatasetSize.perVar
		if len(counts) != c.Variables.Len() {
			return nil, fmt.Errorf("%w: %d counts for %d variables",
				ErrInvalidSizeSpec, len(counts), c.Variables.Len())
		}
		rest := make([]int, 0, len(counts)-1)
		for i, name := range c.Variables.Names() {
			if name == c.BoundaryVariable {
				boundaryCount = counts[i]
				continue
			}
			rest = append(rest, counts[i])
		}
		innerSpec = PerVariable(rest...)
	case sizeNamed:
		n, ok := c.DatasetSize.named[c.BoundaryVariable]
		if !ok {
			return nil, fmt.Errorf("%w: no count for variable %q", ErrInvalidSizeSpec, c.BoundaryVariable)
		}
		boundaryCount = n
		innerSpec = c.DatasetSize
	}

	innerCreator := &DataCreator{
		Variables:   inner,
		DatasetSize: innerSpec,
		Strategy:    c.Strategy,
		RNG:         c.RNG,
		Backend:     c.Backend,
	}
	innerBatch, err := innerCreator.GetData()
	if err != nil {
		return nil, err
	}
	bpts, err := bdom.SampleBoundary(boundaryCount, c.BoundaryStrategy, c.RNG, c.Backend)
	if err != nil {
		return nil, err
	}
	return MeshInnerAndBoundary(innerBatch, c.BoundaryVariable, bpts), nil
}

// innerGrid samples the interior variables on a grid and meshes them.
func (c *BoundaryDataCreator) innerGrid(inner *variable.Set, size SizeSpec) (*Batch, error) {
	if inner.Len() == 0 {
		return nil, nil
	}
	creator := &DataCreator{
		Variables:   inner,
		DatasetSize: size,
		Strategy:    geometry.StrategyGrid,
		RNG:         c.RNG,
		Backend:     c.Backend,
	}
	return creator.GetData()
}

// MeshInnerAndBoundary crosses M interior rows with K boundary rows
// into an M·K-row batch. Every interior row appears once per boundary
// sample: the interior block is tiled K times and each boundary row is
// repeated M times, so the boundary variable varies slowest. The
// boundary column is appended last.
func MeshInnerAndBoundary(inner *Batch, boundaryName string, boundary *tensor.Tensor) *Batch {
	out := NewBatch()
	if inner == nil || inner.Len() == 0 {
		out.Put(boundaryName, boundary)
		return out
	}
	m, k := inner.Rows(), boundary.Rows()
	for _, name := range inner.Names() {
		col := inner.Get(name)
		if k > 1 {
			col = tensor.TileRows(col, k)
		}
		out.Put(name, col)
	}
	bcol := boundary
	if m > 1 {
		bcol = tensor.RepeatRows(boundary, m)
	}
	out.Put(boundaryName, bcol)
	return out
}

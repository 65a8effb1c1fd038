// Package geometry defines spatial and temporal domains that problem
// variables range over, together with interior and boundary sampling.
//
// A Domain knows its dimensionality, can classify points as interior
// or boundary, and can draw point sets with either random or grid
// strategies. Sampled points are returned as (n, dim) tensors.
package geometry

import (
	"math/rand"

	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

// Sampling strategies understood by every domain.
const (
	StrategyRandom = "random"
	StrategyGrid   = "grid"
)

// Boundary-only strategies restrict sampling to one side of the domain.
const (
	StrategyLowerBoundOnly = "lower_bound_only"
	StrategyUpperBoundOnly = "upper_bound_only"
)

// Domain is a bounded region of R^d that supports membership tests and
// point sampling. Implementations are immutable after construction.
type Domain interface {
	// Dim returns the dimension of points in the domain.
	Dim() int

	// IsInside reports, per row of points, whether the point lies in
	// the open interior (within tolerance).
	IsInside(points *tensor.Tensor) []bool

	// IsOnBoundary reports, per row of points, whether the point lies
	// on the domain boundary (within tolerance).
	IsOnBoundary(points *tensor.Tensor) []bool

	// BoundaryNormal returns the outward unit normal for each point,
	// which must lie on the boundary. Shape (n, dim).
	BoundaryNormal(points *tensor.Tensor) *tensor.Tensor

	// SampleInterior draws n interior points with the given strategy.
	// Grid sampling may return fewer or slightly more points than n
	// depending on the domain; callers should check the row count.
	SampleInterior(n int, strategy string, rng *rand.Rand, b tensor.Backend) (*tensor.Tensor, error)

	// SampleBoundary draws n boundary points with the given strategy.
	SampleBoundary(n int, strategy string, rng *rand.Rand, b tensor.Backend) (*tensor.Tensor, error)
}

const boundaryTol = 1e-9

func approxEq(a, b float64) bool {
	d := a - b
	return d < boundaryTol && d > -boundaryTol
}

package geometry

import (
	"fmt"
	"math/rand"

	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

// Interval is the closed interval [Lo, Hi] on the real line.
type Interval struct {
	Lo, Hi float64
}

// NewInterval creates an interval. Hi must be strictly greater than Lo.
func NewInterval(lo, hi float64) (*Interval, error) {
	if hi <= lo {
		return nil, fmt.Errorf("geometry: interval upper bound %v must exceed lower bound %v", hi, lo)
	}
	return &Interval{Lo: lo, Hi: hi}, nil
}

// Dim returns 1.
func (iv *Interval) Dim() int { return 1 }

// Length returns the interval length.
func (iv *Interval) Length() float64 { return iv.Hi - iv.Lo }

// IsInside reports whether each point lies in the closed interval.
// Endpoints count as inside; IsOnBoundary distinguishes them.
func (iv *Interval) IsInside(points *tensor.Tensor) []bool {
	out := make([]bool, points.Rows())
	for i := range out {
		x := points.At(i, 0)
		out[i] = x >= iv.Lo-boundaryTol && x <= iv.Hi+boundaryTol
	}
	return out
}

// IsOnBoundary reports whether each point coincides with an endpoint.
func (iv *Interval) IsOnBoundary(points *tensor.Tensor) []bool {
	out := make([]bool, points.Rows())
	for i := range out {
		x := points.At(i, 0)
		out[i] = approxEq(x, iv.Lo) || approxEq(x, iv.Hi)
	}
	return out
}

// BoundaryNormal returns -1 at the lower bound and +1 at the upper.
func (iv *Interval) BoundaryNormal(points *tensor.Tensor) *tensor.Tensor {
	n := points.Rows()
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		if approxEq(points.At(i, 0), iv.Lo) {
			data[i] = -1
		} else {
			data[i] = 1
		}
	}
	return tensor.New(data, tensor.Shape{n, 1}, points.Backend())
}

// SampleInterior draws n points from the interval.
func (iv *Interval) SampleInterior(n int, strategy string, rng *rand.Rand, b tensor.Backend) (*tensor.Tensor, error) {
	switch strategy {
	case StrategyRandom:
		return tensor.Uniform(tensor.Shape{n, 1}, iv.Lo, iv.Hi, rng, b), nil
	case StrategyGrid:
		return tensor.Linspace(iv.Lo, iv.Hi, n, b), nil
	default:
		return nil, unknownStrategy("interval", "interior", strategy)
	}
}

// SampleBoundary draws n points from the interval endpoints.
func (iv *Interval) SampleBoundary(n int, strategy string, rng *rand.Rand, b tensor.Backend) (*tensor.Tensor, error) {
	data := make([]float64, n)
	switch strategy {
	case StrategyRandom:
		for i := range data {
			if rng.Intn(2) == 0 {
				data[i] = iv.Lo
			} else {
				data[i] = iv.Hi
			}
		}
	case StrategyGrid:
		for i := range data {
			if i%2 == 0 {
				data[i] = iv.Lo
			} else {
				data[i] = iv.Hi
			}
		}
	case StrategyLowerBoundOnly:
		for i := range data {
			data[i] = iv.Lo
		}
	case StrategyUpperBoundOnly:
		for i := range data {
			data[i] = iv.Hi
		}
	default:
		return nil, unknownStrategy("interval", "boundary", strategy)
	}
	return tensor.New(data, tensor.Shape{n, 1}, b), nil
}

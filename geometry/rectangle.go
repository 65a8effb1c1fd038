package geometry

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

// Point2 is a point in the plane.
type Point2 struct {
	X, Y float64
}

// Rectangle is a possibly rotated rectangle in the plane, spanned by
// two perpendicular edges starting at Origin.
type Rectangle struct {
	Origin  Point2
	CornerX Point2 // end of the first edge
	CornerY Point2 // end of the second edge

	// unit edge vectors and edge lengths
	ex, ey Point2
	lx, ly float64
}

// NewRectangle creates a rectangle from its origin corner and the two
// adjacent corners. The edges must be perpendicular.
func NewRectangle(origin, cornerX, cornerY Point2) (*Rectangle, error) {
	ex := Point2{cornerX.X - origin.X, cornerX.Y - origin.Y}
	ey := Point2{cornerY.X - origin.X, cornerY.Y - origin.Y}
	lx := math.Hypot(ex.X, ex.Y)
	ly := math.Hypot(ey.X, ey.Y)
	if lx == 0 || ly == 0 {
		return nil, fmt.Errorf("geometry: degenerate rectangle with zero-length edge")
	}
	dot := ex.X*ey.X + ex.Y*ey.Y
	if math.Abs(dot)/(lx*ly) > 1e-9 {
		return nil, fmt.Errorf("geometry: rectangle edges are not perpendicular")
	}
	return &Rectangle{
		Origin:  origin,
		CornerX: cornerX,
		CornerY: cornerY,
		ex:      Point2{ex.X / lx, ex.Y / lx},
		ey:      Point2{ey.X / ly, ey.Y / ly},
		lx:      lx,
		ly:      ly,
	}, nil
}

// Dim returns 2.
func (r *Rectangle) Dim() int { return 2 }

// local maps a plane point to rectangle coordinates in [0,1]^2.
func (r *Rectangle) local(x, y float64) (float64, float64) {
	dx, dy := x-r.Origin.X, y-r.Origin.Y
	return (dx*r.ex.X + dy*r.ex.Y) / r.lx, (dx*r.ey.X + dy*r.ey.Y) / r.ly
}

// world maps rectangle coordinates back to the plane.
func (r *Rectangle) world(s, t float64) (float64, float64) {
	return r.Origin.X + s*r.lx*r.ex.X + t*r.ly*r.ey.X,
		r.Origin.Y + s*r.lx*r.ex.Y + t*r.ly*r.ey.Y
}

// IsInside reports whether each point lies in the closed rectangle.
// Edge points count as inside; IsOnBoundary distinguishes them.
func (r *Rectangle) IsInside(points *tensor.Tensor) []bool {
	out := make([]bool, points.Rows())
	for i := range out {
		s, t := r.local(points.At(i, 0), points.At(i, 1))
		out[i] = s >= -boundaryTol && s <= 1+boundaryTol && t >= -boundaryTol && t <= 1+boundaryTol
	}
	return out
}

// IsOnBoundary reports whether each point lies on one of the four
// edges.
func (r *Rectangle) IsOnBoundary(points *tensor.Tensor) []bool {
	out := make([]bool, points.Rows())
	for i := range out {
		s, t := r.local(points.At(i, 0), points.At(i, 1))
		inRange := s >= -boundaryTol && s <= 1+boundaryTol && t >= -boundaryTol && t <= 1+boundaryTol
		onEdge := approxEq(s, 0) || approxEq(s, 1) || approxEq(t, 0) || approxEq(t, 1)
		out[i] = inRange && onEdge
	}
	return out
}

// BoundaryNormal returns outward unit normals. Corner points get the
// normalized average of the two adjacent edge normals.
func (r *Rectangle) BoundaryNormal(points *tensor.Tensor) *tensor.Tensor {
	n := points.Rows()
	data := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		s, t := r.local(points.At(i, 0), points.At(i, 1))
		var nx, ny float64
		if approxEq(s, 0) {
			nx -= r.ex.X
			ny -= r.ex.Y
		}
		if approxEq(s, 1) {
			nx += r.ex.X
			ny += r.ex.Y
		}
		if approxEq(t, 0) {
			nx -= r.ey.X
			ny -= r.ey.Y
		}
		if approxEq(t, 1) {
			nx += r.ey.X
			ny += r.ey.Y
		}
		if l := math.Hypot(nx, ny); l > 0 {
			nx /= l
			ny /= l
		}
		data[2*i] = nx
		data[2*i+1] = ny
	}
	return tensor.New(data, tensor.Shape{n, 2}, points.Backend())
}

// SampleInterior draws n interior points. Grid sampling splits n over
// the two axes proportionally to the edge lengths and fills any
// shortfall with random interior points so that exactly n points are
// returned.
func (r *Rectangle) SampleInterior(n int, strategy string, rng *rand.Rand, b tensor.Backend) (*tensor.Tensor, error) {
	switch strategy {
	case StrategyRandom:
		data := make([]float64, 2*n)
		for i := 0; i < n; i++ {
			x, y := r.world(rng.Float64(), rng.Float64())
			data[2*i] = x
			data[2*i+1] = y
		}
		return tensor.New(data, tensor.Shape{n, 2}, b), nil
	case StrategyGrid:
		nx := int(math.Round(math.Sqrt(float64(n) * r.lx / r.ly)))
		if nx < 1 {
			nx = 1
		}
		ny := n / nx
		if ny < 1 {
			ny = 1
		}
		data := make([]float64, 0, 2*n)
		for i := 0; i < nx; i++ {
			s := (float64(i) + 0.5) / float64(nx)
			for j := 0; j < ny; j++ {
				t := (float64(j) + 0.5) / float64(ny)
				x, y := r.world(s, t)
				data = append(data, x, y)
			}
		}
		for len(data) < 2*n {
			x, y := r.world(rng.Float64(), rng.Float64())
			data = append(data, x, y)
		}
		data = data[:2*n]
		return tensor.New(data, tensor.Shape{n, 2}, b), nil
	default:
		return nil, unknownStrategy("rectangle", "interior", strategy)
	}
}

// SampleBoundary draws n points on the rectangle edges. Grid sampling
// walks the perimeter at even spacing starting from the origin corner.
func (r *Rectangle) SampleBoundary(n int, strategy string, rng *rand.Rand, b tensor.Backend) (*tensor.Tensor, error) {
	perimeter := 2 * (r.lx + r.ly)
	data := make([]float64, 0, 2*n)
	switch strategy {
	case StrategyRandom:
		for i := 0; i < n; i++ {
			x, y := r.perimeterPoint(rng.Float64() * perimeter)
			data = append(data, x, y)
		}
	case StrategyGrid:
		step := perimeter / float64(n)
		for i := 0; i < n; i++ {
			x, y := r.perimeterPoint(float64(i) * step)
			data = append(data, x, y)
		}
	default:
		return nil, unknownStrategy("rectangle", "boundary", strategy)
	}
	return tensor.New(data, tensor.Shape{n, 2}, b), nil
}

// perimeterPoint maps an arc length in [0, perimeter) to a point on
// the edges, walking origin -> cornerX -> far corner -> cornerY.
func (r *Rectangle) perimeterPoint(d float64) (float64, float64) {
	switch {
	case d < r.lx:
		return r.world(d/r.lx, 0)
	case d < r.lx+r.ly:
		return r.world(1, (d-r.lx)/r.ly)
	case d < 2*r.lx+r.ly:
		return r.world(1-(d-r.lx-r.ly)/r.lx, 1)
	default:
		return r.world(0, 1-(d-2*r.lx-r.ly)/r.ly)
	}
}

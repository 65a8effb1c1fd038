package tensor

import "math/rand"

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, b Backend) *Tensor {
	return New(make([]float64, shape.NumElements()), shape.Clone(), b)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, b Backend) *Tensor {
	return Full(shape, 1, b)
}

// Full creates a tensor filled with the given value.
func Full(shape Shape, v float64, b Backend) *Tensor {
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = v
	}
	return New(data, shape.Clone(), b)
}

// ZerosLike creates a zero tensor with the same shape and backend as t.
func ZerosLike(t *Tensor) *Tensor {
	return Zeros(t.Shape(), t.Backend())
}

// OnesLike creates a one-filled tensor with the same shape and backend as t.
func OnesLike(t *Tensor) *Tensor {
	return Full(t.Shape(), 1, t.Backend())
}

// Linspace creates an (n, 1) tensor of n evenly spaced values over
// [lo, hi], endpoints included. A single point lands on the midpoint.
func Linspace(lo, hi float64, n int, b Backend) *Tensor {
	data := make([]float64, n)
	if n == 1 {
		data[0] = (lo + hi) / 2
	} else {
		step := (hi - lo) / float64(n-1)
		for i := range data {
			data[i] = lo + float64(i)*step
		}
		data[n-1] = hi // Exact endpoint regardless of rounding.
	}
	return New(data, Shape{n, 1}, b)
}

// Uniform creates a tensor of i.i.d. samples from U[lo, hi) drawn from
// the given random source.
func Uniform(shape Shape, lo, hi float64, rng *rand.Rand, b Backend) *Tensor {
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = lo + rng.Float64()*(hi-lo)
	}
	return New(data, shape.Clone(), b)
}

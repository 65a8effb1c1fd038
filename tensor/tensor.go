// Copyright 2025 NeuralDiff ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense float64 tensor operations for the
// NeuralDiff framework.
//
// Tensors are two-dimensional (batch, dim) matrices bound to a
// computation backend. With the plain CPU backend operations execute
// eagerly; wrapped in the autodiff backend they are additionally
// recorded for gradient computation.
//
//	import (
//	    "github.com/neuraldiff-ml/neuraldiff/backend/cpu"
//	    "github.com/neuraldiff-ml/neuraldiff/tensor"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros(tensor.Shape{2, 3}, backend)
//	y := tensor.Ones(tensor.Shape{2, 3}, backend)
//	z := x.Add(y)
package tensor

import (
	"math/rand"

	internal "github.com/neuraldiff-ml/neuraldiff/internal/tensor"
)

// Tensor is a dense float64 tensor bound to a computation backend.
type Tensor = internal.Tensor

// Shape represents the dimensions of a tensor.
type Shape = internal.Shape

// Backend is the computation backend for tensor operations.
type Backend = internal.Backend

// New creates a Tensor over the given data slice without copying.
func New(data []float64, shape Shape, b Backend) *Tensor {
	return internal.New(data, shape, b)
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
func FromSlice(data []float64, shape Shape, b Backend) (*Tensor, error) {
	return internal.FromSlice(data, shape, b)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, b Backend) *Tensor { return internal.Zeros(shape, b) }

// Ones creates a tensor filled with ones.
func Ones(shape Shape, b Backend) *Tensor { return internal.Ones(shape, b) }

// Full creates a tensor filled with the given value.
func Full(shape Shape, v float64, b Backend) *Tensor { return internal.Full(shape, v, b) }

// ZerosLike creates a zero tensor shaped like t.
func ZerosLike(t *Tensor) *Tensor { return internal.ZerosLike(t) }

// OnesLike creates a one-filled tensor shaped like t.
func OnesLike(t *Tensor) *Tensor { return internal.OnesLike(t) }

// Linspace creates an (n, 1) tensor of evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int, b Backend) *Tensor { return internal.Linspace(lo, hi, n, b) }

// Uniform creates a tensor of i.i.d. samples from U[lo, hi).
func Uniform(shape Shape, lo, hi float64, rng *rand.Rand, b Backend) *Tensor {
	return internal.Uniform(shape, lo, hi, rng, b)
}

// RepeatRows repeats each row of t k times consecutively.
func RepeatRows(t *Tensor, k int) *Tensor { return internal.RepeatRows(t, k) }

// TileRows repeats the whole row block of t k times.
func TileRows(t *Tensor, k int) *Tensor { return internal.TileRows(t, k) }

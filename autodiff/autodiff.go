// Copyright 2025 NeuralDiff ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides tape-based reverse-mode automatic
// differentiation.
//
// The autodiff backend wraps any computation backend and records every
// executed operation on a gradient tape. Calling Backward walks the
// tape in reverse and accumulates gradients into the input tensors.
// The tape keeps recording during the backward pass, so gradients are
// themselves differentiable and second-order derivatives work.
//
//	backend := autodiff.New(cpu.New())
//	x := tensor.Linspace(0, 1, 16, backend).RequireGrad()
//	y := x.Mul(x).Sum()
//	autodiff.Backward(y, backend)
//	dx := x.Grad() // 2x
package autodiff

import (
	internal "github.com/neuraldiff-ml/neuraldiff/internal/autodiff"
	"github.com/neuraldiff-ml/neuraldiff/tensor"
)

// Backend is a backend decorator that records operations for autodiff.
type Backend = internal.AutodiffBackend

// Tape records executed operations in order.
type Tape = internal.GradientTape

// BackwardCapable is a backend that exposes a gradient tape.
type BackwardCapable = internal.BackwardCapable

// New wraps inner with gradient recording.
func New(inner tensor.Backend) *Backend { return internal.New(inner) }

// Backward computes gradients of t with respect to every recorded
// input. Tensors marked RequireGrad additionally accumulate their
// gradient in place; the full gradient map is returned.
func Backward(t *tensor.Tensor, backend BackwardCapable) map[*tensor.Tensor]*tensor.Tensor {
	return internal.Backward(t, backend)
}

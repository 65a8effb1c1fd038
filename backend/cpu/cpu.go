// Copyright 2025 NeuralDiff ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU computation backend.
//
// Larger operations are chunked across logical cores; small ones run
// sequentially to avoid goroutine overhead.
package cpu

import (
	internal "github.com/neuraldiff-ml/neuraldiff/internal/backend/cpu"
)

// Backend is the CPU computation backend.
type Backend = internal.CPUBackend

// New creates a CPU backend with default parallelism.
func New() *Backend { return internal.New() }

package sampler

import (
	"errors"

	"github.com/neuraldiff-ml/neuraldiff/geometry"
)

// ErrInvalidSizeSpec is returned when a dataset size cannot be
// resolved to point counts.
var ErrInvalidSizeSpec = errors.New("sampler: invalid dataset size")

// ErrUnknownStrategy is returned for sampling strategies no domain
// implements. It aliases the geometry sentinel so callers can match
// either package.
var ErrUnknownStrategy = geometry.ErrUnknownStrategy

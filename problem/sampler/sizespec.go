package sampler

import "fmt"

type sizeKind int

const (
	sizeUnset sizeKind = iota
	sizeTotal
	sizePerVariable
	sizeNamed
	sizeInvalid
)

// SizeSpec describes how many points a creator should sample. It is a
// tagged union: a single total, one count per variable in declaration
// order, or counts keyed by variable name.
//
// Validation is lazy. An unsupported spec is carried until sampling
// time and surfaces there as ErrInvalidSizeSpec, so a creator can be
// constructed and serialized before it is ever used.
type SizeSpec struct {
	kind    sizeKind
	total   int
	perVar  []int
	named   map[string]int
	invalid any
}

// Total requests n points overall; the split across variables depends
// on the sampling strategy.
func Total(n int) SizeSpec { return SizeSpec{kind: sizeTotal, total: n} }

// PerVariable gives one point count per variable, in declaration order.
func PerVariable(counts ...int) SizeSpec {
	return SizeSpec{kind: sizePerVariable, perVar: counts}
}

// Named gives point counts keyed by variable name.
func Named(counts map[string]int) SizeSpec {
	return SizeSpec{kind: sizeNamed, named: counts}
}

// SizeOf converts a dynamic size value. Supported: int, []int,
// map[string]int. Anything else yields a spec that fails with
// ErrInvalidSizeSpec when resolved.
func SizeOf(v any) SizeSpec {
	switch s := v.(type) {
	case int:
		return Total(s)
	case []int:
		return PerVariable(s...)
	case map[string]int:
		return Named(s)
	default:
		return SizeSpec{kind: sizeInvalid, invalid: v}
	}
}

// IsZero reports whether the spec was never set.
func (s SizeSpec) IsZero() bool { return s.kind == sizeUnset }

// Describe returns the spec in its dynamic form for serialization:
// an int, []int or map[string]int, or the original invalid value.
func (s SizeSpec) Describe() any {
	switch s.kind {
	case sizeTotal:
		return s.total
	case sizePerVariable:
		return s.perVar
	case sizeNamed:
		return s.named
	case sizeInvalid:
		return s.invalid
	default:
		return nil
	}
}

func (s SizeSpec) String() string { return fmt.Sprintf("%v", s.Describe()) }

func (s SizeSpec) errInvalid() error {
	if s.kind == sizeInvalid {
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidSizeSpec, s.invalid)
	}
	return fmt.Errorf("%w: no dataset size given", ErrInvalidSizeSpec)
}

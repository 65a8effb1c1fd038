package condition

type policyKind int

const (
	policyUnset policyKind = iota
	policyAll
	policyNone
	policyNames
)

// GradientPolicy selects which input variables have gradients tracked
// through the model. The zero value is unset and falls back to the
// per-condition default (differential equation conditions track all,
// data-fit conditions none).
type GradientPolicy struct {
	kind  policyKind
	names []string
}

// TrackAll tracks gradients for every input variable.
func TrackAll() GradientPolicy { return GradientPolicy{kind: policyAll} }

// TrackNone tracks no input gradients.
func TrackNone() GradientPolicy { return GradientPolicy{kind: policyNone} }

// TrackNames tracks gradients only for the named variables.
func TrackNames(names ...string) GradientPolicy {
	return GradientPolicy{kind: policyNames, names: names}
}

// IsZero reports whether the policy was never set.
func (p GradientPolicy) IsZero() bool { return p.kind == policyUnset }

// Tracks reports whether the named variable has gradients tracked.
func (p GradientPolicy) Tracks(name string) bool {
	switch p.kind {
	case policyAll:
		return true
	case policyNames:
		for _, n := range p.names {
			if n == name {
				return true
			}
		}
	}
	return false
}

// Describe returns the policy in serializable form: true, false, or
// the tracked names.
func (p GradientPolicy) Describe() any {
	switch p.kind {
	case policyAll:
		return true
	case policyNames:
		return p.names
	default:
		return false
	}
}

func (p GradientPolicy) orDefault(d GradientPolicy) GradientPolicy {
	if p.IsZero() {
		return d
	}
	return p
}

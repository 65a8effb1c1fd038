// Package variable ties problem variable names to the geometric
// domains they range over.
//
// Variable sets preserve declaration order. Order matters downstream:
// grid meshing builds Cartesian products with the first declared
// variable varying slowest, and models receive stacked inputs in
// declaration order.
package variable

import (
	"fmt"

	"github.com/neuraldiff-ml/neuraldiff/geometry"
)

// Variable is a named problem variable over a domain.
type Variable struct {
	Name   string
	Domain geometry.Domain
}

// New creates a variable.
func New(name string, domain geometry.Domain) *Variable {
	return &Variable{Name: name, Domain: domain}
}

// Set is an ordered collection of variables with unique names.
type Set struct {
	order []*Variable
	byKey map[string]*Variable
}

// NewSet creates a set holding the given variables in order.
func NewSet(vars ...*Variable) (*Set, error) {
	s := &Set{byKey: make(map[string]*Variable, len(vars))}
	for _, v := range vars {
		if err := s.Add(v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends a variable. Names must be unique within the set.
func (s *Set) Add(v *Variable) error {
	if _, ok := s.byKey[v.Name]; ok {
		return fmt.Errorf("variable: duplicate name %q", v.Name)
	}
	s.order = append(s.order, v)
	s.byKey[v.Name] = v
	return nil
}

// Get returns the variable with the given name, or nil.
func (s *Set) Get(name string) *Variable { return s.byKey[name] }

// Has reports whether the set contains the name.
func (s *Set) Has(name string) bool {
	_, ok := s.byKey[name]
	return ok
}

// Names returns the variable names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.order))
	for i, v := range s.order {
		names[i] = v.Name
	}
	return names
}

// Variables returns the variables in declaration order.
func (s *Set) Variables() []*Variable {
	out := make([]*Variable, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of variables.
func (s *Set) Len() int { return len(s.order) }

// TotalDim returns the summed dimension of all variable domains.
func (s *Set) TotalDim() int {
	d := 0
	for _, v := range s.order {
		d += v.Domain.Dim()
	}
	return d
}

// Without returns a new set with the named variable removed, keeping
// the order of the rest.
func (s *Set) Without(name string) *Set {
	out := &Set{byKey: make(map[string]*Variable, len(s.order))}
	for _, v := range s.order {
		if v.Name == name {
			continue
		}
		out.order = append(out.order, v)
		out.byKey[v.Name] = v
	}
	return out
}

// Package trainer assembles variables, conditions, a model and an
// optimizer into a runnable training loop.
package trainer

import (
	"fmt"

	"github.com/neuraldiff-ml/neuraldiff/problem/condition"
	"github.com/neuraldiff-ml/neuraldiff/problem/variable"
)

// BoundaryCondition is a condition bound to one variable's domain
// boundary.
type BoundaryCondition interface {
	condition.Condition
	SetBoundaryVariable(name string)
}

// Problem is a differential equation setting: the variables and the
// conditions the solution must satisfy.
type Problem struct {
	Variables  *variable.Set
	conditions []condition.Condition
	byName     map[string]condition.Condition
}

// NewProblem creates a problem over the given variables.
func NewProblem(vars *variable.Set) *Problem {
	return &Problem{
		Variables: vars,
		byName:    make(map[string]condition.Condition),
	}
}

// AddCondition registers a condition with the problem's variables.
// Condition names must be unique within a problem.
func (p *Problem) AddCondition(c condition.Condition) error {
	if _, ok := p.byName[c.Name()]; ok {
		return fmt.Errorf("trainer: duplicate condition name %q", c.Name())
	}
	if err := c.Register(p.Variables); err != nil {
		return err
	}
	p.conditions = append(p.conditions, c)
	p.byName[c.Name()] = c
	return nil
}

// AddBoundaryCondition binds the condition to the named variable's
// boundary and registers it.
func (p *Problem) AddBoundaryCondition(variableName string, c BoundaryCondition) error {
	if !p.Variables.Has(variableName) {
		return fmt.Errorf("trainer: unknown boundary variable %q", variableName)
	}
	c.SetBoundaryVariable(variableName)
	return p.AddCondition(c)
}

// Conditions returns the conditions in registration order.
func (p *Problem) Conditions() []condition.Condition {
	out := make([]condition.Condition, len(p.conditions))
	copy(out, p.conditions)
	return out
}

// Condition returns the named condition, or nil.
func (p *Problem) Condition(name string) condition.Condition { return p.byName[name] }

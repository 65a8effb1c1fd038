package condition

type plotKind int

const (
	plotNone plotKind = iota
	plotAll
	plotOnly
)

// PlotSelection chooses which variables a monitoring layer should plot
// the condition's sample points over. The zero value plots nothing.
type PlotSelection struct {
	kind plotKind
	name string
}

// PlotNone plots nothing.
func PlotNone() PlotSelection { return PlotSelection{kind: plotNone} }

// PlotAll plots over every registered variable.
func PlotAll() PlotSelection { return PlotSelection{kind: plotAll} }

// PlotOnly plots over a single named variable.
func PlotOnly(name string) PlotSelection {
	return PlotSelection{kind: plotOnly, name: name}
}

// Resolve returns the variable names to plot, given the registered
// names and an optional override used by boundary conditions to pin
// the "all" case to the boundary variable.
func (p PlotSelection) Resolve(registered []string, boundaryOverride string) []string {
	switch p.kind {
	case plotAll:
		if boundaryOverride != "" {
			return []string{boundaryOverride}
		}
		return registered
	case plotOnly:
		return []string{p.name}
	default:
		return nil
	}
}

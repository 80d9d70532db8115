package scenario

import "github.com/shrinklab/pbtcore/arb"

// Scenario is the ordered node list of spec §3: Quantifier, Given,
// Precondition, Cover, CoverTable, Then, in any order the caller declares
// them (Quantifier and Given order matters for binding visibility; the
// rest are order-independent).
type Scenario struct {
	Nodes []Node
}

// New builds a Scenario from an ordered node list.
func New(nodes ...Node) *Scenario {
	return &Scenario{Nodes: nodes}
}

// Compile is the pure compile function of spec §6, producing an
// ExecutableScenario decoupled from the underlying arbitrary types.
func (s *Scenario) Compile() *ExecutableScenario {
	exec := &ExecutableScenario{SearchSpaceSize: arb.ExactSize(1)}

	for _, n := range s.Nodes {
		switch v := n.(type) {
		case quantifierAdapter:
			eq := v.toExecutable()
			exec.Quantifiers = append(exec.Quantifiers, eq)
			exec.SearchSpaceSize = exec.SearchSpaceSize.Mul(eq.Size())
			if eq.Kind == Exists {
				exec.HasExistential = true
			}
		case Given:
			exec.Givens = append(exec.Givens, v)
		case Precondition:
			exec.Preconditions = append(exec.Preconditions, v)
		case Cover:
			exec.Covers = append(exec.Covers, v)
		case CoverTable:
			exec.CoverTables = append(exec.CoverTables, v)
		case Then:
			exec.Property = v.Property
		}
	}

	return exec
}

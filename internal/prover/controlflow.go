package prover

import (
	"fmt"

	"github.com/boogiedrive/houdini/internal/cex"
	"github.com/boogiedrive/houdini/internal/sexpr"
)

// maxControlFlowSteps caps the ControlFlow walk so a cyclic model can never
// hang the driver (spec.md §9 open question).
const maxControlFlowSteps = 10000

// controlFlowPath implements spec.md §4.D "Control-flow path extraction".
// It returns the discovered block path, or an error if the model's
// ControlFlow function yields a shape the walk doesn't recognize.
func controlFlowPath(model *cex.Model, controlFlowConstant int) ([]string, error) {
	if !model.DefinesFunction("ControlFlow", 2) {
		return nil, nil
	}

	var path []string
	v := sexpr.Atom("0")
	k := sexpr.Atom(fmt.Sprintf("%d", controlFlowConstant))

	for step := 0; step < maxControlFlowSteps; step++ {
		next, ok := model.Evaluate("ControlFlow", k, v)
		if !ok {
			return path, fmt.Errorf("prover: ControlFlow(%s, %s) undefined", k.String(), v.String())
		}
		if next.IsApp() && len(next.Args) >= 1 {
			path = append(path, next.Args[0].String())
			return path, nil
		}
		if isInt(next) {
			path = append(path, next.String())
			v = next
			continue
		}
		return path, fmt.Errorf("prover: ControlFlow produced an unrecognized value %q", next.String())
	}
	return path, fmt.Errorf("prover: ControlFlow walk exceeded %d steps, possible model cycle", maxControlFlowSteps)
}

func isInt(e sexpr.SExpr) bool {
	if !e.IsID() || e.Name == "" {
		return false
	}
	for i, r := range e.Name {
		if r == '-' && i == 0 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package cex

import "github.com/boogiedrive/houdini/internal/sexpr"

// ElementKind classifies how a ModelElement's value was obtained, per
// spec.md §4.E step 4's "map expression kinds to model elements" table.
type ElementKind int

const (
	ElementIdentifier ElementKind = iota
	ElementLiteral
	ElementFresh
)

// ModelElement is a single projected variable binding inside a LabeledState.
type ModelElement struct {
	Kind  ElementKind
	Value sexpr.SExpr
}

// LabeledState is one capture-state's projected variable bindings, ready
// for presentation as part of a counterexample.
type LabeledState struct {
	Label    string
	Bindings map[string]ModelElement
}

// InitializeModelStates implements spec.md §4.E "Initialize model states":
// it redirects the universal wrapper functions, binds every program
// variable to its initial-state model value, then walks the trace
// producing one LabeledState per capture-state up to (and, for the last
// block, stopping strictly before) the failing command.
func InitializeModelStates(model *Model, view *ModelViewInfo, ctx ProverContext, trace []Block, failingCmd sexpr.SExpr) []LabeledState {
	model.Redirect("U_2_bool")
	model.Redirect("U_2_int")

	initial := map[string]ModelElement{}
	// prevExpr holds, per variable, the expression it is currently bound
	// through: its unique name initially, then its latest incarnation.
	prevExpr := map[string]string{}
	for _, v := range view.Variables {
		name := v
		if ctx != nil {
			if uniq, ok := ctx.UniqueName(v); ok {
				name = uniq
			}
		}
		if val, ok := model.GetModelValue(name); ok {
			initial[v] = ModelElement{Kind: ElementIdentifier, Value: val}
			prevExpr[v] = name
		}
	}

	var states []LabeledState
	prev := initial
	for bi, block := range trace {
		last := bi == len(trace)-1
		for _, cs := range block.CaptureStates {
			if last && sameCommand(cs.AssumeCmd, failingCmd) {
				break
			}
			state := LabeledState{Label: captureLabel(block, cs), Bindings: map[string]ModelElement{}}
			for varName, expr := range cs.Incarnation {
				if p, ok := prevExpr[varName]; ok && p == expr.String() {
					continue
				}
				state.Bindings[varName] = projectExpr(model, expr)
				prevExpr[varName] = expr.String()
			}
			for k, v := range state.Bindings {
				if prev == nil {
					prev = map[string]ModelElement{}
				}
				prev[k] = v
			}
			states = append(states, state)
		}
		if last {
			break
		}
	}
	return states
}

func sameCommand(a, b sexpr.SExpr) bool {
	return a.String() == b.String()
}

func captureLabel(block Block, cs CaptureState) string {
	return block.Name + ":" + cs.AssumeCmd.String()
}

// projectExpr maps one incarnation expression onto a ModelElement per
// spec.md §4.E step 4's three-way kind table.
func projectExpr(model *Model, expr sexpr.SExpr) ModelElement {
	if expr.IsID() {
		if val, ok := model.GetModelValue(expr.Name); ok {
			return ModelElement{Kind: ElementIdentifier, Value: val}
		}
		if isLiteral(expr.Name) {
			return ModelElement{Kind: ElementLiteral, Value: expr}
		}
	}
	return ModelElement{Kind: ElementFresh, Value: sexpr.Atom(expr.String())}
}

func isLiteral(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return r == '-' || r == '.'
		}
	}
	return true
}

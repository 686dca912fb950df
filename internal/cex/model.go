// Package cex represents SMT counterexample models and projects them onto
// per-state variable incarnations for a verification trace (spec.md §4.E).
package cex

import (
	"strconv"

	"github.com/boogiedrive/houdini/internal/sexpr"
)

// funcDef is one "(define-fun name ((p1 T1) (p2 T2) ...) RetT body)" entry
// from a solver model response.
type funcDef struct {
	name    string
	params  []string
	body    sexpr.SExpr
}

// Model is a parsed "(model (define-fun ...) ...)" solver reply. It
// supports the two operations the rest of the package needs: looking up a
// variable's unique-name constant, and evaluating a defined function
// against concrete arguments (used by the ControlFlow walk).
type Model struct {
	raw   sexpr.SExpr
	funcs map[string]*funcDef
}

// ParseModel builds a Model from a "(model ...)" top-level response. Any
// shape that is not a well-formed define-fun entry is ignored rather than
// rejected outright, matching solvers that interleave comments/other forms
// inside the model.
func ParseModel(resp sexpr.SExpr) *Model {
	m := &Model{raw: resp, funcs: map[string]*funcDef{}}
	for _, entry := range resp.Args {
		if entry.Head() != "define-fun" || len(entry.Args) < 3 {
			continue
		}
		name := entry.Args[0].Head()
		paramList := entry.Args[1]
		body := entry.Args[len(entry.Args)-1]
		var params []string
		for _, p := range paramList.Args {
			params = append(params, p.Head())
		}
		m.funcs[name] = &funcDef{name: name, params: params, body: body}
	}
	return m
}

// DefinesFunction reports whether name is defined in the model with the
// given arity.
func (m *Model) DefinesFunction(name string, arity int) bool {
	f, ok := m.funcs[name]
	return ok && len(f.params) == arity
}

// GetModelValue looks up a 0-ary constant by its unique name, returning its
// defining body verbatim (spec.md §4.E step 2).
func (m *Model) GetModelValue(uniqueName string) (sexpr.SExpr, bool) {
	f, ok := m.funcs[uniqueName]
	if !ok || len(f.params) != 0 {
		return sexpr.SExpr{}, false
	}
	return f.body, true
}

// Redirect substitutes each app-arg[0] with its app-result, globally across
// the model, for unary functions such as U_2_bool/U_2_int that exist only
// to unbox a value's underlying sort (spec.md §4.E step 1). fn's body is
// expected to be the usual Z3 case-table shape, an ite-chain comparing the
// single parameter against literal boxed constants; each (constant, result)
// pair becomes a substitution applied to every other function's body.
func (m *Model) Redirect(fn string) {
	f, ok := m.funcs[fn]
	if !ok || len(f.params) != 1 {
		return
	}
	subst := caseTable(f.body)
	if len(subst) == 0 {
		return
	}
	for name, other := range m.funcs {
		if name == fn {
			continue
		}
		other.body = substitute(other.body, subst)
	}
}

// caseTable walks an ite-chain of the shape "(ite (= p V) R rest)",
// collecting each (V, R) pair as a substitution rule.
func caseTable(e sexpr.SExpr) map[string]sexpr.SExpr {
	subst := map[string]sexpr.SExpr{}
	for e.Head() == "ite" && len(e.Args) == 3 {
		cond, then, rest := e.Args[0], e.Args[1], e.Args[2]
		if cond.Head() == "=" && len(cond.Args) == 2 {
			lit := cond.Args[1]
			subst[lit.String()] = then
		}
		e = rest
	}
	return subst
}

func substitute(e sexpr.SExpr, subst map[string]sexpr.SExpr) sexpr.SExpr {
	if r, ok := subst[e.String()]; ok {
		return r
	}
	if e.IsID() {
		return e
	}
	newArgs := make([]sexpr.SExpr, len(e.Args))
	for i, a := range e.Args {
		newArgs[i] = substitute(a, subst)
	}
	return sexpr.App(e.Name, newArgs...)
}

// Evaluate binds fn's parameters positionally to args and evaluates its
// body, resolving nested "(ite cond then else)" chains by structural
// equality between bound parameters and literal conditions. This mirrors
// the shape Z3 emits for array/function models under (get-model).
func (m *Model) Evaluate(fn string, args ...sexpr.SExpr) (sexpr.SExpr, bool) {
	f, ok := m.funcs[fn]
	if !ok || len(f.params) != len(args) {
		return sexpr.SExpr{}, false
	}
	env := make(map[string]sexpr.SExpr, len(args))
	for i, p := range f.params {
		env[p] = args[i]
	}
	return evalBody(f.body, env), true
}

func evalBody(e sexpr.SExpr, env map[string]sexpr.SExpr) sexpr.SExpr {
	if e.Head() == "ite" && len(e.Args) == 3 {
		if evalCond(e.Args[0], env) {
			return evalBody(e.Args[1], env)
		}
		return evalBody(e.Args[2], env)
	}
	if e.IsID() {
		if v, ok := env[e.Name]; ok {
			return v
		}
		return e
	}
	return e
}

func evalCond(e sexpr.SExpr, env map[string]sexpr.SExpr) bool {
	switch e.Head() {
	case "and":
		for _, a := range e.Args {
			if !evalCond(a, env) {
				return false
			}
		}
		return true
	case "or":
		for _, a := range e.Args {
			if evalCond(a, env) {
				return true
			}
		}
		return false
	case "=":
		if len(e.Args) != 2 {
			return false
		}
		lhs := evalBody(e.Args[0], env)
		rhs := evalBody(e.Args[1], env)
		return literalEqual(lhs, rhs)
	default:
		return false
	}
}

func literalEqual(a, b sexpr.SExpr) bool {
	if a.IsID() && b.IsID() {
		na, oka := normalizeNumber(a.Name)
		nb, okb := normalizeNumber(b.Name)
		if oka && okb {
			return na == nb
		}
		return a.Name == b.Name
	}
	return a.String() == b.String()
}

func normalizeNumber(s string) (string, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(n), true
	}
	return "", false
}

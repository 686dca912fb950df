package solver

import (
	"strings"

	"github.com/boogiedrive/houdini/internal/sexpr"
)

// classification is the result of running the response classifier
// (spec.md §4.C) over one parsed top-level SExpr.
type classification int

const (
	classOK classification = iota
	classSwallowed
	classSoftNull
	classError
)

// benignErrorFragments are error texts the classifier treats as "no reply"
// rather than a hard failure (spec.md §4.C).
var benignErrorFragments = []string{
	"model is not available",
	"context is unsatisfiable",
	"Cannot get model",
	"last result wasn't unknown",
}

const resourceLimitFragment = "max. resource limit exceeded"

// classify implements the response-routing table in spec.md §4.C.
func classify(resp sexpr.SExpr, inspector Inspector) (classification, string) {
	switch resp.Head() {
	case "error":
		msg := errorMessage(resp)
		if strings.Contains(msg, resourceLimitFragment) {
			return classOK, ""
		}
		for _, frag := range benignErrorFragments {
			if strings.Contains(msg, frag) {
				return classSoftNull, ""
			}
		}
		return classError, msg

	case "progress":
		forwardProgress(resp, inspector)
		return classSwallowed, ""

	case "unsupported":
		return classSwallowed, ""

	default:
		return classOK, ""
	}
}

// errorMessage extracts the diagnostic text from an "(error <id>)" reply,
// falling back to the SExpr's textual form for shapes that aren't a single
// identifier argument.
func errorMessage(resp sexpr.SExpr) string {
	if len(resp.Args) == 1 && resp.Args[0].IsID() {
		return resp.Args[0].Name
	}
	return resp.String()
}

// forwardProgress feeds each argument of a "progress" reply to the
// inspector per spec.md §4.C / §6.
func forwardProgress(resp sexpr.SExpr, inspector Inspector) {
	if inspector == nil {
		return
	}
	for _, arg := range resp.Args {
		name := arg.Head()
		switch {
		case name == "labels":
			inspector.StatsLabels(childNames(arg))
		case strings.HasPrefix(name, ":"):
			inspector.StatsNamedValues(name, childNames(arg))
		}
	}
}

func childNames(e sexpr.SExpr) []string {
	names := make([]string, 0, len(e.Args))
	for _, c := range e.Args {
		names = append(names, c.Head())
	}
	return names
}

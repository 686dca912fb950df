package houdini

import (
	"github.com/boogiedrive/houdini/internal/cex"
	"github.com/boogiedrive/houdini/internal/program"
	"github.com/boogiedrive/houdini/internal/sexpr"
)

// AnnotationKind distinguishes which program construct a refutation came
// from (spec.md §3 "Refuted annotation").
type AnnotationKind int

const (
	KindRequires AnnotationKind = iota
	KindEnsures
	KindAssert
)

// RefutedAnnotation witnesses that setting Candidate to true makes a
// specific pre/post/assert fail. Two refutations are equal iff every field
// matches (spec.md §3).
type RefutedAnnotation struct {
	Candidate string
	Kind      AnnotationKind
	Site      string
	Callee    string // only meaningful for KindRequires
}

// Equal implements the value-equality spec.md §3 requires.
func (r RefutedAnnotation) Equal(o RefutedAnnotation) bool {
	return r.Candidate == o.Candidate && r.Kind == o.Kind && r.Site == o.Site && r.Callee == o.Callee
}

// genuineError is a counterexample whose failing expression did not match
// any known candidate: a real verification failure, not a refutable guard.
type genuineError struct {
	Cex *cex.Counterexample
}

// extractRefutations implements spec.md §4.F step "b": classify each
// counterexample by kind and, if its failing expression matches a
// candidate, build the corresponding RefutedAnnotation. Counterexamples
// whose failing expression does not match any candidate are genuine
// errors.
func extractRefutations(counterexamples []*cex.Counterexample, implName string, candidates map[string]bool) ([]RefutedAnnotation, []genuineError) {
	var refs []RefutedAnnotation
	var errs []genuineError

	for _, c := range counterexamples {
		expr, kind, callee := failingGuard(c)
		candidate, ok := program.MatchCandidate(expr, candidates)
		if !ok {
			errs = append(errs, genuineError{Cex: c})
			continue
		}
		refs = append(refs, RefutedAnnotation{
			Candidate: candidate,
			Kind:      kind,
			Site:      implName,
			Callee:    callee,
		})
	}
	return refs, errs
}

// failingGuard extracts the condition that failed, as a program.Expr, along
// with the annotation kind and (for call counterexamples) the callee
// procedure name.
func failingGuard(c *cex.Counterexample) (program.Expr, AnnotationKind, string) {
	switch c.Kind {
	case cex.KindCall:
		return exprFromSExpr(c.FailingRequires), KindRequires, c.Callee
	case cex.KindReturn:
		return exprFromSExpr(c.FailingEnsures), KindEnsures, ""
	default:
		return exprFromSExpr(c.FailingAssert), KindAssert, ""
	}
}

// exprFromSExpr recognizes the "(=> a b)" implication shape a VC
// generator emits for a candidate-guarded condition, nested
// right-associatively for "(=> cand0 (=> cand1 phi))"; anything else
// becomes an opaque leaf, which never matches a candidate.
func exprFromSExpr(e sexpr.SExpr) program.Expr {
	if e.Head() == "=>" && len(e.Args) == 2 {
		return program.Implies(exprFromSExpr(e.Args[0]), exprFromSExpr(e.Args[1]))
	}
	return program.Leaf(e.String())
}

// Package fixture supplies the in-memory VC generator and solver stand-in
// spec.md marks as an external collaborator (§1, §6). It drives
// houdini.Verifier purely off program.Program data: no subprocess, no
// SMT-LIB text, no sexpr.Reader. For one implementation it walks its guarded
// requires/asserts/ensures in source order and refutes the first one whose
// candidate is still true under the current assignment, producing the same
// kind of cex.Counterexample a real solver run would hand back; once none
// remain, the implementation verifies.
package fixture

import (
	"context"

	"github.com/boogiedrive/houdini/internal/cex"
	"github.com/boogiedrive/houdini/internal/houdini"
	"github.com/boogiedrive/houdini/internal/program"
	"github.com/boogiedrive/houdini/internal/prover"
	"github.com/boogiedrive/houdini/internal/sexpr"
)

// Verifier stands in for one implementation's real VC-generator + solver
// session.
type Verifier struct {
	Program  *program.Program
	ImplName string

	unsatCore []string
}

var _ houdini.Verifier = (*Verifier)(nil)

// Verify implements houdini.Verifier.
func (v *Verifier) Verify(_ context.Context, assignment map[string]bool) (houdini.VerifyResult, error) {
	impl := v.Program.ImplementationByName(v.ImplName)
	if impl == nil {
		return houdini.VerifyResult{Outcome: prover.SolverException}, nil
	}
	candidates := v.Program.ExistentialConstants()

	for _, call := range impl.Calls {
		callee := v.Program.ProcedureByName(call.Callee)
		if callee == nil {
			continue
		}
		for _, req := range callee.Requires {
			if cand, ok := program.MatchCandidate(req.Expr, candidates); ok && assignment[cand] {
				v.unsatCore = nil
				return houdini.VerifyResult{Outcome: prover.Invalid, Counterexamples: []*cex.Counterexample{
					{Kind: cex.KindCall, FailingRequires: exprToSExpr(req.Expr), Callee: call.Callee},
				}}, nil
			}
		}
	}

	for _, a := range impl.Asserts {
		if cand, ok := program.MatchCandidate(a.Expr, candidates); ok && assignment[cand] {
			v.unsatCore = nil
			return houdini.VerifyResult{Outcome: prover.Invalid, Counterexamples: []*cex.Counterexample{
				{Kind: cex.KindAssert, FailingAssert: exprToSExpr(a.Expr)},
			}}, nil
		}
	}

	if proc := v.Program.ProcedureByName(impl.Procedure); proc != nil {
		for _, ens := range proc.Ensures {
			if cand, ok := program.MatchCandidate(ens.Expr, candidates); ok && assignment[cand] {
				v.unsatCore = nil
				return houdini.VerifyResult{Outcome: prover.Invalid, Counterexamples: []*cex.Counterexample{
					{Kind: cex.KindReturn, FailingEnsures: exprToSExpr(ens.Expr)},
				}}, nil
			}
		}
	}

	v.unsatCore = guardingCandidates(v.Program, impl, candidates)
	return houdini.VerifyResult{Outcome: prover.Valid}, nil
}

// LastUnsatCore implements houdini.Verifier.
func (v *Verifier) LastUnsatCore() []string { return v.unsatCore }

// RequestUnsatCore implements houdini.Verifier: the core was already
// computed as part of Verify, so there is nothing further to request.
func (v *Verifier) RequestUnsatCore(context.Context) error { return nil }

func guardingCandidates(p *program.Program, impl *program.Implementation, candidates map[string]bool) []string {
	var names []string
	add := func(e program.Expr) {
		if c, ok := program.MatchCandidate(e, candidates); ok {
			names = append(names, c)
		}
	}
	for _, call := range impl.Calls {
		if callee := p.ProcedureByName(call.Callee); callee != nil {
			for _, req := range callee.Requires {
				add(req.Expr)
			}
		}
	}
	for _, a := range impl.Asserts {
		add(a.Expr)
	}
	if proc := p.ProcedureByName(impl.Procedure); proc != nil {
		for _, ens := range proc.Ensures {
			add(ens.Expr)
		}
	}
	return names
}

func exprToSExpr(e program.Expr) sexpr.SExpr {
	if !e.IsImplication() {
		return sexpr.Atom(e.Ident)
	}
	return sexpr.App("=>", exprToSExpr(*e.Lhs), exprToSExpr(*e.Rhs))
}

package fixture

import (
	"context"
	"testing"

	"github.com/boogiedrive/houdini/internal/program"
	"github.com/boogiedrive/houdini/internal/prover"
)

func TestVerifier_RefutesTrueGuardedAssert(t *testing.T) {
	prog := &program.Program{
		Constants: []program.Constant{{Name: "c", Existential: true}},
		Procedures: []program.Procedure{{Name: "P"}},
		Implementations: []program.Implementation{
			{Name: "ImplP", Procedure: "P", Asserts: []program.Condition{
				{Expr: program.Implies(program.Leaf("c"), program.Leaf("phi"))},
			}},
		},
	}
	v := &Verifier{Program: prog, ImplName: "ImplP"}

	res, err := v.Verify(context.Background(), map[string]bool{"c": true})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res.Outcome != prover.Invalid {
		t.Fatalf("expected Invalid while c is still true, got %v", res.Outcome)
	}
	if len(res.Counterexamples) != 1 {
		t.Fatalf("expected exactly one counterexample, got %d", len(res.Counterexamples))
	}
}

func TestVerifier_VerifiesOnceCandidateFalse(t *testing.T) {
	prog := &program.Program{
		Constants: []program.Constant{{Name: "c", Existential: true}},
		Procedures: []program.Procedure{{Name: "P"}},
		Implementations: []program.Implementation{
			{Name: "ImplP", Procedure: "P", Asserts: []program.Condition{
				{Expr: program.Implies(program.Leaf("c"), program.Leaf("phi"))},
			}},
		},
	}
	v := &Verifier{Program: prog, ImplName: "ImplP"}

	res, err := v.Verify(context.Background(), map[string]bool{"c": false})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res.Outcome != prover.Valid {
		t.Fatalf("expected Valid once c is false, got %v", res.Outcome)
	}
	core := v.LastUnsatCore()
	if len(core) != 1 || core[0] != "c" {
		t.Fatalf("expected unsat core [c], got %v", core)
	}
}

func TestVerifier_RequiresCheckedBeforeAsserts(t *testing.T) {
	prog := &program.Program{
		Constants:  []program.Constant{{Name: "c", Existential: true}},
		Procedures: []program.Procedure{
			{Name: "A"},
			{Name: "B", Requires: []program.Condition{
				{Expr: program.Implies(program.Leaf("c"), program.Leaf("psi"))},
			}},
		},
		Implementations: []program.Implementation{
			{Name: "ImplA", Procedure: "A", Calls: []program.CallSite{{Callee: "B"}}, Asserts: []program.Condition{
				{Expr: program.Leaf("phi")}, // no candidate guard; would never refute on its own
			}},
		},
	}
	v := &Verifier{Program: prog, ImplName: "ImplA"}

	res, err := v.Verify(context.Background(), map[string]bool{"c": true})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res.Outcome != prover.Invalid || res.Counterexamples[0].Callee != "B" {
		t.Fatalf("expected a requires counterexample naming callee B, got %+v", res)
	}
}

package houdini

import (
	"testing"

	"github.com/boogiedrive/houdini/internal/cex"
	"github.com/boogiedrive/houdini/internal/sexpr"
)

func TestExtractRefutations_AssertMatch(t *testing.T) {
	guard := sexpr.App("=>", sexpr.Atom("c"), sexpr.Atom("phi"))
	c := &cex.Counterexample{Kind: cex.KindAssert, FailingAssert: guard}

	refs, errs := extractRefutations([]*cex.Counterexample{c}, "Impl", map[string]bool{"c": true})
	if len(errs) != 0 {
		t.Fatalf("expected no genuine errors, got %v", errs)
	}
	if len(refs) != 1 || refs[0].Candidate != "c" || refs[0].Kind != KindAssert {
		t.Fatalf("got %v", refs)
	}
}

func TestExtractRefutations_EnsuresNestedAntecedent(t *testing.T) {
	// psi0 ⇒ c ⇒ phi, recognized ignoring the identity of psi0.
	guard := sexpr.App("=>", sexpr.Atom("psi0"), sexpr.App("=>", sexpr.Atom("c"), sexpr.Atom("phi")))
	c := &cex.Counterexample{Kind: cex.KindReturn, FailingEnsures: guard}

	refs, errs := extractRefutations([]*cex.Counterexample{c}, "Impl", map[string]bool{"c": true})
	if len(errs) != 0 {
		t.Fatalf("expected no genuine errors, got %v", errs)
	}
	if len(refs) != 1 || refs[0].Candidate != "c" || refs[0].Kind != KindEnsures {
		t.Fatalf("got %v", refs)
	}
}

func TestExtractRefutations_GenuineError(t *testing.T) {
	c := &cex.Counterexample{Kind: cex.KindAssert, FailingAssert: sexpr.Atom("phi")}

	refs, errs := extractRefutations([]*cex.Counterexample{c}, "Impl", map[string]bool{"c": true})
	if len(refs) != 0 {
		t.Fatalf("expected no refutations, got %v", refs)
	}
	if len(errs) != 1 {
		t.Fatalf("expected one genuine error, got %v", errs)
	}
}

func TestExtractRefutations_RequiresCarriesCallee(t *testing.T) {
	guard := sexpr.App("=>", sexpr.Atom("c"), sexpr.Atom("phi"))
	c := &cex.Counterexample{Kind: cex.KindCall, FailingRequires: guard, Callee: "B"}

	refs, _ := extractRefutations([]*cex.Counterexample{c}, "ImplA", map[string]bool{"c": true})
	if len(refs) != 1 || refs[0].Callee != "B" {
		t.Fatalf("got %v want Callee=B", refs)
	}
}

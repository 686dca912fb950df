package program

import "testing"

func TestApplyAssignment_TrueBecomesFree(t *testing.T) {
	p := &Program{
		Constants: []Constant{{Name: "c", Existential: true}},
		Implementations: []Implementation{
			{Name: "Impl", Asserts: []Condition{{Expr: Implies(Leaf("c"), Leaf("phi"))}}},
		},
	}
	ApplyAssignment(p, map[string]bool{"c": true})

	if len(p.Constants) != 0 {
		t.Fatalf("existential constants must be removed, got %v", p.Constants)
	}
	asserts := p.Implementations[0].Asserts
	if len(asserts) != 1 {
		t.Fatalf("got %d asserts want 1", len(asserts))
	}
	if asserts[0].Expr.Lhs.Ident != "true" {
		t.Fatalf("guard not substituted: %+v", asserts[0].Expr)
	}
	if !asserts[0].Free {
		t.Fatalf("expected the rewritten assertion to become free, got %+v", asserts[0])
	}
}

func TestApplyAssignment_FalseDropsAssertion(t *testing.T) {
	p := &Program{
		Implementations: []Implementation{
			{Name: "Impl", Asserts: []Condition{{Expr: Implies(Leaf("c"), Leaf("phi"))}}},
		},
	}
	ApplyAssignment(p, map[string]bool{"c": false})

	if len(p.Implementations[0].Asserts) != 0 {
		t.Fatalf("expected the guarded assertion to be dropped, got %v", p.Implementations[0].Asserts)
	}
}

func TestApplyAssignment_EnsuresBecomesFree(t *testing.T) {
	p := &Program{
		Procedures: []Procedure{
			{Name: "B", Ensures: []Condition{{Expr: Implies(Leaf("c"), Leaf("P"))}}},
		},
	}
	ApplyAssignment(p, map[string]bool{"c": true})

	ens := p.Procedures[0].Ensures
	if len(ens) != 1 || !ens[0].Free {
		t.Fatalf("expected one free ensures, got %+v", ens)
	}
}

func TestApplyAssignment_RefutedEnsuresLeftInPlace(t *testing.T) {
	guard := Implies(Leaf("c"), Leaf("P"))
	p := &Program{
		Procedures: []Procedure{
			{Name: "B", Ensures: []Condition{{Expr: guard}}},
		},
	}
	ApplyAssignment(p, map[string]bool{"c": false})

	ens := p.Procedures[0].Ensures
	if len(ens) != 1 {
		t.Fatalf("a refuted ensures must be left in place, not dropped, got %+v", ens)
	}
	if ens[0].Free {
		t.Fatal("a refuted ensures must stay enforced (false ⇒ φ is vacuous, not a license to free it)")
	}
	if ens[0].Expr.Lhs.Ident != "c" {
		t.Fatalf("a refuted ensures' guard must be left unsubstituted, got %+v", ens[0].Expr)
	}
}

func TestApplyAssignment_RefutedRequiresLeftInPlace(t *testing.T) {
	guard := Implies(Leaf("c"), Leaf("psi"))
	p := &Program{
		Procedures: []Procedure{
			{Name: "B", Requires: []Condition{{Expr: guard}}},
		},
	}
	ApplyAssignment(p, map[string]bool{"c": false})

	req := p.Procedures[0].Requires
	if len(req) != 1 || req[0].Free || req[0].Expr.Lhs.Ident != "c" {
		t.Fatalf("a refuted requires must be left in place unchanged, got %+v", req)
	}
}

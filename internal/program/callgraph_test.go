package program

import "testing"

func samplePropagationProgram() *Program {
	// A calls B; matches testable scenario 3 in spec.md §8.
	return &Program{
		Procedures: []Procedure{{Name: "A"}, {Name: "B"}},
		Implementations: []Implementation{
			{Name: "ImplB", Procedure: "B"},
			{Name: "ImplA", Procedure: "A", Calls: []CallSite{{Callee: "B"}}},
		},
	}
}

func TestBuildCallGraph_CalleesAndCallers(t *testing.T) {
	p := samplePropagationProgram()
	g := BuildCallGraph(p)

	if got := g.CalleesOf("ImplA"); len(got) != 1 || got[0] != "ImplB" {
		t.Fatalf("callees of ImplA: got %v want [ImplB]", got)
	}
	if got := g.CallersOf("ImplB"); len(got) != 1 || got[0] != "ImplA" {
		t.Fatalf("callers of ImplB: got %v want [ImplA]", got)
	}
}

func TestReverseTopologicalSCC_LeavesFirst(t *testing.T) {
	p := samplePropagationProgram()
	g := BuildCallGraph(p)

	order := g.ReverseTopologicalSCC([]string{"ImplA", "ImplB"})
	posA, posB := -1, -1
	for i, n := range order {
		switch n {
		case "ImplA":
			posA = i
		case "ImplB":
			posB = i
		}
	}
	if posB > posA {
		t.Fatalf("expected B (the leaf) before A in %v", order)
	}
}

func TestCrossDependencies(t *testing.T) {
	p := &Program{
		Implementations: []Implementation{
			{Name: "ImplB", Assumes: []AssumeCommand{{Expr: Implies(Leaf("c"), Leaf("phi"))}}},
		},
	}
	deps := CrossDependencies(p, map[string]bool{"c": true})
	if got := deps["c"]; len(got) != 1 || got[0] != "ImplB" {
		t.Fatalf("got %v want [ImplB]", got)
	}
}

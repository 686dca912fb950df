package cex

import (
	"testing"

	"github.com/boogiedrive/houdini/internal/sexpr"
)

func TestCompare_ByLocation(t *testing.T) {
	a := &Counterexample{Loc: 5000}
	b := &Counterexample{Loc: 6000}
	if Compare(a, b) >= 0 {
		t.Fatal("expected a < b by location")
	}
	if Compare(b, a) <= 0 {
		t.Fatal("expected b > a by location")
	}
}

func TestCompare_ByTraceThenErrorData(t *testing.T) {
	a := &Counterexample{Kind: KindAssert, Trace: []Block{{Name: "L0"}}, ErrorData: "x"}
	b := &Counterexample{Kind: KindAssert, Trace: []Block{{Name: "L0"}}, ErrorData: "y"}
	if Compare(a, b) >= 0 {
		t.Fatal("expected a < b by ErrorData")
	}
	if !Equal(a, a) {
		t.Fatal("expected self-equality")
	}
}

func TestHashCode_IsConstant(t *testing.T) {
	a := &Counterexample{Loc: 1}
	b := &Counterexample{Loc: 99999}
	if HashCode(a) != 0 || HashCode(b) != 0 {
		t.Fatal("HashCode must be the constant 0")
	}
}

func TestCounterexample_CloneIsIndependent(t *testing.T) {
	orig := &Counterexample{Trace: []Block{{Name: "entry"}}}
	clone := orig.Clone()
	clone.Trace[0].Name = "mutated"
	if orig.Trace[0].Name != "entry" {
		t.Fatal("clone mutation leaked into original")
	}
}

func TestCounterexample_FailingCommandDispatchesByKind(t *testing.T) {
	c := &Counterexample{Kind: KindCall, FailingCall: sexpr.Atom("foo")}
	if c.FailingCommand().Head() != "foo" {
		t.Fatal("expected FailingCommand to dispatch to FailingCall for KindCall")
	}
}

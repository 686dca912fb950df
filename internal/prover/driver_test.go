package prover

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/boogiedrive/houdini/internal/sexpr"
	"github.com/boogiedrive/houdini/internal/solver"
)

type noopGen struct{}

func (noopGen) SetupAxiomBuilder() error                      { return nil }
func (noopGen) PrepareCommon(send func(string) error) error   { return send("(set-logic ALL)") }
func (noopGen) FlushAxioms(send func(string) error) error     { return nil }
func (noopGen) VCExprToString(vc sexpr.SExpr, indent int) string {
	return "(assert " + vc.String() + ")"
}

func startFakeSolver(t *testing.T, script string) *solver.Session {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	s, err := solver.Start(ctx, solver.Options{Command: "sh", Args: []string{"-c", script}})
	if err != nil {
		t.Fatalf("solver.Start: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBeginCheck_Unsat(t *testing.T) {
	s := startFakeSolver(t, `while read -r _; do :; done; printf 'unsat\n(:reason-unknown "")\n(model)\n'`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := BeginCheck(ctx, s, noopGen{}, sexpr.Atom("true"), Options{})
	if err != nil {
		t.Fatalf("BeginCheck: %v", err)
	}
	if res.Outcome != Valid {
		t.Fatalf("outcome: got %v want Valid", res.Outcome)
	}
}

func TestBeginCheck_SatWithControlFlowPath(t *testing.T) {
	model := `(model ` +
		`(define-fun ControlFlow ((x!0 Int) (x!1 Int)) Int ` +
		`(ite (and (= x!0 7) (= x!1 0)) 42 ` +
		`(ite (and (= x!0 7) (= x!1 42)) (dt Block42) 0))))`
	s := startFakeSolver(t, `while read -r _; do :; done; printf 'sat\n(:reason-unknown "")\n`+model+`\n'`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := BeginCheck(ctx, s, noopGen{}, sexpr.Atom("true"), Options{ControlFlowConstant: 7})
	if err != nil {
		t.Fatalf("BeginCheck: %v", err)
	}
	if res.Outcome != Invalid {
		t.Fatalf("outcome: got %v want Invalid", res.Outcome)
	}
	if len(res.Path) != 2 || res.Path[0] != "42" || res.Path[1] != "Block42" {
		t.Fatalf("path: got %v want [42 Block42]", res.Path)
	}
}

func TestBeginCheck_UnknownRefinedByReasonUnknown(t *testing.T) {
	s := startFakeSolver(t, `while read -r _; do :; done; printf 'unknown\n(:reason-unknown "timeout")\n(model)\n'`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := BeginCheck(ctx, s, noopGen{}, sexpr.Atom("true"), Options{})
	if err != nil {
		t.Fatalf("BeginCheck: %v", err)
	}
	if res.Outcome != TimedOut {
		t.Fatalf("outcome: got %v want TimedOut", res.Outcome)
	}
}

func TestBeginCheck_Z3RLimitHarvested(t *testing.T) {
	s := startFakeSolver(t, `while read -r _; do :; done; printf 'unsat\n(:reason-unknown "")\n(:rlimit 500)\n(model)\n'`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := BeginCheck(ctx, s, noopGen{}, sexpr.Atom("true"), Options{Z3: true})
	if err != nil {
		t.Fatalf("BeginCheck: %v", err)
	}
	if res.RLimit != "500" {
		t.Fatalf("rlimit: got %q want %q", res.RLimit, "500")
	}
}

func TestRejectUnsupported(t *testing.T) {
	for _, op := range []string{"Evaluate", "Check", "UnsatCore", "CheckAssumptions"} {
		if err := RejectUnsupported(op); err == nil {
			t.Fatalf("expected unsupported error for %s", op)
		}
	}
	if err := RejectUnsupported("check-sat"); err != nil {
		t.Fatalf("unexpected error for a supported op: %v", err)
	}
}

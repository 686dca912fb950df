package prover

import (
	"context"
	"fmt"
	"strings"

	"github.com/boogiedrive/houdini/internal/cex"
	"github.com/boogiedrive/houdini/internal/sexpr"
	"github.com/boogiedrive/houdini/internal/solver"
)

// VCGenerator is the collaborator the batch driver consumes to build the
// preamble and render the VC expression (spec.md §6 "consumed" interfaces).
// It is out of scope here: production implementations lower a procedure
// body into a VC expression tree this package never inspects directly.
type VCGenerator interface {
	SetupAxiomBuilder() error
	PrepareCommon(send func(string) error) error
	FlushAxioms(send func(string) error) error
	VCExprToString(vc sexpr.SExpr, indent int) string
}

// Options configures one batch check.
type Options struct {
	// Z3 selects the Z3-only ":rlimit" query and its option name.
	Z3               bool
	RLimitOptionName string

	// ControlFlowConstant identifies the current procedure for the
	// ControlFlow model walk (spec.md §4.D).
	ControlFlowConstant int

	Log *TranscriptLog
}

// Result is the outcome of one begin_check/check_outcome round-trip.
type Result struct {
	Outcome       Outcome
	ReasonUnknown string
	RLimit        string
	Model         *cex.Model
	Path          []string
}

// BeginCheck issues the fixed command sequence for one VC, harvests the
// fixed reply tuple, and maps it to a Result (spec.md §4.D).
func BeginCheck(ctx context.Context, sess *solver.Session, gen VCGenerator, vc sexpr.SExpr, opts Options) (*Result, error) {
	send := func(cmd string) error {
		if err := sess.Send(cmd); err != nil {
			return err
		}
		return opts.Log.Write(cmd)
	}

	if err := sess.NewProblem("check"); err != nil {
		return nil, err
	}
	if err := gen.SetupAxiomBuilder(); err != nil {
		return nil, &VCGenFailure{Cause: err}
	}
	if err := gen.PrepareCommon(send); err != nil {
		return nil, &VCGenFailure{Cause: err}
	}
	if err := gen.FlushAxioms(send); err != nil {
		return nil, &VCGenFailure{Cause: err}
	}

	if err := send(fmt.Sprintf("(assert (not %s))", vc.String())); err != nil {
		return nil, err
	}

	if err := send("(push 1)"); err != nil {
		return nil, err
	}
	if err := send(gen.VCExprToString(vc, 0)); err != nil {
		return nil, err
	}
	if err := send("(check-sat)"); err != nil {
		return nil, err
	}
	if err := send("(get-info :reason-unknown)"); err != nil {
		return nil, err
	}
	if opts.Z3 {
		optName := opts.RLimitOptionName
		if optName == "" {
			optName = "rlimit"
		}
		if err := send(fmt.Sprintf("(get-info :%s)", optName)); err != nil {
			return nil, err
		}
	}
	if err := send("(get-model)"); err != nil {
		return nil, err
	}
	if err := send("(pop 1)"); err != nil {
		return nil, err
	}
	sess.IndicateEndOfInput()

	outcomeResp, err := sess.AwaitResponse(ctx)
	if err != nil {
		return nil, err
	}
	reasonResp, err := sess.AwaitResponse(ctx)
	if err != nil {
		return nil, err
	}
	var rlimitResp *sexpr.SExpr
	if opts.Z3 {
		rlimitResp, err = sess.AwaitResponse(ctx)
		if err != nil {
			return nil, err
		}
	}
	modelResp, err := sess.AwaitResponse(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Outcome: classifyOutcome(outcomeResp)}
	if reasonResp != nil {
		res.ReasonUnknown = reasonText(*reasonResp)
		if res.Outcome == Undetermined {
			res.Outcome = refineByReasonUnknown(res.ReasonUnknown)
		}
	}
	if rlimitResp != nil {
		res.RLimit = reasonText(*rlimitResp)
	}
	if modelResp != nil {
		res.Model = cex.ParseModel(*modelResp)
	}

	if res.Outcome == Invalid && res.Model != nil {
		path, pathErr := controlFlowPath(res.Model, opts.ControlFlowConstant)
		if len(path) == 0 && pathErr != nil {
			res.Outcome = Undetermined
		} else {
			res.Path = path
		}
	}

	return res, nil
}

// classifyOutcome implements the outcome-sexpr table in spec.md §4.D.
func classifyOutcome(resp *sexpr.SExpr) Outcome {
	if resp == nil {
		return SolverException
	}
	switch resp.Head() {
	case "sat":
		return Invalid
	case "unsat":
		return Valid
	case "unknown":
		return Undetermined
	case "error":
		// The only "error"-headed reply the solver session ever hands back
		// here is the resource-limit one (internal/solver's classifier
		// resolves any other error as a hard Go error, which AwaitResponse
		// returns before classifyOutcome is reached). The SolverException
		// fallback below is defensive: it covers a classifier resp this
		// driver doesn't currently receive, not a reachable outcome today.
		if strings.Contains(reasonText(*resp), resourceLimitErrorFragment) {
			return OutOfResource
		}
		return SolverException
	default:
		return SolverException
	}
}

func reasonText(e sexpr.SExpr) string {
	if len(e.Args) == 1 && e.Args[0].IsID() {
		return e.Args[0].Name
	}
	if e.IsID() {
		return e.Name
	}
	return e.String()
}

// RejectUnsupported returns the UnsupportedOperationError for the batch-mode
// operations spec.md §4.D explicitly disallows.
func RejectUnsupported(op string) error {
	switch op {
	case "Evaluate", "Check", "UnsatCore", "CheckAssumptions":
		return &UnsupportedOperationError{Operation: op}
	default:
		return nil
	}
}

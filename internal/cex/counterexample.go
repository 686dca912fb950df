package cex

import "github.com/boogiedrive/houdini/internal/sexpr"

// Block is one entry of a counterexample's execution trace: a basic block
// name plus the ordered capture-state/incarnation pairs recorded while
// walking it.
type Block struct {
	Name          string
	CaptureStates []CaptureState
}

// CaptureState is a named point in the trace where the current mapping of
// source variables to SSA incarnations was recorded (spec.md §3, §4.E).
type CaptureState struct {
	AssumeCmd   sexpr.SExpr
	Incarnation map[string]sexpr.SExpr
}

// Kind distinguishes the three counterexample variants without resorting to
// an inheritance hierarchy (spec.md §9 "Dynamic dispatch among
// counterexample kinds").
type Kind int

const (
	KindAssert Kind = iota
	KindCall
	KindReturn
)

// Counterexample is the tagged variant Cex = Assert{...} | Call{...} |
// Return{...} from spec.md §3/§9. Exactly one of the variant-specific
// fields is meaningful, selected by Kind.
type Counterexample struct {
	Kind Kind

	Trace []Block
	Model *Model
	View  *ModelViewInfo
	Ctx   ProverContext

	// Callees indexed by (block index, instruction index), for counter-
	// examples nested inside a failing call.
	Callees map[[2]int]*Counterexample

	// AssertCounterexample
	FailingAssert sexpr.SExpr
	ErrorData     string

	// CallCounterexample
	FailingCall     sexpr.SExpr
	FailingRequires sexpr.SExpr
	Callee          string

	// ReturnCounterexample
	FailingReturn  sexpr.SExpr
	FailingEnsures sexpr.SExpr

	// Line·1000 + column of the failing site, precomputed at construction.
	Loc int
}

// ProverContext resolves a program variable to the unique name the solver
// model knows it by (spec.md §3, §6 "consumed" interfaces).
type ProverContext interface {
	UniqueName(variable string) (string, bool)
}

// Location returns line*1000 + column for the failing site, per spec.md §3.
func (c *Counterexample) Location() int { return c.Loc }

// FailingCommand returns the SExpr that triggered the failure, dispatching
// on Kind.
func (c *Counterexample) FailingCommand() sexpr.SExpr {
	switch c.Kind {
	case KindAssert:
		return c.FailingAssert
	case KindCall:
		return c.FailingCall
	case KindReturn:
		return c.FailingReturn
	default:
		return sexpr.SExpr{}
	}
}

// Clone returns a deep-enough copy for callers that mutate trace slices
// without affecting the original (spec.md §3 "cloneable").
func (c *Counterexample) Clone() *Counterexample {
	cp := *c
	cp.Trace = append([]Block(nil), c.Trace...)
	if c.Callees != nil {
		cp.Callees = make(map[[2]int]*Counterexample, len(c.Callees))
		for k, v := range c.Callees {
			cp.Callees[k] = v.Clone()
		}
	}
	return &cp
}

// NewLocation builds the line*1000+column encoding spec.md §3 specifies.
func NewLocation(line, column int) int {
	return line*1000 + column
}

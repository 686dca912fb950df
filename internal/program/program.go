// Package program is the minimal program AST collaborator the Houdini
// engine drives: constants, procedures, implementations, a call graph, and
// candidate-guard recognition over a small boolean-implication expression
// language (spec.md §4.F, §6 "Program AST collaborator interface").
//
// The full Boogie AST, VC generator, and pretty-printer are out of scope
// (spec.md §1); this package supplies just enough structure for the engine
// to enumerate procedures/constants, walk the call graph, and rewrite
// candidate-guarded conditions.
package program

// Constant is a program-level boolean declaration. Existential is true for
// candidates Houdini is allowed to infer (spec.md §3 "Candidate constant").
type Constant struct {
	Name        string
	Existential bool
}

// Expr is a tiny expression tree: either an identifier/literal leaf, or an
// implication "A ⇒ B" node. It is expressive enough to recognize and
// rewrite candidate-guarded conditions (spec.md §4.F "Candidate
// recognition").
type Expr struct {
	Ident string // non-empty for leaves
	Lhs   *Expr  // non-nil for implications
	Rhs   *Expr
}

// Leaf builds an identifier/literal expression.
func Leaf(ident string) Expr { return Expr{Ident: ident} }

// Implies builds "lhs ⇒ rhs".
func Implies(lhs, rhs Expr) Expr { return Expr{Lhs: &lhs, Rhs: &rhs} }

// IsImplication reports whether e is an "A ⇒ B" node.
func (e Expr) IsImplication() bool { return e.Lhs != nil && e.Rhs != nil }

// MatchCandidate implements spec.md §4.F "Candidate recognition": e matches
// with candidate c iff it is (a ⇒ b) where a is an identifier naming a
// candidate in candidates, yielding c = a; or it is (a ⇒ b) where b
// recursively matches. Intermediate antecedents' identity is ignored.
func MatchCandidate(e Expr, candidates map[string]bool) (string, bool) {
	if !e.IsImplication() {
		return "", false
	}
	if e.Lhs.Ident != "" && candidates[e.Lhs.Ident] {
		return e.Lhs.Ident, true
	}
	return MatchCandidate(*e.Rhs, candidates)
}

// Condition is a guarded pre/post-condition or assertion attached to an
// Implementation or Procedure.
type Condition struct {
	Expr Expr
	Free bool // rewritten to "free" by apply-assignment when its guard is true
}

// Procedure is a callable signature: its REQUIRES/ENSURES live here,
// independent of any particular implementation body.
type Procedure struct {
	Name     string
	Requires []Condition
	Ensures  []Condition
}

// AssumeCommand is one "assume expr" statement inside an implementation's
// body, scanned during cross-dependency analysis (spec.md §4.F step 3).
type AssumeCommand struct {
	Expr Expr
}

// CallSite records one call instruction inside an implementation, for call
// graph construction.
type CallSite struct {
	Callee string
}

// Implementation is one body for a Procedure: its own asserts, the assume
// commands it contains, and the calls it makes.
type Implementation struct {
	Name      string
	Procedure string // name of the Procedure this implements
	Asserts   []Condition
	Assumes   []AssumeCommand
	Calls     []CallSite
}

// Program is the full collaborator surface: every constant, procedure, and
// implementation, enumerable by the engine.
type Program struct {
	Constants       []Constant
	Procedures      []Procedure
	Implementations []Implementation
}

// ExistentialConstants returns the set of candidate names (spec.md §4.F
// step 1).
func (p *Program) ExistentialConstants() map[string]bool {
	out := map[string]bool{}
	for _, c := range p.Constants {
		if c.Existential {
			out[c.Name] = true
		}
	}
	return out
}

// ProcedureByName looks up a procedure by name.
func (p *Program) ProcedureByName(name string) *Procedure {
	for i := range p.Procedures {
		if p.Procedures[i].Name == name {
			return &p.Procedures[i]
		}
	}
	return nil
}

// ImplementationByName looks up an implementation by name.
func (p *Program) ImplementationByName(name string) *Implementation {
	for i := range p.Implementations {
		if p.Implementations[i].Name == name {
			return &p.Implementations[i]
		}
	}
	return nil
}

package program

// ApplyAssignment performs the post-inference AST rewrite spec.md §4.F
// describes: candidates assigned true become "free" assumptions with the
// guard substituted away; candidates assigned false drop their guarded
// assertions outright (their pre/post-conditions are left in place, since
// "false ⇒ φ" is vacuously true); every existential constant is then
// removed from the program's declarations.
func ApplyAssignment(p *Program, assignment map[string]bool) {
	for i := range p.Implementations {
		p.Implementations[i].Asserts = rewriteAsserts(p.Implementations[i].Asserts, assignment)
	}
	for i := range p.Procedures {
		p.Procedures[i].Requires = rewriteConditions(p.Procedures[i].Requires, assignment)
		p.Procedures[i].Ensures = rewriteConditions(p.Procedures[i].Ensures, assignment)
	}

	var kept []Constant
	for _, c := range p.Constants {
		if c.Existential {
			continue
		}
		kept = append(kept, c)
	}
	p.Constants = kept
}

func rewriteAsserts(asserts []Condition, assignment map[string]bool) []Condition {
	var kept []Condition
	for _, a := range asserts {
		c, ok := MatchCandidate(a.Expr, trueKeys(assignment))
		if !ok {
			kept = append(kept, a)
			continue
		}
		if assignment[c] {
			kept = append(kept, Condition{Expr: substituteTrue(a.Expr, c), Free: true})
		}
		// assignment[c] == false: the guarded assertion is dropped entirely.
	}
	return kept
}

func rewriteConditions(conds []Condition, assignment map[string]bool) []Condition {
	out := make([]Condition, len(conds))
	for i, cnd := range conds {
		c, ok := MatchCandidate(cnd.Expr, trueKeys(assignment))
		if !ok || !assignment[c] {
			// Unmatched, or c = false: left in place unchanged. A refuted
			// candidate's guard reads as "false ⇒ φ", vacuously true, not a
			// license to make φ an enforced free condition.
			out[i] = cnd
			continue
		}
		out[i] = Condition{Expr: substituteTrue(cnd.Expr, c), Free: true}
	}
	return out
}

// trueKeys treats every key of assignment as a recognizable candidate name
// for the purposes of MatchCandidate, regardless of its current boolean
// value — recognition is about shape, not current truth.
func trueKeys(assignment map[string]bool) map[string]bool {
	out := make(map[string]bool, len(assignment))
	for k := range assignment {
		out[k] = true
	}
	return out
}

// substituteTrue rewrites the matched candidate's leading antecedent "c"
// to the literal "true" throughout e, per spec.md §4.F "c = true" case.
func substituteTrue(e Expr, candidate string) Expr {
	if e.Ident == candidate {
		return Leaf("true")
	}
	if !e.IsImplication() {
		return e
	}
	lhs := substituteTrue(*e.Lhs, candidate)
	rhs := substituteTrue(*e.Rhs, candidate)
	return Implies(lhs, rhs)
}

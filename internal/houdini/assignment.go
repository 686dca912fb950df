package houdini

// Assignment is the total mapping Candidate -> Bool, monotone over a run:
// once a candidate is flipped to false, it never flips back (spec.md §3,
// §8 invariant 1).
type Assignment struct {
	values map[string]bool
}

// NewAssignment initializes every named candidate to true (spec.md §4.F
// step 7), optionally overridden by initial.
func NewAssignment(candidates map[string]bool, initial map[string]bool) *Assignment {
	a := &Assignment{values: map[string]bool{}}
	for c := range candidates {
		a.values[c] = true
	}
	for c, v := range initial {
		if _, ok := a.values[c]; ok {
			a.values[c] = v
		}
	}
	return a
}

// Get returns the current value of c.
func (a *Assignment) Get(c string) bool { return a.values[c] }

// Flip sets c to false. Flipping an already-false candidate is a no-op;
// setting true would violate monotonicity and is refused (spec.md §8
// invariant 1).
func (a *Assignment) Flip(c string) (changed bool) {
	if !a.values[c] {
		return false
	}
	a.values[c] = false
	return true
}

// Snapshot returns a copy of the current assignment, suitable for passing
// to a Verifier or for apply-assignment.
func (a *Assignment) Snapshot() map[string]bool {
	out := make(map[string]bool, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

// DenyListRemaining flips every still-true candidate to false, used when an
// implementation is deny-listed after a hard failure (spec.md §3 "deny_list
// is a set of procedure names excluded from further work (e.g., after a
// hard failure)").
func (a *Assignment) DenyListRemaining(candidates []string) []string {
	var flipped []string
	for _, c := range candidates {
		if a.Flip(c) {
			flipped = append(flipped, c)
		}
	}
	return flipped
}

// StageOverrides computes the per-verify-call forced values spec.md §4.F
// "Staging" describes: candidates carrying stage_active = N are forced to
// (currentStage == N); candidates carrying stage_complete = M are forced to
// (M is a member of completedStages). These never mutate the stored
// assignment.
func StageOverrides(base map[string]bool, stageActive map[string]int, stageComplete map[string]int, currentStage int, completedStages map[int]bool) map[string]bool {
	out := make(map[string]bool, len(base))
	for k, v := range base {
		out[k] = v
	}
	for c, n := range stageActive {
		out[c] = n == currentStage
	}
	for c, m := range stageComplete {
		out[c] = completedStages[m]
	}
	return out
}

package prover

import "fmt"

// UnsupportedOperationError is returned by the batch driver for the
// operations spec.md §4.D explicitly disallows in batch mode: Evaluate,
// Check, UnsatCore, CheckAssumptions.
type UnsupportedOperationError struct {
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("prover: %s is not supported in batch mode", e.Operation)
}

// VCGenFailure wraps an error raised by the VC generator collaborator while
// building the verification condition for one implementation. The engine
// deny-lists the implementation and continues (spec.md §4.F step 5, §7).
type VCGenFailure struct {
	Implementation string
	Cause          error
}

func (e *VCGenFailure) Error() string {
	return fmt.Sprintf("prover: vcgen failed for %s: %v", e.Implementation, e.Cause)
}

func (e *VCGenFailure) Unwrap() error { return e.Cause }

package cex

// Compare implements the total order spec.md §4.E specifies: first by
// Location, then elementwise by block-trace token position, then (for
// assert counterexamples) by ErrorData. Returns -1, 0, or 1.
func Compare(a, b *Counterexample) int {
	if a.Loc != b.Loc {
		if a.Loc < b.Loc {
			return -1
		}
		return 1
	}
	if c := compareTraces(a.Trace, b.Trace); c != 0 {
		return c
	}
	if a.Kind == KindAssert && b.Kind == KindAssert {
		if a.ErrorData != b.ErrorData {
			if a.ErrorData < b.ErrorData {
				return -1
			}
			return 1
		}
	}
	return 0
}

func compareTraces(a, b []Block) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i].Name != b[i].Name {
			if a[i].Name < b[i].Name {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b compare as identical under Compare.
func Equal(a, b *Counterexample) bool { return Compare(a, b) == 0 }

// HashCode is the constant 0 spec.md §4.E mandates, so order-preserving
// containers keyed by this hash degrade to linear scan rather than losing
// ordering guarantees.
func HashCode(*Counterexample) int { return 0 }

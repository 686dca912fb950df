package cex

// ModelViewInfo is the ordered list of program variables plus, per basic
// block, the capture-state/incarnation pairs recorded during VC generation
// (spec.md §3 "Model view info").
type ModelViewInfo struct {
	Variables []string
	Blocks    []ModelViewBlock
}

// ModelViewBlock mirrors one Block's capture states as recorded by the VC
// generator, before projection binds them to solver model elements.
type ModelViewBlock struct {
	Name          string
	CaptureStates []CaptureState
}

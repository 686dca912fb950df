package houdini

import "testing"

func TestAssignment_InitializedTrue(t *testing.T) {
	a := NewAssignment(map[string]bool{"c1": true, "c2": true}, nil)
	if !a.Get("c1") || !a.Get("c2") {
		t.Fatal("every candidate must start true")
	}
}

func TestAssignment_FlipIsMonotone(t *testing.T) {
	a := NewAssignment(map[string]bool{"c": true}, nil)
	if !a.Flip("c") {
		t.Fatal("expected the first flip to report a change")
	}
	if a.Get("c") {
		t.Fatal("expected c to be false after flipping")
	}
	if a.Flip("c") {
		t.Fatal("flipping an already-false candidate must be a no-op")
	}
}

func TestAssignment_InitialOverride(t *testing.T) {
	a := NewAssignment(map[string]bool{"c": true}, map[string]bool{"c": false})
	if a.Get("c") {
		t.Fatal("expected the caller-supplied initial map to override the default true")
	}
}

func TestStageOverrides(t *testing.T) {
	base := map[string]bool{"c1": true, "c2": true}
	stageActive := map[string]int{"c1": 2}
	stageComplete := map[string]int{"c2": 1}
	completed := map[int]bool{1: true}

	out := StageOverrides(base, stageActive, stageComplete, 3, completed)
	if out["c1"] {
		t.Fatalf("c1 staged for stage 2 must be forced false when currentStage=3, got %v", out["c1"])
	}
	if !out["c2"] {
		t.Fatalf("c2 complete at stage 1 must be forced true when stage 1 is completed, got %v", out["c2"])
	}
}

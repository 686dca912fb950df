package observer

import "testing"

type recording struct {
	NopObserver
	starts []string
}

func (r *recording) OnStart(run string) { r.starts = append(r.starts, run) }

func TestFanOut_DispatchesInInsertionOrder(t *testing.T) {
	var order []int
	f := NewFanOut()
	f.Register(markerObserver{id: 1, order: &order})
	f.Register(markerObserver{id: 2, order: &order})
	f.Start("run-1")

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("dispatch order: got %v want [1 2]", order)
	}
}

type markerObserver struct {
	NopObserver
	id    int
	order *[]int
}

func (m markerObserver) OnStart(string) { *m.order = append(*m.order, m.id) }

func TestFanOut_DuplicateRegistrationIsNoOp(t *testing.T) {
	r := &recording{}
	f := NewFanOut()
	f.Register(r)
	f.Register(r)
	f.Start("run-1")

	if len(r.starts) != 1 {
		t.Fatalf("expected exactly one dispatch, got %d", len(r.starts))
	}
}

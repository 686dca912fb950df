package houdini

import "testing"

func TestWorkQueue_SetSemantics(t *testing.T) {
	q := NewWorkQueue([]string{"A", "B"})
	if q.Len() != 2 {
		t.Fatalf("len: got %d want 2", q.Len())
	}

	q.Enqueue("A") // already present: no-op
	if q.Len() != 2 {
		t.Fatalf("re-enqueueing a present item changed the length: got %d want 2", q.Len())
	}
	if !q.Contains("A") {
		t.Fatal("expected A to be contained")
	}

	head, ok := q.Dequeue()
	if !ok || head != "A" {
		t.Fatalf("dequeue: got (%q, %v) want (A, true)", head, ok)
	}
	if q.Contains("A") {
		t.Fatal("A must not be contained after dequeue")
	}
	if q.Len() != 1 {
		t.Fatalf("len after dequeue: got %d want 1 (|set| == |queue|)", q.Len())
	}
}

func TestWorkQueue_EmptyDequeue(t *testing.T) {
	q := NewWorkQueue(nil)
	if !q.Empty() {
		t.Fatal("expected an empty queue")
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatal("expected Dequeue to report false on an empty queue")
	}
}

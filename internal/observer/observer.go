// Package observer is a thin, insertion-ordered publisher/subscriber fan-out
// for Houdini engine lifecycle events (spec.md §4.G).
package observer

// Event identifies one lifecycle notification.
type Event int

const (
	EventStart Event = iota
	EventIteration
	EventImplementation
	EventAssignment
	EventOutcome
	EventEnqueue
	EventDequeue
	EventConstant
	EventEnd
	EventFlushStart
	EventFlushFinish
	EventException
)

// Observer receives lifecycle events. Every method defaults to a no-op via
// the embedded NopObserver, so implementations only override what they
// need (spec.md §6 "Observer interface (exposed)"). Observers must not
// mutate engine state: every payload is passed by value or as an immutable
// view.
type Observer interface {
	OnStart(run string)
	OnIteration(n int)
	OnImplementation(name string)
	OnAssignment(candidate string, value bool)
	OnOutcome(implementation string, outcome string)
	OnEnqueue(implementation string)
	OnDequeue(implementation string)
	OnConstant(name string, existential bool)
	OnEnd(run string)
	OnFlushStart(reason string)
	OnFlushFinish(reason string)
	OnException(implementation string, err error)
}

// NopObserver implements Observer with no-ops for every method; embed it to
// override only the events you care about.
type NopObserver struct{}

func (NopObserver) OnStart(string)             {}
func (NopObserver) OnIteration(int)            {}
func (NopObserver) OnImplementation(string)    {}
func (NopObserver) OnAssignment(string, bool)  {}
func (NopObserver) OnOutcome(string, string)   {}
func (NopObserver) OnEnqueue(string)           {}
func (NopObserver) OnDequeue(string)           {}
func (NopObserver) OnConstant(string, bool)    {}
func (NopObserver) OnEnd(string)               {}
func (NopObserver) OnFlushStart(string)        {}
func (NopObserver) OnFlushFinish(string)       {}
func (NopObserver) OnException(string, error)  {}

// FanOut dispatches each lifecycle event to every registered Observer, in
// insertion order. Duplicate registration of the same Observer value is a
// no-op (spec.md §4.G).
type FanOut struct {
	observers []Observer
	seen      map[Observer]bool
}

// NewFanOut returns an empty FanOut ready to register observers on.
func NewFanOut() *FanOut {
	return &FanOut{seen: map[Observer]bool{}}
}

// Register adds o if it has not already been registered.
func (f *FanOut) Register(o Observer) {
	if f.seen[o] {
		return
	}
	f.seen[o] = true
	f.observers = append(f.observers, o)
}

func (f *FanOut) Start(run string) {
	for _, o := range f.observers {
		o.OnStart(run)
	}
}

func (f *FanOut) Iteration(n int) {
	for _, o := range f.observers {
		o.OnIteration(n)
	}
}

func (f *FanOut) Implementation(name string) {
	for _, o := range f.observers {
		o.OnImplementation(name)
	}
}

func (f *FanOut) Assignment(candidate string, value bool) {
	for _, o := range f.observers {
		o.OnAssignment(candidate, value)
	}
}

func (f *FanOut) Outcome(implementation, outcome string) {
	for _, o := range f.observers {
		o.OnOutcome(implementation, outcome)
	}
}

func (f *FanOut) Enqueue(implementation string) {
	for _, o := range f.observers {
		o.OnEnqueue(implementation)
	}
}

func (f *FanOut) Dequeue(implementation string) {
	for _, o := range f.observers {
		o.OnDequeue(implementation)
	}
}

func (f *FanOut) Constant(name string, existential bool) {
	for _, o := range f.observers {
		o.OnConstant(name, existential)
	}
}

func (f *FanOut) End(run string) {
	for _, o := range f.observers {
		o.OnEnd(run)
	}
}

func (f *FanOut) FlushStart(reason string) {
	for _, o := range f.observers {
		o.OnFlushStart(reason)
	}
}

func (f *FanOut) FlushFinish(reason string) {
	for _, o := range f.observers {
		o.OnFlushFinish(reason)
	}
}

func (f *FanOut) Exception(implementation string, err error) {
	for _, o := range f.observers {
		o.OnException(implementation, err)
	}
}

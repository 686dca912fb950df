package houdini

import (
	"context"
	"errors"
	"fmt"

	"github.com/boogiedrive/houdini/internal/cex"
	"github.com/boogiedrive/houdini/internal/observer"
	"github.com/boogiedrive/houdini/internal/program"
	"github.com/boogiedrive/houdini/internal/prover"
)

// Verifier is the per-implementation collaborator the engine drives: it
// owns a VC generator and a solver session for exactly one implementation
// (spec.md §4.F step 5) and runs one check under a given (possibly staged)
// assignment.
type Verifier interface {
	Verify(ctx context.Context, assignment map[string]bool) (VerifyResult, error)
	// LastUnsatCore reports the named assertions the solver used to prove
	// unsat on the most recent Verify call, used to refine propagation
	// (spec.md §4.F step "e").
	LastUnsatCore() []string
	// RequestUnsatCore asks the solver session for the unsat core of the
	// last check, populating the value LastUnsatCore returns.
	RequestUnsatCore(ctx context.Context) error
}

// VerifyResult is one implementation's check outcome plus any
// counterexamples it produced.
type VerifyResult struct {
	Outcome         prover.Outcome
	Counterexamples []*cex.Counterexample
}

// Config wires the external collaborators and feature toggles an Engine
// run needs.
type Config struct {
	Program   *program.Program
	Verifiers map[string]Verifier

	CrossDependenciesEnabled bool
	UnsatCoreEnabled         bool
	ReverseInitialOrder      bool

	InitialAssignment map[string]bool

	// DenyImplementations is a set of implementation names excluded from
	// the work queue from the start, e.g. seeded from a config file's
	// deny_implementations glob patterns (SPEC_FULL.md §2.3).
	DenyImplementations map[string]bool

	StageActive    map[string]int
	StageComplete  map[string]int
	CurrentStage   int
	CompletedStages map[int]bool

	Observers *observer.FanOut
	Hooks     ConcurrentInferenceHooks

	RunID string
}

// ImplementationOutcome records what happened to one implementation over
// the course of a run.
type ImplementationOutcome struct {
	Outcome           prover.Outcome
	FlippedCandidates []string
	GenuineErrors     []*cex.Counterexample
}

// Engine runs the Houdini fixed-point loop (spec.md §4.F).
type Engine struct {
	program   *program.Program
	graph     *program.CallGraph
	crossDeps map[string][]string

	assignment *Assignment
	queue      *WorkQueue
	denyList   map[string]bool

	verifiers map[string]Verifier
	outcomes  map[string]*ImplementationOutcome

	crossDepsEnabled bool
	unsatCoreEnabled bool

	stageActive     map[string]int
	stageComplete   map[string]int
	currentStage    int
	completedStages map[int]bool

	observers *observer.FanOut
	hooks     ConcurrentInferenceHooks
	runID     string

	flushing     bool
	flushReason  string
	verifyCalls  int
}

// NewEngine collects the candidates, builds the call graph (and, when
// enabled, the cross-dependency map), orders the initial work queue
// leaves-first, and seeds the assignment (spec.md §4.F "Initialization").
// It does not inline implementations and does not create verifiers: one per
// implementation is supplied through Config.Verifiers.
func NewEngine(cfg Config) *Engine {
	candidates := cfg.Program.ExistentialConstants()
	graph := program.BuildCallGraph(cfg.Program)

	var crossDeps map[string][]string
	if cfg.CrossDependenciesEnabled {
		crossDeps = program.CrossDependencies(cfg.Program, candidates)
	}

	var implNames []string
	for _, impl := range cfg.Program.Implementations {
		implNames = append(implNames, impl.Name)
	}
	order := graph.ReverseTopologicalSCC(implNames)
	if cfg.ReverseInitialOrder {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	if len(cfg.DenyImplementations) > 0 {
		kept := order[:0:0]
		for _, name := range order {
			if !cfg.DenyImplementations[name] {
				kept = append(kept, name)
			}
		}
		order = kept
	}

	observers := cfg.Observers
	if observers == nil {
		observers = observer.NewFanOut()
	}

	e := &Engine{
		program:         cfg.Program,
		graph:           graph,
		crossDeps:       crossDeps,
		assignment:      NewAssignment(candidates, cfg.InitialAssignment),
		queue:           NewWorkQueue(order),
		denyList:        copyDenySet(cfg.DenyImplementations),
		verifiers:       cfg.Verifiers,
		outcomes:        map[string]*ImplementationOutcome{},
		crossDepsEnabled: cfg.CrossDependenciesEnabled,
		unsatCoreEnabled: cfg.UnsatCoreEnabled,
		stageActive:     cfg.StageActive,
		stageComplete:   cfg.StageComplete,
		currentStage:    cfg.CurrentStage,
		completedStages: cfg.CompletedStages,
		observers:       observers,
		hooks:           cfg.Hooks,
		runID:           cfg.RunID,
	}
	for c := range candidates {
		e.observers.Constant(c, true)
	}
	return e
}

// Assignment returns the current candidate assignment.
func (e *Engine) Assignment() map[string]bool { return e.assignment.Snapshot() }

// Outcomes returns the recorded per-implementation outcomes so far.
func (e *Engine) Outcomes() map[string]*ImplementationOutcome { return e.outcomes }

// Run drives the main loop described in spec.md §4.F until the work queue
// is empty, honoring ctx cancellation at verify boundaries.
func (e *Engine) Run(ctx context.Context) error {
	e.observers.Start(e.runID)
	defer e.observers.End(e.runID)

	iteration := 0
	for !e.queue.Empty() {
		if err := ctx.Err(); err != nil {
			return err
		}
		iteration++
		e.observers.Iteration(iteration)

		implName, _ := e.queue.Peek()
		e.observers.Implementation(implName)

		if e.flushing || e.denyList[implName] {
			e.queue.Dequeue()
			e.observers.Dequeue(implName)
			continue
		}

		if err := e.verifyImplementation(ctx, implName); err != nil {
			e.observers.Exception(implName, err)
			return err
		}
	}
	if e.flushing {
		e.observers.FlushFinish(e.flushReason)
	}
	return nil
}

// verifyImplementation runs the inner verify loop for one implementation
// (spec.md §4.F main loop steps a-h).
func (e *Engine) verifyImplementation(ctx context.Context, implName string) error {
	verifier, ok := e.verifiers[implName]
	if !ok {
		return fmt.Errorf("houdini: no verifier registered for implementation %q", implName)
	}

	for {
		staged := StageOverrides(e.assignment.Snapshot(), e.stageActive, e.stageComplete, e.currentStage, e.completedStages)

		e.verifyCalls++
		result, err := verifier.Verify(ctx, staged)
		if err != nil {
			var vcErr *prover.VCGenFailure
			if errors.As(err, &vcErr) {
				// VC generation failed for this implementation: deny-list it
				// and carry on with the rest of the queue.
				e.denyList[implName] = true
				e.queue.Dequeue()
				e.observers.Dequeue(implName)
				return nil
			}
			return err
		}
		e.observers.Outcome(implName, result.Outcome.String())

		refs, genuineErrors := extractRefutations(result.Counterexamples, implName, e.candidateNames())

		if len(genuineErrors) > 0 {
			out := e.outcomeFor(implName)
			out.Outcome = result.Outcome
			for _, g := range genuineErrors {
				out.GenuineErrors = append(out.GenuineErrors, g.Cex)
			}
			e.queue.Dequeue()
			e.observers.Dequeue(implName)
			e.startFlush("genuine error in " + implName)
			return nil
		}

		switch result.Outcome {
		case prover.TimedOut, prover.OutOfResource, prover.OutOfMemory:
			out := e.outcomeFor(implName)
			out.Outcome = result.Outcome
			flipped := e.assignment.DenyListRemaining(e.assertGuardingCandidates(implName))
			out.FlippedCandidates = append(out.FlippedCandidates, flipped...)
			for _, c := range flipped {
				e.observers.Assignment(c, false)
			}
			e.denyList[implName] = true
			e.queue.Dequeue()
			e.observers.Dequeue(implName)
			return nil
		}

		applied := false
		for _, ref := range refs {
			if e.assignment.Flip(ref.Candidate) {
				applied = true
				out := e.outcomeFor(implName)
				out.FlippedCandidates = append(out.FlippedCandidates, ref.Candidate)
				e.observers.Assignment(ref.Candidate, false)
				e.propagate(ref)
			}
		}

		if result.Outcome == prover.Valid && e.unsatCoreEnabled {
			_ = verifier.RequestUnsatCore(ctx)
		}

		e.outcomeFor(implName).Outcome = result.Outcome

		if !applied {
			e.queue.Dequeue()
			e.observers.Dequeue(implName)
			return nil
		}
		// A refutation was applied: give this implementation another
		// chance under the weaker assignment (spec.md §4.F step "h").
	}
}

func (e *Engine) startFlush(reason string) {
	if e.flushing {
		return
	}
	e.flushing = true
	e.flushReason = reason
	e.observers.FlushStart(reason)
}

func (e *Engine) outcomeFor(impl string) *ImplementationOutcome {
	out, ok := e.outcomes[impl]
	if !ok {
		out = &ImplementationOutcome{}
		e.outcomes[impl] = out
	}
	return out
}

func (e *Engine) candidateNames() map[string]bool {
	return e.program.ExistentialConstants()
}

func (e *Engine) assertGuardingCandidates(implName string) []string {
	impl := e.program.ImplementationByName(implName)
	if impl == nil {
		return nil
	}
	candidates := e.candidateNames()
	var names []string
	for _, a := range impl.Asserts {
		if c, ok := program.MatchCandidate(a.Expr, candidates); ok {
			names = append(names, c)
		}
	}
	return names
}

// propagate implements the propagation table in spec.md §4.F step "d":
// enqueue related implementations (filtering deny-listed ones) depending
// on the refutation's kind. Each candidate related implementation is
// filtered by whether *its own* session reports the candidate in its last
// unsat core, not the refuting implementation's — the refuting
// implementation's core almost always contains the candidate it just
// refuted, so keying the filter on it would defeat the pruning entirely.
func (e *Engine) propagate(ref RefutedAnnotation) {
	var related []string
	switch ref.Kind {
	case KindRequires:
		for _, callee := range e.graph.CalleesOf(ref.Site) {
			impl := e.program.ImplementationByName(callee)
			if impl != nil && impl.Procedure == ref.Callee && e.reportsInUnsatCore(callee, ref.Candidate) {
				related = append(related, callee)
			}
		}
	case KindEnsures:
		for _, caller := range e.graph.CallersOf(ref.Site) {
			if e.reportsInUnsatCore(caller, ref.Candidate) {
				related = append(related, caller)
			}
		}
	case KindAssert:
		if e.crossDepsEnabled {
			for _, impl := range e.crossDeps[ref.Candidate] {
				if e.reportsInUnsatCore(impl, ref.Candidate) {
					related = append(related, impl)
				}
			}
		}
	}

	for _, impl := range related {
		if e.denyList[impl] {
			continue
		}
		e.queue.Enqueue(impl)
		e.observers.Enqueue(impl)
	}

	e.hooks.shareRefutedAnnotation(e.hooks.taskID(), ref)
}

func copyDenySet(src map[string]bool) map[string]bool {
	out := map[string]bool{}
	for name, denied := range src {
		if denied {
			out[name] = true
		}
	}
	return out
}

func reportsInUnsatCore(verifier Verifier, candidate string) bool {
	for _, name := range verifier.LastUnsatCore() {
		if name == candidate {
			return true
		}
	}
	// No unsat core available (unsat-core-based inference disabled, or the
	// solver has not reported one yet): fall back to propagating
	// unconditionally, matching the pre-unsat-core-refinement behavior.
	return len(verifier.LastUnsatCore()) == 0
}

// reportsInUnsatCore looks up implName's own verifier and checks its last
// unsat core for candidate. Each related implementation is filtered on its
// own session, not the refuting implementation's (spec.md §4.F step "d"). An
// implementation with no registered verifier has nothing to filter on, so it
// propagates unconditionally.
func (e *Engine) reportsInUnsatCore(implName, candidate string) bool {
	v, ok := e.verifiers[implName]
	if !ok {
		return true
	}
	return reportsInUnsatCore(v, candidate)
}

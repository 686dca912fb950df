package program

// CallGraph maps each implementation name to the implementation names of
// every procedure it calls (spec.md §4.F step 2), plus the reverse mapping
// for ENSURES propagation (spec.md §4.F step "Related implementations").
type CallGraph struct {
	Callees map[string][]string
	Callers map[string][]string
}

// BuildCallGraph walks every implementation's call sites, resolving a
// callee procedure name to the implementation(s) of that procedure. A
// call graph is explicit (spec.md §9 "Cyclic program AST"): the engine
// never needs to dereference raw AST pointers to find related work.
func BuildCallGraph(p *Program) *CallGraph {
	implsByProc := map[string][]string{}
	for _, impl := range p.Implementations {
		implsByProc[impl.Procedure] = append(implsByProc[impl.Procedure], impl.Name)
	}

	g := &CallGraph{Callees: map[string][]string{}, Callers: map[string][]string{}}
	for _, impl := range p.Implementations {
		for _, call := range impl.Calls {
			for _, calleeImpl := range implsByProc[call.Callee] {
				g.Callees[impl.Name] = appendUnique(g.Callees[impl.Name], calleeImpl)
				g.Callers[calleeImpl] = appendUnique(g.Callers[calleeImpl], impl.Name)
			}
		}
	}
	return g
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// CalleesOf returns the call-graph successors of impl.
func (g *CallGraph) CalleesOf(impl string) []string { return g.Callees[impl] }

// CallersOf returns the call-graph predecessors of impl.
func (g *CallGraph) CallersOf(impl string) []string { return g.Callers[impl] }

// ReverseTopologicalSCC returns implementation names ordered leaves-first
// (spec.md §4.F step 6 "initial work queue"), computed by Tarjan's SCC
// algorithm so mutually recursive implementations land in the same
// position rather than causing an infinite topological sort.
func (g *CallGraph) ReverseTopologicalSCC(names []string) []string {
	t := &tarjan{
		index:   map[string]int{},
		low:     map[string]int{},
		onStack: map[string]bool{},
		graph:   g,
	}
	for _, n := range names {
		if _, seen := t.index[n]; !seen {
			t.strongconnect(n)
		}
	}
	// Tarjan naturally emits SCCs in reverse topological order (sinks
	// first), which is exactly leaves-first for a call graph where edges
	// point from caller to callee.
	var order []string
	for _, scc := range t.sccs {
		order = append(order, scc...)
	}
	return order
}

type tarjan struct {
	index, low      map[string]int
	onStack         map[string]bool
	stack           []string
	counter         int
	graph           *CallGraph
	sccs            [][]string
}

func (t *tarjan) strongconnect(v string) {
	t.index[v] = t.counter
	t.low[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.graph.Callees[v] {
		if _, seen := t.index[w]; !seen {
			t.strongconnect(w)
			if t.low[w] < t.low[v] {
				t.low[v] = t.low[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.low[v] {
				t.low[v] = t.index[w]
			}
		}
	}

	if t.low[v] == t.index[v] {
		var scc []string
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}

// CrossDependencies scans every assume command of every implementation,
// associating each mentioned candidate with that implementation (spec.md
// §4.F step 3).
func CrossDependencies(p *Program, candidates map[string]bool) map[string][]string {
	deps := map[string][]string{}
	for _, impl := range p.Implementations {
		for _, assume := range impl.Assumes {
			mentionCandidates(assume.Expr, candidates, func(c string) {
				deps[c] = appendUnique(deps[c], impl.Name)
			})
		}
	}
	return deps
}

func mentionCandidates(e Expr, candidates map[string]bool, emit func(string)) {
	if e.Ident != "" {
		if candidates[e.Ident] {
			emit(e.Ident)
		}
		return
	}
	if e.Lhs != nil {
		mentionCandidates(*e.Lhs, candidates, emit)
	}
	if e.Rhs != nil {
		mentionCandidates(*e.Rhs, candidates, emit)
	}
}

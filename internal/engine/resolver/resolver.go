// Package resolver validates component constraints, builds the install
// graph and produces a topologically sorted installation order.
package resolver

import (
	"fmt"
	"strings"

	"github.com/modforge/modforge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Options controls error tolerance during resolution.
type Options struct {
	// IgnoreErrors switches to best-effort mode: validation and structural
	// errors are collected instead of short-circuiting, dangling ordering
	// targets are skipped with a warning, and cycles are broken at the
	// first back edge encountered.
	IgnoreErrors bool

	// AttemptFixes regenerates the id of later duplicates instead of
	// failing. It replaces the process-wide "attempt fixes" flag with an
	// explicit per-call value.
	AttemptFixes bool
}

// Resolution is the outcome of a resolve call.
type Resolution struct {
	Success  bool
	Ordered  []*domain.Component
	Errors   []error
	Warnings []string
}

// Resolve validates the component set, synthesizes the install graph
// from InstallBefore/InstallAfter, reports cycles and returns a valid
// installation order. Each step short-circuits on error unless
// best-effort mode is on.
func Resolve(components []*domain.Component, opts Options) Resolution {
	res := Resolution{}

	validate(components, opts, &res)
	if len(res.Errors) > 0 && !opts.IgnoreErrors {
		return res
	}

	graph := buildGraph(components, opts, &res)
	if len(res.Errors) > 0 && !opts.IgnoreErrors {
		return res
	}

	reportCycles(graph, components, &res)
	if len(res.Errors) > 0 && !opts.IgnoreErrors {
		return res
	}

	ordered, err := topologicalSort(graph, components, opts)
	if err != nil {
		res.Errors = append(res.Errors, err)
		return res
	}

	res.Ordered = ordered
	res.Success = len(res.Errors) == 0
	return res
}

// validate checks ids and edge targets. Dangling references and
// self-references are reported as distinct error kinds and are never
// turned into edges.
func validate(components []*domain.Component, opts Options, res *Resolution) {
	known := make(map[string]*domain.Component, len(components))
	for _, c := range components {
		if prev, exists := known[c.ID]; exists {
			if opts.AttemptFixes {
				old := c.ID
				c.RegenerateID()
				known[c.ID] = c
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"components %q and %q shared id %s; regenerated id for %q",
					prev.Name, c.Name, old, c.Name))
				continue
			}
			dup := zerr.Wrap(domain.ErrDuplicateComponent, c.Name)
			dup = zerr.With(dup, "component_id", c.ID)
			res.Errors = append(res.Errors, zerr.With(dup, "component_name", c.Name))
			continue
		}
		known[c.ID] = c
	}

	for _, c := range components {
		if c.ReferencesSelf() {
			err := zerr.Wrap(domain.ErrSelfReference, c.Name)
			res.Errors = append(res.Errors, zerr.With(err, "component_id", c.ID))
		}
		for _, id := range c.InstallBefore {
			if _, ok := known[id]; !ok {
				res.Errors = append(res.Errors, danglingTarget(domain.ErrMissingInstallBefore, c, id))
			}
		}
		for _, id := range c.InstallAfter {
			if _, ok := known[id]; !ok {
				res.Errors = append(res.Errors, danglingTarget(domain.ErrMissingInstallAfter, c, id))
			}
		}
		for _, id := range c.Dependencies {
			if _, ok := known[id]; !ok {
				res.Errors = append(res.Errors, danglingTarget(domain.ErrMissingDependency, c, id))
			}
		}
		for _, id := range c.Restrictions {
			if _, ok := known[id]; !ok {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"%s restricts unknown component %s", c.Name, id))
			}
		}
	}

	checkRestrictions(components, res)
}

// danglingTarget reports an ordering or dependency target that is absent
// from the component set. The sentinel stays wrapped so callers can match
// the error kind.
func danglingTarget(sentinel error, c *domain.Component, targetID string) error {
	err := zerr.Wrap(sentinel, c.Name)
	err = zerr.With(err, "component_id", c.ID)
	return zerr.With(err, "target_id", targetID)
}

// checkRestrictions reports selected components that exclude each
// other. Restrictions do not affect ordering, so clashes are warnings
// the caller can escalate.
func checkRestrictions(components []*domain.Component, res *Resolution) {
	byID := domain.ComponentsByID(components)
	reported := make(map[[2]string]bool)

	for _, c := range components {
		if !c.IsSelected {
			continue
		}
		for _, id := range c.Restrictions {
			other, ok := byID[id]
			if !ok || !other.IsSelected {
				continue
			}
			key := [2]string{c.ID, other.ID}
			if c.ID > other.ID {
				key = [2]string{other.ID, c.ID}
			}
			if reported[key] {
				continue
			}
			reported[key] = true
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s and %s are mutually exclusive but both selected", c.Name, other.Name))
		}
	}
}

// buildGraph synthesizes one coherent depends-on graph from the two
// symmetric ordering relations. An edge X -> Y means X must be
// installed after Y.
//
// C.InstallBefore containing B means B precedes C, so C -> B.
// C.InstallAfter containing A means A follows C, so A -> C.
func buildGraph(components []*domain.Component, opts Options, res *Resolution) *domain.Graph {
	graph := domain.NewGraph()
	for _, c := range components {
		graph.AddNode(c.ID)
	}

	addEdge := func(from, to string, owner *domain.Component) {
		if !graph.HasNode(to) {
			// Already reported by validate; in best-effort mode record the
			// dropped edge so it is never silently followed.
			if opts.IgnoreErrors {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"%s: dropped ordering edge to unknown component %s", owner.Name, to))
			}
			return
		}
		if err := graph.AddEdge(from, to); err != nil {
			res.Errors = append(res.Errors, err)
		}
	}

	for _, c := range components {
		for _, before := range c.InstallBefore {
			if before == c.ID {
				continue // reported as self-reference
			}
			addEdge(c.ID, before, c)
		}
		for _, after := range c.InstallAfter {
			if after == c.ID {
				continue
			}
			addEdge(after, c.ID, c)
		}
	}
	return graph
}

// reportCycles runs a DFS per unvisited root and reports one
// CircularDependency error per back edge found, naming the component
// chain. The chain is reconstructed by walking parent pointers back to
// the repeated node, then reversed into forward order; the sort's own
// guard stays authoritative for correctness.
func reportCycles(graph *domain.Graph, components []*domain.Component, res *Resolution) {
	names := componentNames(components)
	visited := make(map[string]bool, graph.NodeCount())

	for _, root := range graph.Nodes() {
		if visited[root] {
			continue
		}
		if chain := findBackEdge(graph, root, visited); chain != nil {
			detail := chainString(chain, names)
			err := zerr.Wrap(domain.ErrCircularDependency, detail)
			res.Errors = append(res.Errors, zerr.With(err, "chain", detail))
		}
	}
}

type cycleFrame struct {
	id   string
	next int
}

// findBackEdge performs an iterative DFS from root and returns the
// forward-ordered cycle chain of the first back edge, or nil.
func findBackEdge(graph *domain.Graph, root string, visited map[string]bool) []string {
	stack := []cycleFrame{{id: root}}
	onStack := map[string]bool{root: true}
	parent := map[string]string{}
	visited[root] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		neighbors := graph.EdgesFrom(top.id)

		if top.next >= len(neighbors) {
			delete(onStack, top.id)
			stack = stack[:len(stack)-1]
			continue
		}

		neighbor := neighbors[top.next]
		top.next++

		if onStack[neighbor] {
			// Walk backward through the recorded predecessors until the
			// repeated node reappears, then reverse into forward order.
			chain := []string{top.id}
			for at := top.id; at != neighbor; {
				at = parent[at]
				chain = append(chain, at)
			}
			reverse(chain)
			return append(chain, neighbor)
		}

		if !visited[neighbor] {
			visited[neighbor] = true
			onStack[neighbor] = true
			parent[neighbor] = top.id
			stack = append(stack, cycleFrame{id: neighbor})
		}
	}
	return nil
}

func reverse(ids []string) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}

func chainString(chain []string, names map[string]string) string {
	parts := make([]string, len(chain))
	for i, id := range chain {
		if name, ok := names[id]; ok && name != "" {
			parts[i] = name
		} else {
			parts[i] = id
		}
	}
	return strings.Join(parts, " -> ")
}

func componentNames(components []*domain.Component) map[string]string {
	names := make(map[string]string, len(components))
	for _, c := range components {
		if _, ok := names[c.ID]; !ok {
			names[c.ID] = c.Name
		}
	}
	return names
}

// Three-state marks of the topological sort.
const (
	markUnvisited  = 0
	markInProgress = 1
	markDone       = 2
)

type sortFrame struct {
	id   string
	next int
}

// topologicalSort orders components so every prerequisite lands before
// its dependents. Visiting a node already marked in-progress is the
// sort's own cycle guard and aborts with a hard error; in best-effort
// mode the offending edge is skipped instead, breaking the cycle
// arbitrarily.
//
// Each node is appended after its prerequisites are fully explored, so
// dependency-free leaves land earliest. Edges are visited in insertion
// order: the output is deterministic for a given input order, not a
// globally canonical one.
func topologicalSort(
	graph *domain.Graph,
	components []*domain.Component,
	opts Options,
) ([]*domain.Component, error) {
	byID := domain.ComponentsByID(components)
	marks := make(map[string]int, graph.NodeCount())
	order := make([]string, 0, graph.NodeCount())

	for _, root := range graph.Nodes() {
		if marks[root] != markUnvisited {
			continue
		}

		stack := []sortFrame{{id: root}}
		marks[root] = markInProgress

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := graph.EdgesFrom(top.id)

			if top.next >= len(neighbors) {
				marks[top.id] = markDone
				order = append(order, top.id)
				stack = stack[:len(stack)-1]
				continue
			}

			neighbor := neighbors[top.next]
			top.next++

			switch marks[neighbor] {
			case markInProgress:
				if opts.IgnoreErrors {
					continue
				}
				err := zerr.Wrap(domain.ErrCircularDependency, byID[neighbor].Name)
				return nil, zerr.With(err, "component_id", neighbor)
			case markUnvisited:
				marks[neighbor] = markInProgress
				stack = append(stack, sortFrame{id: neighbor})
			}
		}
	}

	if len(order) != graph.NodeCount() {
		err := zerr.Wrap(domain.ErrTopologicalSortFailed, "order is incomplete")
		err = zerr.With(err, "sorted", len(order))
		return nil, zerr.With(err, "expected", graph.NodeCount())
	}

	ordered := make([]*domain.Component, 0, len(order))
	for _, id := range order {
		c, ok := byID[id]
		if !ok {
			err := zerr.Wrap(domain.ErrTopologicalSortFailed, "sorted id has no component")
			return nil, zerr.With(err, "component_id", id)
		}
		ordered = append(ordered, c)
	}
	return ordered, nil
}

// GenerateOrderingFromSequence rewrites every component's ordering sets
// to exactly mirror the given linear order: the component at index i
// lists everything before it in InstallBefore and everything after it
// in InstallAfter. Used to bake a manually arranged order into explicit
// constraints.
func GenerateOrderingFromSequence(components []*domain.Component) {
	ids := make([]string, len(components))
	for i, c := range components {
		ids[i] = c.ID
	}

	for i, c := range components {
		c.InstallBefore = append([]string(nil), ids[:i]...)
		c.InstallAfter = append([]string(nil), ids[i+1:]...)
	}
}

// ClearAllOrdering empties both ordering sets on every component.
func ClearAllOrdering(components []*domain.Component) {
	for _, c := range components {
		c.InstallBefore = nil
		c.InstallAfter = nil
	}
}

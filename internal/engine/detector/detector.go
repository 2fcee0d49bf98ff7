// Package detector finds circular dependencies in a component set and
// renders them as a human-readable report.
//
// The detector is a diagnostic dead end: it never fails and never
// blocks an installation by itself. The resolver independently enforces
// acyclicity when it sorts.
package detector

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/modforge/modforge/internal/core/domain"
)

// Cycle is an ordered sequence of component ids where consecutive pairs
// are connected by an edge and the first id is repeated at the end to
// close the loop.
type Cycle []string

// idSetKey returns a canonical key for duplicate suppression: two
// cycles with the same id set are considered the same cycle regardless
// of rotation or direction.
func (c Cycle) idSetKey() string {
	ids := make([]string, 0, len(c))
	seen := make(map[string]bool, len(c))
	for _, id := range c {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return strings.Join(ids, "\x00")
}

// Result is the outcome of a detection pass.
type Result struct {
	HasCycles bool
	Cycles    []Cycle
	Detail    string
}

// Detect builds a dependency graph from Dependencies ∪ InstallAfter and
// reports every independent cycle it can find. Edges whose target is
// not part of the input set are ignored; dangling references are the
// resolver's concern.
//
// Only the first cycle found along a single DFS branch is recorded; the
// search then moves on to the next unvisited component, so multiple
// independent cycles are still discovered.
func Detect(components []*domain.Component) Result {
	adjacency, order := buildAdjacency(components)

	var cycles []Cycle
	seen := make(map[string]bool)
	visited := make(map[string]bool, len(order))

	for _, root := range order {
		if visited[root] {
			continue
		}
		if cycle := searchFrom(root, adjacency, visited); cycle != nil {
			key := cycle.idSetKey()
			if !seen[key] {
				seen[key] = true
				cycles = append(cycles, cycle)
			}
		}
	}

	result := Result{
		HasCycles: len(cycles) > 0,
		Cycles:    cycles,
	}
	result.Detail = buildDetail(components, cycles)
	return result
}

// buildAdjacency synthesizes the edge map from Dependencies and
// InstallAfter, restricted to ids present in the input set.
func buildAdjacency(components []*domain.Component) (map[string][]string, []string) {
	known := make(map[string]bool, len(components))
	order := make([]string, 0, len(components))
	for _, c := range components {
		if !known[c.ID] {
			known[c.ID] = true
			order = append(order, c.ID)
		}
	}

	adjacency := make(map[string][]string, len(components))
	for _, c := range components {
		for _, dep := range c.Dependencies {
			if known[dep] && dep != c.ID {
				adjacency[c.ID] = appendUnique(adjacency[c.ID], dep)
			}
		}
		for _, after := range c.InstallAfter {
			if known[after] && after != c.ID {
				adjacency[c.ID] = appendUnique(adjacency[c.ID], after)
			}
		}
	}
	return adjacency, order
}

func appendUnique(list []string, id string) []string {
	if slices.Contains(list, id) {
		return list
	}
	return append(list, id)
}

// frame is one level of the explicit DFS stack. next indexes the
// neighbor to visit when the frame is resumed.
type frame struct {
	id   string
	next int
}

// searchFrom runs an iterative depth-first search from root and returns
// the first cycle encountered, or nil. Nodes reached are marked in the
// shared visited set so later roots skip them.
func searchFrom(root string, adjacency map[string][]string, visited map[string]bool) Cycle {
	stack := []frame{{id: root}}
	path := []string{root}
	onPath := map[string]bool{root: true}
	visited[root] = true

	defer func() {
		for _, id := range path {
			delete(onPath, id)
		}
	}()

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		neighbors := adjacency[top.id]

		if top.next >= len(neighbors) {
			stack = stack[:len(stack)-1]
			delete(onPath, top.id)
			path = path[:len(path)-1]
			continue
		}

		neighbor := neighbors[top.next]
		top.next++

		if onPath[neighbor] {
			// Back edge: slice the path from the neighbor's first
			// occurrence and close the loop.
			start := slices.Index(path, neighbor)
			cycle := make(Cycle, 0, len(path)-start+1)
			cycle = append(cycle, path[start:]...)
			cycle = append(cycle, neighbor)
			return cycle
		}

		if !visited[neighbor] {
			visited[neighbor] = true
			onPath[neighbor] = true
			path = append(path, neighbor)
			stack = append(stack, frame{id: neighbor})
		}
	}

	return nil
}

// buildDetail renders the cycle report by component name.
func buildDetail(components []*domain.Component, cycles []Cycle) string {
	if len(cycles) == 0 {
		return "No circular dependencies found."
	}

	names := make(map[string]string, len(components))
	for _, c := range components {
		if _, ok := names[c.ID]; !ok {
			names[c.ID] = c.Name
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d circular dependency chain(s):\n", len(cycles))
	for i, cycle := range cycles {
		parts := make([]string, len(cycle))
		for j, id := range cycle {
			name := names[id]
			if name == "" {
				name = id
			}
			parts[j] = name
		}
		fmt.Fprintf(&b, "\n%d. %s", i+1, strings.Join(parts, " → depends on → "))
	}
	b.WriteString("\n\nTo resolve, uncheck one of the components in each chain,")
	b.WriteString("\nedit its dependencies, or contact the mod author.")
	return b.String()
}

// SuggestRemovals ranks components by how many reported cycles they
// participate in and returns up to the three most entangled ones. Ties
// keep encounter order. This is a best-effort heuristic, not a minimum
// feedback vertex set.
func SuggestRemovals(components []*domain.Component, result Result) []*domain.Component {
	counts := make(map[string]int)
	var encounter []string

	for _, cycle := range result.Cycles {
		countedHere := make(map[string]bool, len(cycle))
		for _, id := range cycle {
			if countedHere[id] {
				continue
			}
			countedHere[id] = true
			if counts[id] == 0 {
				encounter = append(encounter, id)
			}
			counts[id]++
		}
	}

	// Stable sort keeps encounter order on equal counts.
	sort.SliceStable(encounter, func(i, j int) bool {
		return counts[encounter[i]] > counts[encounter[j]]
	})

	byID := domain.ComponentsByID(components)
	suggestions := make([]*domain.Component, 0, 3)
	for _, id := range encounter {
		if c, ok := byID[id]; ok {
			suggestions = append(suggestions, c)
			if len(suggestions) == 3 {
				break
			}
		}
	}
	return suggestions
}

package domain

import "go.trai.ch/zerr"

// Graph is a directed install-order graph over component ids.
//
// An edge A -> B means "A must be installed after B" (B is a
// prerequisite of A). The graph is ephemeral: it is rebuilt for every
// resolution call and never outlives it. Nodes and edges keep insertion
// order so traversal output is deterministic for a given input order.
type Graph struct {
	order    []string
	edges    map[string][]string
	reverse  map[string][]string
	nodeSet  map[string]bool
	edgeSeen map[[2]string]bool
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		edges:    make(map[string][]string),
		reverse:  make(map[string][]string),
		nodeSet:  make(map[string]bool),
		edgeSeen: make(map[[2]string]bool),
	}
}

// AddNode registers a component id. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) {
	if g.nodeSet[id] {
		return
	}
	g.nodeSet[id] = true
	g.order = append(g.order, id)
}

// AddEdge adds the edge from -> to, meaning from must be installed
// after to. Both endpoints must already be nodes; edges to unknown ids
// are the caller's validation problem and are rejected.
// Duplicate edges are collapsed.
func (g *Graph) AddEdge(from, to string) error {
	if from == to {
		return zerr.With(zerr.Wrap(ErrSelfReference, from), "component_id", from)
	}
	if !g.nodeSet[from] {
		return zerr.With(zerr.Wrap(ErrComponentNotFound, from), "component_id", from)
	}
	if !g.nodeSet[to] {
		return zerr.With(zerr.Wrap(ErrComponentNotFound, to), "component_id", to)
	}
	key := [2]string{from, to}
	if g.edgeSeen[key] {
		return nil
	}
	g.edgeSeen[key] = true
	g.edges[from] = append(g.edges[from], to)
	g.reverse[to] = append(g.reverse[to], from)
	return nil
}

// HasNode reports whether the id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	return g.nodeSet[id]
}

// Nodes returns all node ids in insertion order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, len(g.order))
	copy(nodes, g.order)
	return nodes
}

// EdgesFrom returns the prerequisite ids of the given node in insertion
// order.
func (g *Graph) EdgesFrom(id string) []string {
	return g.edges[id]
}

// Dependents returns the ids that list the given node as a
// prerequisite.
func (g *Graph) Dependents(id string) []string {
	return g.reverse[id]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

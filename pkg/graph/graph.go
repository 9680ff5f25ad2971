// Package graph provides the immutable undirected graph that all analytics
// engines operate on. A Graph is built once from an edge list and never
// mutated afterwards, so engines can read it concurrently without locking.
package graph

import (
	"fmt"
	"sort"
)

// Edge is an unordered pair of node identifiers.
type Edge struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Graph is an immutable undirected graph. Adjacency is symmetric: if B is a
// neighbor of A then A is a neighbor of B. The node set is the union of all
// edge endpoints plus any explicitly declared isolated nodes.
type Graph struct {
	adjacency map[string]map[string]struct{}
	nodes     []string // sorted, canonical iteration order
	edgeCount int
}

// Build constructs a Graph from an edge list plus optional isolated nodes.
// Self-loops are ignored and duplicate edges collapse (adding the same pair
// twice is idempotent). Returns ErrEmptyGraph if the resulting node set is
// empty.
func Build(edges []Edge, isolated ...string) (*Graph, error) {
	g := &Graph{
		adjacency: make(map[string]map[string]struct{}),
	}

	for _, e := range edges {
		if e.A == "" || e.B == "" || e.A == e.B {
			continue
		}
		g.addNode(e.A)
		g.addNode(e.B)
		if _, ok := g.adjacency[e.A][e.B]; ok {
			continue
		}
		g.adjacency[e.A][e.B] = struct{}{}
		g.adjacency[e.B][e.A] = struct{}{}
		g.edgeCount++
	}

	for _, n := range isolated {
		if n != "" {
			g.addNode(n)
		}
	}

	if len(g.adjacency) == 0 {
		return nil, ErrEmptyGraph
	}

	g.nodes = make([]string, 0, len(g.adjacency))
	for n := range g.adjacency {
		g.nodes = append(g.nodes, n)
	}
	sort.Strings(g.nodes)

	return g, nil
}

func (g *Graph) addNode(id string) {
	if _, ok := g.adjacency[id]; !ok {
		g.adjacency[id] = make(map[string]struct{})
	}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Nodes returns all node identifiers in sorted order. The returned slice is
// shared; callers must not modify it.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// HasNode reports whether the node exists in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adjacency[id]
	return ok
}

// HasEdge reports whether an edge exists between a and b. Unknown endpoints
// report false rather than an error.
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.adjacency[a][b]
	return ok
}

// Degree returns the number of neighbors of the node.
func (g *Graph) Degree(id string) (int, error) {
	neighbors, ok := g.adjacency[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	return len(neighbors), nil
}

// Neighbors returns the node's neighbors in sorted order.
func (g *Graph) Neighbors(id string) ([]string, error) {
	neighbors, ok := g.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	result := make([]string, 0, len(neighbors))
	for n := range neighbors {
		result = append(result, n)
	}
	sort.Strings(result)
	return result, nil
}

// NeighborSet returns the node's neighbor set for membership tests. The
// returned map is the graph's internal adjacency entry; callers must not
// modify it. Returns nil for unknown nodes.
func (g *Graph) NeighborSet(id string) map[string]struct{} {
	return g.adjacency[id]
}

// Density returns 2E / (V(V-1)), the fraction of possible edges present.
// Graphs with fewer than two nodes have density 0.
func (g *Graph) Density() float64 {
	n := len(g.nodes)
	if n < 2 {
		return 0.0
	}
	return 2.0 * float64(g.edgeCount) / float64(n*(n-1))
}

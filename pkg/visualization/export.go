package visualization

import "github.com/graphsight/graphsight/pkg/graph"

// NodeView is a positioned node in the exported node-link data.
type NodeView struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// EdgeView is an undirected edge in the exported node-link data.
type EdgeView struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// NodeLink is the JSON-friendly visualization payload: every node with its
// computed position plus every edge, both in canonical node order.
type NodeLink struct {
	Nodes []NodeView `json:"nodes"`
	Edges []EdgeView `json:"edges"`
}

// Export assembles node-link data from a graph and its layout positions.
func Export(g *graph.Graph, positions map[string]Position) NodeLink {
	nodes := g.Nodes()

	out := NodeLink{
		Nodes: make([]NodeView, 0, len(nodes)),
		Edges: make([]EdgeView, 0, g.EdgeCount()),
	}

	for _, node := range nodes {
		pos := positions[node]
		out.Nodes = append(out.Nodes, NodeView{ID: node, X: pos.X, Y: pos.Y})
	}

	// Each undirected edge once, from its lexically smaller endpoint.
	for _, node := range nodes {
		neighbors, _ := g.Neighbors(node)
		for _, neighbor := range neighbors {
			if node < neighbor {
				out.Edges = append(out.Edges, EdgeView{Source: node, Target: neighbor})
			}
		}
	}

	return out
}

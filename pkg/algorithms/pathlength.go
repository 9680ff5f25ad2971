package algorithms

import (
	"github.com/graphsight/graphsight/pkg/graph"
)

// AveragePathLength computes the mean shortest-path distance over all node
// pairs. Disconnected graphs have no finite average across all pairs, so the
// second return value reports whether the graph is connected; when false the
// mean is 0. A single-node graph is reported as disconnected since no pair
// distance exists.
func AveragePathLength(g *graph.Graph) (float64, bool) {
	nodes := g.Nodes()
	n := len(nodes)
	if n < 2 {
		return 0.0, false
	}

	totalDistance := 0
	for _, source := range nodes {
		distance := bfsDistances(g, source)
		if len(distance) < n {
			return 0.0, false
		}
		for _, d := range distance {
			totalDistance += d
		}
	}

	// Every unordered pair is counted from both endpoints.
	pairs := n * (n - 1)
	return float64(totalDistance) / float64(pairs), true
}

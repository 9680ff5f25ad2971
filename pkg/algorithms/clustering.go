package algorithms

import (
	"github.com/graphsight/graphsight/pkg/graph"
)

// ClusteringCoefficients computes the local clustering coefficient for every
// node: 2 * (edges among neighbors) / (k * (k-1)) for a node with k
// neighbors. Nodes with degree < 2 score 0.
func ClusteringCoefficients(g *graph.Graph) map[string]float64 {
	nodes := g.Nodes()
	coefficients := make(map[string]float64, len(nodes))

	for _, v := range nodes {
		neighbors, _ := g.Neighbors(v)

		k := len(neighbors)
		if k < 2 {
			coefficients[v] = 0.0
			continue
		}

		links := 0
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				if g.HasEdge(neighbors[i], neighbors[j]) {
					links++
				}
			}
		}

		coefficients[v] = 2.0 * float64(links) / float64(k*(k-1))
	}

	return coefficients
}

// AverageClustering returns the arithmetic mean of all local clustering
// coefficients.
func AverageClustering(coefficients map[string]float64) float64 {
	if len(coefficients) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, c := range coefficients {
		sum += c
	}
	return sum / float64(len(coefficients))
}

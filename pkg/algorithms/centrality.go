// Package algorithms implements the graph analytics engines: centrality
// measures, clustering coefficients, community detection, friend
// recommendation, and anomaly detection. All functions are pure: they read an
// immutable graph.Graph and never mutate shared state, so they are safe to
// run concurrently over the same graph.
package algorithms

import (
	"github.com/graphsight/graphsight/pkg/graph"
)

// BetweennessOptions configures betweenness centrality.
type BetweennessOptions struct {
	// SampleSize limits the number of BFS source nodes. Zero means exact
	// computation over all sources. When set, the first SampleSize nodes in
	// sorted order are used and raw sums are rescaled by |V|/SampleSize so
	// the result remains an estimator of the exact scores.
	SampleSize int
}

// DefaultBetweennessOptions returns exact computation.
func DefaultBetweennessOptions() BetweennessOptions {
	return BetweennessOptions{SampleSize: 0}
}

// DegreeCentrality computes deg(v) / (|V|-1) for every node. A single-node
// graph scores 0.
func DegreeCentrality(g *graph.Graph) map[string]float64 {
	nodes := g.Nodes()
	scores := make(map[string]float64, len(nodes))

	for _, v := range nodes {
		if len(nodes) > 1 {
			deg := len(g.NeighborSet(v))
			scores[v] = float64(deg) / float64(len(nodes)-1)
		} else {
			scores[v] = 0.0
		}
	}

	return scores
}

// ClosenessCentrality computes (r-1) / sum(d(v,u)) for every node, where r is
// the size of v's reachable set including v itself. Scaling by the reachable
// set rather than the whole node set keeps scores meaningful on disconnected
// graphs. Isolated nodes score 0.
func ClosenessCentrality(g *graph.Graph) map[string]float64 {
	nodes := g.Nodes()
	scores := make(map[string]float64, len(nodes))

	for _, source := range nodes {
		distance := bfsDistances(g, source)

		totalDistance := 0
		reachable := 0
		for _, d := range distance {
			if d > 0 {
				totalDistance += d
				reachable++
			}
		}

		if totalDistance > 0 {
			scores[source] = float64(reachable) / float64(totalDistance)
		} else {
			scores[source] = 0.0
		}
	}

	return scores
}

// bfsDistances returns shortest-path distances from source to every reachable
// node. Unreachable nodes are absent from the map.
func bfsDistances(g *graph.Graph, source string) map[string]int {
	distance := map[string]int{source: 0}

	queue := []string{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		for w := range g.NeighborSet(v) {
			if _, seen := distance[w]; !seen {
				distance[w] = distance[v] + 1
				queue = append(queue, w)
			}
		}
	}

	return distance
}

// BetweennessCentrality computes betweenness centrality for all nodes via
// Brandes' algorithm: one BFS plus a backward dependency-accumulation pass
// per source node, O(VE) total. Scores are normalized by 2/((n-1)(n-2)), the
// undirected convention. With opts.SampleSize > 0 only a deterministic prefix of
// the sorted node order serves as sources and the sums are rescaled.
func BetweennessCentrality(g *graph.Graph, opts BetweennessOptions) map[string]float64 {
	nodes := g.Nodes()
	n := len(nodes)

	betweenness := make(map[string]float64, n)
	for _, v := range nodes {
		betweenness[v] = 0.0
	}

	sources := nodes
	if opts.SampleSize > 0 && opts.SampleSize < n {
		sources = nodes[:opts.SampleSize]
	}

	for _, source := range sources {
		stack, sigma, pred := brandesBFS(g, source)
		brandesAccumulate(source, stack, sigma, pred, betweenness)
	}

	// Each unordered pair contributes from both endpoints, so the raw sums
	// carry a factor of 2 that the (n-1)(n-2) divisor absorbs.
	if n > 2 {
		scale := 1.0 / float64((n-1)*(n-2))
		if len(sources) < n {
			scale *= float64(n) / float64(len(sources))
		}
		for v := range betweenness {
			betweenness[v] *= scale
		}
	}

	return betweenness
}

// brandesBFS performs the forward phase of Brandes' algorithm from a single
// source, returning the visit stack (BFS order), shortest-path counts, and
// predecessor lists.
func brandesBFS(g *graph.Graph, source string) (stack []string, sigma map[string]float64, pred map[string][]string) {
	stack = make([]string, 0, g.NodeCount())
	pred = make(map[string][]string, g.NodeCount())
	sigma = map[string]float64{source: 1.0}
	distance := map[string]int{source: 0}

	queue := []string{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		stack = append(stack, v)

		for w := range g.NeighborSet(v) {
			if _, seen := distance[w]; !seen {
				distance[w] = distance[v] + 1
				queue = append(queue, w)
			}
			if distance[w] == distance[v]+1 {
				sigma[w] += sigma[v]
				pred[w] = append(pred[w], v)
			}
		}
	}

	return stack, sigma, pred
}

// brandesAccumulate performs the backward dependency-accumulation phase,
// adding this source's pair dependencies into the centrality map.
func brandesAccumulate(source string, stack []string, sigma map[string]float64, pred map[string][]string, betweenness map[string]float64) {
	delta := make(map[string]float64, len(stack))

	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		for _, v := range pred[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1.0 + delta[w])
		}
		if w != source {
			betweenness[w] += delta[w]
		}
	}
}

// TopByScore returns the top n nodes from a score map, ranked by descending
// score with ascending-identifier tie-break.
func TopByScore(scores map[string]float64, n int) []RankedNode {
	return topNodes(scores, n)
}

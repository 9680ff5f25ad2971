package algorithms

import (
	"sort"

	"github.com/graphsight/graphsight/pkg/graph"
)

// minModularityGain is the smallest per-level modularity improvement that
// keeps the Louvain hierarchy going.
const minModularityGain = 1e-7

// Partition assigns every node exactly one community label. Labels are dense
// non-negative integers with no ordering semantics.
type Partition struct {
	Labels     map[string]int `json:"labels"`
	Modularity float64        `json:"modularity"`
}

/// Sizes returns the community-size histogram: label -> member count.
func (p *Partition) Sizes() map[int]int {
	sizes := make(map[int]int)
	for _, label := range p.Labels {
		sizes[label]++
	}
	return sizes
}

// CommunityCount returns the number of distinct communities.
func (p *Partition) CommunityCount() int {
	return len(p.Sizes())
}

// Louvain partitions the graph by greedy modularity optimization: every node
// starts in its own community, a local-moving phase relocates nodes to the
// neighboring community with maximal strictly-positive modularity gain, and
// converged levels are aggregated into a weighted super-graph on which the
// process repeats. The hierarchy unwinds into a flat node-to-label mapping.
//
// Scan order is the sorted node order (ascending community id on aggregated
// levels), and ties prefer the lowest community id, so identical input always
// yields an identical partition.
func Louvain(g *graph.Graph) *Partition {
	nodes := g.Nodes()
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
	}

	level := levelFromGraph(g, index)

	// No edges: every node keeps its own community and modularity is 0.
	if level.totalWeight == 0 {
		labels := make(map[string]int, len(nodes))
		for i, n := range nodes {
			labels[n] = i
		}
		return &Partition{Labels: labels, Modularity: 0.0}
	}

	// assignment[i] is node i's community on the current level.
	assignment := make([]int, len(nodes))
	for i := range assignment {
		assignment[i] = i
	}

	bestQ := level.modularity(assignment)

	for {
		community, moved := level.localMove()
		if !moved {
			break
		}

		community, aggregated := level.aggregate(community)
		q := aggregated.modularity(identity(aggregated.n))
		for i := range assignment {
			assignment[i] = community[assignment[i]]
		}
		if q-bestQ < minModularityGain {
			break
		}
		bestQ = q
		level = aggregated

		if level.n == 1 {
			break
		}
	}

	labels := make(map[string]int, len(nodes))
	relabel := make(map[int]int)
	for i, n := range nodes {
		c := assignment[i]
		dense, ok := relabel[c]
		if !ok {
			dense = len(relabel)
			relabel[c] = dense
		}
		labels[n] = dense
	}

	final := levelFromGraph(g, index)
	finalAssignment := make([]int, len(nodes))
	for i, n := range nodes {
		finalAssignment[i] = labels[n]
	}

	return &Partition{
		Labels:     labels,
		Modularity: final.modularity(finalAssignment),
	}
}

// levelEdge is a weighted adjacency entry inside a Louvain level.
type levelEdge struct {
	to     int
	weight float64
}

// louvainLevel is a weighted graph at one level of the Louvain hierarchy.
// selfLoop holds intra-community weight folded in by aggregation; a self-loop
// of weight w contributes 2w to the node's degree.
type louvainLevel struct {
	n           int
	adj         [][]levelEdge
	selfLoop    []float64
	degree      []float64
	totalWeight float64 // 2m: sum of all degrees
}

func levelFromGraph(g *graph.Graph, index map[string]int) *louvainLevel {
	nodes := g.Nodes()
	level := &louvainLevel{
		n:        len(nodes),
		adj:      make([][]levelEdge, len(nodes)),
		selfLoop: make([]float64, len(nodes)),
		degree:   make([]float64, len(nodes)),
	}

	for i, v := range nodes {
		neighbors, _ := g.Neighbors(v)
		entries := make([]levelEdge, 0, len(neighbors))
		for _, w := range neighbors {
			entries = append(entries, levelEdge{to: index[w], weight: 1.0})
		}
		level.adj[i] = entries
		level.degree[i] = float64(len(entries))
		level.totalWeight += level.degree[i]
	}

	return level
}

// localMove runs repeated scans in index order, moving each node to the
// neighboring community with the highest strictly-positive modularity gain.
// Returns the converged community assignment and whether any node moved.
func (l *louvainLevel) localMove() (community []int, anyMove bool) {
	community = identity(l.n)

	sumTot := make([]float64, l.n)
	copy(sumTot, l.degree)

	m2 := l.totalWeight

	for {
		moved := false

		for i := 0; i < l.n; i++ {
			current := community[i]

			// Weight from i to each neighboring community.
			neighWeight := make(map[int]float64)
			for _, e := range l.adj[i] {
				if e.to != i {
					neighWeight[community[e.to]] += e.weight
				}
			}

			// Evaluate gains with i removed from its community.
			sumTot[current] -= l.degree[i]

			bestComm := current
			bestGain := neighWeight[current] - l.degree[i]*sumTot[current]/m2

			candidates := make([]int, 0, len(neighWeight))
			for c := range neighWeight {
				candidates = append(candidates, c)
			}
			sort.Ints(candidates)

			for _, c := range candidates {
				if c == current {
					continue
				}
				gain := neighWeight[c] - l.degree[i]*sumTot[c]/m2
				if gain > bestGain {
					bestGain = gain
					bestComm = c
				}
			}

			sumTot[bestComm] += l.degree[i]
			if bestComm != current {
				community[i] = bestComm
				moved = true
				anyMove = true
			}
		}

		if !moved {
			break
		}
	}

	return community, anyMove
}

// aggregate collapses each community into a super-node. Inter-community edge
// weights are summed; intra-community weight becomes the super-node's
// self-loop. Returns the dense relabelling of the input assignment along with
// the aggregated level.
func (l *louvainLevel) aggregate(community []int) ([]int, *louvainLevel) {
	dense := make(map[int]int)
	relabelled := make([]int, l.n)
	for i := 0; i < l.n; i++ {
		c, ok := dense[community[i]]
		if !ok {
			c = len(dense)
			dense[community[i]] = c
		}
		relabelled[i] = c
	}

	n := len(dense)
	next := &louvainLevel{
		n:        n,
		adj:      make([][]levelEdge, n),
		selfLoop: make([]float64, n),
		degree:   make([]float64, n),
	}

	interWeight := make([]map[int]float64, n)
	for c := 0; c < n; c++ {
		interWeight[c] = make(map[int]float64)
	}

	for i := 0; i < l.n; i++ {
		ci := relabelled[i]
		next.selfLoop[ci] += l.selfLoop[i]
		for _, e := range l.adj[i] {
			cj := relabelled[e.to]
			if ci == cj {
				// Each intra edge is visited from both endpoints.
				next.selfLoop[ci] += e.weight / 2.0
			} else {
				interWeight[ci][cj] += e.weight
			}
		}
	}

	for c := 0; c < n; c++ {
		targets := make([]int, 0, len(interWeight[c]))
		for t := range interWeight[c] {
			targets = append(targets, t)
		}
		sort.Ints(targets)

		entries := make([]levelEdge, 0, len(targets))
		weightSum := 0.0
		for _, t := range targets {
			entries = append(entries, levelEdge{to: t, weight: interWeight[c][t]})
			weightSum += interWeight[c][t]
		}
		next.adj[c] = entries
		next.degree[c] = weightSum + 2.0*next.selfLoop[c]
		next.totalWeight += next.degree[c]
	}

	return relabelled, next
}

// modularity computes Q for the given community assignment on this level.
func (l *louvainLevel) modularity(community []int) float64 {
	if l.totalWeight == 0 {
		return 0.0
	}

	communities := 0
	for _, c := range community {
		if c+1 > communities {
			communities = c + 1
		}
	}

	sumIn := make([]float64, communities)
	sumTot := make([]float64, communities)

	for i := 0; i < l.n; i++ {
		c := community[i]
		sumTot[c] += l.degree[i]
		sumIn[c] += 2.0 * l.selfLoop[i]
		for _, e := range l.adj[i] {
			if community[e.to] == c {
				sumIn[c] += e.weight
			}
		}
	}

	q := 0.0
	m2 := l.totalWeight
	for c := 0; c < communities; c++ {
		ratio := sumTot[c] / m2
		q += sumIn[c]/m2 - ratio*ratio
	}
	return q
}

func identity(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

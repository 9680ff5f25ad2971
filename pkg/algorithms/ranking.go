package algorithms

import (
	"container/heap"
	"sort"
)

// RankedNode represents a node with its score in a ranking.
type RankedNode struct {
	Node  string  `json:"node"`
	Score float64 `json:"score"`
}

// rankedBefore reports whether a should be ranked ahead of b: higher score
// first, ties broken by ascending node identifier.
func rankedBefore(a, b RankedNode) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Node < b.Node
}

// rankedNodeHeap is a min-heap over the ranking order, so the root is always
// the entry that would be evicted first.
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int           { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool { return rankedBefore(h[j], h[i]) }
func (h rankedNodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// topNodes returns the top n entries by score using a min-heap, sorted by
// descending score with ascending-identifier tie-break for determinism.
func topNodes(scores map[string]float64, n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)

	for node, score := range scores {
		rn := RankedNode{Node: node, Score: score}

		if h.Len() < n {
			heap.Push(&h, rn)
		} else if rankedBefore(rn, h[0]) {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return rankedBefore(result[i], result[j])
	})

	return result
}

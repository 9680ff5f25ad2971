package algorithms

import (
	"fmt"
	"sort"

	"github.com/graphsight/graphsight/pkg/graph"
)

// Recommendation holds a suggested friend with its similarity score.
type Recommendation struct {
	Node  string  `json:"node"`
	Score float64 `json:"score"`
}

// RecommendationOptions configures friend recommendation.
type RecommendationOptions struct {
	TopK int // maximum number of suggestions, 0 = all
}

// DefaultRecommendationOptions returns the conventional top-5 cutoff.
func DefaultRecommendationOptions() RecommendationOptions {
	return RecommendationOptions{TopK: 5}
}

// RecommendFriends suggests new connections for the query node, scored by
// Jaccard similarity of neighbor sets. Candidates are all nodes except the
// query node and its current neighbors; candidates sharing no neighbors with
// the query (empty union included) score 0 and are excluded. Results are
// ordered by descending score with ascending-identifier tie-break. Returns
// graph.ErrUnknownNode when the query node is absent.
func RecommendFriends(g *graph.Graph, query string, opts RecommendationOptions) ([]Recommendation, error) {
	if !g.HasNode(query) {
		return nil, fmt.Errorf("%w: %q", graph.ErrUnknownNode, query)
	}

	queryNeighbors := g.NeighborSet(query)

	var recommendations []Recommendation
	for _, candidate := range g.Nodes() {
		if candidate == query || g.HasEdge(query, candidate) {
			continue
		}

		score := jaccard(queryNeighbors, g.NeighborSet(candidate))
		if score > 0 {
			recommendations = append(recommendations, Recommendation{
				Node:  candidate,
				Score: score,
			})
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].Node < recommendations[j].Node
	})

	if opts.TopK > 0 && len(recommendations) > opts.TopK {
		recommendations = recommendations[:opts.TopK]
	}

	return recommendations, nil
}

// jaccard computes |A ∩ B| / |A ∪ B|. An empty union scores 0 rather than
// dividing by zero.
func jaccard(setA, setB map[string]struct{}) float64 {
	small, big := setA, setB
	if len(setA) > len(setB) {
		small, big = setB, setA
	}

	intersection := 0
	for id := range small {
		if _, ok := big[id]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

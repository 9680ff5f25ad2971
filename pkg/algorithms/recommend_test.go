package algorithms

import (
	"errors"
	"testing"

	"github.com/graphsight/graphsight/pkg/graph"
)

func TestRecommendFriends_TrianglePendant(t *testing.T) {
	g := trianglePendant(t)

	recommendations, err := RecommendFriends(g, "d", DefaultRecommendationOptions())
	if err != nil {
		t.Fatalf("RecommendFriends failed: %v", err)
	}

	// d's only neighbor is a; b and c both share {a} out of a 2-element
	// union, so both score 0.5 with b first by identifier.
	if len(recommendations) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d", len(recommendations))
	}
	if recommendations[0].Node != "b" || recommendations[1].Node != "c" {
		t.Errorf("Expected [b c], got [%s %s]",
			recommendations[0].Node, recommendations[1].Node)
	}
	if !almostEqual(recommendations[0].Score, 0.5) {
		t.Errorf("Expected score 0.5, got %f", recommendations[0].Score)
	}
}

func TestRecommendFriends_ExcludesSelfAndNeighbors(t *testing.T) {
	g := trianglePendant(t)

	recommendations, err := RecommendFriends(g, "a", DefaultRecommendationOptions())
	if err != nil {
		t.Fatalf("RecommendFriends failed: %v", err)
	}

	// a is already connected to everyone.
	if len(recommendations) != 0 {
		t.Errorf("Expected no recommendations for fully-connected a, got %v", recommendations)
	}
}

func TestRecommendFriends_UnknownNode(t *testing.T) {
	g := trianglePendant(t)

	_, err := RecommendFriends(g, "ghost", DefaultRecommendationOptions())

	if !errors.Is(err, graph.ErrUnknownNode) {
		t.Errorf("Expected ErrUnknownNode, got %v", err)
	}
}

func TestRecommendFriends_NoSharedNeighbors(t *testing.T) {
	g := buildTestGraph(t, [][2]string{{"a", "b"}, {"c", "d"}})

	recommendations, err := RecommendFriends(g, "a", DefaultRecommendationOptions())
	if err != nil {
		t.Fatalf("RecommendFriends failed: %v", err)
	}

	// c and d share no neighbors with a; zero scores are excluded.
	if len(recommendations) != 0 {
		t.Errorf("Expected no recommendations, got %v", recommendations)
	}
}

func TestRecommendFriends_TopKTruncation(t *testing.T) {
	// hub connects to spokes; every spoke pair shares the hub.
	g := buildTestGraph(t, [][2]string{
		{"hub", "s1"}, {"hub", "s2"}, {"hub", "s3"}, {"hub", "s4"},
	})

	recommendations, err := RecommendFriends(g, "s1", RecommendationOptions{TopK: 2})
	if err != nil {
		t.Fatalf("RecommendFriends failed: %v", err)
	}

	if len(recommendations) != 2 {
		t.Fatalf("Expected 2 recommendations after truncation, got %d", len(recommendations))
	}
	if recommendations[0].Node != "s2" || recommendations[1].Node != "s3" {
		t.Errorf("Expected [s2 s3] by tie-break, got [%s %s]",
			recommendations[0].Node, recommendations[1].Node)
	}
}

func TestJaccard_Symmetric(t *testing.T) {
	g := trianglePendant(t)

	ab := jaccard(g.NeighborSet("a"), g.NeighborSet("b"))
	ba := jaccard(g.NeighborSet("b"), g.NeighborSet("a"))

	if !almostEqual(ab, ba) {
		t.Errorf("Jaccard not symmetric: %f vs %f", ab, ba)
	}
}

func TestJaccard_EmptyUnion(t *testing.T) {
	if score := jaccard(nil, nil); score != 0.0 {
		t.Errorf("Expected 0 for empty union, got %f", score)
	}
}

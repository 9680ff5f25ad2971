package algorithms

import (
	"math"
	"testing"

	"github.com/graphsight/graphsight/pkg/graph"
)

// buildTestGraph builds a graph from flat node pairs
func buildTestGraph(t *testing.T, pairs [][2]string, isolated ...string) *graph.Graph {
	t.Helper()

	edges := make([]graph.Edge, 0, len(pairs))
	for _, p := range pairs {
		edges = append(edges, graph.Edge{A: p[0], B: p[1]})
	}

	g, err := graph.Build(edges, isolated...)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

// trianglePendant is the canonical 4-node fixture: triangle a-b-c plus
// pendant d attached to a.
func trianglePendant(t *testing.T) *graph.Graph {
	t.Helper()
	return buildTestGraph(t, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"}, {"d", "a"},
	})
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDegreeCentrality_TrianglePendant(t *testing.T) {
	g := trianglePendant(t)

	scores := DegreeCentrality(g)

	if !almostEqual(scores["a"], 1.0) {
		t.Errorf("Expected degree centrality 1.0 for a, got %f", scores["a"])
	}
	if !almostEqual(scores["d"], 1.0/3.0) {
		t.Errorf("Expected degree centrality 1/3 for d, got %f", scores["d"])
	}
}

func TestDegreeCentrality_SingleNode(t *testing.T) {
	g := buildTestGraph(t, nil, "only")

	scores := DegreeCentrality(g)

	if !almostEqual(scores["only"], 0.0) {
		t.Errorf("Expected 0 for single node, got %f", scores["only"])
	}
}

func TestDegreeCentrality_HandshakeLemma(t *testing.T) {
	g := trianglePendant(t)

	scores := DegreeCentrality(g)

	sum := 0.0
	for _, s := range scores {
		sum += s * float64(g.NodeCount()-1)
	}
	if !almostEqual(sum, 2.0*float64(g.EdgeCount())) {
		t.Errorf("Expected degree sum %d, got %f", 2*g.EdgeCount(), sum)
	}
}

func TestClosenessCentrality_Path(t *testing.T) {
	g := buildTestGraph(t, [][2]string{{"a", "b"}, {"b", "c"}})

	scores := ClosenessCentrality(g)

	// b reaches both others at distance 1: (3-1)/2 = 1.0
	if !almostEqual(scores["b"], 1.0) {
		t.Errorf("Expected closeness 1.0 for b, got %f", scores["b"])
	}
	// a reaches b at 1 and c at 2: (3-1)/3 = 2/3
	if !almostEqual(scores["a"], 2.0/3.0) {
		t.Errorf("Expected closeness 2/3 for a, got %f", scores["a"])
	}
}

func TestClosenessCentrality_Disconnected(t *testing.T) {
	g := buildTestGraph(t, [][2]string{{"a", "b"}}, "c")

	scores := ClosenessCentrality(g)

	// a's reachable set is {a,b}: (2-1)/1 = 1.0 under the reachable-set
	// convention, not penalized by the unreachable c.
	if !almostEqual(scores["a"], 1.0) {
		t.Errorf("Expected closeness 1.0 for a, got %f", scores["a"])
	}
	if !almostEqual(scores["c"], 0.0) {
		t.Errorf("Expected closeness 0 for isolated c, got %f", scores["c"])
	}
}

func TestBetweennessCentrality_Path(t *testing.T) {
	g := buildTestGraph(t, [][2]string{{"a", "b"}, {"b", "c"}})

	scores := BetweennessCentrality(g, DefaultBetweennessOptions())

	// b lies on the only a-c shortest path: 1 of 1 possible pair.
	if !almostEqual(scores["b"], 1.0) {
		t.Errorf("Expected betweenness 1.0 for b, got %f", scores["b"])
	}
	if !almostEqual(scores["a"], 0.0) {
		t.Errorf("Expected betweenness 0 for endpoint a, got %f", scores["a"])
	}
}

func TestBetweennessCentrality_Star(t *testing.T) {
	g := buildTestGraph(t, [][2]string{{"hub", "x"}, {"hub", "y"}, {"hub", "z"}})

	scores := BetweennessCentrality(g, DefaultBetweennessOptions())

	if !almostEqual(scores["hub"], 1.0) {
		t.Errorf("Expected betweenness 1.0 for hub, got %f", scores["hub"])
	}
	for _, leaf := range []string{"x", "y", "z"} {
		if !almostEqual(scores[leaf], 0.0) {
			t.Errorf("Expected betweenness 0 for leaf %s, got %f", leaf, scores[leaf])
		}
	}
}

func TestBetweennessCentrality_CompleteGraph(t *testing.T) {
	g := buildTestGraph(t, [][2]string{
		{"a", "b"}, {"a", "c"}, {"a", "d"},
		{"b", "c"}, {"b", "d"}, {"c", "d"},
	})

	scores := BetweennessCentrality(g, DefaultBetweennessOptions())

	// Every pair is directly connected, so nothing routes through anyone.
	for node, score := range scores {
		if !almostEqual(score, 0.0) {
			t.Errorf("Expected betweenness 0 for %s in K4, got %f", node, score)
		}
	}
}

func TestBetweennessCentrality_Sampled(t *testing.T) {
	g := buildTestGraph(t, [][2]string{{"a", "b"}, {"b", "c"}})

	// Only source "a" (first in sorted order) runs; the raw dependency of 1
	// on b is rescaled by |V|/sample = 3 before normalization by (n-1)(n-2).
	scores := BetweennessCentrality(g, BetweennessOptions{SampleSize: 1})

	if !almostEqual(scores["b"], 1.5) {
		t.Errorf("Expected sampled betweenness 1.5 for b, got %f", scores["b"])
	}
}

func TestBetweennessCentrality_SampleCoversAllSources(t *testing.T) {
	g := buildTestGraph(t, [][2]string{{"a", "b"}, {"b", "c"}})

	exact := BetweennessCentrality(g, DefaultBetweennessOptions())
	sampled := BetweennessCentrality(g, BetweennessOptions{SampleSize: 10})

	for node := range exact {
		if !almostEqual(exact[node], sampled[node]) {
			t.Errorf("Sample size >= |V| should match exact for %s: %f vs %f",
				node, exact[node], sampled[node])
		}
	}
}

func TestTopByScore_TieBreak(t *testing.T) {
	scores := map[string]float64{
		"zeta": 0.5, "alpha": 0.5, "mid": 0.7, "low": 0.1,
	}

	top := TopByScore(scores, 3)

	if len(top) != 3 {
		t.Fatalf("Expected 3 ranked nodes, got %d", len(top))
	}
	if top[0].Node != "mid" {
		t.Errorf("Expected mid first, got %s", top[0].Node)
	}
	if top[1].Node != "alpha" || top[2].Node != "zeta" {
		t.Errorf("Expected tie broken by ascending identifier, got %s then %s",
			top[1].Node, top[2].Node)
	}
}

func TestTopByScore_FewerThanRequested(t *testing.T) {
	top := TopByScore(map[string]float64{"a": 1.0}, 5)

	if len(top) != 1 {
		t.Errorf("Expected 1 ranked node, got %d", len(top))
	}
}

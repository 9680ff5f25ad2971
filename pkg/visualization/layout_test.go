package visualization

import (
	"math"
	"testing"

	"github.com/graphsight/graphsight/pkg/graph"
)

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

func inBounds(t *testing.T, positions map[string]Position, cfg LayoutConfig) {
	t.Helper()

	for node, pos := range positions {
		if pos.X < 0 || pos.X > cfg.Width {
			t.Errorf("Node %s X out of bounds: %f", node, pos.X)
		}
		if pos.Y < 0 || pos.Y > cfg.Height {
			t.Errorf("Node %s Y out of bounds: %f", node, pos.Y)
		}
	}
}

func TestForceDirectedLayout_AllNodesPositioned(t *testing.T) {
	g := buildTestGraph(t, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"},
	})

	cfg := DefaultLayoutConfig()
	positions := NewForceDirectedLayout(cfg).ComputeLayout(g)

	if len(positions) != g.NodeCount() {
		t.Fatalf("Expected %d positions, got %d", g.NodeCount(), len(positions))
	}
	inBounds(t, positions, cfg)
}

func TestForceDirectedLayout_Deterministic(t *testing.T) {
	g := buildTestGraph(t, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"},
	})

	layout := NewForceDirectedLayout(DefaultLayoutConfig())
	first := layout.ComputeLayout(g)
	second := layout.ComputeLayout(g)

	for node, pos := range first {
		if second[node] != pos {
			t.Errorf("Node %s moved between runs: %v vs %v", node, pos, second[node])
		}
	}
}

func TestForceDirectedLayout_SingleNodeCentered(t *testing.T) {
	g := buildTestGraph(t, nil, "only")

	cfg := DefaultLayoutConfig()
	positions := NewForceDirectedLayout(cfg).ComputeLayout(g)

	want := Position{X: cfg.Width / 2, Y: cfg.Height / 2}
	if positions["only"] != want {
		t.Errorf("Expected centered node, got %v", positions["only"])
	}
}

func TestCircularLayout_OnCircle(t *testing.T) {
	g := buildTestGraph(t, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "d"},
	})

	cfg := DefaultLayoutConfig()
	positions := NewCircularLayout(cfg).ComputeLayout(g)

	centerX := cfg.Width / 2
	centerY := cfg.Height / 2
	radius := math.Min(centerX, centerY) - cfg.Padding

	for node, pos := range positions {
		dx := pos.X - centerX
		dy := pos.Y - centerY
		dist := math.Sqrt(dx*dx + dy*dy)
		if math.Abs(dist-radius) > 1e-9 {
			t.Errorf("Node %s not on circle: distance %f, radius %f", node, dist, radius)
		}
	}
}

func TestExport_NodeLinkShape(t *testing.T) {
	g := buildTestGraph(t, [][2]string{
		{"a", "b"}, {"b", "c"},
	})

	positions := NewCircularLayout(DefaultLayoutConfig()).ComputeLayout(g)
	data := Export(g, positions)

	if len(data.Nodes) != 3 {
		t.Fatalf("Expected 3 nodes, got %d", len(data.Nodes))
	}
	if len(data.Edges) != 2 {
		t.Fatalf("Expected 2 edges, got %d", len(data.Edges))
	}
	for _, e := range data.Edges {
		if e.Source >= e.Target {
			t.Errorf("Edge not canonical: %v", e)
		}
	}
	if data.Nodes[0].ID != "a" || data.Nodes[1].ID != "b" || data.Nodes[2].ID != "c" {
		t.Errorf("Nodes not in canonical order: %v", data.Nodes)
	}
}

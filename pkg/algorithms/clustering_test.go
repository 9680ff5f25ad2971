package algorithms

import "testing"

func TestClusteringCoefficients_CompleteGraph(t *testing.T) {
	g := buildTestGraph(t, [][2]string{
		{"a", "b"}, {"a", "c"}, {"a", "d"},
		{"b", "c"}, {"b", "d"}, {"c", "d"},
	})

	coefficients := ClusteringCoefficients(g)

	for node, c := range coefficients {
		if !almostEqual(c, 1.0) {
			t.Errorf("Expected coefficient 1.0 for %s in K4, got %f", node, c)
		}
	}
}

func TestClusteringCoefficients_Star(t *testing.T) {
	g := buildTestGraph(t, [][2]string{{"hub", "x"}, {"hub", "y"}, {"hub", "z"}})

	coefficients := ClusteringCoefficients(g)

	// No edges among the leaves, and each leaf has degree 1.
	if !almostEqual(coefficients["hub"], 0.0) {
		t.Errorf("Expected coefficient 0 for hub, got %f", coefficients["hub"])
	}
	for _, leaf := range []string{"x", "y", "z"} {
		if !almostEqual(coefficients[leaf], 0.0) {
			t.Errorf("Expected coefficient 0 for leaf %s, got %f", leaf, coefficients[leaf])
		}
	}
}

func TestClusteringCoefficients_TrianglePendant(t *testing.T) {
	g := trianglePendant(t)

	coefficients := ClusteringCoefficients(g)

	// b and c each have 2 neighbors with 1 edge among them.
	if !almostEqual(coefficients["b"], 1.0) {
		t.Errorf("Expected coefficient 1.0 for b, got %f", coefficients["b"])
	}
	if !almostEqual(coefficients["c"], 1.0) {
		t.Errorf("Expected coefficient 1.0 for c, got %f", coefficients["c"])
	}
	// a has 3 neighbors {b,c,d} with 1 edge among them: 2/(3*2) = 1/3.
	if !almostEqual(coefficients["a"], 1.0/3.0) {
		t.Errorf("Expected coefficient 1/3 for a, got %f", coefficients["a"])
	}
	// d has degree 1.
	if !almostEqual(coefficients["d"], 0.0) {
		t.Errorf("Expected coefficient 0 for d, got %f", coefficients["d"])
	}
}

func TestAverageClustering(t *testing.T) {
	g := trianglePendant(t)

	coefficients := ClusteringCoefficients(g)
	avg := AverageClustering(coefficients)

	expected := (1.0 + 1.0 + 1.0/3.0 + 0.0) / 4.0
	if !almostEqual(avg, expected) {
		t.Errorf("Expected average clustering %f, got %f", expected, avg)
	}
}

func TestAverageClustering_Empty(t *testing.T) {
	if avg := AverageClustering(nil); avg != 0.0 {
		t.Errorf("Expected 0 for empty coefficients, got %f", avg)
	}
}

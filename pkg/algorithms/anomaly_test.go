package algorithms

import "testing"

func TestDetectAnomalies_FlagsBelowThreshold(t *testing.T) {
	coefficients := map[string]float64{
		"normal": 0.8,
		"low":    0.01,
		"zero":   0.0,
	}
	avg := (0.8 + 0.01 + 0.0) / 3.0

	anomalies := DetectAnomalies(coefficients, avg, DefaultAnomalyOptions())

	// Threshold is 0.1*avg = 0.027; low and zero fall below.
	if len(anomalies) != 2 {
		t.Fatalf("Expected 2 anomalies, got %d", len(anomalies))
	}
	if anomalies[0].Node != "zero" || anomalies[1].Node != "low" {
		t.Errorf("Expected ascending-coefficient order [zero low], got [%s %s]",
			anomalies[0].Node, anomalies[1].Node)
	}
}

func TestDetectAnomalies_StrictInequality(t *testing.T) {
	coefficients := map[string]float64{"a": 0.05, "b": 0.5}
	avg := 0.5

	anomalies := DetectAnomalies(coefficients, avg, AnomalyOptions{Threshold: 0.1, Limit: 10})

	// 0.05 is not strictly below 0.1*0.5 = 0.05.
	if len(anomalies) != 0 {
		t.Errorf("Expected no anomalies at the exact threshold, got %v", anomalies)
	}
}

func TestDetectAnomalies_LimitRespected(t *testing.T) {
	coefficients := map[string]float64{
		"a": 0.0, "b": 0.0, "c": 0.0, "d": 0.0,
	}

	anomalies := DetectAnomalies(coefficients, 1.0, AnomalyOptions{Threshold: 0.1, Limit: 2})

	if len(anomalies) != 2 {
		t.Fatalf("Expected limit of 2 anomalies, got %d", len(anomalies))
	}
	// Equal coefficients fall back to identifier order.
	if anomalies[0].Node != "a" || anomalies[1].Node != "b" {
		t.Errorf("Expected [a b], got [%s %s]", anomalies[0].Node, anomalies[1].Node)
	}
}

func TestDetectAnomalies_ZeroAverage(t *testing.T) {
	coefficients := map[string]float64{"a": 0.0, "b": 0.0}

	anomalies := DetectAnomalies(coefficients, 0.0, DefaultAnomalyOptions())

	// Nothing is strictly below 0.
	if len(anomalies) != 0 {
		t.Errorf("Expected no anomalies when average is 0, got %v", anomalies)
	}
}

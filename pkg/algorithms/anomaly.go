package algorithms

import "sort"

// Anomaly holds a flagged node with its clustering coefficient.
type Anomaly struct {
	Node        string  `json:"node"`
	Coefficient float64 `json:"coefficient"`
}

// AnomalyOptions configures fake-account candidate detection.
type AnomalyOptions struct {
	// Threshold is the fraction of the graph-wide average clustering below
	// which a node is flagged.
	Threshold float64
	// Limit caps the number of flagged nodes returned, 0 = all.
	Limit int
}

// DefaultAnomalyOptions mirrors the conventional cutoffs: flag below 10% of
// average clustering, report at most 10 nodes.
func DefaultAnomalyOptions() AnomalyOptions {
	return AnomalyOptions{Threshold: 0.1, Limit: 10}
}

// DetectAnomalies flags nodes whose local clustering coefficient is
// anomalously low relative to the graph average: coefficient < threshold *
// average. This is a heuristic signal for fake-account candidates, not a
// certainty. Results are ordered by ascending coefficient with
// ascending-identifier tie-break, truncated to the configured limit.
func DetectAnomalies(coefficients map[string]float64, average float64, opts AnomalyOptions) []Anomaly {
	var flagged []Anomaly
	for node, coeff := range coefficients {
		if coeff < opts.Threshold*average {
			flagged = append(flagged, Anomaly{Node: node, Coefficient: coeff})
		}
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		if flagged[i].Coefficient != flagged[j].Coefficient {
			return flagged[i].Coefficient < flagged[j].Coefficient
		}
		return flagged[i].Node < flagged[j].Node
	})

	if opts.Limit > 0 && len(flagged) > opts.Limit {
		flagged = flagged[:opts.Limit]
	}

	return flagged
}

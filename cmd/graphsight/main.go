// Command graphsight analyzes an adjacency-list file and prints a text
// report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/graphsight/graphsight/pkg/algorithms"
	"github.com/graphsight/graphsight/pkg/analysis"
	"github.com/graphsight/graphsight/pkg/graph"
	"github.com/graphsight/graphsight/pkg/logging"
	"github.com/graphsight/graphsight/pkg/parser"
)

func main() {
	top := flag.Int("top", 5, "Number of nodes per centrality ranking")
	recommendations := flag.Int("recommendations", 5, "Max friend suggestions for the sample user")
	anomalyLimit := flag.Int("anomalies", 10, "Max flagged accounts to report")
	threshold := flag.Float64("threshold", 0.1, "Anomaly threshold as a fraction of average clustering")
	sampleSize := flag.Int("sample", 0, "Betweenness BFS sources (0 = exact below cutoff)")
	verbose := flag.Bool("v", false, "Log analysis progress to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <adjacency-list-file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	report, err := run(flag.Arg(0), analysis.Options{
		TopRankings:           *top,
		RecommendationLimit:   *recommendations,
		AnomalyLimit:          *anomalyLimit,
		AnomalyThreshold:      *threshold,
		BetweennessSampleSize: *sampleSize,
		SampleCutoff:          100,
	}, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "graphsight: %v\n", err)
		os.Exit(1)
	}

	printReport(report)
}

func run(path string, opts analysis.Options, verbose bool) (*analysis.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	edges, err := parser.Parse(f)
	if err != nil {
		return nil, err
	}

	g, err := graph.Build(edges)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger := logging.NewNopLogger()
	if verbose {
		logger = logging.NewJSONLogger(os.Stderr, logging.DebugLevel)
	}

	return analysis.NewAnalyzer(opts, logger).Run(context.Background(), g)
}

func printReport(r *analysis.Report) {
	fmt.Println("Network overview")
	fmt.Printf("  Users:       %d\n", r.NodeCount)
	fmt.Printf("  Friendships: %d\n", r.EdgeCount)
	fmt.Printf("  Density:     %.4f\n", r.Density)
	if r.Connected {
		fmt.Printf("  Avg path:    %.4f\n", r.AveragePathLength)
	} else {
		fmt.Println("  Avg path:    n/a (disconnected)")
	}
	fmt.Printf("  Avg clustering: %.4f\n", r.AverageClustering)

	printRanking("Top by degree", r.TopDegree)
	printRanking("Top by betweenness", r.TopBetweenness)
	printRanking("Top by closeness", r.TopCloseness)

	fmt.Printf("\nCommunities: %d (modularity %.4f)\n", r.CommunityCount, r.Modularity)
	ids := make([]int, 0, len(r.CommunitySizes))
	for id := range r.CommunitySizes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Printf("  Community %d: %d members\n", id, r.CommunitySizes[id])
	}

	fmt.Printf("\nSuggestions for %s:\n", r.SampleUser)
	if len(r.Recommendations) == 0 {
		fmt.Println("  (none)")
	}
	for _, rec := range r.Recommendations {
		fmt.Printf("  %-20s %.4f\n", rec.Node, rec.Score)
	}

	fmt.Println("\nPossible fake accounts:")
	if len(r.Anomalies) == 0 {
		fmt.Println("  (none)")
	}
	for _, a := range r.Anomalies {
		fmt.Printf("  %-20s clustering %.4f\n", a.Node, a.Coefficient)
	}
}

func printRanking(title string, ranking []algorithms.RankedNode) {
	fmt.Printf("\n%s:\n", title)
	for i, rn := range ranking {
		fmt.Printf("  %d. %-20s %.4f\n", i+1, rn.Node, rn.Score)
	}
}

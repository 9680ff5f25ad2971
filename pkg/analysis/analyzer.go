// Package analysis composes the analytics engines into a single pass over an
// immutable graph and assembles the result bundle consumed by the
// presentation layer.
package analysis

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/graphsight/graphsight/pkg/algorithms"
	"github.com/graphsight/graphsight/pkg/graph"
	"github.com/graphsight/graphsight/pkg/logging"
	"github.com/graphsight/graphsight/pkg/metrics"
	"github.com/graphsight/graphsight/pkg/parallel"
)

// Options configures a full analysis pass.
type Options struct {
	// TopRankings is the length of each centrality ranking.
	TopRankings int
	// RecommendationLimit caps friend suggestions for the sample user.
	RecommendationLimit int
	// AnomalyLimit caps the number of flagged fake-account candidates.
	AnomalyLimit int
	// AnomalyThreshold is the fraction of average clustering below which a
	// node is flagged.
	AnomalyThreshold float64
	// BetweennessSampleSize forces sampled betweenness with that many BFS
	// sources. Zero defers to SampleCutoff.
	BetweennessSampleSize int
	// SampleCutoff samples betweenness with SampleCutoff sources on graphs
	// larger than it. Zero disables automatic sampling.
	SampleCutoff int
	// Workers sizes the worker pool for the independent engine stages.
	// Zero means one worker per CPU.
	Workers int
}

// DefaultOptions mirrors the conventional report shape: top-5 rankings,
// 5 recommendations, 10 anomalies at a 0.1 threshold, betweenness sampling
// kicking in above 100 nodes.
func DefaultOptions() Options {
	return Options{
		TopRankings:         5,
		RecommendationLimit: 5,
		AnomalyLimit:        10,
		AnomalyThreshold:    0.1,
		SampleCutoff:        100,
		Workers:             runtime.NumCPU(),
	}
}

// Report is the complete analysis result bundle. Either all fields are
// populated or the analysis failed; no partial bundles are produced.
type Report struct {
	NodeCount int     `json:"node_count"`
	EdgeCount int     `json:"edge_count"`
	Density   float64 `json:"density"`

	// AveragePathLength is only meaningful when Connected is true.
	AveragePathLength float64 `json:"average_path_length"`
	Connected         bool    `json:"connected"`

	TopDegree      []algorithms.RankedNode `json:"top_degree"`
	TopBetweenness []algorithms.RankedNode `json:"top_betweenness"`
	TopCloseness   []algorithms.RankedNode `json:"top_closeness"`

	CommunityCount int         `json:"community_count"`
	Modularity     float64     `json:"modularity"`
	CommunitySizes map[int]int `json:"community_sizes"`

	AverageClustering float64 `json:"average_clustering"`

	SampleUser      string                      `json:"sample_user"`
	Recommendations []algorithms.Recommendation `json:"recommendations"`
	Anomalies       []algorithms.Anomaly        `json:"anomalies"`
}

// Analyzer runs analysis passes with fixed options.
type Analyzer struct {
	opts    Options
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewAnalyzer creates an Analyzer. A nil logger falls back to a no-op logger.
func NewAnalyzer(opts Options, logger logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Analyzer{opts: opts, logger: logger.With(logging.Component("analysis"))}
}

// SetMetrics attaches a metrics registry for per-stage instrumentation.
func (a *Analyzer) SetMetrics(r *metrics.Registry) {
	a.metrics = r
}

// Run executes the full analysis over the graph. The independent engines
// (centralities, clustering, community detection, path length) run
// concurrently over the read-only graph; recommendation and anomaly
// detection consume their outputs afterwards. Returns ctx.Err() if the
// context is cancelled before assembly completes.
func (a *Analyzer) Run(ctx context.Context, g *graph.Graph) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	a.logger.Info("analysis started",
		logging.NodeCount(g.NodeCount()),
		logging.EdgeCount(g.EdgeCount()))

	var (
		degree       map[string]float64
		closeness    map[string]float64
		betweenness  map[string]float64
		coefficients map[string]float64
		partition    *algorithms.Partition
		avgPath      float64
		connected    bool
	)

	betweennessOpts := a.betweennessOptions(g)

	workers := a.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool := parallel.NewWorkerPool(workers)
	var wg sync.WaitGroup

	stages := []struct {
		name string
		run  func()
	}{
		{"degree", func() { degree = algorithms.DegreeCentrality(g) }},
		{"closeness", func() { closeness = algorithms.ClosenessCentrality(g) }},
		{"betweenness", func() { betweenness = algorithms.BetweennessCentrality(g, betweennessOpts) }},
		{"clustering", func() { coefficients = algorithms.ClusteringCoefficients(g) }},
		{"community", func() { partition = algorithms.Louvain(g) }},
		{"path_length", func() { avgPath, connected = algorithms.AveragePathLength(g) }},
	}

	for _, stage := range stages {
		stage := stage
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			stageStart := time.Now()
			stage.run()
			a.recordStage(stage.name, time.Since(stageStart))
		})
	}
	wg.Wait()
	pool.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	avgClustering := algorithms.AverageClustering(coefficients)

	// The sample user is the top-degree node; deriving it from the graph
	// itself means the recommendation query can never be unknown.
	sampleUser := algorithms.TopByScore(degree, 1)[0].Node
	recommendations, err := algorithms.RecommendFriends(g, sampleUser, algorithms.RecommendationOptions{
		TopK: a.opts.RecommendationLimit,
	})
	if err != nil {
		return nil, err
	}

	anomalies := algorithms.DetectAnomalies(coefficients, avgClustering, algorithms.AnomalyOptions{
		Threshold: a.opts.AnomalyThreshold,
		Limit:     a.opts.AnomalyLimit,
	})

	report := &Report{
		NodeCount:         g.NodeCount(),
		EdgeCount:         g.EdgeCount(),
		Density:           g.Density(),
		AveragePathLength: avgPath,
		Connected:         connected,
		TopDegree:         algorithms.TopByScore(degree, a.opts.TopRankings),
		TopBetweenness:    algorithms.TopByScore(betweenness, a.opts.TopRankings),
		TopCloseness:      algorithms.TopByScore(closeness, a.opts.TopRankings),
		CommunityCount:    partition.CommunityCount(),
		Modularity:        partition.Modularity,
		CommunitySizes:    partition.Sizes(),
		AverageClustering: avgClustering,
		SampleUser:        sampleUser,
		Recommendations:   recommendations,
		Anomalies:         anomalies,
	}

	if a.metrics != nil {
		a.metrics.RecordAnalysis("ok", time.Since(start), report.NodeCount, report.EdgeCount)
	}
	a.logger.Info("analysis complete",
		logging.NodeCount(report.NodeCount),
		logging.EdgeCount(report.EdgeCount),
		logging.Int("communities", report.CommunityCount),
		logging.Latency(time.Since(start)))

	return report, nil
}

// betweennessOptions resolves the sampling policy: an explicit sample size
// wins, otherwise graphs above the cutoff are sampled at the cutoff.
func (a *Analyzer) betweennessOptions(g *graph.Graph) algorithms.BetweennessOptions {
	if a.opts.BetweennessSampleSize > 0 {
		return algorithms.BetweennessOptions{SampleSize: a.opts.BetweennessSampleSize}
	}
	if a.opts.SampleCutoff > 0 && g.NodeCount() > a.opts.SampleCutoff {
		return algorithms.BetweennessOptions{SampleSize: a.opts.SampleCutoff}
	}
	return algorithms.DefaultBetweennessOptions()
}

func (a *Analyzer) recordStage(stage string, d time.Duration) {
	if a.metrics != nil {
		a.metrics.RecordStage(stage, d)
	}
	a.logger.Debug("stage complete", logging.Stage(stage), logging.Latency(d))
}

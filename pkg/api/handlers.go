package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/graphsight/graphsight/pkg/analysis"
	"github.com/graphsight/graphsight/pkg/graph"
	"github.com/graphsight/graphsight/pkg/logging"
	"github.com/graphsight/graphsight/pkg/parser"
	"github.com/graphsight/graphsight/pkg/validation"
	"github.com/graphsight/graphsight/pkg/visualization"
)

// AnalyzeResponse is the report plus an optional node-link layout.
type AnalyzeResponse struct {
	*analysis.Report
	Layout *visualization.NodeLink `json:"layout,omitempty"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// handleAnalyze accepts adjacency-list input as a raw text body or a
// multipart "file" field, runs the full analysis and returns the report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := parseAnalyzeParams(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := s.inputReader(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer body.Close()

	edges, err := parser.Parse(body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "could not read input: "+err.Error())
		return
	}

	g, err := graph.Build(edges)
	if err != nil {
		if errors.Is(err, graph.ErrEmptyGraph) {
			s.respondError(w, http.StatusUnprocessableEntity, "no valid data found in the input")
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	analyzer := analysis.NewAnalyzer(s.optionsFor(req), s.logger)
	analyzer.SetMetrics(s.registry)

	report, err := analyzer.Run(r.Context(), g)
	if err != nil {
		s.logger.Error("analysis failed", logging.Error(err))
		s.respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	resp := AnalyzeResponse{Report: report}
	switch req.Layout {
	case "force":
		layout := visualization.NewForceDirectedLayout(visualization.DefaultLayoutConfig())
		nodeLink := visualization.Export(g, layout.ComputeLayout(g))
		resp.Layout = &nodeLink
	case "circular":
		layout := visualization.NewCircularLayout(visualization.DefaultLayoutConfig())
		nodeLink := visualization.Export(g, layout.ComputeLayout(g))
		resp.Layout = &nodeLink
	}

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Version:       s.version,
		UptimeSeconds: time.Since(s.startTime).Seconds(),
	})
}

// inputReader picks the adjacency-list source: the "file" part of a
// multipart upload, or the raw request body.
func (s *Server) inputReader(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil {
		return nil, errors.New("invalid multipart upload")
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New("multipart upload is missing the \"file\" field")
	}
	return file, nil
}

// parseAnalyzeParams reads the tuning knobs from the query string.
func parseAnalyzeParams(r *http.Request) (*validation.AnalyzeRequest, error) {
	q := r.URL.Query()
	req := &validation.AnalyzeRequest{Layout: q.Get("layout")}

	intParams := []struct {
		name string
		dst  *int
	}{
		{"top", &req.Top},
		{"recommendations", &req.Recommendations},
		{"anomaly_limit", &req.AnomalyLimit},
		{"sample_size", &req.SampleSize},
	}
	for _, p := range intParams {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, errors.New(p.name + " must be an integer")
			}
			*p.dst = n
		}
	}

	if v := q.Get("anomaly_threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("anomaly_threshold must be a number")
		}
		req.AnomalyThreshold = f
	}

	if err := validation.ValidateAnalyzeRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

// optionsFor overlays request knobs on the configured defaults.
func (s *Server) optionsFor(req *validation.AnalyzeRequest) analysis.Options {
	opts := s.baseOpts
	if req.Top > 0 {
		opts.TopRankings = req.Top
	}
	if req.Recommendations > 0 {
		opts.RecommendationLimit = req.Recommendations
	}
	if req.AnomalyLimit > 0 {
		opts.AnomalyLimit = req.AnomalyLimit
	}
	if req.AnomalyThreshold > 0 {
		opts.AnomalyThreshold = req.AnomalyThreshold
	}
	if req.SampleSize > 0 {
		opts.BetweennessSampleSize = req.SampleSize
	}
	return opts
}

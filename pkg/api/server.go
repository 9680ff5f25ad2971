// Package api exposes the analysis engine over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/graphsight/graphsight/pkg/analysis"
	"github.com/graphsight/graphsight/pkg/config"
	"github.com/graphsight/graphsight/pkg/logging"
	"github.com/graphsight/graphsight/pkg/metrics"
)

// Server routes analysis requests to the engine.
type Server struct {
	baseOpts  analysis.Options
	cfg       *config.Config
	logger    logging.Logger
	registry  *metrics.Registry
	startTime time.Time
	version   string
}

// NewServer creates an API server. A nil logger falls back to a no-op logger.
func NewServer(cfg *config.Config, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return &Server{
		baseOpts: analysis.Options{
			TopRankings:         cfg.Analysis.TopRankings,
			RecommendationLimit: cfg.Analysis.RecommendationLimit,
			AnomalyLimit:        cfg.Analysis.AnomalyLimit,
			AnomalyThreshold:    cfg.Analysis.AnomalyThreshold,
			SampleCutoff:        cfg.Analysis.SampleCutoff,
			Workers:             cfg.Analysis.Workers,
		},
		cfg:       cfg,
		logger:    logger.With(logging.Component("api")),
		registry:  metrics.NewRegistry(),
		startTime: time.Now(),
		version:   "1.0.0",
	}
}

// Handler builds the routing table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(
		s.registry.GetPrometheusRegistry(),
		promhttp.HandlerOpts{},
	))

	var handler http.Handler = mux
	handler = s.bodySizeLimitMiddleware(handler, s.cfg.Server.MaxUploadBytes)
	handler = s.metricsMiddleware(handler)
	handler = s.loggingMiddleware(handler)
	handler = s.requestIDMiddleware(handler)
	handler = s.panicRecoveryMiddleware(handler)
	return handler
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

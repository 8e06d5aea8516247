// Package server implements the trendspot HTTP analysis API.
//
// The API exposes the analysis pipeline over HTTP for multi-instance
// deployments that share a Redis cache. Requests carry the full pipeline
// options; responses include the run ID, graph hash, and cache hit
// information so clients can correlate runs.
//
// # Endpoints
//
//	POST /api/v1/analyze   Run the pipeline on an inline edge list
//	GET  /healthz          Liveness probe
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/matzehuels/trendspot/pkg/errors"
	"github.com/matzehuels/trendspot/pkg/ingest"
	"github.com/matzehuels/trendspot/pkg/pipeline"
	"github.com/matzehuels/trendspot/pkg/viral"
)

// Server handles HTTP analysis requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server around the given pipeline runner.
// A nil logger falls back to log.Default().
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
	})
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const requestIDKey ctxKey = 0

// requestID assigns a UUID to each request and echoes it in the
// X-Request-ID response header.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests logs one line per request with method, path, status, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", requestIDFromContext(r.Context()))
	})
}

// requestIDFromContext retrieves the request ID, or "" when absent.
func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// statusWriter captures the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyzeRequest is the body of POST /api/v1/analyze. The pipeline options
// are embedded directly; the edge list is passed inline via "input".
type analyzeRequest struct {
	pipeline.Options
}

// analyzeResponse is the JSON shape of a successful analysis.
type analyzeResponse struct {
	RunID        string             `json:"run_id"`
	GraphHash    string             `json:"graph_hash"`
	VertexCount  int                `json:"vertex_count"`
	EdgeCount    int                `json:"edge_count"`
	Communities  [][]int            `json:"communities"`
	TrendSetters []int              `json:"trend_setters"`
	Generations  []generationJSON   `json:"generations,omitempty"`
	CacheInfo    pipeline.CacheInfo `json:"cache_info"`
}

type generationJSON struct {
	Index   int   `json:"index"`
	Members []int `json:"members"`
}

// errorResponse is the JSON shape of a failed request.
type errorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	// The API only accepts inline edge lists; reading server-side files
	// is not exposed.
	if req.Path != "" {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "path is not supported; supply the edge list via input"))
		return
	}
	if err := apperrors.ValidateEdgeList(req.Input); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := analyzeResponse{
		RunID:        result.RunID,
		GraphHash:    result.GraphHash,
		VertexCount:  result.Stats.VertexCount,
		EdgeCount:    result.Stats.EdgeCount,
		Communities:  result.Communities,
		TrendSetters: result.TrendSetters.IDs(),
		CacheInfo:    result.CacheInfo,
	}
	for _, gen := range result.Generations {
		resp.Generations = append(resp.Generations, generationJSON{
			Index:   gen.Index,
			Members: gen.Members,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeError maps an error to an HTTP status and writes the JSON body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)

	switch {
	case code == apperrors.ErrCodeInvalidInput,
		code == apperrors.ErrCodeInvalidMetric,
		code == apperrors.ErrCodeInvalidFraction,
		errors.Is(err, viral.ErrOptionViolation),
		errors.Is(err, ingest.ErrMalformedLine),
		strings.HasPrefix(err.Error(), "invalid options"):
		status = http.StatusBadRequest
	case code == apperrors.ErrCodeVertexNotFound,
		errors.Is(err, viral.ErrStartVertexNotFound):
		status = http.StatusNotFound
	}

	writeJSON(w, status, errorResponse{Error: apperrors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

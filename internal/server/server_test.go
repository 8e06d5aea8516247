package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trendspot/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	t.Cleanup(func() { runner.Close() })
	return New(runner, log.NewWithOptions(io.Discard, log.Options{}))
}

func postAnalyze(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t)

	rec := postAnalyze(t, s, map[string]any{
		"input":  "1 2\n2 3\n3 1\n4 1\n",
		"spread": true,
		"start":  1,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp analyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RunID == "" {
		t.Error("run_id should be set")
	}
	if resp.VertexCount != 4 || resp.EdgeCount != 4 {
		t.Errorf("counts = %d/%d, want 4/4", resp.VertexCount, resp.EdgeCount)
	}
	if len(resp.Communities) != 2 {
		t.Errorf("communities = %d, want 2", len(resp.Communities))
	}
	if len(resp.Generations) == 0 {
		t.Error("generations should be present when spread is requested")
	}
}

func TestAnalyzeWithoutSpread(t *testing.T) {
	s := newTestServer(t)

	rec := postAnalyze(t, s, map[string]any{"input": "1 2\n2 1\n"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp analyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Generations) != 0 {
		t.Error("generations should be omitted without spread")
	}
}

func TestAnalyzeBadRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"empty input", map[string]any{"input": ""}, http.StatusBadRequest},
		{"server path rejected", map[string]any{"path": "/etc/hosts"}, http.StatusBadRequest},
		{"malformed edge line", map[string]any{"input": "1 two\n"}, http.StatusBadRequest},
		{"unknown metric", map[string]any{"input": "1 2\n", "metric": "degree"}, http.StatusBadRequest},
		{"unknown start", map[string]any{"input": "1 2\n", "spread": true, "start": 99}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postAnalyze(t, s, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("error body should be JSON: %v", err)
			}
			if resp.Error == "" {
				t.Error("error message should be set")
			}
		})
	}
}

func TestAnalyzeInvalidJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRequestIDEcho(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "client-id-1")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-id-1" {
		t.Errorf("X-Request-ID = %q, want client-supplied value", got)
	}
}

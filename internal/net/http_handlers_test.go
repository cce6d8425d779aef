package net

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"legend-of-kiro/internal/observability"
	"legend-of-kiro/logging"
)

func TestHealthEndpoint(t *testing.T) {
	handler := NewHTTPHandler(HTTPHandlerConfig{})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.Code != http.StatusOK || resp.Body.String() != "ok" {
		t.Fatalf("health: got %d %q", resp.Code, resp.Body.String())
	}
}

func TestDiagnosticsReportsTickRateAndStats(t *testing.T) {
	metrics := logging.NewMetrics()
	metrics.Add("sim_ticks_total", 3)
	cfg := HTTPHandlerConfig{
		LogStats: func() logging.RouterStats { return logging.RouterStats{EventsTotal: 7} },
	}
	cfg.WS.Metrics = metrics
	cfg.WS.Loop.TickRate = 30
	handler := NewHTTPHandler(cfg)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/diagnostics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 OK, got %d", resp.Code)
	}
	if contentType := resp.Header().Get("Content-Type"); contentType != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", contentType)
	}
	var payload diagnosticsPayload
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode diagnostics: %v", err)
	}
	if payload.TickRate != 30 {
		t.Fatalf("tick rate: got %d, want 30", payload.TickRate)
	}
	if payload.Metrics["sim_ticks_total"] != 3 {
		t.Fatalf("metrics: got %v", payload.Metrics)
	}
	if payload.Logging == nil || payload.Logging.EventsTotal != 7 {
		t.Fatalf("logging stats: got %+v", payload.Logging)
	}
	if len(payload.Sessions) != 0 {
		t.Fatalf("sessions: got %d, want 0", len(payload.Sessions))
	}
}

func TestHealthRejectsPost(t *testing.T) {
	handler := NewHTTPHandler(HTTPHandlerConfig{})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/health", nil))
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}

func TestPprofMountedOnlyWhenEnabled(t *testing.T) {
	off := NewHTTPHandler(HTTPHandlerConfig{})
	resp := httptest.NewRecorder()
	off.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("pprof disabled: got %d, want 404", resp.Code)
	}

	on := NewHTTPHandler(HTTPHandlerConfig{Observability: observability.Config{EnablePprof: true}})
	resp = httptest.NewRecorder()
	on.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("pprof enabled: got %d, want 200", resp.Code)
	}
}

func TestServesClientDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>kiro</h1>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	handler := NewHTTPHandler(HTTPHandlerConfig{ClientDir: dir})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusOK || resp.Body.String() != "<h1>kiro</h1>" {
		t.Fatalf("client dir: got %d %q", resp.Code, resp.Body.String())
	}
}

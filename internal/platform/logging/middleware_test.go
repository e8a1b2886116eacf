package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAccessLoggerUsesRequestLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	access := AccessLogger()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/users/7", nil)
	req = req.WithContext(contextWithLogger(req.Context(), zap.New(core)))
	access.ServeHTTP(httptest.NewRecorder(), req)

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusNoContent) {
		t.Fatalf("expected status 204, got %v", fields["status"])
	}
	if fields["path"] != "/users/7" || fields["method"] != http.MethodDelete {
		t.Fatalf("unexpected request fields: %v", fields)
	}
	if _, ok := fields["duration"]; !ok {
		t.Fatal("expected duration field")
	}
}

func TestAccessLoggerDefaultsStatusToOK(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	access := AccessLogger()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req = req.WithContext(contextWithLogger(req.Context(), zap.New(core)))
	access.ServeHTTP(httptest.NewRecorder(), req)

	if got := recorded.All()[0].ContextMap()["status"]; got != int64(http.StatusOK) {
		t.Fatalf("expected status 200, got %v", got)
	}
}

func TestRequestLoggerFallsBackToRequestID(t *testing.T) {
	var traceID string
	handler := RequestLogger()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "req-42"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if traceID != "req-42" {
		t.Fatalf("expected trace id req-42, got %q", traceID)
	}
}

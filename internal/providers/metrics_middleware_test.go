package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_LabelsByPattern(t *testing.T) {
	metrics := newTestMetrics()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /map/tmdb/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	MetricsMiddleware(metrics, mux).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/map/tmdb/27205", nil))

	assert.Equal(t, 1, metrics.requests)
	assert.Equal(t, "GET /map/tmdb/{id}", metrics.endpoint)
	assert.Equal(t, http.StatusNotFound, metrics.status)
	assert.Equal(t, 1, metrics.duration)
}

func TestMetricsMiddleware_UnmatchedDefaultsTo200(t *testing.T) {
	metrics := newTestMetrics()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	MetricsMiddleware(metrics, handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/whatever", nil))

	assert.Equal(t, "unmatched", metrics.endpoint)
	assert.Equal(t, http.StatusOK, metrics.status)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestLoggingMiddleware_UsesMethodLog(t *testing.T) {
	logger := &testLogger{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	mw := LoggingMiddleware(logger, handler)
	mw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/skip/1/1/1", nil))
	mw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, []TypeEnum{TypePost, TypeGet}, logger.types)
}

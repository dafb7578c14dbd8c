package httpadapter_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/api"
	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/httpadapter"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(readyErr error) *httpadapter.Server {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	h := api.NewHandler(logger, metrics, 8, rand.New(rand.NewPCG(7, 7)))
	router := api.NewRouter(api.RouterConfig{CORSOrigins: []string{"*"}, RateLimit: 50}, h, metrics)
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, router, logger)
}

func serve(srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := serve(newTestServer(nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := serve(newTestServer(nil), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := serve(newTestServer(fmt.Errorf("pipeline has not processed any messages yet")), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(newTestServer(nil), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestAPIRoutesAreMounted(t *testing.T) {
	srv := newTestServer(nil)

	rec := serve(srv, http.MethodPost, "/api/impact/calculate", `{"diameter":60,"velocity":15}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"summary"`)

	rec = serve(srv, http.MethodGet, "/api/impactor-2025", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOperationalRoutesWithoutAPI(t *testing.T) {
	srv := httpadapter.NewServer(":0", &mockReadiness{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodGet, "/api/impactor-2025", "").Code)
}

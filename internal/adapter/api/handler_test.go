package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deflectionBody = `{"asteroid_diameter":450,"asteroid_velocity":18.5,"warning_years":10,"impact_date":"2035-08-22"}`

func setupTestRouter(t *testing.T, rateLimit int) (*gin.Engine, *Handler, *observability.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	metrics := observability.NewMetricsForTesting()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, metrics, 16, rand.New(rand.NewPCG(1, 2)))
	router := NewRouter(RouterConfig{CORSOrigins: []string{"*"}, RateLimit: rateLimit}, h, metrics)
	return router, h, metrics
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestCalculateImpact(t *testing.T) {
	router, _, metrics := setupTestRouter(t, 100)

	w := do(router, http.MethodPost, "/api/impact/calculate", `{"diameter":500,"velocity":20}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[domain.ImpactAssessment](t, w)
	assert.Equal(t, domain.TargetLand, got.Parameters.TargetType)
	assert.Equal(t, "Regional Catastrophe", got.Summary.Classification)
	assert.InDelta(t, 1, counterValue(t, metrics.Evaluations.WithLabelValues("impact", "api")), 0)
}

func TestCalculateImpact_Rejects(t *testing.T) {
	router, _, _ := setupTestRouter(t, 100)

	tests := []struct {
		name string
		body string
	}{
		{"negative diameter", `{"diameter":-1,"velocity":20}`},
		{"energy overflows", `{"diameter":1e110,"velocity":20}`},
		{"unknown target", `{"diameter":100,"velocity":20,"target_type":"lava"}`},
		{"malformed json", `{"diameter":`},
		{"wrong type", `{"diameter":"big","velocity":20}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/api/impact/calculate", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decode[map[string]string](t, w)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestMemoizedResponses(t *testing.T) {
	router, h, metrics := setupTestRouter(t, 100)

	first := do(router, http.MethodPost, "/api/deflection/compare", deflectionBody)
	second := do(router, http.MethodPost, "/api/deflection/compare",
		`{ "impact_date": "2035-08-22", "warning_years": 10, "asteroid_velocity": 18.5, "asteroid_diameter": 450 }`)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, h.cache.len())
	assert.InDelta(t, 1, counterValue(t, metrics.APICache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 1, counterValue(t, metrics.APICache.WithLabelValues("miss")), 0)
	assert.InDelta(t, 2, counterValue(t, metrics.Evaluations.WithLabelValues("deflection", "api")), 0)

	// The same body on another route is a separate entry.
	do(router, http.MethodPost, "/api/deflection/simulate", `{"asteroid_diameter":450,"asteroid_velocity":18.5,"warning_years":10,"impact_date":"2035-08-22","strategy":"nuclear"}`)
	assert.Equal(t, 2, h.cache.len())
}

func TestCompareDeflection(t *testing.T) {
	router, _, _ := setupTestRouter(t, 100)

	w := do(router, http.MethodPost, "/api/deflection/compare", deflectionBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[domain.StrategyComparison](t, w)
	assert.Equal(t, domain.StatusAdequate, got.Recommendations.Status)
	assert.Equal(t, domain.KineticImpactor, got.Recommendations.PrimaryStrategy)
	assert.InDelta(t, 5000.0, got.Recommendations.CostEstimate, 1e-9)
	assert.Len(t, got.Rankings, len(domain.Strategies))

	w = do(router, http.MethodPost, "/api/deflection/compare", `{"asteroid_diameter":450,"asteroid_velocity":18.5,"warning_years":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/api/deflection/compare", `{"asteroid_diameter":450,"asteroid_velocity":18.5,"warning_years":10,"impact_date":null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "impact date is required")
}

func TestSimulateDeflection(t *testing.T) {
	router, _, _ := setupTestRouter(t, 100)

	w := do(router, http.MethodPost, "/api/deflection/simulate",
		`{"asteroid_diameter":450,"asteroid_velocity":18.5,"warning_years":10,"impact_date":"2035-08-22","strategy":"nuclear"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[domain.DeflectionSimulation](t, w)
	assert.Equal(t, domain.Nuclear, got.Strategy)
	assert.Equal(t, got.Comparison.Strategies[domain.Nuclear], got.Selected)

	w = do(router, http.MethodPost, "/api/deflection/simulate",
		`{"asteroid_diameter":450,"asteroid_velocity":18.5,"warning_years":10,"impact_date":"2035-08-22","strategy":"prayer"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImpactScenario(t *testing.T) {
	router, _, _ := setupTestRouter(t, 100)

	w := do(router, http.MethodPost, "/api/impact/scenario",
		`{"diameter":450,"velocity":18.5,"target_type":"water","latitude":35.1,"longitude":-40.2,"impact_date":"2035-08-22"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[map[string]any](t, w)
	assert.Contains(t, got, "affected_regions")
	assert.Contains(t, got, "evacuation_zones")
}

func TestPresetScenarios(t *testing.T) {
	router, _, _ := setupTestRouter(t, 100)

	w := do(router, http.MethodGet, "/api/impact/scenarios", "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[struct {
		Scenarios []domain.PresetScenario `json:"scenarios"`
	}](t, w)
	assert.Len(t, got.Scenarios, len(domain.PresetScenarios()))
}

func TestAssessThreat(t *testing.T) {
	router, _, metrics := setupTestRouter(t, 100)

	w := do(router, http.MethodPost, "/api/threat/assess",
		`{"name":"2025 XK","diameter_m":300,"velocity_kms":20,"miss_distance_km":50000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[domain.ThreatAssessment](t, w)
	assert.Equal(t, domain.ThreatCritical, got.ThreatLevel)
	assert.InDelta(t, 1, counterValue(t, metrics.Evaluations.WithLabelValues("threat", "api")), 0)

	w = do(router, http.MethodPost, "/api/threat/assess", `{"name":"nothing","diameter_m":0,"velocity_kms":20,"miss_distance_km":50000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScreenThreats(t *testing.T) {
	router, _, _ := setupTestRouter(t, 100)

	w := do(router, http.MethodPost, "/api/threat/screen", `[
		{"name":"small far","diameter_m":5,"velocity_kms":5,"miss_distance_km":70000000},
		{"name":"big close","diameter_m":800,"velocity_kms":25,"miss_distance_km":40000},
		{"name":"broken","diameter_m":-3,"velocity_kms":25,"miss_distance_km":40000}
	]`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[screenResponse](t, w)
	assert.Equal(t, 3, got.Screened)
	require.NotEmpty(t, got.Threats)
	assert.Equal(t, "big close", got.Threats[0].Name)

	w = do(router, http.MethodPost, "/api/threat/screen", `{"name":"not a list"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImpactor2025(t *testing.T) {
	router, h, _ := setupTestRouter(t, 100)

	w := do(router, http.MethodGet, "/api/impactor-2025", "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[domain.Briefing](t, w)
	assert.Equal(t, "IMPACTOR-2025", got.AsteroidID)
	assert.Equal(t, domain.StatusAdequate, got.DeflectionOptions.Recommendations.Status)
	assert.Equal(t, "Rocky (S-type)", got.PhysicalCharacteristics.Composition)
	assert.NotZero(t, got.PhysicalCharacteristics.EstimatedMassKG)

	do(router, http.MethodGet, "/api/impactor-2025", "")
	assert.Equal(t, 1, h.cache.len())
}

func TestDefendEarth(t *testing.T) {
	router, _, _ := setupTestRouter(t, 100)

	w := do(router, http.MethodPost, "/api/game/defend-earth", `{"player_name":"Ada","strategy":"nuclear"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[domain.GameResult](t, w)
	assert.Equal(t, "Ada", got.PlayerName)
	assert.Contains(t, []string{domain.OutcomeSuccess, domain.OutcomeFailure}, got.Outcome)
	assert.NotEmpty(t, got.GameID)

	// An empty body plays with every default.
	w = do(router, http.MethodPost, "/api/game/defend-earth", "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(router, http.MethodPost, "/api/game/defend-earth", `{"strategy":"wishful_thinking"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

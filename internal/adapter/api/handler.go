package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/gin-gonic/gin"
)

// Handler serves the impact, deflection, threat and game endpoints.
type Handler struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	cache   *lruCache

	rngMu sync.Mutex
	rng   domain.RandomSource
}

// NewHandler creates a Handler. Deterministic evaluations are memoized in an
// LRU cache of cacheSize entries; rng drives the defend-earth game.
func NewHandler(logger *slog.Logger, metrics *observability.Metrics, cacheSize int, rng domain.RandomSource) *Handler {
	return &Handler{
		logger:  logger,
		metrics: metrics,
		cache:   newLRUCache(cacheSize),
		rng:     rng,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/impact/calculate", h.calculateImpact)
	r.POST("/api/impact/scenario", h.impactScenario)
	r.GET("/api/impact/scenarios", h.presetScenarios)
	r.POST("/api/deflection/compare", h.compareDeflection)
	r.POST("/api/deflection/simulate", h.simulateDeflection)
	r.POST("/api/threat/assess", h.assessThreat)
	r.POST("/api/threat/screen", h.screenThreats)
	r.GET("/api/impactor-2025", h.impactor2025)
	r.POST("/api/game/defend-earth", h.defendEarth)
}

func (h *Handler) calculateImpact(c *gin.Context) {
	var req domain.ImpactRequest
	if !h.bind(c, &req) {
		return
	}
	h.memoized(c, "impact", req, func() (any, error) {
		return domain.EvaluateImpact(req)
	})
}

func (h *Handler) impactScenario(c *gin.Context) {
	var req domain.ScenarioRequest
	if !h.bind(c, &req) {
		return
	}
	report, err := domain.BuildScenario(req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respond(c, "scenario", report)
}

func (h *Handler) presetScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": domain.PresetScenarios()})
}

func (h *Handler) compareDeflection(c *gin.Context) {
	var req domain.DeflectionRequest
	if !h.bind(c, &req) {
		return
	}
	h.memoized(c, "deflection", req, func() (any, error) {
		return domain.CompareRequest(req)
	})
}

type simulateRequest struct {
	domain.DeflectionRequest
	Strategy string `json:"strategy"`
}

func (h *Handler) simulateDeflection(c *gin.Context) {
	var req simulateRequest
	if !h.bind(c, &req) {
		return
	}
	h.memoized(c, "simulation", req, func() (any, error) {
		s, err := domain.ParseStrategy(req.Strategy)
		if err != nil {
			return nil, err
		}
		return domain.SimulateDeflection(req.DeflectionRequest, s)
	})
}

func (h *Handler) assessThreat(c *gin.Context) {
	var req domain.CloseApproach
	if !h.bind(c, &req) {
		return
	}
	assessment, err := domain.AssessThreat(req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respond(c, "threat", assessment)
}

type screenResponse struct {
	Screened int                     `json:"screened"`
	Threats  []domain.ScreenedThreat `json:"threats"`
}

func (h *Handler) screenThreats(c *gin.Context) {
	var approaches []domain.CloseApproach
	if !h.bind(c, &approaches) {
		return
	}
	h.respond(c, "screen", screenResponse{
		Screened: len(approaches),
		Threats:  domain.ScreenApproaches(approaches),
	})
}

func (h *Handler) impactor2025(c *gin.Context) {
	h.memoized(c, "briefing", nil, func() (any, error) {
		return domain.Impactor2025Briefing()
	})
}

func (h *Handler) defendEarth(c *gin.Context) {
	var req domain.GameChallenge
	if c.Request.ContentLength != 0 && !h.bind(c, &req) {
		return
	}

	h.rngMu.Lock()
	result, err := domain.PlayDefendEarth(req, h.rng)
	h.rngMu.Unlock()
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.respond(c, "game", result)
}

// bind decodes the JSON body into dst, writing a 400 on failure.
func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (h *Handler) respond(c *gin.Context, kind string, body any) {
	h.metrics.Evaluations.WithLabelValues(kind, "api").Inc()
	c.JSON(http.StatusOK, body)
}

// memoized serves a deterministic evaluation from the cache, computing and
// storing it on a miss. The key is the normalized request, so requests that
// differ only in formatting share an entry.
func (h *Handler) memoized(c *gin.Context, kind string, req any, compute func() (any, error)) {
	key, err := cacheKey(c.FullPath(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if body, ok := h.cache.get(key); ok {
		h.metrics.APICache.WithLabelValues("hit").Inc()
		h.metrics.Evaluations.WithLabelValues(kind, "api").Inc()
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}
	h.metrics.APICache.WithLabelValues("miss").Inc()

	result, err := compute()
	if err != nil {
		h.writeError(c, err)
		return
	}
	body, err := json.Marshal(result)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.cache.put(key, body)
	h.metrics.Evaluations.WithLabelValues(kind, "api").Inc()
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func cacheKey(route string, req any) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(append([]byte(route+"\x00"), data...))
	return hex.EncodeToString(sum[:]), nil
}

// writeError maps domain validation failures to 400 and everything else to 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidParameter) || errors.Is(err, domain.ErrInvalidSchedule) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

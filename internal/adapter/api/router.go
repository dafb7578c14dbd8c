package api

import (
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig holds the cross-cutting API settings.
type RouterConfig struct {
	CORSOrigins []string
	RateLimit   int
}

// NewRouter builds the gin engine: recovery, metrics, CORS and rate limiting
// in front of the handler's routes.
func NewRouter(cfg RouterConfig, h *Handler, metrics *observability.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(MetricsMiddleware(metrics))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.Use(RateLimitMiddleware(cfg.RateLimit))

	h.RegisterRoutes(router)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

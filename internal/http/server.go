// README: API gateway; registers HTTP routes and delegates to the trip planner.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"tripmind/internal/http/handlers"
	"tripmind/internal/http/middleware"
	"tripmind/internal/observability"
)

type ServerDeps struct {
	Planner     handlers.Planner
	PlanTimeout time.Duration
	Currency    string
	CORSOrigins []string
	// Limiter is optional; nil disables rate limiting.
	Limiter  *middleware.RateLimiter
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Registry == nil {
		deps.Registry = observability.InitRegistry()
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(s.deps.Log),
		middleware.Metrics(),
		middleware.Recovery(s.deps.Log),
	)
	if len(s.deps.CORSOrigins) > 0 {
		r.Use(middleware.CORS(s.deps.CORSOrigins))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(observability.MetricsHandler(s.deps.Registry)))

	api := r.Group("/api")
	if s.deps.Limiter != nil {
		api.Use(s.deps.Limiter.Middleware())
	}
	planHandler := handlers.NewPlanHandler(s.deps.Planner, s.deps.PlanTimeout, s.deps.Currency)
	api.POST("/trips/plan", planHandler.Plan)
	return r
}

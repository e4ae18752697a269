// internal/api/server.go
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"legal-marketplace/internal/advisor"
	"legal-marketplace/internal/cases"
	"legal-marketplace/internal/common/config"
	"legal-marketplace/internal/common/logger"
	"legal-marketplace/internal/common/observability"
	"legal-marketplace/internal/consultations"
	"legal-marketplace/internal/directory"
	"legal-marketplace/internal/matching"
	"legal-marketplace/internal/notification"
	"legal-marketplace/internal/payment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthCheck reports whether one backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Deps are the services the API exposes. Notifier, Observability and
// HealthChecks are optional.
type Deps struct {
	Engine        *matching.Engine
	Directory     directory.Lister
	Advisor       *advisor.Advisor
	Consultations *consultations.Service
	Cases         *cases.Manager
	Payments      payment.Gateway
	Notifier      *notification.Notifier
	Observability *observability.Observability
	HealthChecks  map[string]HealthCheck
	Currency      string
}

type Server struct {
	cfg        config.HTTPConfig
	deps       Deps
	logger     logger.Logger
	router     *gin.Engine
	httpServer *http.Server
}

func NewServer(cfg config.HTTPConfig, deps Deps, log logger.Logger) *Server {
	if deps.Currency == "" {
		deps.Currency = "INR"
	}
	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: logger.ForComponent(log, "api"),
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("API server listening", map[string]interface{}{"addr": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(recoveryMiddleware(s.logger))
	r.Use(requestLogger(s.logger))
	r.Use(cors.New(corsConfig(s.cfg.AllowedOrigins)))
	r.Use(newRateLimiter(s.cfg.RateLimitRPM, s.cfg.RateLimitBurst).Middleware(s.logger))

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/classify", s.classify)
		v1.POST("/match", s.match)
		v1.POST("/recommendations", s.recommendations)
		v1.POST("/chat", s.chat)

		v1.GET("/lawyers", s.listLawyers)
		v1.GET("/lawyers/:id", s.getLawyer)
		v1.POST("/lawyers", s.createLawyer)

		v1.POST("/consultations", s.bookConsultation)
		v1.GET("/consultations", s.listConsultations)
		v1.GET("/consultations/:id", s.getConsultation)
		v1.PATCH("/consultations/:id", s.updateConsultation)
		v1.DELETE("/consultations/:id", s.cancelConsultation)

		v1.POST("/cases", s.createCase)
		v1.GET("/cases/:id", s.getCase)
		v1.POST("/cases/:id/actions", s.caseAction)
		v1.GET("/cases/:id/report", s.caseReport)

		v1.POST("/payments/orders", s.createOrder)
		v1.POST("/payments/verify", s.verifyPayment)
		v1.POST("/payments/refunds", s.refundPayment)

		v1.POST("/documents/analyze", s.analyzeDocument)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(s.deps.HealthChecks))
	for name, check := range s.deps.HealthChecks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "checks": checks, "timestamp": time.Now().UTC()})
}

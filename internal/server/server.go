// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"cadence/internal/adapter/bus"
	"cadence/internal/config"
	"cadence/internal/domain/content"
	"cadence/internal/domain/events"
	"cadence/internal/domain/insight"
	"cadence/internal/domain/timing"
	"cadence/internal/domain/trend"
	"cadence/internal/platform/logger"
	"cadence/internal/server/handlers"
	llmService "cadence/internal/service/llm"
)

// Services are the application services exposed over HTTP
type Services struct {
	Trends   trend.Discoverer
	Timing   timing.Optimizer
	Planner  content.Planner
	Plans    content.Store
	Selector *llmService.Selector
	Analyst  insight.Analyst
	// Events is nil when no event bus is configured; /ws/plans is then not mounted
	Events events.Subscriber
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, svc Services, log *logger.Logger) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Create handler dependencies
	trendHandler := handlers.NewTrendHandler(svc.Trends, log)
	timingHandler := handlers.NewTimingHandler(svc.Timing, log)
	planHandler := handlers.NewPlanHandler(svc.Planner, svc.Plans, log)
	llmHandler := handlers.NewLLMHandler(svc.Selector, svc.Analyst, nil, log)

	// Routes
	router.Route("/api", func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Trends API
			r.Route("/trends", func(r chi.Router) {
				r.Post("/discover", trendHandler.DiscoverTrends)
				r.Post("/score", trendHandler.ScoreSignals)
				r.Get("/micro", trendHandler.GetMicroTrends)
			})

			// Timing API
			r.Post("/timing", timingHandler.GetOptimalTiming)

			// Plans API
			r.Route("/plans", func(r chi.Router) {
				r.Get("/", planHandler.ListPlans)
				r.Post("/", planHandler.CreatePlan)
				r.Post("/adapt", planHandler.AdaptPiece)
				r.Get("/{id}", planHandler.GetPlan)
			})

			// LLM API
			r.Route("/llm", func(r chi.Router) {
				r.Post("/route", llmHandler.Route)
				if svc.Analyst != nil {
					r.Post("/hashtags", llmHandler.OptimizeHashtags)
					r.Post("/compliance", llmHandler.CheckCompliance)
					r.Post("/brand-voice", llmHandler.ReviewBrandVoice)
					r.Post("/sentiment", llmHandler.AnalyzeSentiment)
					r.Post("/performance", llmHandler.PredictPerformance)
					r.Post("/strategy", llmHandler.PlanStrategy)
					r.Post("/repurpose", llmHandler.Repurpose)
				}
			})
		})
	})

	// WebSocket endpoint for plan and trend events
	if _, nop := svc.Events.(bus.Nop); svc.Events != nil && !nop {
		router.Get("/ws/plans", handlers.EventStreamHandler(svc.Events, handlers.DefaultWebSocketConfig(), log))
	}

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

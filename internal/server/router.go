// Package server assembles the HTTP routes.
package server

import (
	"net/http"

	"slack-bridge/internal/config"
	"slack-bridge/internal/flash"
	"slack-bridge/internal/handlers"
	customMiddleware "slack-bridge/internal/middleware"
	"slack-bridge/internal/slack"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Config      *config.Config
	Logger      *zap.Logger
	Todos       handlers.TodoService
	NewClient   slack.ClientFactory
	NewVerifier slack.VerifierFactory
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	notices := flash.NewStore(cfg.SecretKey, cfg.SecureCookies)
	buttonHandler := handlers.NewSlackButtonHandler(cfg.SlackToken, d.NewClient, notices, d.Logger)
	webhookHandler := handlers.NewSlackWebhookHandler(cfg.SlackSigningSecret, d.NewVerifier, d.Logger)
	todoHandler := handlers.NewTodoHandler(d.Todos, d.Logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", customMiddleware.CSRFHeaderName},
		AllowCredentials: cfg.CORSCredentials(),
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"slack-bridge"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Slack signs its requests instead of sending a CSRF token.
	r.Post("/slack-webhook/", webhookHandler.Receive)

	// Browser and API routes
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.CSRF(cfg.SecureCookies))

		r.Get("/slack-button/", buttonHandler.Show)
		r.Post("/slack-button/", buttonHandler.Submit)

		r.Route("/todos", func(r chi.Router) {
			r.Get("/", todoHandler.List)
			r.Post("/", todoHandler.Create)
			r.Get("/{id}", todoHandler.Get)
			r.Put("/{id}", todoHandler.Update)
			r.Delete("/{id}", todoHandler.Delete)
		})
	})

	return r
}

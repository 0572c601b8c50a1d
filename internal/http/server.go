package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"portfolio-backend-go/internal/config"
	"portfolio-backend-go/internal/notify"
	"portfolio-backend-go/internal/services"
	"portfolio-backend-go/internal/store"
)

type Server struct {
	Store    store.Store
	Config   config.Config
	Tokens   services.TokenService
	Notifier notify.Notifier
	Contact  *services.ContactPipeline
}

func NewServer(st store.Store, cfg config.Config, notifier notify.Notifier) *Server {
	tokens := services.TokenService{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    time.Duration(cfg.TokenTTLSeconds) * time.Second,
	}
	return &Server{
		Store:    st,
		Config:   cfg,
		Tokens:   tokens,
		Notifier: notifier,
		Contact: &services.ContactPipeline{
			Store:    st,
			Notifier: notifier,
			Timeout:  time.Duration(cfg.NotifyTimeoutSeconds) * time.Second,
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/", s.Root)
		api.Post("/contact", s.SubmitContact)
		api.Post("/track/page-view", s.TrackPage)

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/login", s.AdminLogin)
			admin.Group(func(priv chi.Router) {
				priv.Use(WithAdminAuth(s.Tokens))
				priv.Get("/contact-messages", s.ListContactMessages)
				priv.Put("/contact-messages/{messageId}/read", s.MarkMessageRead)
				priv.Get("/analytics", s.GetAnalytics)
				priv.Get("/portfolio", s.GetPortfolio)
				priv.Put("/portfolio", s.UpdatePortfolio)
				priv.Get("/metrics", s.ServerMetrics)
			})
		})
	})
	return r
}

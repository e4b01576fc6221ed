package handlers

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/jwtauth"
)

const requestTimeout = 60 * time.Second

func (h *Handler) SetRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		// websocket connections outlive the request timeout
		r.Get("/ws", h.ws.HandleWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))

			// public routes
			r.Get("/health", h.HealthHandler)

			r.Post("/auth/register", h.Register)
			r.Post("/auth/login", h.Login)

			r.Get("/events", h.ListEvents)
			r.Get("/events/{id}", h.GetEvent)
			r.Get("/registrations/event/{id}", h.ListEventRegistrations)
			r.Get("/leaderboard", h.GetLeaderboard)
			r.Post("/donations", h.CreateDonation)
			r.Get("/donations/event/{id}", h.ListEventDonations)
			r.Get("/stats", h.GetStats)

			// Secure routes
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(h.tokens.JWTAuth()))
				r.Use(h.authenticate)

				r.Get("/auth/me", h.Me)
				r.Post("/events", h.CreateEvent)
				r.Put("/events/{id}", h.UpdateEvent)
				r.Post("/registrations", h.RegisterForEvent)
				r.Get("/registrations/user", h.ListUserRegistrations)
				r.Get("/admin/events/pending", h.ListPendingEvents)
				r.Put("/admin/events/{id}/approve", h.ApproveEvent)
			})
		})
	})
}

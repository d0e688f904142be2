// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/campusevents/internal/auth"
	"github.com/tomtom215/campusevents/internal/middleware"
)

// Router sets up HTTP routes using the Chi router.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiConfig uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, chiConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		auth:          authMiddleware,
		chiMiddleware: NewChiMiddleware(chiConfig),
	}
}

// SetupChi builds the complete route tree.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())

		r.Route("/health", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitHealth())
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		// The websocket route must stay outside Compression.
		r.With(
			router.chiMiddleware.RateLimitWebSocket(),
			router.auth.RequireSession,
		).Get("/me/ws", h.WebSocket)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(middleware.Compression)

			r.With(router.chiMiddleware.RateLimitLogin()).Post("/auth/login", h.Login)

			r.Get("/categories", h.ListCategories)
			r.Route("/events", func(r chi.Router) {
				r.Get("/", h.ListEvents)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetEvent)
					r.Get("/qr", h.EventQRCode)
					r.Get("/attendees", h.EventAttendees)
					r.With(router.auth.RequireSession).Post("/rsvp", h.ToggleRSVP)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(router.auth.RequireSession)

				r.Post("/auth/logout", h.Logout)
				r.With(router.chiMiddleware.RateLimitCheckIn()).Post("/checkins", h.CheckIn)

				r.Route("/me", func(r chi.Router) {
					r.Get("/", h.Profile)
					r.Put("/share-profile", h.UpdateShareProfile)
					r.Get("/rsvps", h.MyRSVPs)
					r.Get("/calendar.ics", h.CalendarExport)
					r.Get("/recommendations", h.Recommendations)
					r.Get("/checkins", h.CheckInHistory)
					r.Get("/activity", h.Activity)
					r.Get("/notifications", h.ListNotifications)
					r.Post("/notifications/read-all", h.MarkAllNotificationsRead)
					r.Post("/notifications/{id}/read", h.MarkNotificationRead)
					r.Delete("/notifications/{id}", h.DeleteNotification)
				})
			})
		})
	})

	return r
}

// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/campusevents/internal/checkin"
	"github.com/tomtom215/campusevents/internal/models"
)

// maxQueryLen bounds the free-text search parameter.
const maxQueryLen = 200

// ListEvents returns the catalog filtered by category, date and free text.
//
// @Summary List events
// @Tags Events
// @Produce json
// @Param category query string false "Category, or all"
// @Param date query string false "Exact date (YYYY-MM-DD)"
// @Param q query string false "Case-insensitive search over title, description and organizer"
// @Success 200 {object} models.APIResponse{data=EventsResponse}
// @Failure 503 {object} models.APIResponse "Catalog unavailable"
// @Router /events [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.EventFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Date:     strings.TrimSpace(q.Get("date")),
		Query:    strings.TrimSpace(q.Get("q")),
	}
	if len(filter.Query) > maxQueryLen {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Search query is too long", nil)
		return
	}

	events, err := h.catalog.List(r.Context(), filter)
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, &EventsResponse{
		Events: events,
		Count:  len(events),
		Filter: filter,
	})
}

// GetEvent returns one event.
//
// @Summary Get event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.APIResponse{data=models.Event}
// @Failure 404 {object} models.APIResponse
// @Router /events/{id} [get]
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, event)
}

// EventQRCode returns the payload an organizer renders as the event's QR code.
//
// @Summary Get check-in QR payload
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.APIResponse{data=QRResponse}
// @Failure 404 {object} models.APIResponse
// @Router /events/{id}/qr [get]
func (h *Handler) EventQRCode(w http.ResponseWriter, r *http.Request) {
	event, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, &QRResponse{
		EventID:  event.ID,
		Code:     checkin.EncodeCode(event.ID),
		ShareURL: h.eventShareURL(r, event.ID),
	})
}

// eventShareURL links to the event's page in the web client. Without a
// configured public URL the request's own origin is used.
func (h *Handler) eventShareURL(r *http.Request, eventID string) string {
	base := ""
	if h.config != nil {
		base = strings.TrimRight(h.config.Server.PublicURL, "/")
	}
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
			scheme = p
		}
		base = scheme + "://" + r.Host
	}
	return base + "/event/" + url.PathEscape(eventID)
}

// EventAttendees returns checked-in attendees who share their profile.
//
// @Summary Networking list
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.APIResponse{data=[]models.NetworkingUser}
// @Failure 404 {object} models.APIResponse
// @Router /events/{id}/attendees [get]
func (h *Handler) EventAttendees(w http.ResponseWriter, r *http.Request) {
	event, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}

	attendees, err := h.checkins.Attendees(r.Context(), event.ID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load attendees", err)
		return
	}
	respondSuccess(w, r, http.StatusOK, attendees)
}

// ListCategories returns the distinct catalog categories in first-seen order.
//
// @Summary List categories
// @Tags Events
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]string}
// @Router /categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, categories)
}

// ToggleRSVP flips the current user's RSVP for an event.
//
// @Summary Toggle RSVP
// @Tags Events
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.APIResponse{data=attendance.Status}
// @Failure 404 {object} models.APIResponse
// @Router /events/{id}/rsvp [post]
func (h *Handler) ToggleRSVP(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	status, err := h.attendance.Toggle(r.Context(), session.UserID, chi.URLParam(r, "id"))
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, status)
}

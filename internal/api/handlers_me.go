// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/tomtom215/campusevents/internal/calendar"
	"github.com/tomtom215/campusevents/internal/logging"
	"github.com/tomtom215/campusevents/internal/models"
	"github.com/tomtom215/campusevents/internal/recommend"
	"github.com/tomtom215/campusevents/internal/store"
)

// calendarFilename is offered to browsers downloading the export.
const calendarFilename = "campus-events.ics"

// Profile returns the current user's profile.
//
// @Summary Current user profile
// @Tags Me
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse{data=ProfileResponse}
// @Router /me [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	user, ok := h.loadUser(w, r, session.UserID)
	if !ok {
		return
	}

	unread, err := h.notifications.UnreadCount(r.Context(), session.UserID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load notifications", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, &ProfileResponse{
		Profile:             user,
		UnreadNotifications: unread,
	})
}

// UpdateShareProfile sets whether the user appears in networking lists.
//
// @Summary Set profile sharing
// @Tags Me
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body ShareProfileRequest true "Sharing preference"
// @Success 200 {object} models.APIResponse{data=models.UserProfile}
// @Failure 400 {object} models.APIResponse
// @Router /me/share-profile [put]
func (h *Handler) UpdateShareProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req ShareProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, ok := h.loadUser(w, r, session.UserID)
	if !ok {
		return
	}
	user.ShareProfile = *req.ShareProfile
	if err := h.repo.PutUser(r.Context(), user); err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update profile", err)
		return
	}

	logging.Ctx(r.Context()).Info().Bool("share_profile", user.ShareProfile).Msg("profile sharing updated")
	respondSuccess(w, r, http.StatusOK, user)
}

// MyRSVPs lists the events the user is attending, in date order.
//
// @Summary Committed events
// @Tags Me
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Event}
// @Router /me/rsvps [get]
func (h *Handler) MyRSVPs(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	events, err := h.attendance.Committed(r.Context(), session.UserID)
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, events)
}

// CalendarExport renders the user's RSVPs as an iCalendar file.
//
// @Summary Export RSVPs as iCalendar
// @Tags Me
// @Security BearerAuth
// @Produce text/calendar
// @Success 200 {string} string "text/calendar body"
// @Failure 404 {object} models.APIResponse "No RSVPs to export"
// @Router /me/calendar.ics [get]
func (h *Handler) CalendarExport(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	events, err := h.attendance.Committed(r.Context(), session.UserID)
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.calendar.Write(&buf, events); err != nil {
		if errors.Is(err, calendar.ErrNoEvents) {
			respondError(w, r, http.StatusNotFound, "NOT_FOUND", "No RSVPs to export", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build calendar", err)
		return
	}

	w.Header().Set("Content-Type", calendar.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+calendarFilename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write calendar")
	}
}

// Recommendations returns up to three upcoming, conflict-free events that
// balance the user's attendance history.
//
// @Summary Personalized recommendations
// @Tags Me
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse{data=recommend.Result}
// @Failure 503 {object} models.APIResponse "Catalog unavailable"
// @Router /me/recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	user, ok := h.loadUser(w, r, session.UserID)
	if !ok {
		return
	}

	all, err := h.catalog.List(r.Context(), models.EventFilter{})
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}

	committed, err := h.attendance.Committed(r.Context(), session.UserID)
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}

	result, err := h.recommender.Recommend(r.Context(), recommend.Request{
		Catalog:   all,
		Profile:   user,
		Committed: committed,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute recommendations", err)
		return
	}
	respondSuccess(w, r, http.StatusOK, result)
}

// loadUser fetches the session user, writing the error response itself.
func (h *Handler) loadUser(w http.ResponseWriter, r *http.Request, userID string) (*models.UserProfile, bool) {
	user, err := h.repo.User(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
			return nil, false
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user", err)
		return nil, false
	}
	return user, true
}

// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/campusevents/internal/audit"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// Activity returns the caller's own audit trail: logins, logouts and
// check-in attempts.
//
// @Summary Account activity
// @Tags Me
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum events (default 50, max 200)"
// @Success 200 {object} models.APIResponse{data=ActivityResponse}
// @Failure 400 {object} models.APIResponse "Invalid limit"
// @Failure 503 {object} models.APIResponse "Audit log disabled"
// @Router /me/activity [get]
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	if h.audit == nil {
		respondError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Activity log is disabled", nil)
		return
	}

	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxActivityLimit {
			respondError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "limit must be between 1 and 200", nil)
			return
		}
		limit = n
	}

	events, err := h.audit.Query(r.Context(), audit.QueryFilter{ActorID: session.UserID, Limit: limit})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load activity", err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	respondSuccess(w, r, http.StatusOK, &ActivityResponse{Events: events, Count: len(events)})
}

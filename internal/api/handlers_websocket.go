// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"net/http"

	"github.com/tomtom215/campusevents/internal/logging"
	ws "github.com/tomtom215/campusevents/internal/websocket"
)

// WebSocket upgrades the connection and subscribes it to the user's
// notifications.
//
// @Summary Notification stream
// @Tags Notifications
// @Security BearerAuth
// @Param token query string false "Session token when headers cannot be set"
// @Success 101 "Switching Protocols"
// @Failure 503 {object} models.APIResponse "Hub unavailable"
// @Router /me/ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn, session.UserID)
	h.wsHub.Register <- client
	client.Start()
}

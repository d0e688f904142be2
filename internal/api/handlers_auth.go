// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/campusevents/internal/logging"
	"github.com/tomtom215/campusevents/internal/metrics"
	"github.com/tomtom215/campusevents/internal/store"
)

// Login issues a session token for a known user.
//
// @Summary Start a session
// @Description Simulated campus login: any known user ID receives a token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "User to log in as"
// @Success 200 {object} models.APIResponse{data=LoginResponse}
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Failure 401 {object} models.APIResponse "Unknown user"
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.repo.User(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.AuthFailures.WithLabelValues("unknown_user").Inc()
			h.audit.LogLogin(r, req.UserID, "unknown_user")
			respondError(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Unknown user", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user", err)
		return
	}

	token, session, err := h.jwtManager.GenerateToken(user.ID, user.Name)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create session", err)
		return
	}
	metrics.SessionsIssued.Inc()
	h.audit.LogLogin(r, user.ID, "")

	logging.Ctx(r.Context()).Info().
		Str("user_id", user.ID).
		Time("expires_at", session.ExpiresAt).
		Msg("session issued")

	respondSuccess(w, r, http.StatusOK, &LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	})
}

// Logout revokes the token used for this request.
//
// @Summary End the session
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 401 {object} models.APIResponse
// @Router /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	if h.revoker != nil {
		if err := h.revoker.Revoke(r.Context(), session); err != nil {
			respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to end session", err)
			return
		}
	}

	h.audit.LogLogout(r, session.UserID)
	logging.Ctx(r.Context()).Info().Str("user_id", session.UserID).Msg("session revoked")
	respondSuccess(w, r, http.StatusOK, map[string]bool{"loggedOut": true})
}

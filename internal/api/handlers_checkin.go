// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/campusevents/internal/checkin"
	"github.com/tomtom215/campusevents/internal/models"
)

// CheckIn redeems a scanned QR payload for the current user.
//
// Failures carry the user-facing result in data alongside the error code:
//
//	400 INVALID_CODE        payload is not event-<id>
//	404 NOT_FOUND           no such event
//	403 NOT_APPROVED        event is not approved for check-in
//	409 ALREADY_CHECKED_IN  second scan of the same event
//	500 CHECKIN_FAILED      anything else, without detail
//
// @Summary Check in to an event
// @Tags Check-in
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body CheckInRequest true "Scanned QR payload"
// @Success 200 {object} models.APIResponse{data=CheckInResponse}
// @Router /checkins [post]
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req CheckInRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	outcome, err := h.checkins.CheckIn(r.Context(), session, req.Code)
	result := checkin.ToResult(outcome, err)
	eventID, _ := checkin.ParseCode(req.Code)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		status, code := checkInErrorStatus(err)
		h.audit.LogCheckIn(r, session.UserID, eventID, code)
		respondJSON(w, status, &models.APIResponse{
			Status:   "error",
			Data:     &CheckInResponse{CheckInResult: result},
			Metadata: metadata(r),
			Error: &models.APIError{
				Code:    code,
				Message: result.Message,
			},
		})
		return
	}

	h.audit.LogCheckIn(r, session.UserID, eventID, "")
	balance := outcome.Profile.Points
	respondSuccess(w, r, http.StatusOK, &CheckInResponse{
		CheckInResult: result,
		CheckIn:       &outcome.CheckIn,
		Balance:       &balance,
	})
}

func checkInErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, checkin.ErrInvalidCodeFormat):
		return http.StatusBadRequest, "INVALID_CODE"
	case errors.Is(err, checkin.ErrEventNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, checkin.ErrEventNotApproved):
		return http.StatusForbidden, "NOT_APPROVED"
	case errors.Is(err, checkin.ErrAlreadyCheckedIn):
		return http.StatusConflict, "ALREADY_CHECKED_IN"
	case errors.Is(err, checkin.ErrNoSession):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	default:
		return http.StatusInternalServerError, "CHECKIN_FAILED"
	}
}

// CheckInHistory lists the user's check-ins with the current points balance.
//
// @Summary Check-in history
// @Tags Check-in
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse{data=CheckInHistoryResponse}
// @Router /me/checkins [get]
func (h *Handler) CheckInHistory(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	user, ok := h.loadUser(w, r, session.UserID)
	if !ok {
		return
	}

	history, err := h.checkins.History(r.Context(), session.UserID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load check-ins", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, &CheckInHistoryResponse{
		CheckIns: history,
		Points:   user.Points,
	})
}

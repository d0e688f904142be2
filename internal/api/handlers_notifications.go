// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/campusevents/internal/notify"
)

// ListNotifications returns the user's inbox, newest first.
//
// @Summary List notifications
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse{data=NotificationsResponse}
// @Router /me/notifications [get]
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	list, err := h.notifications.List(r.Context(), session.UserID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load notifications", err)
		return
	}

	unread := 0
	for i := range list {
		if !list[i].Read {
			unread++
		}
	}
	respondSuccess(w, r, http.StatusOK, &NotificationsResponse{
		Notifications: list,
		Unread:        unread,
	})
}

// MarkNotificationRead marks one notification as read.
//
// @Summary Mark notification read
// @Tags Notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /me/notifications/{id}/read [post]
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.notifications.MarkAsRead(r.Context(), session.UserID, id); err != nil {
		respondNotificationError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]string{"id": id})
}

// MarkAllNotificationsRead marks the whole inbox as read.
//
// @Summary Mark all notifications read
// @Tags Notifications
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Router /me/notifications/read-all [post]
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	n, err := h.notifications.MarkAllAsRead(r.Context(), session.UserID)
	if err != nil {
		respondNotificationError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]int{"marked": n})
}

// DeleteNotification removes one notification from the inbox.
//
// @Summary Delete notification
// @Tags Notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /me/notifications/{id} [delete]
func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.notifications.Clear(r.Context(), session.UserID, id); err != nil {
		respondNotificationError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]string{"id": id})
}

func respondNotificationError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, notify.ErrNotificationNotFound) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Notification not found", nil)
		return
	}
	respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update notifications", err)
}

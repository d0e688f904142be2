// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/campusevents/internal/store"
)

// healthProbeKey is read on readiness checks. It never exists.
const healthProbeKey = "health:probe"

// breakerStater is implemented by catalog sources guarded by a circuit breaker.
type breakerStater interface {
	State() string
}

// HealthLive reports that the process is serving requests.
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=HealthResponse}
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, &HealthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	})
}

// HealthReady reports whether the store is reachable and the catalog breaker
// is closed.
//
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=HealthResponse}
// @Failure 503 {object} models.APIResponse{data=HealthResponse}
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"store": "ok", "catalog": "ok"}
	ready := true

	if _, err := h.repo.KV().Get(r.Context(), healthProbeKey); err != nil && !errors.Is(err, store.ErrNotFound) {
		checks["store"] = "unavailable"
		ready = false
	}

	if b, ok := h.catalog.(breakerStater); ok {
		if state := b.State(); state == "open" {
			checks["catalog"] = "circuit open"
			ready = false
		}
	}

	resp := &HealthResponse{
		Status:        "ready",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Checks:        checks,
	}
	status := http.StatusOK
	if !ready {
		resp.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}

	respondSuccess(w, r, status, resp)
}

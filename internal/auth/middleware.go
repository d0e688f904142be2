// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/campusevents/internal/logging"
	"github.com/tomtom215/campusevents/internal/metrics"
	"github.com/tomtom215/campusevents/internal/models"
)

// Middleware authenticates requests with bearer tokens.
type Middleware struct {
	jwtManager *JWTManager
	revoker    *Revoker
}

// NewMiddleware creates a new authentication middleware. revoker may be nil.
func NewMiddleware(jwtManager *JWTManager, revoker *Revoker) *Middleware {
	return &Middleware{jwtManager: jwtManager, revoker: revoker}
}

// RequireSession rejects requests without a valid, unrevoked token and
// stores the Session in the request context. The token is read from the
// Authorization header, or from the "token" query parameter for websocket
// upgrades where browsers cannot set headers.
func (m *Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			metrics.AuthFailures.WithLabelValues("missing_token").Inc()
			writeUnauthorized(w, "Authentication required")
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
			logging.Ctx(r.Context()).Debug().Err(err).Msg("token validation failed")
			writeUnauthorized(w, "Invalid or expired session")
			return
		}

		if m.revoker != nil {
			revoked, err := m.revoker.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				logging.Ctx(r.Context()).Error().Err(err).Msg("revocation lookup failed")
				writeUnauthorized(w, "Invalid or expired session")
				return
			}
			if revoked {
				metrics.AuthFailures.WithLabelValues("revoked").Inc()
				writeUnauthorized(w, "Session has been logged out")
				return
			}
		}

		session := claims.Session()
		ctx := ContextWithSession(r.Context(), session)
		ctx = logging.ContextWithUserID(ctx, session.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if after, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(after)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck // response already committed
	json.NewEncoder(w).Encode(&models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    "UNAUTHORIZED",
			Message: message,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

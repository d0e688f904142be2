// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/campusevents/internal/attendance"
	"github.com/tomtom215/campusevents/internal/audit"
	"github.com/tomtom215/campusevents/internal/auth"
	"github.com/tomtom215/campusevents/internal/calendar"
	"github.com/tomtom215/campusevents/internal/catalog"
	"github.com/tomtom215/campusevents/internal/checkin"
	"github.com/tomtom215/campusevents/internal/config"
	"github.com/tomtom215/campusevents/internal/logging"
	"github.com/tomtom215/campusevents/internal/notify"
	"github.com/tomtom215/campusevents/internal/recommend"
	"github.com/tomtom215/campusevents/internal/store"
	ws "github.com/tomtom215/campusevents/internal/websocket"
)

// Dependencies groups the services the handlers call into. Hub and Audit
// are optional; without a hub the websocket endpoint answers 503, without
// an audit logger nothing is recorded and the activity endpoint answers 503.
type Dependencies struct {
	Config        *config.Config
	Repo          *store.Repository
	Catalog       catalog.Source
	CheckIns      *checkin.Processor
	Attendance    *attendance.Service
	Notifications *notify.Service
	Recommender   *recommend.Engine
	Calendar      *calendar.Exporter
	JWTManager    *auth.JWTManager
	Revoker       *auth.Revoker
	Hub           *ws.Hub
	Audit         *audit.Logger
}

// Handler serves all API endpoints.
type Handler struct {
	config        *config.Config
	repo          *store.Repository
	catalog       catalog.Source
	checkins      *checkin.Processor
	attendance    *attendance.Service
	notifications *notify.Service
	recommender   *recommend.Engine
	calendar      *calendar.Exporter
	jwtManager    *auth.JWTManager
	revoker       *auth.Revoker
	wsHub         *ws.Hub
	audit         *audit.Logger
	startTime     time.Time
}

// NewHandler creates a new API handler with all required dependencies.
//
// Example:
//
//	handler, err := api.NewHandler(api.Dependencies{...})
//	router := api.NewRouter(handler, auth.NewMiddleware(jwt, revoker), chiCfg)
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
//
//nolint:gocritic // hugeParam: dependencies are copied once at startup
func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Repo == nil:
		return nil, errors.New("api: repository is required")
	case deps.Catalog == nil:
		return nil, errors.New("api: catalog is required")
	case deps.CheckIns == nil:
		return nil, errors.New("api: check-in processor is required")
	case deps.Attendance == nil:
		return nil, errors.New("api: attendance service is required")
	case deps.Notifications == nil:
		return nil, errors.New("api: notification service is required")
	case deps.Recommender == nil:
		return nil, errors.New("api: recommendation engine is required")
	case deps.JWTManager == nil:
		return nil, errors.New("api: JWT manager is required")
	}

	exporter := deps.Calendar
	if exporter == nil {
		exporter = calendar.NewExporter(nil)
	}

	return &Handler{
		config:        deps.Config,
		repo:          deps.Repo,
		catalog:       deps.Catalog,
		checkins:      deps.CheckIns,
		attendance:    deps.Attendance,
		notifications: deps.Notifications,
		recommender:   deps.Recommender,
		calendar:      exporter,
		jwtManager:    deps.JWTManager,
		revoker:       deps.Revoker,
		wsHub:         deps.Hub,
		audit:         deps.Audit,
		startTime:     time.Now(),
	}, nil
}

func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins against the
// configured CORS origins.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin; non-browser clients already hold a token.
	if origin == "" {
		return true
	}

	if h.config == nil {
		return true
	}

	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected: origin not allowed")
	return false
}

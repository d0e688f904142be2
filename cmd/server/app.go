// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/campusevents/internal/api"
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
	"github.com/tomtom215/campusevents/internal/supervisor"
	"github.com/tomtom215/campusevents/internal/supervisor/services"
	ws "github.com/tomtom215/campusevents/internal/websocket"
)

// revocationCleanupInterval is how often expired revocations are purged.
const revocationCleanupInterval = 15 * time.Minute

// app holds the wired components of a running server.
type app struct {
	kv      store.KV
	gc      suture.Service // nil for the in-memory store
	revoker *auth.Revoker
	audit   *audit.Logger // nil when disabled
	hub     *ws.Hub
	router  http.Handler
}

// openStore opens the configured key-value store.
func openStore(cfg *config.StoreConfig) (store.KV, suture.Service, error) {
	if cfg.InMemory {
		logging.Warn().Msg("in-memory store enabled: check-ins and RSVPs are lost on restart")
		return store.NewMemoryKV(), nil, nil
	}
	kv, err := store.OpenBadger(store.BadgerOptions{
		Path:       cfg.Path,
		SyncWrites: cfg.SyncWrites,
		GCInterval: cfg.GCInterval,
	})
	if err != nil {
		return nil, nil, err
	}
	return kv, kv, nil
}

// buildApp wires the store, domain services and HTTP router.
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	kv, gc, err := openStore(&cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := &app{kv: kv, gc: gc}

	repo := store.NewRepository(kv)
	if cfg.Store.Seed {
		if _, err := repo.Seed(ctx); err != nil {
			a.close()
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	logger := logging.Logger()
	source := catalog.NewBreakerProvider(catalog.NewProvider(repo, cfg.Catalog.SimulatedLatency), &cfg.Catalog)

	a.hub = ws.NewHub()
	notifications := notify.NewService(repo, logger)
	notifications.SetPublisher(a.hub)

	engine, err := recommend.NewEngine(&recommend.Config{
		MaxResults: cfg.Recommend.MaxResults,
		Location:   loc,
	}, logger)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("recommendation engine: %w", err)
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("jwt manager: %w", err)
	}
	a.revoker = auth.NewRevoker(kv, revocationCleanupInterval)

	if cfg.Audit.Enabled {
		auditCfg := audit.DefaultConfig()
		auditCfg.Retention = cfg.Audit.Retention
		a.audit = audit.NewLogger(audit.NewKVStore(kv), auditCfg)
	}

	handler, err := api.NewHandler(api.Dependencies{
		Config:        cfg,
		Repo:          repo,
		Catalog:       source,
		CheckIns:      checkin.NewProcessor(repo, source, notifications, logger),
		Attendance:    attendance.NewService(repo, source, logger),
		Notifications: notifications,
		Recommender:   engine,
		Calendar:      calendar.NewExporter(loc),
		JWTManager:    jwtManager,
		Revoker:       a.revoker,
		Hub:           a.hub,
		Audit:         a.audit,
	})
	if err != nil {
		a.close()
		return nil, err
	}

	router := api.NewRouter(handler, auth.NewMiddleware(jwtManager, a.revoker), api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	a.router = router.SetupChi()
	return a, nil
}

// children hands the app's long-running services to the supervisor tree.
func (a *app) children(server services.HTTPServer) supervisor.Children {
	c := supervisor.Children{
		StoreGC:     a.gc,
		Revocations: a.revoker,
		Hub:         a.hub,
		HTTP:        server,
	}
	if a.audit != nil {
		c.Audit = a.audit
	}
	return c
}

func (a *app) close() {
	if err := a.kv.Close(); err != nil {
		logging.Error().Err(err).Msg("error closing store")
	}
}

// logStartup reports the effective configuration without secrets.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func logStartup(logger zerolog.Logger, cfg *config.Config) {
	logger.Info().
		Str("addr", cfg.Addr()).
		Str("environment", cfg.Server.Environment).
		Str("time_zone", cfg.Server.TimeZone).
		Bool("store_in_memory", cfg.Store.InMemory).
		Str("store_path", cfg.Store.Path).
		Bool("rate_limit_disabled", cfg.Security.RateLimitDisabled).
		Bool("audit_enabled", cfg.Audit.Enabled).
		Strs("cors_origins", cfg.Security.CORSOrigins).
		Msg("configuration loaded")
}

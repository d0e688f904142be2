// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/tomtom215/campusevents/internal/supervisor/services"
)

// Layer names, also used as supervisor names in event logs.
const (
	LayerData      = "data-layer"
	LayerMessaging = "messaging-layer"
	LayerAPI       = "api-layer"
)

// ErrMissingService is returned when a required child is nil.
var ErrMissingService = errors.New("required service missing")

// TreeConfig holds supervisor tree configuration.
type TreeConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	// Default: 5
	FailureThreshold float64

	// FailureDecay is the rate at which failures decay in seconds.
	// Default: 30
	FailureDecay float64

	// FailureBackoff is the duration to wait when threshold is exceeded.
	// Default: 15s
	FailureBackoff time.Duration

	// HTTPShutdownTimeout bounds http.Server.Shutdown.
	// Default: 10s
	HTTPShutdownTimeout time.Duration

	// ShutdownTimeout is the maximum time to wait for any service to stop.
	// It must exceed HTTPShutdownTimeout so draining requests are not cut
	// off. Default: HTTPShutdownTimeout + 1s
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns the defaults applied to zero fields.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold:    5.0,
		FailureDecay:        30.0,
		FailureBackoff:      15 * time.Second,
		HTTPShutdownTimeout: 10 * time.Second,
		ShutdownTimeout:     11 * time.Second,
	}
}

func (c TreeConfig) withDefaults() TreeConfig {
	d := DefaultTreeConfig()
	if c.FailureThreshold == 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = d.FailureDecay
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = d.FailureBackoff
	}
	if c.HTTPShutdownTimeout == 0 {
		c.HTTPShutdownTimeout = d.HTTPShutdownTimeout
	}
	if c.ShutdownTimeout <= c.HTTPShutdownTimeout {
		c.ShutdownTimeout = c.HTTPShutdownTimeout + time.Second
	}
	return c
}

// Children are the long-lived services of one server process.
type Children struct {
	// StoreGC runs Badger value log GC. Nil for the in-memory store.
	StoreGC suture.Service

	// Revocations purges expired logout revocations. Required.
	Revocations suture.Service

	// Audit drains the audit event queue. Nil when the audit trail is off.
	Audit suture.Service

	// Hub pushes notifications to websocket clients. Required.
	Hub services.ContextHub

	// HTTP serves the API. Required.
	HTTP services.HTTPServer
}

func (c *Children) validate() error {
	switch {
	case c.Revocations == nil:
		return fmt.Errorf("%w: revocation cleanup", ErrMissingService)
	case c.Hub == nil:
		return fmt.Errorf("%w: websocket hub", ErrMissingService)
	case c.HTTP == nil:
		return fmt.Errorf("%w: http server", ErrMissingService)
	}
	return nil
}

// SupervisorTree runs the server's children in three layers:
//   - data: store value log GC, revocation cleanup, audit writer
//   - messaging: websocket notification hub
//   - api: HTTP server
//
// Each layer counts failures on its own, so a crashing hub restarts
// without the api layer ever seeing it.
type SupervisorTree struct {
	root   *suture.Supervisor
	layout map[string][]string
	config TreeConfig
}

// NewSupervisorTree builds the tree and mounts children into their layers.
func NewSupervisorTree(logger *slog.Logger, cfg TreeConfig, children Children) (*SupervisorTree, error) {
	if err := children.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	// MustHook has a pointer receiver.
	handler := &sutureslog.Handler{Logger: logger}

	rootSpec := suture.Spec{
		EventHook:        handler.MustHook(),
		FailureThreshold: cfg.FailureThreshold,
		FailureDecay:     cfg.FailureDecay,
		FailureBackoff:   cfg.FailureBackoff,
		Timeout:          cfg.ShutdownTimeout,
	}

	// Children inherit the EventHook when added to the root.
	childSpec := rootSpec
	childSpec.EventHook = nil

	t := &SupervisorTree{
		root:   suture.New("campusevents", rootSpec),
		layout: make(map[string][]string),
		config: cfg,
	}

	data := t.layer(LayerData, childSpec)
	if children.StoreGC != nil {
		t.add(data, LayerData, children.StoreGC)
	}
	t.add(data, LayerData, children.Revocations)
	if children.Audit != nil {
		t.add(data, LayerData, children.Audit)
	}

	messaging := t.layer(LayerMessaging, childSpec)
	t.add(messaging, LayerMessaging, services.NewWebSocketHubService(children.Hub))

	api := t.layer(LayerAPI, childSpec)
	t.add(api, LayerAPI, services.NewHTTPServerService(children.HTTP, cfg.HTTPShutdownTimeout))

	return t, nil
}

func (t *SupervisorTree) layer(name string, spec suture.Spec) *suture.Supervisor {
	sup := suture.New(name, spec)
	t.root.Add(sup)
	t.layout[name] = nil
	return sup
}

func (t *SupervisorTree) add(sup *suture.Supervisor, layer string, svc suture.Service) {
	sup.Add(svc)
	t.layout[layer] = append(t.layout[layer], fmt.Sprint(svc))
}

// Layout returns the service names mounted in each layer, in start order.
func (t *SupervisorTree) Layout() map[string][]string {
	out := make(map[string][]string, len(t.layout))
	for k, v := range t.layout {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Serve starts the supervisor tree and blocks until the context is canceled.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground starts the tree in a goroutine. The returned channel
// receives one value when the tree stops; it is never closed.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that outlived ShutdownTimeout.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}

// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/campusevents/internal/metrics"
	"github.com/tomtom215/campusevents/internal/models"
	"github.com/tomtom215/campusevents/internal/recommend"
	"github.com/tomtom215/campusevents/internal/store"
)

var (
	// ErrEventNotFound is returned by Get for unknown event IDs.
	ErrEventNotFound = errors.New("event not found")

	// ErrCatalogUnavailable is returned when the catalog cannot be loaded.
	ErrCatalogUnavailable = errors.New("event catalog unavailable")
)

// Source is read-only access to the event catalog.
type Source interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// Provider serves the catalog from the store repository.
type Provider struct {
	repo    *store.Repository
	latency time.Duration
}

// NewProvider creates a catalog provider. A positive latency delays every read.
func NewProvider(repo *store.Repository, latency time.Duration) *Provider {
	return &Provider{repo: repo, latency: latency}
}

// List returns the events matching filter in date order. The result is
// never nil.
func (p *Provider) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	all, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Event, 0, len(all))
	for i := range all {
		if filter.Matches(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Get returns a single event.
func (p *Provider) Get(ctx context.Context, id string) (*models.Event, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	e, err := p.repo.Event(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load event %s: %w", id, err)
	}
	return e, nil
}

// Categories returns the distinct categories present in the catalog, in
// the order they first appear.
func (p *Provider) Categories(ctx context.Context) ([]models.Category, error) {
	all, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	return recommend.Categories(all), nil
}

func (p *Provider) load(ctx context.Context) ([]models.Event, error) {
	start := time.Now()
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	events, err := p.repo.Events(ctx)
	metrics.RecordCatalogLoad(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return events, nil
}

func (p *Provider) wait(ctx context.Context) error {
	if p.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

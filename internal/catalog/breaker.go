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

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/campusevents/internal/config"
	"github.com/tomtom215/campusevents/internal/logging"
	"github.com/tomtom215/campusevents/internal/metrics"
	"github.com/tomtom215/campusevents/internal/models"
)

const breakerName = "event-catalog"

// BreakerProvider guards a Source with a circuit breaker.
//
// Not-found lookups and caller cancellations are not counted as failures.
type BreakerProvider struct {
	source Source
	cb     *gobreaker.CircuitBreaker[any]
}

// NewBreakerProvider wraps source. The breaker opens after
// cfg.BreakerMaxFailures consecutive failures and probes again after
// cfg.BreakerTimeout.
func NewBreakerProvider(source Source, cfg *config.CatalogConfig) *BreakerProvider {
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrEventNotFound) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state transition")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})

	return &BreakerProvider{source: source, cb: cb}
}

// State reports the breaker state name.
func (b *BreakerProvider) State() string {
	return b.cb.State().String()
}

// List implements Source.
func (b *BreakerProvider) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	return execute[[]models.Event](b, func() (any, error) {
		return b.source.List(ctx, filter)
	})
}

// Get implements Source.
func (b *BreakerProvider) Get(ctx context.Context, id string) (*models.Event, error) {
	return execute[*models.Event](b, func() (any, error) {
		return b.source.Get(ctx, id)
	})
}

// Categories implements Source.
func (b *BreakerProvider) Categories(ctx context.Context) ([]models.Category, error) {
	return execute[[]models.Category](b, func() (any, error) {
		return b.source.Categories(ctx)
	})
}

func execute[T any](b *BreakerProvider, fn func() (any, error)) (T, error) {
	var zero T
	result, err := b.cb.Execute(fn)
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			return zero, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		case errors.Is(err, ErrEventNotFound), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return zero, err
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
			return zero, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/campusevents/internal/metrics"
	"github.com/tomtom215/campusevents/internal/models"
	"github.com/tomtom215/campusevents/internal/schedule"
)

// ErrNoProfile is returned when a request has no user profile.
var ErrNoProfile = errors.New("recommend: profile is required")

// Engine ranks catalog events for a single user.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	detector *schedule.Detector
	now      func() time.Time

	requests     atomic.Int64
	emptyResults atomic.Int64
	candidates   atomic.Int64
	conflicts    atomic.Int64
}

// NewEngine validates cfg and returns an engine. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c := *cfg
	if c.Location == nil {
		c.Location = time.Local
	}

	return &Engine{
		config:   &c,
		logger:   logger.With().Str("component", "recommend").Logger(),
		detector: schedule.NewDetector(c.Location),
		now:      time.Now,
	}, nil
}

// SetClock replaces the time source. Used by tests to pin "today".
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Recommend runs the ranking pipeline described in the package doc.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	if req.Profile == nil {
		return nil, ErrNoProfile
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.requests.Add(1)

	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.Profile.ID).
		Logger()

	attended := attendedEvents(req.Catalog, req.Profile)
	dist := Distribution(attended)
	under := Underrepresented(dist, Categories(req.Catalog))

	today := e.today()
	committedIDs := make(map[string]struct{}, len(req.Committed))
	for i := range req.Committed {
		committedIDs[req.Committed[i].ID] = struct{}{}
	}

	candidates := make([]models.Event, 0, len(req.Catalog))
	for i := range req.Catalog {
		ev := &req.Catalog[i]
		if !e.onOrAfter(ev, today) {
			continue
		}
		if _, ok := committedIDs[ev.ID]; ok {
			continue
		}
		if e.detector.HasConflict(ev, req.Committed) {
			e.conflicts.Add(1)
			continue
		}
		candidates = append(candidates, *ev)
	}
	e.candidates.Add(int64(len(candidates)))

	e.rank(candidates, under)
	if len(candidates) > e.config.MaxResults {
		candidates = candidates[:e.config.MaxResults]
	}
	if len(candidates) == 0 {
		e.emptyResults.Add(1)
	}

	res := &Result{
		Events:           candidates,
		Reason:           reason(under, len(candidates)),
		Underrepresented: under,
		Distribution:     dist,
		GeneratedAt:      e.now(),
	}

	metrics.RecordRecommendation(reasonLabel(res.Reason), len(res.Events))

	logger.Debug().
		Int("attended", len(attended)).
		Int("underrepresented", len(under)).
		Int("returned", len(res.Events)).
		Msg("recommendations computed")

	return res, nil
}

// GetMetrics returns a snapshot of the engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		Requests:      e.requests.Load(),
		EmptyResults:  e.emptyResults.Load(),
		Candidates:    e.candidates.Load(),
		ConflictsSeen: e.conflicts.Load(),
	}
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() Config {
	return *e.config
}

func (e *Engine) today() time.Time {
	n := e.now().In(e.config.Location)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, e.config.Location)
}

// onOrAfter compares the event's calendar day with today. Events with an
// unparseable date are excluded.
func (e *Engine) onOrAfter(ev *models.Event, today time.Time) bool {
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(ev.Date), e.config.Location)
	if err != nil {
		return false
	}
	return !day.Before(today)
}

// rank orders underrepresented categories first, then by date. The sort is
// stable so equal keys keep catalog order.
func (e *Engine) rank(events []models.Event, under []models.Category) {
	priority := make(map[models.Category]struct{}, len(under))
	for _, c := range under {
		priority[c] = struct{}{}
	}
	sort.SliceStable(events, func(i, j int) bool {
		_, ui := priority[events[i].Category]
		_, uj := priority[events[j].Category]
		if ui != uj {
			return ui
		}
		// YYYY-MM-DD sorts lexically in date order.
		return events[i].Date < events[j].Date
	})
}

func attendedEvents(catalog []models.Event, profile *models.UserProfile) []models.Event {
	if len(profile.AttendedEvents) == 0 {
		return nil
	}
	ids := make(map[string]struct{}, len(profile.AttendedEvents))
	for _, id := range profile.AttendedEvents {
		ids[id] = struct{}{}
	}
	var out []models.Event
	for i := range catalog {
		if _, ok := ids[catalog[i].ID]; ok {
			out = append(out, catalog[i])
		}
	}
	return out
}

func reason(under []models.Category, n int) string {
	switch {
	case len(under) > 0 && n > 0:
		names := make([]string, len(under))
		for i, c := range under {
			names[i] = c.Title()
		}
		return fmt.Sprintf("We recommend balancing your schedule with more %s events!", strings.Join(names, ", "))
	case n > 0:
		return ReasonGeneric
	default:
		return ReasonNoMatches
	}
}

// reasonLabel keeps the metric label set fixed.
func reasonLabel(r string) string {
	switch r {
	case ReasonGeneric:
		return "generic"
	case ReasonNoMatches:
		return "none"
	default:
		return "balance"
	}
}

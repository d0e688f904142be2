// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package audit

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/campusevents/internal/logging"
	"github.com/tomtom215/campusevents/internal/metrics"
)

// Config holds configuration for the audit logger.
type Config struct {
	// Enabled controls whether events are recorded at all.
	Enabled bool

	// Retention is how long events are kept.
	Retention time.Duration

	// CleanupInterval is how often Serve purges expired events.
	CleanupInterval time.Duration

	// BufferSize is the capacity of the write queue.
	BufferSize int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Retention:       90 * 24 * time.Hour,
		CleanupInterval: 24 * time.Hour,
		BufferSize:      1000,
	}
}

// Logger queues audit events and writes them to a Store.
type Logger struct {
	config *Config
	store  Store
	events chan *Event
	now    func() time.Time
}

// NewLogger creates an audit logger. Nothing is written until Serve runs.
func NewLogger(store Store, config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 1000
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 24 * time.Hour
	}
	return &Logger{
		config: config,
		store:  store,
		events: make(chan *Event, config.BufferSize),
		now:    time.Now,
	}
}

// Log queues event. It never blocks: when the queue is full the event is
// dropped and counted.
func (l *Logger) Log(event *Event) {
	if l == nil || !l.config.Enabled {
		return
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now().UTC()
	}

	select {
	case l.events <- event:
	default:
		metrics.AuditEventsDropped.Inc()
		logging.Warn().Str("event_id", event.ID).Str("type", string(event.Type)).Msg("audit buffer full, dropping event")
	}
}

// Serve writes queued events until ctx is canceled, then flushes what is
// left. It also purges events older than the retention period.
func (l *Logger) Serve(ctx context.Context) error {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.flush()
			return ctx.Err()
		case event := <-l.events:
			l.write(ctx, event)
		case <-ticker.C:
			l.cleanup(ctx)
		}
	}
}

// String names the service in supervisor logs.
func (l *Logger) String() string {
	return "audit-writer"
}

func (l *Logger) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case event := <-l.events:
			l.write(ctx, event)
		default:
			return
		}
	}
}

func (l *Logger) write(ctx context.Context, event *Event) {
	if err := l.store.Save(ctx, event); err != nil {
		metrics.AuditEventsDropped.Inc()
		logging.Error().Err(err).Str("event_id", event.ID).Msg("failed to save audit event")
		return
	}
	metrics.AuditEventsWritten.WithLabelValues(string(event.Type)).Inc()
}

func (l *Logger) cleanup(ctx context.Context) {
	if l.config.Retention <= 0 {
		return
	}
	n, err := l.store.Delete(ctx, l.now().Add(-l.config.Retention))
	if err != nil {
		logging.Error().Err(err).Msg("audit cleanup failed")
		return
	}
	if n > 0 {
		logging.Info().Int64("count", n).Msg("expired audit events removed")
	}
}

// Query returns stored events matching filter, newest first.
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	return l.store.Query(ctx, filter)
}

// LogLogin records a login attempt for userID. A non-empty reason marks
// the attempt as rejected.
func (l *Logger) LogLogin(r *http.Request, userID, reason string) {
	event := newRequestEvent(r, EventTypeLoginSuccess, userID)
	if reason != "" {
		event.Type = EventTypeLoginFailure
		event.Outcome = OutcomeFailure
		event.Reason = reason
	}
	l.Log(event)
}

// LogLogout records an explicit logout.
func (l *Logger) LogLogout(r *http.Request, userID string) {
	l.Log(newRequestEvent(r, EventTypeLogout, userID))
}

// LogCheckIn records a check-in attempt. reason is the error code for a
// failed attempt and empty on success.
func (l *Logger) LogCheckIn(r *http.Request, userID, eventID, reason string) {
	event := newRequestEvent(r, EventTypeCheckIn, userID)
	event.TargetID = eventID
	if reason != "" {
		event.Outcome = OutcomeFailure
		event.Reason = reason
	}
	l.Log(event)
}

func newRequestEvent(r *http.Request, typ EventType, actorID string) *Event {
	return &Event{
		Type:      typ,
		Outcome:   OutcomeSuccess,
		ActorID:   actorID,
		Source:    SourceFromRequest(r),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
}

// SourceFromRequest extracts the client address and user agent. RemoteAddr
// has already been rewritten by the RealIP middleware when present.
func SourceFromRequest(r *http.Request) Source {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return Source{IPAddress: ip, UserAgent: r.UserAgent()}
}

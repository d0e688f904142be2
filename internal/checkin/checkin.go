// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package checkin

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/campusevents/internal/auth"
	"github.com/tomtom215/campusevents/internal/catalog"
	"github.com/tomtom215/campusevents/internal/metrics"
	"github.com/tomtom215/campusevents/internal/models"
	"github.com/tomtom215/campusevents/internal/notify"
	"github.com/tomtom215/campusevents/internal/store"
)

// CodePrefix is the QR payload prefix shared by producer and consumer.
const CodePrefix = "event-"

var codePattern = regexp.MustCompile(`^event-(.+)$`)

var (
	ErrInvalidCodeFormat = errors.New("invalid check-in code format")
	ErrEventNotFound     = errors.New("event not found")
	ErrEventNotApproved  = errors.New("event not approved for check-in")
	ErrAlreadyCheckedIn  = errors.New("already checked in")
	ErrProcessing        = errors.New("check-in processing failed")
	ErrNoSession         = errors.New("session is required")
)

var categoryPoints = map[models.Category]int{
	models.CategoryWorkshop: 15,
	models.CategoryAcademic: 20,
	models.CategoryCareer:   15,
	models.CategorySocial:   10,
	models.CategorySports:   10,
}

const defaultPoints = 10

// PointsFor returns the award for checking in to an event of category c.
func PointsFor(c models.Category) int {
	if p, ok := categoryPoints[c]; ok {
		return p
	}
	return defaultPoints
}

// EncodeCode returns the QR payload for an event.
func EncodeCode(eventID string) string {
	return CodePrefix + eventID
}

// ParseCode extracts the event ID from a QR payload.
func ParseCode(code string) (string, error) {
	m := codePattern.FindStringSubmatch(strings.TrimSpace(code))
	if m == nil {
		return "", ErrInvalidCodeFormat
	}
	return m[1], nil
}

// Notifier receives a notification after each successful check-in.
type Notifier interface {
	Add(ctx context.Context, userID string, in notify.Input) (*models.Notification, error)
}

// Outcome describes a successful check-in.
type Outcome struct {
	CheckIn models.CheckIn      `json:"checkIn"`
	Event   models.Event        `json:"event"`
	Profile *models.UserProfile `json:"profile"`
}

// Processor performs check-ins. CheckIn calls are serialized.
type Processor struct {
	mu       sync.Mutex
	repo     *store.Repository
	catalog  catalog.Source
	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

// NewProcessor creates a check-in processor. notifier may be nil.
//
//nolint:gocritic // zerolog.Logger is passed by value by convention
func NewProcessor(repo *store.Repository, source catalog.Source, notifier Notifier, logger zerolog.Logger) *Processor {
	return &Processor{
		repo:     repo,
		catalog:  source,
		notifier: notifier,
		logger:   logger.With().Str("component", "checkin").Logger(),
		now:      time.Now,
	}
}

// SetClock overrides the time source used for check-in timestamps.
func (p *Processor) SetClock(now func() time.Time) {
	p.now = now
}

// CheckIn redeems code for the session's user.
func (p *Processor) CheckIn(ctx context.Context, session *auth.Session, code string) (*Outcome, error) {
	if session == nil || session.UserID == "" {
		return nil, ErrNoSession
	}

	outcome, err := p.checkIn(ctx, session.UserID, code)
	label := outcomeLabel(err)
	points := 0
	if outcome != nil {
		points = outcome.CheckIn.PointsEarned
	}
	metrics.RecordCheckIn(label, points)

	if err != nil {
		ev := p.logger.Debug()
		if errors.Is(err, ErrProcessing) {
			ev = p.logger.Error()
		}
		ev.Err(err).Str("user_id", session.UserID).Str("code", code).Msg("check-in rejected")
		return nil, err
	}

	p.logger.Info().
		Str("user_id", session.UserID).
		Str("event_id", outcome.Event.ID).
		Int("points", points).
		Msg("check-in recorded")

	if p.notifier != nil {
		_, nerr := p.notifier.Add(ctx, session.UserID, notify.Input{
			Title:     "Points Awarded",
			Message:   fmt.Sprintf("You earned %d points for attending %s.", points, outcome.Event.Title),
			ActionURL: "/event/" + outcome.Event.ID,
		})
		if nerr != nil {
			p.logger.Warn().Err(nerr).Str("user_id", session.UserID).Msg("failed to add check-in notification")
		}
	}
	return outcome, nil
}

func (p *Processor) checkIn(ctx context.Context, userID, code string) (*Outcome, error) {
	eventID, err := ParseCode(code)
	if err != nil {
		return nil, err
	}

	event, err := p.catalog.Get(ctx, eventID)
	if errors.Is(err, catalog.ErrEventNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessing, err)
	}
	if !event.IsApproved() {
		return nil, ErrEventNotApproved
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	record := models.CheckIn{
		ID:           uuid.New().String(),
		UserID:       userID,
		EventID:      event.ID,
		Timestamp:    p.now().UTC(),
		PointsEarned: PointsFor(event.Category),
	}
	profile, err := p.repo.RecordCheckIn(ctx, &record)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return nil, ErrAlreadyCheckedIn
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	return &Outcome{CheckIn: record, Event: *event, Profile: profile}, nil
}

// History returns the user's check-ins, oldest first.
func (p *Processor) History(ctx context.Context, userID string) ([]models.CheckIn, error) {
	list, err := p.repo.CheckInsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.CheckIn{}
	}
	return list, nil
}

// Attendees returns the networking list for an event: users checked in to
// it who share their profile.
func (p *Processor) Attendees(ctx context.Context, eventID string) ([]models.NetworkingUser, error) {
	checkIns, err := p.repo.CheckInsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	out := make([]models.NetworkingUser, 0, len(checkIns))
	for i := range checkIns {
		u, err := p.repo.User(ctx, checkIns[i].UserID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !u.ShareProfile {
			continue
		}
		out = append(out, models.NetworkingUser{ID: u.ID, Name: u.Name, Major: u.Major})
	}
	return out, nil
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidCodeFormat):
		return "invalid_code"
	case errors.Is(err, ErrEventNotFound):
		return "not_found"
	case errors.Is(err, ErrEventNotApproved):
		return "not_approved"
	case errors.Is(err, ErrAlreadyCheckedIn):
		return "duplicate"
	default:
		return "error"
	}
}

// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

// Package notify manages per-user notification inboxes.
//
// Notifications are stored newest first under notifications:<userID>. New
// notifications are also handed to an optional Publisher so connected
// clients see them immediately.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/campusevents/internal/metrics"
	"github.com/tomtom215/campusevents/internal/models"
	"github.com/tomtom215/campusevents/internal/store"
)

// MaxPerUser bounds the inbox. Older notifications are dropped on Add.
const MaxPerUser = 100

// ErrNotificationNotFound is returned when an ID is not in the inbox.
var ErrNotificationNotFound = errors.New("notification not found")

// Publisher receives notifications as they are created.
type Publisher interface {
	PublishNotification(userID string, n *models.Notification)
}

// Input is the caller-supplied part of a notification.
type Input struct {
	Title     string `json:"title" validate:"required,max=200"`
	Message   string `json:"message" validate:"required,max=2000"`
	ActionURL string `json:"actionUrl,omitempty"`
}

// Service reads and mutates notification inboxes.
type Service struct {
	repo      *store.Repository
	publisher Publisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService creates a notification service backed by repo.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(repo *store.Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "notify").Logger(),
		now:    time.Now,
	}
}

// SetPublisher installs the live delivery hook.
func (s *Service) SetPublisher(p Publisher) {
	s.publisher = p
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Add prepends a new unread notification to the user's inbox.
func (s *Service) Add(ctx context.Context, userID string, in Input) (*models.Notification, error) {
	n := models.Notification{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Message:   in.Message,
		Read:      false,
		Date:      s.now().UTC(),
		ActionURL: in.ActionURL,
	}

	_, err := s.repo.UpdateNotifications(ctx, userID, func(list []models.Notification) ([]models.Notification, error) {
		next := make([]models.Notification, 0, len(list)+1)
		next = append(next, n)
		next = append(next, list...)
		if len(next) > MaxPerUser {
			next = next[:MaxPerUser]
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.NotificationsCreated.Inc()
	s.logger.Debug().Str("user_id", userID).Str("notification_id", n.ID).Msg("notification added")
	if s.publisher != nil {
		s.publisher.PublishNotification(userID, &n)
	}
	return &n, nil
}

// List returns the inbox, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]models.Notification, error) {
	list, err := s.repo.Notifications(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Notification{}
	}
	return list, nil
}

// UnreadCount returns the number of unread notifications.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	list, err := s.repo.Notifications(ctx, userID)
	if err != nil {
		return 0, err
	}
	return countUnread(list), nil
}

// MarkAsRead marks one notification read.
func (s *Service) MarkAsRead(ctx context.Context, userID, id string) error {
	_, err := s.repo.UpdateNotifications(ctx, userID, func(list []models.Notification) ([]models.Notification, error) {
		for i := range list {
			if list[i].ID == id {
				list[i].Read = true
				return list, nil
			}
		}
		return nil, ErrNotificationNotFound
	})
	return err
}

// MarkAllAsRead marks every notification read and returns how many changed.
func (s *Service) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	changed := 0
	_, err := s.repo.UpdateNotifications(ctx, userID, func(list []models.Notification) ([]models.Notification, error) {
		changed = 0
		for i := range list {
			if !list[i].Read {
				list[i].Read = true
				changed++
			}
		}
		return list, nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

// Clear removes one notification.
func (s *Service) Clear(ctx context.Context, userID, id string) error {
	_, err := s.repo.UpdateNotifications(ctx, userID, func(list []models.Notification) ([]models.Notification, error) {
		for i := range list {
			if list[i].ID == id {
				return append(list[:i], list[i+1:]...), nil
			}
		}
		return nil, ErrNotificationNotFound
	})
	return err
}

func countUnread(list []models.Notification) int {
	n := 0
	for i := range list {
		if !list[i].Read {
			n++
		}
	}
	return n
}

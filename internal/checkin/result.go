// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package checkin

import (
	"errors"

	"github.com/tomtom215/campusevents/internal/models"
)

// User-facing messages.
const (
	MessageSuccess          = "Check-in successful"
	MessageInvalidCode      = "Invalid QR code format"
	MessageEventNotFound    = "Event not found"
	MessageEventNotApproved = "This event has not been approved for check-in"
	MessageAlreadyCheckedIn = "You have already checked in to this event"
	MessageProcessing       = "An error occurred during check-in"
)

// ToResult converts the return values of CheckIn into the result shown to
// the user. Unexpected errors map to a generic message without detail.
func ToResult(outcome *Outcome, err error) models.CheckInResult {
	if err == nil && outcome != nil {
		points := outcome.CheckIn.PointsEarned
		return models.CheckInResult{Success: true, Message: MessageSuccess, PointsEarned: &points}
	}

	msg := MessageProcessing
	switch {
	case errors.Is(err, ErrInvalidCodeFormat):
		msg = MessageInvalidCode
	case errors.Is(err, ErrEventNotFound):
		msg = MessageEventNotFound
	case errors.Is(err, ErrEventNotApproved):
		msg = MessageEventNotApproved
	case errors.Is(err, ErrAlreadyCheckedIn):
		msg = MessageAlreadyCheckedIn
	}
	return models.CheckInResult{Success: false, Message: msg}
}

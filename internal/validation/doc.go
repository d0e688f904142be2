// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator caches struct metadata across calls.
// Field errors are translated into human-readable messages and can be
// converted into the API error envelope with ToAPIError.
//
// # Custom Tags
//
//   - timerange: an event time such as "14:00" or "14:00-16:00"
//   - slug: a lowercase identifier such as "workshop" or "career-fair"
//
// # Usage
//
//	type LoginRequest struct {
//	    UserID string `json:"userId" validate:"required,max=64"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation

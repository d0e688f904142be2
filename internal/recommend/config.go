// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package recommend

import (
	"fmt"
	"time"
)

// Config controls the recommendation engine.
type Config struct {
	// MaxResults caps the number of recommended events.
	MaxResults int `json:"max_results"`

	// Location is the time zone used for "today" and for event dates.
	// Nil means time.Local.
	Location *time.Location `json:"-"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxResults: 3,
		Location:   time.Local,
	}
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.MaxResults < 1 || c.MaxResults > 50 {
		return fmt.Errorf("max_results must be in [1, 50], got %d", c.MaxResults)
	}
	return nil
}

// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateAudit(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAudit() error {
	if c.Audit.Enabled && c.Audit.Retention < time.Hour {
		return fmt.Errorf("AUDIT_RETENTION must be at least 1h, got %v", c.Audit.Retention)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.Environment != "development" && c.Server.Environment != "production" {
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("TIME_ZONE is invalid: %w", err)
	}
	if c.Server.PublicURL != "" {
		if err := validateHTTPURL(c.Server.PublicURL, "PUBLIC_URL"); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY=true")
	}
	if c.Store.GCInterval < time.Minute {
		return fmt.Errorf("STORE_GC_INTERVAL must be at least 1m, got %v", c.Store.GCInterval)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.SimulatedLatency < 0 || c.Catalog.SimulatedLatency > 10*time.Second {
		return fmt.Errorf("CATALOG_LATENCY must be between 0 and 10s, got %v", c.Catalog.SimulatedLatency)
	}
	if c.Catalog.BreakerMaxFailures == 0 {
		return fmt.Errorf("CATALOG_BREAKER_FAILURES must be positive")
	}
	if c.Catalog.BreakerTimeout <= 0 {
		return fmt.Errorf("CATALOG_BREAKER_TIMEOUT must be positive, got %v", c.Catalog.BreakerTimeout)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.MaxResults < 1 || c.Recommend.MaxResults > 50 {
		return fmt.Errorf("RECOMMEND_MAX_RESULTS must be between 1 and 50, got %d", c.Recommend.MaxResults)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if c.Security.SessionTimeout < time.Minute {
		return fmt.Errorf("SESSION_TIMEOUT must be at least 1m, got %v", c.Security.SessionTimeout)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow < time.Second {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s, got %v", c.Security.RateLimitWindow)
		}
	}
	// Wildcard CORS is rejected in production.
	if c.IsProduction() && slices.Contains(c.Security.CORSOrigins, "*") {
		return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package config

import (
	"fmt"
	"time"
)

// Config holds the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Store     StoreConfig     `koanf:"store"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Audit     AuditConfig     `koanf:"audit"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// TimeZone is an IANA zone name, "Local" or "UTC". Event dates and
	// times are interpreted in this zone.
	TimeZone string `koanf:"time_zone"`

	// Environment mode: "development" or "production" (default: "development")
	Environment string `koanf:"environment"`

	// PublicURL is the web client's base URL used in event share links.
	// Empty derives it from each request's host.
	PublicURL string `koanf:"public_url"`
}

// StoreConfig holds key-value store settings.
type StoreConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	SyncWrites bool          `koanf:"sync_writes"`
	Seed       bool          `koanf:"seed"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// CatalogConfig holds event catalog provider settings.
type CatalogConfig struct {
	// SimulatedLatency delays every catalog read. Zero disables it.
	SimulatedLatency time.Duration `koanf:"simulated_latency"`

	// BreakerMaxFailures consecutive failures open the circuit breaker.
	BreakerMaxFailures uint32 `koanf:"breaker_max_failures"`

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	MaxResults int `koanf:"max_results"`
}

// SecurityConfig holds session and request-limiting settings.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// AuditConfig controls the security audit trail.
type AuditConfig struct {
	Enabled   bool          `koanf:"enabled"`
	Retention time.Duration `koanf:"retention"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Location resolves Server.TimeZone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Server.TimeZone {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Server.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.Server.TimeZone, err)
	}
	return loc, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "this_is_a_very_long_secret_key_with_32_plus_characters"

// chdirTemp moves into an empty temp dir so no stray config.yaml is found.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})
	t.Setenv(ConfigPathEnvVar, "")
	return dir
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Store.Path != "/data/campusevents" {
		t.Errorf("Store.Path = %q, want /data/campusevents", cfg.Store.Path)
	}
	if !cfg.Store.Seed {
		t.Error("Store.Seed should be true by default")
	}
	if cfg.Catalog.SimulatedLatency != 0 {
		t.Errorf("Catalog.SimulatedLatency = %v, want 0", cfg.Catalog.SimulatedLatency)
	}
	if cfg.Recommend.MaxResults != 3 {
		t.Errorf("Recommend.MaxResults = %d, want 3", cfg.Recommend.MaxResults)
	}
	if cfg.Security.SessionTimeout != 24*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 24h", cfg.Security.SessionTimeout)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if !cfg.Audit.Enabled || cfg.Audit.Retention != 90*24*time.Hour {
		t.Errorf("Audit = %+v, want enabled with 90 day retention", cfg.Audit)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"TIME_ZONE", "server.time_zone"},
		{"STORE_PATH", "store.path"},
		{"STORE_IN_MEMORY", "store.in_memory"},
		{"CATALOG_LATENCY", "catalog.simulated_latency"},
		{"RECOMMEND_MAX_RESULTS", "recommend.max_results"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"AUDIT_RETENTION", "audit.retention"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := envTransformFunc(tt.input); result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	t.Run("no config file exists", func(t *testing.T) {
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: {}"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(filepath.Join(dir, "config.yaml"))

		if result := findConfigFile(); result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		custom := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(custom, []byte("server: {}"), 0o644); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, custom)

		if result := findConfigFile(); result != custom {
			t.Errorf("findConfigFile() = %q, want %q", result, custom)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	chdirTemp(t)
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORE_IN_MEMORY", "true")
	t.Setenv("CATALOG_LATENCY", "250ms")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if !cfg.Store.InMemory {
		t.Error("Store.InMemory should be true")
	}
	if cfg.Catalog.SimulatedLatency != 250*time.Millisecond {
		t.Errorf("Catalog.SimulatedLatency = %v, want 250ms", cfg.Catalog.SimulatedLatency)
	}
	want := []string{"http://a.example", "http://b.example"}
	if strings.Join(cfg.Security.CORSOrigins, "|") != strings.Join(want, "|") {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}

	// Defaults still apply to unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Recommend.MaxResults != 3 {
		t.Errorf("Recommend.MaxResults = %d, want 3 (default)", cfg.Recommend.MaxResults)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	content := `
server:
  port: 7000
  time_zone: UTC
store:
  path: /tmp/campus-test
recommend:
  max_results: 5
security:
  jwt_secret: ` + testSecret + `
  cors_origins:
    - http://campus.example
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Store.Path != "/tmp/campus-test" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.Recommend.MaxResults != 5 {
		t.Errorf("Recommend.MaxResults = %d, want 5", cfg.Recommend.MaxResults)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "http://campus.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Errorf("Location() = %v, %v; want UTC", loc, err)
	}

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "7100")
		cfg, err := LoadWithKoanf()
		if err != nil {
			t.Fatalf("LoadWithKoanf() error = %v", err)
		}
		if cfg.Server.Port != 7100 {
			t.Errorf("Server.Port = %d, want 7100", cfg.Server.Port)
		}
	})
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing jwt secret",
			env:     map[string]string{},
			wantErr: "JWT_SECRET is required",
		},
		{
			name:    "short jwt secret",
			env:     map[string]string{"JWT_SECRET": "short"},
			wantErr: "at least 32 characters",
		},
		{
			name:    "invalid port",
			env:     map[string]string{"JWT_SECRET": testSecret, "HTTP_PORT": "70000"},
			wantErr: "HTTP_PORT",
		},
		{
			name:    "max results out of range",
			env:     map[string]string{"JWT_SECRET": testSecret, "RECOMMEND_MAX_RESULTS": "0"},
			wantErr: "RECOMMEND_MAX_RESULTS",
		},
		{
			name:    "unknown time zone",
			env:     map[string]string{"JWT_SECRET": testSecret, "TIME_ZONE": "Mars/Olympus"},
			wantErr: "TIME_ZONE",
		},
		{
			name:    "wildcard cors in production",
			env:     map[string]string{"JWT_SECRET": testSecret, "ENVIRONMENT": "production"},
			wantErr: "CORS_ORIGINS",
		},
		{
			name:    "audit retention too short",
			env:     map[string]string{"JWT_SECRET": testSecret, "AUDIT_RETENTION": "10m"},
			wantErr: "AUDIT_RETENTION",
		},
		{
			name:    "public url with path",
			env:     map[string]string{"JWT_SECRET": testSecret, "PUBLIC_URL": "https://events.example.edu/app"},
			wantErr: "PUBLIC_URL",
		},
		{
			name:    "public url without scheme",
			env:     map[string]string{"JWT_SECRET": testSecret, "PUBLIC_URL": "events.example.edu"},
			wantErr: "PUBLIC_URL",
		},
		{
			name:    "bad log format",
			env:     map[string]string{"JWT_SECRET": testSecret, "LOG_FORMAT": "xml"},
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatalf("LoadWithKoanf() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8081
	if got := cfg.Addr(); got != "127.0.0.1:8081" {
		t.Errorf("Addr() = %q", got)
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() should be false by default")
	}
	if loc, err := cfg.Location(); err != nil || loc != time.Local {
		t.Errorf("Location() = %v, %v; want Local", loc, err)
	}
}

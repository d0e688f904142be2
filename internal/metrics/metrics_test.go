// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
	}{
		{name: "list events", method: "GET", endpoint: "/api/events", statusCode: "200"},
		{name: "check-in", method: "POST", endpoint: "/api/checkin", statusCode: "201"},
		{name: "unauthorized", method: "GET", endpoint: "/api/recommendations", statusCode: "401"},
		{name: "rate limited", method: "GET", endpoint: "/api/events", statusCode: "429"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode)
			before := testutil.ToFloat64(counter)

			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, 10*time.Millisecond)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("api_requests_total delta = %v, want 1", got)
			}
		})
	}
}

// TestTrackActiveRequest_RequestLifecycle simulates a realistic request lifecycle
func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	for i := 0; i < 10; i++ {
		TrackActiveRequest(true)
	}
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 10 {
		t.Errorf("active requests = %v, want 10", got)
	}

	for i := 0; i < 10; i++ {
		TrackActiveRequest(false)
	}
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordCheckIn(t *testing.T) {
	tests := []struct {
		name       string
		outcome    string
		points     int
		wantPoints float64
	}{
		{name: "success awards points", outcome: "success", points: 10, wantPoints: 10},
		{name: "duplicate awards nothing", outcome: "duplicate", points: 10, wantPoints: 0},
		{name: "invalid code", outcome: "invalid_code", points: 0, wantPoints: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := CheckInsTotal.WithLabelValues(tt.outcome)
			before := testutil.ToFloat64(counter)
			pointsBefore := testutil.ToFloat64(PointsAwarded)

			RecordCheckIn(tt.outcome, tt.points)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("checkins_total delta = %v, want 1", got)
			}
			if got := testutil.ToFloat64(PointsAwarded) - pointsBefore; got != tt.wantPoints {
				t.Errorf("points delta = %v, want %v", got, tt.wantPoints)
			}
		})
	}
}

func TestRecordRecommendation(t *testing.T) {
	counter := RecommendationsServed.WithLabelValues("balance")
	before := testutil.ToFloat64(counter)

	RecordRecommendation("balance", 3)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("recommendations_served_total delta = %v, want 1", got)
	}
}

func TestRecordCatalogLoad(t *testing.T) {
	before := testutil.ToFloat64(CatalogErrors)

	RecordCatalogLoad(time.Millisecond, nil)
	if got := testutil.ToFloat64(CatalogErrors); got != before {
		t.Errorf("catalog errors changed on success: %v -> %v", before, got)
	}

	RecordCatalogLoad(time.Millisecond, errors.New("unavailable"))
	if got := testutil.ToFloat64(CatalogErrors) - before; got != 1 {
		t.Errorf("catalog errors delta = %v, want 1", got)
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     float64
	}{
		{from: "closed", to: "open", want: 2},
		{from: "open", to: "half-open", want: 1},
		{from: "half-open", to: "closed", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			RecordBreakerTransition("test-breaker", tt.from, tt.to)
			if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")); got != tt.want {
				t.Errorf("state = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestConcurrentMetricRecording verifies helpers are safe under concurrent use
func TestConcurrentMetricRecording(t *testing.T) {
	counter := CheckInsTotal.WithLabelValues("concurrent")
	before := testutil.ToFloat64(counter)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordCheckIn("concurrent", 0)
			RecordAPIRequest("GET", "/api/events", "200", time.Millisecond)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(counter) - before; got != 50 {
		t.Errorf("concurrent delta = %v, want 50", got)
	}
}

// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package supervisor

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
)

// stubService implements suture.Service with controllable failures.
type stubService struct {
	name       string
	startCount atomic.Int32
	stopCount  atomic.Int32
	failCount  atomic.Int32

	mu       sync.Mutex
	maxFails int32
}

func newStubService(name string) *stubService {
	return &stubService{name: name}
}

func (s *stubService) Serve(ctx context.Context) error {
	s.startCount.Add(1)
	defer s.stopCount.Add(1)

	s.mu.Lock()
	maxFails := s.maxFails
	s.mu.Unlock()

	if maxFails > 0 && s.failCount.Add(1) <= maxFails {
		return errors.New("simulated failure")
	}

	<-ctx.Done()
	return ctx.Err()
}

// setFailCount makes the next n calls to Serve fail immediately.
func (s *stubService) setFailCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxFails = int32(n)
}

func (s *stubService) starts() int32 { return s.startCount.Load() }

func (s *stubService) stops() int32 { return s.stopCount.Load() }

func (s *stubService) String() string { return s.name }

// stubHub implements services.ContextHub.
type stubHub struct {
	runs atomic.Int32
}

func (h *stubHub) RunWithContext(ctx context.Context) error {
	h.runs.Add(1)
	<-ctx.Done()
	return nil
}

func (h *stubHub) GetClientCount() int { return 0 }

// stubServer implements services.HTTPServer.
type stubServer struct {
	listens  atomic.Int32
	shutdown atomic.Int32

	once sync.Once
	stop chan struct{}
}

func newStubServer() *stubServer {
	return &stubServer{stop: make(chan struct{})}
}

func (s *stubServer) ListenAndServe() error {
	s.listens.Add(1)
	<-s.stop
	return http.ErrServerClosed
}

func (s *stubServer) Shutdown(context.Context) error {
	s.shutdown.Add(1)
	s.once.Do(func() { close(s.stop) })
	return nil
}

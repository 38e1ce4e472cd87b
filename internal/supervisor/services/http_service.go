// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/tomtom215/folio/internal/logging"
)

const defaultAPIShutdownTimeout = 10 * time.Second

// APIServer is the part of *http.Server the API service drives.
type APIServer interface {
	Serve(l net.Listener) error
	Shutdown(ctx context.Context) error
}

// HTTPServerService serves the recommendation API under the api layer.
//
// Each Serve call binds addr itself, so a restart after a failed bind
// retries the port. Addr reports the bound address, which resolves ":0"
// to the port the kernel picked.
//
//	server := &http.Server{Handler: router.SetupChi()}
//	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))
type HTTPServerService struct {
	server          APIServer
	addr            string
	shutdownTimeout time.Duration

	mu    sync.RWMutex
	bound net.Addr
}

// NewHTTPServerService wraps server. A non-positive timeout defaults to 10s.
func NewHTTPServerService(server APIServer, addr string, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultAPIShutdownTimeout
	}
	return &HTTPServerService{
		server:          server,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
	}
}

// Serve implements suture.Service. Cancellation drains in-flight requests
// for at most shutdownTimeout and returns ctx.Err().
func (s *HTTPServerService) Serve(ctx context.Context) error {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.setBound(ln.Addr())
	defer s.setBound(nil)

	logging.Info().Str("addr", ln.Addr().String()).Msg("API listening")

	served := make(chan error, 1)
	go func() {
		served <- s.server.Serve(ln)
	}()

	select {
	case err := <-served:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return errors.New("api server stopped without shutdown")
		}
		return fmt.Errorf("api server: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api server shutdown: %w", err)
		}
		<-served
		return ctx.Err()
	}
}

// Addr returns the listening address, or "" while not serving.
func (s *HTTPServerService) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bound == nil {
		return ""
	}
	return s.bound.String()
}

func (s *HTTPServerService) setBound(a net.Addr) {
	s.mu.Lock()
	s.bound = a
	s.mu.Unlock()
}

// String identifies the service in supervisor logs.
func (s *HTTPServerService) String() string {
	return "http-server"
}

// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/folio/internal/api"
	"github.com/tomtom215/folio/internal/auth"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/supervisor"
	"github.com/tomtom215/folio/internal/supervisor/services"
	"github.com/tomtom215/folio/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config not yet available; the default logger writes JSON to stderr.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})
	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Folio")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components, err := initRecommend(ctx, cfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommender")
	}

	// The live feed rides on rating events, so it needs the bus.
	var (
		hub      *websocket.Hub
		liveFeed http.Handler
	)
	if components.Bus != nil {
		hub = websocket.NewHub()
		components.Bus.Handle("websocket", hub.HandleRatingAdded)
		liveFeed = websocket.NewUpgradeHandler(hub, cfg.Security.CORSOrigins)
	}

	var jwtManager *auth.JWTManager
	if cfg.Security.AuthMode == "jwt" {
		jwtManager, err = auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create JWT manager")
		}
		logging.Info().Msg("Rating writes require a bearer token")
	}

	handler, err := api.NewHandler(api.Dependencies{
		Engine:   components.Engine,
		Catalog:  components.Catalog,
		Index:    components.Index,
		Ratings:  components.Ratings,
		Activity: components.Activity,
		LiveFeed: liveFeed,
		Auth:     jwtManager,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	server := &http.Server{
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if components.Bus != nil {
		tree.AddMessagingService(services.NewEventRouterService(components.Bus))
		defer func() {
			if err := components.Bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()
		logging.Info().Msg("Event router added to supervisor tree")
	}
	if hub != nil {
		tree.AddMessagingService(services.NewWebSocketHubService(hub))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", cfg.Server.Addr()).Msg("HTTP server service added")

	// Serve returns once ctx is canceled and every service has stopped or
	// exceeded its shutdown timeout.
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Folio stopped")
}

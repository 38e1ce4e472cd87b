// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package supervisor provides process supervision for Folio using suture v4.

The tree separates the long-running services into two layers so a crash in
one does not take down the other:

	RootSupervisor ("folio")
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventRouterService (rating event consumers, if events.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing event consumer is restarted with backoff while the API keeps
serving recommendations. Supervisor events (restarts, backoff, timeouts) are
logged through sutureslog, which writes to the zerolog-backed slog logger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddMessagingService(services.NewEventRouterService(bus))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}
*/
package supervisor

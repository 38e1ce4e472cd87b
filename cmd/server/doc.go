// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package main is the entry point for the Folio server.

Folio recommends books by combining TF-IDF content similarity with Pearson
user similarity, falling back to the most popular books for users without
ratings.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("folio")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── EventRouterService (rating events -> activity projection, live feed)
	│   └── WebSocketHubService (/api/v1/ws rating stream)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (REST API + /metrics)

Startup order:

 1. Configuration (Koanf v2: defaults, config.yaml, environment)
 2. Logging (zerolog)
 3. Catalog: built-in sample or CATALOG_PATH (JSON or YAML)
 4. Content index: TF-IDF vectors and the cosine similarity matrix
 5. Rating store, optionally seeded with demo ratings
 6. Event bus and activity projection (EVENTS_ENABLED)
 7. Recommendation engine, HTTP handlers, chi router
 8. Supervisor tree

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests within SHUTDOWN_TIMEOUT and the event router
closes its handlers.

# Example Usage

	LOG_LEVEL=debug LOG_FORMAT=console ./folio
	CATALOG_PATH=/data/books.yaml SEED_RATINGS=false ./folio
*/
package main

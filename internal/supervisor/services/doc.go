// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package services adapts long-running components to suture.Service so
// the supervisor tree can start, restart and stop them.
//
//   - HTTPServerService: the REST API server (api layer)
//   - EventRouterService: the rating event router (messaging layer)
//   - WebSocketHubService: the live activity feed hub (messaging layer)
package services

// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package auth issues and validates the HS256 bearer tokens that protect
// rating writes when AUTH_MODE=jwt.
//
// A token's subject is a user id. The API accepts a rating only when the
// token subject equals the rating's user_id, so one user cannot rate on
// behalf of another. Read endpoints stay public.
//
//	m, err := auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
//	token, err := m.GenerateToken("user1")
//	claims, err := m.ValidateToken(token)
//
// Tokens are stateless and cannot be revoked before they expire.
package auth

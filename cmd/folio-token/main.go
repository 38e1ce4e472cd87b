// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Command folio-token prints a bearer token for rating writes when the
// server runs with AUTH_MODE=jwt. It reads JWT_SECRET and JWT_TOKEN_TTL
// through the same configuration loader as the server.
//
//	JWT_SECRET=... folio-token -user user1
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tomtom215/folio/internal/auth"
	"github.com/tomtom215/folio/internal/config"
)

func main() {
	var (
		userID string
		ttl    time.Duration
	)
	flag.StringVar(&userID, "user", "", "user id the token may rate as (required)")
	flag.DurationVar(&ttl, "ttl", 0, "token lifetime; defaults to JWT_TOKEN_TTL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := run(os.Stdout, &cfg.Security, userID, ttl); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, sec *config.SecurityConfig, userID string, ttl time.Duration) error {
	if userID == "" {
		return fmt.Errorf("-user is required")
	}
	if ttl <= 0 {
		ttl = sec.TokenTTL
	}
	m, err := auth.NewJWTManager(sec.JWTSecret, ttl)
	if err != nil {
		return err
	}
	token, err := m.GenerateToken(userID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}

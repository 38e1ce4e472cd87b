// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = strings.Repeat("k", MinSecretLen)

func newManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func TestNewJWTManager(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secret  string
		ttl     time.Duration
		wantErr bool
	}{
		{"valid", testSecret, time.Hour, false},
		{"short secret", "short", time.Hour, true},
		{"zero ttl", testSecret, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewJWTManager(tt.secret, tt.ttl)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewJWTManager() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateAndValidate(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	token, err := m.GenerateToken("  user1 ")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID() != "user1" || claims.Issuer != Issuer || claims.ID == "" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := m.GenerateToken(" "); err == nil {
		t.Error("GenerateToken should reject an empty user id")
	}
}

func TestValidateTokenRejects(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	other, _ := NewJWTManager(strings.Repeat("x", MinSecretLen), time.Hour)
	foreign, _ := other.GenerateToken("user1")

	expiredMgr := newManager(t)
	expiredMgr.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _ := expiredMgr.GenerateToken("user1")

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user1", Issuer: Issuer},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	wrongIssuer, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user1",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", expired},
		{"alg none", none},
		{"wrong issuer", wrongIssuer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := m.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def", "abc.def", false},
		{"bearer abc", "abc", false},
		{"", "", true},
		{"Basic dXNlcg==", "", true},
		{"Bearer ", "", true},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("POST", "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		got, err := BearerToken(req)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("BearerToken(%q) = %q, %v", tt.header, got, err)
		}
	}
}

func TestClaimsContext(t *testing.T) {
	t.Parallel()

	if _, ok := ClaimsFromContext(context.Background()); ok {
		t.Error("empty context should carry no claims")
	}
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user2"}}
	got, ok := ClaimsFromContext(ContextWithClaims(context.Background(), claims))
	if !ok || got.UserID() != "user2" {
		t.Errorf("ClaimsFromContext() = %v, %v", got, ok)
	}
}

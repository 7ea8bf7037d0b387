// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

// newTestProvider builds an httpTokenProvider pointed at the test server.
func newTestProvider(t *testing.T, serverURL string) *httpTokenProvider {
	t.Helper()

	p, err := NewTokenProvider(config.ClientAdapter{
		AuthURL:        serverURL,
		Login:          "alice",
		Password:       "secret",
		RequestTimeout: 5 * time.Second,
	}, func() string { return "client-1" }, logger.Nop())
	require.NoError(t, err)

	return p.(*httpTokenProvider)
}

func issueToken(t *testing.T, ttl time.Duration) models.Token {
	t.Helper()
	token, err := utils.GenerateJWTToken("auth", "alice", ttl, "key")
	require.NoError(t, err)
	return token
}

// ── NewTokenProvider ─────────────────────────────────────────────────────────

func TestNewTokenProvider_StaticToken(t *testing.T) {
	p, err := NewTokenProvider(config.ClientAdapter{Token: " static "}, nil, logger.Nop())
	require.NoError(t, err)

	token, err := p.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static", token.SignedString)
}

func TestNewTokenProvider_NoCredentials(t *testing.T) {
	_, err := NewTokenProvider(config.ClientAdapter{AuthURL: "http://auth"}, nil, logger.Nop())
	assert.ErrorIs(t, err, ErrNoCredentials)
}

// ── GetToken ─────────────────────────────────────────────────────────────────

func TestGetToken_FromAuthorizationHeader(t *testing.T) {
	issued := issueToken(t, time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Login)
		assert.Equal(t, "secret", creds.Password)
		assert.Equal(t, "client-1", creds.ClientID)

		w.Header().Set("Authorization", "Bearer "+issued.SignedString)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	token, err := p.GetToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, issued.SignedString, token.SignedString)
	assert.True(t, issued.ExpiresAt.Equal(token.ExpiresAt))
}

func TestGetToken_FromJSONBody(t *testing.T) {
	issued := issueToken(t, time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{Token: issued.SignedString})
	}))
	defer srv.Close()

	token, err := newTestProvider(t, srv.URL).GetToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, issued.SignedString, token.SignedString)
}

func TestGetToken_CachesUntilExpiry(t *testing.T) {
	issued := issueToken(t, time.Hour)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Authorization", "Bearer "+issued.SignedString)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	ctx := context.Background()

	_, err := p.GetToken(ctx)
	require.NoError(t, err)
	_, err = p.GetToken(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())

	// close to expiry the token is acquired again
	p.now = func() time.Time { return issued.ExpiresAt.Add(-10 * time.Second) }
	_, err = p.GetToken(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())

	p.Invalidate()
	_, err = p.GetToken(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

func TestGetToken_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad credentials"))
	}))
	defer srv.Close()

	_, err := newTestProvider(t, srv.URL).GetToken(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetToken_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := newTestProvider(t, srv.URL).GetToken(context.Background())
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestGetToken_BadGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestProvider(t, srv.URL).GetToken(context.Background())
	assert.ErrorIs(t, err, ErrBadGateway)
}

// ── NetworkProbe ─────────────────────────────────────────────────────────────

func TestNetworkProbe_Reachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	probe := NewNetworkProbe(srv.URL, time.Second, logger.Nop())
	assert.True(t, probe.Reachable(context.Background()))
}

func TestNetworkProbe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	probe := NewNetworkProbe(url, time.Second, logger.Nop())
	assert.False(t, probe.Reachable(context.Background()))
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"with path", "https://auth.example.com/api/login", "https://auth.example.com/api/login", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

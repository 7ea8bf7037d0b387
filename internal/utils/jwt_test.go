package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("sync-server", "client-1", time.Hour, "secret-key")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 2*time.Second)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(token.SignedString, claims, func(*jwt.Token) (any, error) {
		return []byte("secret-key"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "sync-server", claims.Issuer)
	assert.Equal(t, "client-1", claims.Subject)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{name: "empty issuer", issuer: "", duration: time.Hour, key: "key"},
		{name: "zero duration", issuer: "iss", duration: 0, key: "key"},
		{name: "empty key", issuer: "iss", duration: time.Hour, key: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, "sub", tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestParseToken_ReadsExpiry(t *testing.T) {
	issued, err := GenerateJWTToken("iss", "client-1", 30*time.Minute, "key")
	require.NoError(t, err)

	parsed, err := ParseToken(issued.SignedString)
	require.NoError(t, err)
	assert.Equal(t, issued.SignedString, parsed.SignedString)
	assert.True(t, issued.ExpiresAt.Equal(parsed.ExpiresAt))
}

func TestParseToken_WithoutExpiry(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"}).
		SignedString([]byte("key"))
	require.NoError(t, err)

	parsed, err := ParseToken(signed)
	require.NoError(t, err)
	assert.True(t, parsed.ExpiresAt.IsZero())
}

func TestParseToken_Malformed(t *testing.T) {
	_, err := ParseToken("not-a-jwt")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc", want: "abc"},
		{name: "lower case scheme", header: "bearer abc", want: "abc"},
		{name: "padded", header: "  Bearer abc  ", want: "abc"},
		{name: "missing token", header: "Bearer", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "empty", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

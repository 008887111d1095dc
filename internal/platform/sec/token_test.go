// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modonevolutio/modon/internal/platform/sec"
)

func testSecrets() sec.StaticSecrets {
	return sec.StaticSecrets{
		Access:  []byte("access-secret-for-tests"),
		Refresh: []byte("refresh-secret-for-tests"),
	}
}

/*
TestTokenService_AccessRoundTrip verifies that a freshly issued access token
verifies back to the same claims, with all server-added fields present and
well-formed.
*/
func TestTokenService_AccessRoundTrip(t *testing.T) {
	service := sec.NewTokenService(testSecrets())

	perms := sec.PermissionsForRole(sec.RoleAdmin)
	token, err := service.IssueAccessToken("user-1", "staff@modonevolutio.com", sec.RoleAdmin, perms)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "staff@modonevolutio.com", claims.Email)
	assert.Equal(t, sec.RoleAdmin, claims.Role)
	assert.Equal(t, perms, claims.Permissions)

	// Server-added fields must be present and well-formed.
	assert.Equal(t, sec.TokenIssuer, claims.Issuer)
	assert.Equal(t, sec.TokenAudience, claims.Audience)
	assert.NotEmpty(t, claims.TokenID)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
	assert.InDelta(t, time.Now().Add(sec.AccessTokenTTL).Unix(), claims.ExpiresAt, 5)
}

/*
TestTokenService_RefreshRoundTrip verifies refresh token issuance, including
the remember-me lifetime extension.
*/
func TestTokenService_RefreshRoundTrip(t *testing.T) {
	service := sec.NewTokenService(testSecrets())

	t.Run("default_lifetime", func(t *testing.T) {
		token, err := service.IssueRefreshToken("user-1", false)
		require.NoError(t, err)

		claims, err := service.VerifyRefreshToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.InDelta(t, time.Now().Add(sec.RefreshTokenTTL).Unix(), claims.ExpiresAt, 5)
	})

	t.Run("remember_me_lifetime", func(t *testing.T) {
		token, err := service.IssueRefreshToken("user-1", true)
		require.NoError(t, err)

		claims, err := service.VerifyRefreshToken(token)
		require.NoError(t, err)
		assert.InDelta(t, time.Now().Add(sec.RememberMeRefreshTokenTTL).Unix(), claims.ExpiresAt, 5)
	})

	t.Run("fresh_token_id_per_issue", func(t *testing.T) {
		first, err := service.IssueRefreshToken("user-1", false)
		require.NoError(t, err)
		second, err := service.IssueRefreshToken("user-1", false)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

/*
TestTokenService_TamperDetection flips every single character of the payload
and signature segments of a valid token and requires rejection each time.
*/
func TestTokenService_TamperDetection(t *testing.T) {
	service := sec.NewTokenService(testSecrets())

	token, err := service.IssueAccessToken("user-1", "staff@modonevolutio.com", sec.RoleAdmin, nil)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payloadStart := len(parts[0]) + 1

	for i := payloadStart; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		tampered := flipChar(token, i)
		_, err := service.VerifyAccessToken(tampered)
		assert.ErrorIs(t, err, sec.ErrInvalidToken, "tampered position %d must be rejected", i)
	}
}

/*
TestTokenService_ExpiryBoundary verifies the boundary is exp > now, not >=.
*/
func TestTokenService_ExpiryBoundary(t *testing.T) {
	secrets := testSecrets()
	service := sec.NewTokenService(secrets)
	now := time.Now().Unix()

	encode := func(exp int64) string {
		token, err := sec.EncodeToken(sec.AccessClaims{
			UserID:    "user-1",
			Email:     "staff@modonevolutio.com",
			Role:      sec.RoleAdmin,
			IssuedAt:  now - 60,
			ExpiresAt: exp,
			Issuer:    sec.TokenIssuer,
			Audience:  sec.TokenAudience,
			TokenID:   "boundary-test",
		}, secrets.Access)
		require.NoError(t, err)
		return token
	}

	t.Run("expired_one_second_ago", func(t *testing.T) {
		_, err := service.VerifyAccessToken(encode(now - 1))
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("expiring_exactly_now", func(t *testing.T) {
		_, err := service.VerifyAccessToken(encode(now))
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("expiring_in_the_future", func(t *testing.T) {
		claims, err := service.VerifyAccessToken(encode(now + 60))
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
	})
}

/*
TestTokenService_RejectsForeignClaims verifies issuer/audience/type checks
and the strict separation of the two token kinds.
*/
func TestTokenService_RejectsForeignClaims(t *testing.T) {
	secrets := testSecrets()
	service := sec.NewTokenService(secrets)
	exp := time.Now().Add(time.Hour).Unix()

	t.Run("wrong_issuer", func(t *testing.T) {
		token, err := sec.EncodeToken(sec.AccessClaims{
			UserID: "user-1", Role: sec.RoleAdmin,
			IssuedAt: time.Now().Unix(), ExpiresAt: exp,
			Issuer: "someone-else", Audience: sec.TokenAudience, TokenID: "x",
		}, secrets.Access)
		require.NoError(t, err)

		_, err = service.VerifyAccessToken(token)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("wrong_audience", func(t *testing.T) {
		token, err := sec.EncodeToken(sec.AccessClaims{
			UserID: "user-1", Role: sec.RoleAdmin,
			IssuedAt: time.Now().Unix(), ExpiresAt: exp,
			Issuer: sec.TokenIssuer, Audience: "other-app", TokenID: "x",
		}, secrets.Access)
		require.NoError(t, err)

		_, err = service.VerifyAccessToken(token)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("refresh_token_rejected_as_access_token", func(t *testing.T) {
		refresh, err := service.IssueRefreshToken("user-1", false)
		require.NoError(t, err)

		_, err = service.VerifyAccessToken(refresh)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("access_token_rejected_as_refresh_token", func(t *testing.T) {
		access, err := service.IssueAccessToken("user-1", "staff@modonevolutio.com", sec.RoleAdmin, nil)
		require.NoError(t, err)

		_, err = service.VerifyRefreshToken(access)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})
}

/*
TestTokenService_MalformedTokens verifies that structurally broken tokens
fail closed with the same merged rejection.
*/
func TestTokenService_MalformedTokens(t *testing.T) {
	service := sec.NewTokenService(testSecrets())

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one_segment", "abc"},
		{"two_segments", "abc.def"},
		{"four_segments", "a.b.c.d"},
		{"invalid_base64", "!!!.???.###"},
		{"garbage", "not a token at all"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyAccessToken(tt.token)
			assert.ErrorIs(t, err, sec.ErrInvalidToken)

			_, err = service.VerifyRefreshToken(tt.token)
			assert.ErrorIs(t, err, sec.ErrInvalidToken)
		})
	}
}

/*
TestTokenService_MissingSecret verifies that an unconfigured secret fails the
individual call with a distinct error rather than a merged token rejection.
*/
func TestTokenService_MissingSecret(t *testing.T) {
	service := sec.NewTokenService(sec.StaticSecrets{})

	_, err := service.IssueAccessToken("user-1", "staff@modonevolutio.com", sec.RoleAdmin, nil)
	assert.ErrorIs(t, err, sec.ErrMissingAccessSecret)

	_, err = service.VerifyAccessToken("a.b.c")
	assert.ErrorIs(t, err, sec.ErrMissingAccessSecret)

	_, err = service.IssueRefreshToken("user-1", false)
	assert.ErrorIs(t, err, sec.ErrMissingRefreshSecret)
}

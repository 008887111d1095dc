// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modonevolutio/modon/internal/platform/constants"
	"github.com/modonevolutio/modon/internal/platform/sec"
	"github.com/modonevolutio/modon/internal/users/auth"
)

// # Cookie Contract

func findCookie(t *testing.T, response *http.Response, name string) *http.Cookie {
	t.Helper()

	for _, cookie := range response.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func loginRequestBody(rememberMe bool) *strings.Reader {
	body := `{"email":"omar@modonevolutio.com","password":"correct horse","remember_me":false}`
	if rememberMe {
		body = strings.Replace(body, "false", "true", 1)
	}
	return strings.NewReader(body)
}

/*
TestHandler_SessionCookies verifies the cookie attributes on login and that a
remember-me session keeps its long refresh cookie across rotation.
*/
func TestHandler_SessionCookies(t *testing.T) {
	user := testUser(t, "omar@modonevolutio.com", "correct horse", sec.RoleAdmin, true)
	service, _, _ := newTestService(t, user)
	handler := auth.NewHandler(service, false)
	router := handler.Routes()

	login := func(t *testing.T, rememberMe bool) *http.Response {
		t.Helper()

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/login", loginRequestBody(rememberMe))
		router.ServeHTTP(recorder, request)
		require.Equal(t, http.StatusOK, recorder.Code)
		return recorder.Result()
	}

	refresh := func(t *testing.T, refreshCookie *http.Cookie) *http.Response {
		t.Helper()

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		request.AddCookie(refreshCookie)
		router.ServeHTTP(recorder, request)
		require.Equal(t, http.StatusOK, recorder.Code)
		return recorder.Result()
	}

	t.Run("login_sets_both_cookies", func(t *testing.T) {
		response := login(t, false)

		access := findCookie(t, response, constants.AccessTokenCookieName)
		assert.Equal(t, "/", access.Path)
		assert.True(t, access.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, access.SameSite)
		assert.Equal(t, int(sec.AccessTokenTTL/time.Second), access.MaxAge)

		rt := findCookie(t, response, constants.RefreshTokenCookieName)
		assert.Equal(t, constants.RefreshTokenCookiePath, rt.Path)
		assert.True(t, rt.HttpOnly)
		assert.Equal(t, int(sec.RefreshTokenTTL/time.Second), rt.MaxAge)
	})

	t.Run("remember_me_extends_refresh_cookie", func(t *testing.T) {
		response := login(t, true)

		rt := findCookie(t, response, constants.RefreshTokenCookieName)
		assert.Equal(t, int(sec.RememberMeRefreshTokenTTL/time.Second), rt.MaxAge)
	})

	t.Run("rotation_keeps_remember_me_cookie_lifetime", func(t *testing.T) {
		loginResponse := login(t, true)
		loginCookie := findCookie(t, loginResponse, constants.RefreshTokenCookieName)

		rotated := refresh(t, loginCookie)

		// The rotated token is still valid for 30 days; the cookie carrying
		// it must not fall back to the 7-day default.
		rotatedCookie := findCookie(t, rotated, constants.RefreshTokenCookieName)
		assert.Equal(t, int(sec.RememberMeRefreshTokenTTL/time.Second), rotatedCookie.MaxAge)
		assert.NotEqual(t, loginCookie.Value, rotatedCookie.Value)
	})

	t.Run("rotation_keeps_short_cookie_without_remember_me", func(t *testing.T) {
		loginResponse := login(t, false)
		loginCookie := findCookie(t, loginResponse, constants.RefreshTokenCookieName)

		rotated := refresh(t, loginCookie)

		rotatedCookie := findCookie(t, rotated, constants.RefreshTokenCookieName)
		assert.Equal(t, int(sec.RefreshTokenTTL/time.Second), rotatedCookie.MaxAge)
	})
}

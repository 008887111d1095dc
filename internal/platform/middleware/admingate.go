// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/modonevolutio/modon/internal/platform/constants"
	"github.com/modonevolutio/modon/internal/platform/ctxutil"
)

// AdminGate protects the locale-prefixed back-office pages (/en/admin,
// /ar/admin and every nested sub-path).
//
// # Decision Table
//
//  1. Not an admin-prefixed path: pass through untouched.
//  2. No access cookie: redirect to the locale's login page.
//  3. Cookie present but verification fails: redirect and clear the stale
//     cookie, otherwise a poisoned cookie loops the browser forever.
//  4. Verified but role is not back-office: redirect, indistinguishable from
//     the unauthenticated case so the response leaks nothing.
//  5. Verified and authorized: inject claims and continue.
func AdminGate(verifier TokenVerifier, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			locale, isAdminPath := adminPathLocale(request.URL.Path)
			if !isAdminPath {
				next.ServeHTTP(writer, request)
				return
			}

			loginURL := "/" + locale + "/login"

			cookie, err := request.Cookie(constants.AccessTokenCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(writer, request, loginURL, http.StatusTemporaryRedirect)
				return
			}

			claims, err := verifier.VerifyAccessToken(cookie.Value)
			if err != nil {
				clearAccessCookie(writer, secureCookies)
				http.Redirect(writer, request, loginURL, http.StatusTemporaryRedirect)
				return
			}

			if !claims.Role.IsBackOffice() {
				logger := ctxutil.GetLogger(request.Context())
				logger.WarnContext(request.Context(), "admin_gate_role_denied",
					slog.String("user_id", claims.UserID),
					slog.String("role", string(claims.Role)),
					slog.String("path", request.URL.Path),
				)
				http.Redirect(writer, request, loginURL, http.StatusTemporaryRedirect)
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			ctx = ctxutil.WithLocale(ctx, locale)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// adminPathLocale reports whether path is under a locale-prefixed admin
// section and which locale it belongs to.
func adminPathLocale(path string) (string, bool) {
	for _, locale := range constants.SupportedLocales {
		prefix := "/" + locale + "/admin"
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return locale, true
		}
	}
	return "", false
}

// clearAccessCookie expires the access token cookie on the client.
func clearAccessCookie(writer http.ResponseWriter, secure bool) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

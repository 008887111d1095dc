// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package api

import (
	"net/http"

	"github.com/modonevolutio/modon/internal/platform/ctxutil"
	"github.com/modonevolutio/modon/internal/platform/respond"
)

// adminShellHandler serves the gated back-office entry point. The admin gate
// has already verified the access cookie and injected claims and locale, so
// this handler only reports the resolved session for the shell bootstrap.
func adminShellHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())

		respond.OK(writer, map[string]any{
			"locale": ctxutil.GetLocale(request.Context()),
			"user": map[string]any{
				"id":    claims.UserID,
				"email": claims.Email,
				"role":  claims.Role,
			},
		})
	})
}

// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/modonevolutio/modon/internal/platform/constants"
	"github.com/modonevolutio/modon/internal/platform/ctxutil"
	"github.com/modonevolutio/modon/internal/platform/obs"
)

// csrfRejectionMessage is the generic client-facing rejection body. The
// allow-list contents are logged server-side only.
const csrfRejectionMessage = "Invalid origin. CSRF protection triggered."

// developmentOrigins is the hardcoded fallback allow-list used when no
// origins are configured in development mode.
var developmentOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
	"http://127.0.0.1:3000",
}

// CSRFGuardConfig defines the behavior needed by the CSRF guard.
type CSRFGuardConfig interface {
	IsDevelopment() bool
	OriginAllowList() []string
}

// CSRFGuard rejects state-changing requests whose claimed browser origin does
// not match the configured allow-list.
//
// # Validation Order
//
// Origin header exact match after protocol stripping, then Referer header
// substring containment, then Host header exact match. The first match wins.
// If none match, the request is rejected with HTTP 403.
//
// # Fail Closed
//
// In production an empty allow-list rejects every request. Only development
// falls back to the hardcoded localhost origins.
func CSRFGuard(cfg CSRFGuardConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if validateOrigin(cfg, request) {
				next.ServeHTTP(writer, request)
				return
			}

			obs.CountRejection("csrf")

			logger := ctxutil.GetLogger(request.Context())
			logger.WarnContext(request.Context(), "csrf_rejected",
				slog.String("origin", request.Header.Get(constants.HeaderOrigin)),
				slog.String("referer", request.Header.Get(constants.HeaderReferer)),
				slog.String("host", request.Host),
				slog.Any("allow_list", effectiveAllowList(cfg)),
			)

			writer.Header().Set("Content-Type", "application/json; charset=utf-8")
			writer.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(writer).Encode(map[string]any{
				constants.FieldSuccess: false,
				constants.FieldError:   csrfRejectionMessage,
			})
		})
	}
}

// validateOrigin reports whether the request's claimed origin is on the
// allow-list.
func validateOrigin(cfg CSRFGuardConfig, request *http.Request) bool {
	allowed := effectiveAllowList(cfg)
	if len(allowed) == 0 {
		// Fail closed: no configured origins means nothing is trusted.
		return false
	}

	// 1. Origin header, exact match with protocols stripped on both sides.
	if origin := request.Header.Get(constants.HeaderOrigin); origin != "" {
		for _, candidate := range allowed {
			if stripProtocol(origin) == stripProtocol(candidate) {
				return true
			}
		}
	}

	// 2. Referer header, substring containment.
	if referer := request.Header.Get(constants.HeaderReferer); referer != "" {
		for _, candidate := range allowed {
			if strings.Contains(referer, stripProtocol(candidate)) {
				return true
			}
		}
	}

	// 3. Host header, exact match against the allow-list's host parts.
	if host := request.Host; host != "" {
		for _, candidate := range allowed {
			if host == stripProtocol(candidate) {
				return true
			}
		}
	}

	return false
}

// effectiveAllowList resolves the configured origins, applying the
// development-only localhost fallback.
func effectiveAllowList(cfg CSRFGuardConfig) []string {
	if origins := cfg.OriginAllowList(); len(origins) > 0 {
		return origins
	}
	if cfg.IsDevelopment() {
		return developmentOrigins
	}
	return nil
}

// stripProtocol removes the scheme prefix from an origin or URL.
func stripProtocol(origin string) string {
	origin = strings.TrimPrefix(origin, "https://")
	origin = strings.TrimPrefix(origin, "http://")
	return origin
}

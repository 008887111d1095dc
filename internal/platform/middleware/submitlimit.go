// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/modonevolutio/modon/internal/platform/constants"
	"github.com/modonevolutio/modon/internal/platform/ctxutil"
	"github.com/modonevolutio/modon/internal/platform/obs"
	"github.com/modonevolutio/modon/internal/platform/ratelimit"
)

// SubmitLimit applies a fixed-window rate limit to a public mutation endpoint,
// keyed by the client identifier derived from proxy headers.
//
// This is distinct from the global token-bucket [RateLimit]: the global
// limiter caps overall throughput per IP, while SubmitLimit enforces a strict
// small budget (for example five lead submissions per minute) on endpoints
// that anonymous visitors can hit.
//
// Rejections answer HTTP 429 with a Retry-After header and a JSON body
// carrying the limiter's retry hint.
func SubmitLimit(limiter *ratelimit.Limiter, maxRequests int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identifier := ratelimit.ClientIdentifier(request)

			result := limiter.Check(identifier, maxRequests, window)
			if result.Allowed {
				next.ServeHTTP(writer, request)
				return
			}

			obs.CountRejection("rate_limit")

			logger := ctxutil.GetLogger(request.Context())
			logger.WarnContext(request.Context(), "submit_rate_limited",
				slog.String("identifier", identifier),
				slog.String("path", request.URL.Path),
				slog.Time("reset_at", result.ResetAt),
			)

			retryAfter := int(time.Until(result.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}

			writer.Header().Set("Content-Type", "application/json; charset=utf-8")
			writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
			writer.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(writer).Encode(map[string]any{
				constants.FieldSuccess: false,
				constants.FieldError:   result.Message,
			})
		})
	}
}

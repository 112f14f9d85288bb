package middleware

import (
	"errors"
	"net/http"

	"github.com/poofware/equity-registry/internal/services"
	"github.com/poofware/equity-registry/internal/utils"
)

// RateLimit enforces the per-identity mutation limit for one named
// operation. Apply after CallerIdentity.
func RateLimit(limiter services.RateLimiterService, operation string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := CallerFromContext(r.Context())
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
					"Missing caller identity", nil,
				)
				return
			}
			if err := limiter.Check(string(identity), operation); err != nil {
				if errors.Is(err, utils.ErrRateLimitExceeded) {
					utils.RespondErrorWithCode(
						w, http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded,
						"Too many requests; slow down", nil, err,
					)
					return
				}
				utils.RespondErrorWithCode(
					w, http.StatusInternalServerError, utils.ErrCodeInternal,
					"Rate limiter failure", nil, err,
				)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

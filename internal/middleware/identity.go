package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/poofware/equity-registry/internal/models"
	"github.com/poofware/equity-registry/internal/utils"
)

// ctxKey is unexported to prevent collisions.
type ctxKey string

const ctxKeyCallerIdentity ctxKey = "callerIdentity"

// CallerIdentityHeader carries the opaque principal of the caller.
// Verifying it is the gateway's job; the registry only compares it for
// equality against account owner identities.
const CallerIdentityHeader = "X-Caller-Identity"

// CallerIdentity extracts the caller identity header into the request
// context. Requests without one get 401.
func CallerIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(CallerIdentityHeader))
		if raw == "" {
			utils.RespondErrorWithCode(
				w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Missing "+CallerIdentityHeader+" header", nil,
			)
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyCallerIdentity, models.Identity(raw))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFromContext returns the identity stored by CallerIdentity.
func CallerFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(ctxKeyCallerIdentity).(models.Identity)
	return identity, ok
}

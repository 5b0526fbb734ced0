package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/lookingup/lookingup-api/internal/domain"
	"github.com/lookingup/lookingup-api/internal/pkg/httputil"
	"github.com/lookingup/lookingup-api/internal/pkg/logger"
	"github.com/lookingup/lookingup-api/internal/service/auth"
)

// APIKeyHeader is the dedicated header carrying the caller's credential.
const APIKeyHeader = "X-API-Key"

type contextKey string

const authContextKey contextKey = "auth_context"

// AuthContextFrom returns the authorization context resolved by the API key
// middleware, or nil for unauthenticated requests.
func AuthContextFrom(ctx context.Context) *domain.AuthContext {
	ac, _ := ctx.Value(authContextKey).(*domain.AuthContext)
	return ac
}

// RequireAPIKey authenticates the X-API-Key header and stores the resolved
// context for downstream handlers. Rejection and store failure map to
// different status codes so clients know whether a retry can help.
func RequireAPIKey(authSvc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawKey := r.Header.Get(APIKeyHeader)
			if rawKey == "" {
				httputil.Unauthorized(w, "missing "+APIKeyHeader+" header")
				return
			}

			ac, err := authSvc.Authenticate(r.Context(), rawKey)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrInvalidCredential):
					httputil.Unauthorized(w, "Invalid API key")
				case errors.Is(err, auth.ErrNoSubscription):
					httputil.Forbidden(w, "No active subscription")
				case errors.Is(err, auth.ErrPlanNotAllowed):
					httputil.Forbidden(w, "API access requires Pro plan")
				case errors.Is(err, auth.ErrSubscriptionInactive):
					httputil.Forbidden(w, "Subscription not active")
				case errors.Is(err, auth.ErrStoreUnavailable):
					logger.Error("auth store unavailable", "error", err)
					httputil.Error(w, http.StatusInternalServerError, "service temporarily unavailable", "store_unavailable")
				default:
					httputil.InternalError(w, err)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authContextKey, ac)))
		})
	}
}

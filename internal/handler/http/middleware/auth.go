package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/auth"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/handler/http/response"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified token whose "type" claim
// is one of allowedTypes. With no allowedTypes only access tokens pass.
// It must run after jwtauth.Verifier.
func AuthRequired(allowedTypes ...string) func(http.Handler) http.Handler {
	if len(allowedTypes) == 0 {
		allowedTypes = []string{jwt.TokenTypeAccess}
	}

	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			for _, allowed := range allowedTypes {
				if tokenType == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "Token type not allowed for this resource")
		}
		return http.HandlerFunc(hfn)
	}
}

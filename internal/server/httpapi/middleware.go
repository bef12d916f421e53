package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/neverlost-dev/neverlost-api/internal/common"
	"github.com/neverlost-dev/neverlost-api/internal/server/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the decoded caller identity attached to the request context by
// the authentication gate.
type Identity struct {
	UserID string
	Email  string
}

// authenticate extracts and verifies the bearer token from the Authorization
// header. A missing token is rejected without touching the codec. Verify
// failures stay distinguishable in the log but all map to 401.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			errorJSON(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			s.logger.Warn(r.Context(), "token rejected", "reason", err.Error())
			switch {
			case errors.Is(err, common.ErrTokenExpired):
				errorJSON(w, http.StatusUnauthorized, "Token expired. Please log in again.")
			case errors.Is(err, common.ErrTokenMalformed), errors.Is(err, common.ErrTokenInvalid):
				errorJSON(w, http.StatusUnauthorized, "Invalid token. Please log in again.")
			default:
				errorJSON(w, http.StatusUnauthorized, "Authentication failed.")
			}
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withRequestTimeout bounds every request, and through it the in-flight
// store call, with the configured deadline.
func (s *Server) withRequestTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.requestTimeout <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

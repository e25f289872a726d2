package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/okunev/chatlite/internal/server/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// requireIdentity verifies the Bearer session token and stores the verified
// identity on the request context. Write endpoints take the sender identity
// from here, never from the request body.
func (s *HTTPServer) requireIdentity(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		identity, err := s.sessions.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx))
	})
}

func identityFromContext(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(identityKey).(*auth.Identity)
	return identity
}

package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"streamhaven/internal/auth"
	"streamhaven/models"
)

// GetAccountID re-exports the auth helper so handlers only import api.
var GetAccountID = auth.GetAccountID

// TokenValidator is the slice of the token manager the middleware needs.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// AccountAuthMiddleware validates bearer tokens and injects the session into
// the request context. Tokens can be provided via the Authorization header or
// a ?token= query param.
func AccountAuthMiddleware(tokens TokenValidator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Always allow OPTIONS for CORS
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if tokens == nil {
				writeAuthError(w, http.StatusInternalServerError, "token validation unavailable")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			session := models.Session{ID: claims.AccountID, Email: claims.Email, Username: claims.Username}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// extractToken pulls the session token from the Authorization header, falling
// back to a query parameter for embeds that cannot set headers.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}
	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token
	}
	return ""
}

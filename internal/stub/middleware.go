package stub

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const customerIDKey contextKey = "customer_id"

// bearerAuth validates the access token and attaches the customer ID to the
// request context.
func bearerAuth(jwtService *JWTService, store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
				respondDetail(w, http.StatusUnauthorized, "Invalid authorization header.")
				return
			}

			claims, err := jwtService.VerifyToken(strings.TrimSpace(parts[1]))
			if err != nil {
				respondDetail(w, http.StatusUnauthorized, "Given token not valid for any token type")
				return
			}

			if _, ok := store.customerByID(claims.CustomerID); !ok {
				respondDetail(w, http.StatusUnauthorized, "User not found")
				return
			}

			ctx := context.WithValue(r.Context(), customerIDKey, claims.CustomerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// customerID extracts the authenticated customer from the request context.
func customerID(ctx context.Context) int {
	id, _ := ctx.Value(customerIDKey).(int)
	return id
}

package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal identifies the admin that authenticated the request.
type Principal struct {
	Name string
}

// AdminAuth checks "Authorization: Bearer <key>" against keys (name -> key)
// in constant time and places the matching Principal in the context.
func AdminAuth(keys map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				unauthorized(w, "missing Authorization header")
				return
			}
			scheme, key, found := strings.Cut(auth, " ")
			key = strings.TrimSpace(key)
			if !found || !strings.EqualFold(scheme, "Bearer") || key == "" {
				unauthorized(w, "invalid Authorization header format")
				return
			}

			name, ok := match(keys, key)
			if !ok {
				unauthorized(w, "invalid API key")
				return
			}

			ctx := WithPrincipal(r.Context(), Principal{Name: name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// match compares against every key so timing does not reveal which one failed.
func match(keys map[string]string, presented string) (string, bool) {
	var found string
	ok := false
	for name, key := range keys {
		if key == "" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) == 1 {
			found, ok = name, true
		}
	}
	return found, ok
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the authenticated admin, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

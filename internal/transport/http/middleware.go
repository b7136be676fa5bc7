package http

import (
	"context"
	"net/http"
	"strings"

	"netspeed-monitor/internal/pkg"
)

type contextKey string

const SubjectKey contextKey = "subject"

// JWT requires a valid bearer token when secret is set and passes every
// request through otherwise. Browsers cannot set headers on websocket
// upgrades, so the token may also come in the access_token query parameter.
func JWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				token = r.URL.Query().Get("access_token")
			}

			if token == "" {
				http.Error(w, "Unauthorized: No token found", http.StatusUnauthorized)
				return
			}

			claims, err := pkg.ValidateToken(token, secret)
			if err != nil {
				http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, claims["sub"])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSubject(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(SubjectKey).(string)
	return sub, ok
}

package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const adminKeyHeader = "X-Admin-Key"

// RequireAdminKey guards operational endpoints with a shared key. Only the
// bcrypt hash of the key is held in configuration; an empty hash disables
// the guarded endpoints entirely.
func RequireAdminKey(keyHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if keyHash == "" {
				logger.WarnContext(ctx, "admin endpoint disabled, no key hash configured",
					"request_id", GetRequestID(ctx),
				)
				w.WriteHeader(http.StatusNotFound)
				return
			}

			key := r.Header.Get(adminKeyHeader)
			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				logger.WarnContext(ctx, "admin key rejected",
					"request_id", GetRequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

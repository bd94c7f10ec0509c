package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// JWTValidator defines the interface for validating visitor tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	UserID    string
	SessionID string
}

// Context keys for storing the authenticated visitor identity.
type contextKeyVisitorID struct{}
type contextKeySessionID struct{}

var (
	ContextKeyVisitorID = contextKeyVisitorID{}
	ContextKeySessionID = contextKeySessionID{}
)

// GetVisitorID retrieves the authenticated visitor's user ID from the
// context. Empty string means the request is anonymous.
func GetVisitorID(ctx context.Context) string {
	visitorID, ok := ctx.Value(ContextKeyVisitorID).(string)
	if !ok {
		return ""
	}
	return visitorID
}

// GetSessionID retrieves the visitor's session ID from the context.
func GetSessionID(ctx context.Context) string {
	sessionID, ok := ctx.Value(ContextKeySessionID).(string)
	if !ok {
		return ""
	}
	return sessionID
}

// OptionalAuth identifies the visiting user when a Bearer token is present.
// Profiles are public, so a missing header leaves the request anonymous
// rather than rejecting it. A token that is present but invalid is also
// treated as anonymous: visibility decisions must fail closed, never open.
func OptionalAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "invalid visitor token, treating request as anonymous",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx = context.WithValue(ctx, ContextKeyVisitorID, claims.UserID)
			ctx = context.WithValue(ctx, ContextKeySessionID, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

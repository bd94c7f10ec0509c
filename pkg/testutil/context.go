package testutil

import (
	"context"
	"net/http"

	"facet/internal/platform/middleware"
)

// WithVisitor adds an authenticated visitor identity to the request context.
// This simulates what the auth middleware does for a valid bearer token.
func WithVisitor(req *http.Request, visitorID string) *http.Request {
	if visitorID == "" {
		return req
	}
	ctx := context.WithValue(req.Context(), middleware.ContextKeyVisitorID, visitorID)
	return req.WithContext(ctx)
}

// WithSession adds a session ID to the request context.
func WithSession(req *http.Request, sessionID string) *http.Request {
	if sessionID == "" {
		return req
	}
	ctx := context.WithValue(req.Context(), middleware.ContextKeySessionID, sessionID)
	return req.WithContext(ctx)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}

package knownuser

import "context"

// Service answers whether a visitor has an established relationship with a
// profile owner (shared contact, group, or conversation). PRIVATE-scope
// properties are only visible to known visitors.
type Service interface {
	IsKnownToUser(ctx context.Context, ownerID, visitorID string) (bool, error)
}

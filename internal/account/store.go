package account

import "context"

// Store provides read access to per-user account properties. The profile
// service only ever reads; property writes belong to the account management
// surface, which is out of scope here.
type Store interface {
	// GetProperty returns the named property for the user, or
	// ErrPropertyNotFound when no value is stored under the key.
	GetProperty(ctx context.Context, userID, key string) (Property, error)

	// GetPropertyCollection returns all values stored under a multi-valued
	// key, in insertion order. A missing collection is an empty slice, not
	// an error.
	GetPropertyCollection(ctx context.Context, userID, key string) ([]Property, error)
}

package apps

import "context"

// AppCore is the app ID of actions shipped with the service itself. Core
// actions bypass the enablement check.
const AppCore = "core"

// Enablement answers whether an app is active for a given user. Backed by
// the enabled_apps table in production, in-memory for tests.
type Enablement interface {
	IsEnabledForUser(ctx context.Context, appID, userID string) (bool, error)
}

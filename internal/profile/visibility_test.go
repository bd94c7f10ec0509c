package profile_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facet/internal/account"
	"facet/internal/knownuser"
	"facet/internal/platform/metrics"
	"facet/internal/profile"
	dErrors "facet/pkg/domain-errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newVisibility(accounts account.Store, known knownuser.Service) *profile.Visibility {
	return profile.NewVisibility(accounts, known, testLogger(), &metrics.Metrics{})
}

func TestIsPropertyVisible_OpenScopes(t *testing.T) {
	for _, scope := range []account.Scope{account.ScopeLocal, account.ScopeFederated, account.ScopePublished} {
		t.Run(string(scope), func(t *testing.T) {
			accounts := account.NewInMemoryStore()
			accounts.SetProperty("alice", account.PropertyHeadline, account.Property{Value: "Hello", Scope: scope})
			visibility := newVisibility(accounts, knownuser.NewInMemoryService())

			// Anonymous visitor.
			visible, err := visibility.IsPropertyVisible(context.Background(), "alice", "", account.PropertyHeadline)
			require.NoError(t, err)
			assert.True(t, visible)

			// Unknown authenticated visitor.
			visible, err = visibility.IsPropertyVisible(context.Background(), "alice", "mallory", account.PropertyHeadline)
			require.NoError(t, err)
			assert.True(t, visible)
		})
	}
}

func TestIsPropertyVisible_PrivateScope_AnonymousVisitor(t *testing.T) {
	accounts := account.NewInMemoryStore()
	accounts.SetProperty("alice", account.PropertyAddress, account.Property{Value: "123 St", Scope: account.ScopePrivate})
	visibility := newVisibility(accounts, knownuser.NewInMemoryService())

	visible, err := visibility.IsPropertyVisible(context.Background(), "alice", "", account.PropertyAddress)
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestIsPropertyVisible_PrivateScope_FollowsKnownUserLookup(t *testing.T) {
	accounts := account.NewInMemoryStore()
	accounts.SetProperty("alice", account.PropertyAddress, account.Property{Value: "123 St", Scope: account.ScopePrivate})
	known := knownuser.NewInMemoryService()
	known.MarkKnown("alice", "bob")
	visibility := newVisibility(accounts, known)

	visible, err := visibility.IsPropertyVisible(context.Background(), "alice", "bob", account.PropertyAddress)
	require.NoError(t, err)
	assert.True(t, visible)

	visible, err = visibility.IsPropertyVisible(context.Background(), "alice", "mallory", account.PropertyAddress)
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestIsPropertyVisible_UnrecognizedScope(t *testing.T) {
	accounts := account.NewInMemoryStore()
	accounts.SetProperty("alice", account.PropertyRole, account.Property{Value: "Eng", Scope: account.Scope("v3-galactic")})
	visibility := newVisibility(accounts, knownuser.NewInMemoryService())

	visible, err := visibility.IsPropertyVisible(context.Background(), "alice", "bob", account.PropertyRole)
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestIsPropertyVisible_MissingProperty_FailsClosed(t *testing.T) {
	visibility := newVisibility(account.NewInMemoryStore(), knownuser.NewInMemoryService())

	visible, err := visibility.IsPropertyVisible(context.Background(), "alice", "bob", account.PropertyBiography)
	assert.False(t, visible)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

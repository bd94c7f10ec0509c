package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facet/internal/account"
)

func seededStore(t *testing.T) *account.InMemoryStore {
	t.Helper()
	store := account.NewInMemoryStore()
	store.SetProperty("alice", account.PropertyEmail, account.Property{Value: "alice@example.com", Scope: account.ScopePublished})
	store.SetProperty("alice", account.PropertyPhone, account.Property{Value: "+1 (555) 010-7700", Scope: account.ScopeLocal})
	store.SetProperty("alice", account.PropertyWebsite, account.Property{Value: "alice.example.com", Scope: account.ScopeLocal})
	store.SetProperty("alice", account.PropertySocial, account.Property{Value: "@alice", Scope: account.ScopeLocal})
	return store
}

func TestEmailAction_Target(t *testing.T) {
	action := NewEmailAction(seededStore(t))
	require.NoError(t, action.Preload(context.Background(), "alice"))

	assert.Equal(t, "email", action.ID())
	assert.Equal(t, "mailto:alice@example.com", action.Target())
}

func TestPhoneAction_SanitizesTarget(t *testing.T) {
	action := NewPhoneAction(seededStore(t))
	require.NoError(t, action.Preload(context.Background(), "alice"))

	assert.Equal(t, "tel:+15550107700", action.Target())
}

func TestWebsiteAction_AddsScheme(t *testing.T) {
	action := NewWebsiteAction(seededStore(t))
	require.NoError(t, action.Preload(context.Background(), "alice"))

	assert.Equal(t, "https://alice.example.com", action.Target())
}

func TestSocialAction_StripsHandlePrefix(t *testing.T) {
	action := NewSocialAction(seededStore(t))
	require.NoError(t, action.Preload(context.Background(), "alice"))

	assert.Equal(t, "https://alice", action.Target())
}

func TestPreload_PropagatesMissingProperty(t *testing.T) {
	action := NewEmailAction(account.NewInMemoryStore())

	err := action.Preload(context.Background(), "nobody")
	assert.ErrorIs(t, err, account.ErrPropertyNotFound)
}

func TestNewFactory_BindsAllBuiltins(t *testing.T) {
	factory, err := NewFactory(seededStore(t))
	require.NoError(t, err)

	for _, id := range []string{"email", "phone", "website", "social"} {
		action, err := factory.Get(id)
		require.NoError(t, err)
		assert.Equal(t, id, action.ID())
	}
}

func TestFactory_UnknownIdentifier(t *testing.T) {
	factory, err := NewFactory(seededStore(t))
	require.NoError(t, err)

	_, err = factory.Get("does-not-exist")
	assert.Error(t, err)
}

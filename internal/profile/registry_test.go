package profile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facet/internal/account"
	"facet/internal/apps"
	"facet/internal/knownuser"
	"facet/internal/platform/metrics"
	"facet/internal/profile"
)

// fakeAction is a configurable Action implementation for registry tests.
type fakeAction struct {
	id         string
	appID      string
	priority   int
	preloadErr error
	panics     bool
	preloads   int
}

func (a *fakeAction) ID() string     { return a.id }
func (a *fakeAction) AppID() string  { return a.appID }
func (a *fakeAction) Priority() int  { return a.priority }
func (a *fakeAction) Icon() string   { return "/img/actions/" + a.id + ".svg" }
func (a *fakeAction) Title() string  { return "Title " + a.id }
func (a *fakeAction) Label() string  { return "Label " + a.id }
func (a *fakeAction) Target() string { return "https://example.com/" + a.id }

func (a *fakeAction) Preload(context.Context, string) error {
	a.preloads++
	if a.panics {
		panic("bad action")
	}
	return a.preloadErr
}

type registryFixture struct {
	factory  *profile.ActionFactory
	accounts *account.InMemoryStore
	apps     *apps.InMemoryEnablement
	known    *knownuser.InMemoryService
	provider *profile.RegistryProvider
}

func newRegistryFixture(t *testing.T) *registryFixture {
	t.Helper()
	f := &registryFixture{
		factory:  profile.NewActionFactory(),
		accounts: account.NewInMemoryStore(),
		apps:     apps.NewInMemoryEnablement(),
		known:    knownuser.NewInMemoryService(),
	}
	m := &metrics.Metrics{}
	visibility := profile.NewVisibility(f.accounts, f.known, testLogger(), m)
	f.provider = profile.NewRegistryProvider(f.factory, f.accounts, f.apps, visibility, testLogger(), m)
	return f
}

func (f *registryFixture) bind(t *testing.T, identifier string, action *fakeAction) {
	t.Helper()
	require.NoError(t, f.factory.Register(identifier, func() profile.Action { return action }))
}

func actionIDs(actions []profile.Action) []string {
	ids := make([]string, 0, len(actions))
	for _, action := range actions {
		ids = append(ids, action.ID())
	}
	return ids
}

func TestResolve_SortsByPriorityAscending(t *testing.T) {
	f := newRegistryFixture(t)
	f.bind(t, "slides", &fakeAction{id: "slides", appID: "deck", priority: 90})
	f.bind(t, "talk", &fakeAction{id: "talk", appID: "spreed", priority: 10})
	f.bind(t, "calendar", &fakeAction{id: "calendar", appID: "calendar", priority: 40})

	registry := f.provider.NewRegistry()
	registry.Queue("slides")
	registry.Queue("talk")
	registry.Queue("calendar")

	actions := registry.Resolve(context.Background(), "alice", "bob")
	assert.Equal(t, []string{"talk", "calendar", "slides"}, actionIDs(actions))
}

func TestResolve_EqualPrioritiesKeepRegistrationOrder(t *testing.T) {
	f := newRegistryFixture(t)
	f.bind(t, "first", &fakeAction{id: "first", appID: "one", priority: 50})
	f.bind(t, "second", &fakeAction{id: "second", appID: "two", priority: 50})
	f.bind(t, "third", &fakeAction{id: "third", appID: "three", priority: 50})

	registry := f.provider.NewRegistry()
	registry.Queue("first")
	registry.Queue("second")
	registry.Queue("third")

	actions := registry.Resolve(context.Background(), "alice", "")
	assert.Equal(t, []string{"first", "second", "third"}, actionIDs(actions))
}

func TestResolve_DuplicateQueueEntriesRegisterOnce(t *testing.T) {
	f := newRegistryFixture(t)
	action := &fakeAction{id: "talk", appID: "spreed", priority: 10}
	f.bind(t, "talk", action)

	registry := f.provider.NewRegistry()
	registry.Queue("talk")
	registry.Queue("talk")

	actions := registry.Resolve(context.Background(), "alice", "")
	assert.Equal(t, []string{"talk"}, actionIDs(actions))
	assert.Equal(t, 1, action.preloads)
}

func TestResolve_ConflictingIDKeepsFirstAndContinues(t *testing.T) {
	f := newRegistryFixture(t)
	first := &fakeAction{id: "talk", appID: "spreed", priority: 10}
	impostor := &fakeAction{id: "talk", appID: "other", priority: 5}
	f.bind(t, "talk", first)
	f.bind(t, "impostor", impostor)
	f.bind(t, "calendar", &fakeAction{id: "calendar", appID: "calendar", priority: 40})

	registry := f.provider.NewRegistry()
	registry.Queue("talk")
	registry.Queue("impostor")
	registry.Queue("calendar")

	actions := registry.Resolve(context.Background(), "alice", "")
	assert.Equal(t, []string{"talk", "calendar"}, actionIDs(actions))
	assert.Equal(t, 0, impostor.preloads)
}

func TestResolve_UnknownIdentifierSkippedAndContinues(t *testing.T) {
	f := newRegistryFixture(t)
	f.bind(t, "talk", &fakeAction{id: "talk", appID: "spreed", priority: 10})

	registry := f.provider.NewRegistry()
	registry.Queue("no-such-action")
	registry.Queue("talk")

	actions := registry.Resolve(context.Background(), "alice", "")
	assert.Equal(t, []string{"talk"}, actionIDs(actions))
}

func TestResolve_PreloadFailureSkipsAction(t *testing.T) {
	f := newRegistryFixture(t)
	f.bind(t, "broken", &fakeAction{id: "broken", appID: "one", priority: 10, preloadErr: errors.New("backend down")})
	f.bind(t, "talk", &fakeAction{id: "talk", appID: "spreed", priority: 20})

	registry := f.provider.NewRegistry()
	registry.Queue("broken")
	registry.Queue("talk")

	actions := registry.Resolve(context.Background(), "alice", "")
	assert.Equal(t, []string{"talk"}, actionIDs(actions))
}

func TestResolve_PreloadPanicIsContained(t *testing.T) {
	f := newRegistryFixture(t)
	f.bind(t, "hostile", &fakeAction{id: "hostile", appID: "one", priority: 10, panics: true})
	f.bind(t, "talk", &fakeAction{id: "talk", appID: "spreed", priority: 20})

	registry := f.provider.NewRegistry()
	registry.Queue("hostile")
	registry.Queue("talk")

	actions := registry.Resolve(context.Background(), "alice", "")
	assert.Equal(t, []string{"talk"}, actionIDs(actions))
}

func TestResolve_DisabledAppActionStillRegisters(t *testing.T) {
	f := newRegistryFixture(t)
	f.bind(t, "talk", &fakeAction{id: "talk", appID: "spreed", priority: 10})
	// spreed is never enabled for alice.

	registry := f.provider.NewRegistry()
	registry.Queue("talk")

	actions := registry.Resolve(context.Background(), "alice", "")
	assert.Equal(t, []string{"talk"}, actionIDs(actions))
}

func TestResolve_BuiltinRequiresValueAndVisibility(t *testing.T) {
	f := newRegistryFixture(t)
	email := &fakeAction{id: account.PropertyEmail, appID: apps.AppCore, priority: 20}
	phone := &fakeAction{id: account.PropertyPhone, appID: apps.AppCore, priority: 30}
	website := &fakeAction{id: account.PropertyWebsite, appID: apps.AppCore, priority: 60}
	f.bind(t, account.PropertyEmail, email)
	f.bind(t, account.PropertyPhone, phone)
	f.bind(t, account.PropertyWebsite, website)

	f.accounts.SetProperty("alice", account.PropertyEmail, account.Property{Value: "alice@example.com", Scope: account.ScopePublished})
	f.accounts.SetProperty("alice", account.PropertyPhone, account.Property{Value: "", Scope: account.ScopePublished})
	f.accounts.SetProperty("alice", account.PropertyWebsite, account.Property{Value: "https://alice.example.com", Scope: account.ScopePrivate})

	registry := f.provider.NewRegistry()
	actions := registry.Resolve(context.Background(), "alice", "")
	assert.Equal(t, []string{account.PropertyEmail}, actionIDs(actions))
}

func TestResolve_BuiltinPrivatePropertyVisibleToKnownVisitor(t *testing.T) {
	f := newRegistryFixture(t)
	f.bind(t, account.PropertyWebsite, &fakeAction{id: account.PropertyWebsite, appID: apps.AppCore, priority: 60})
	f.accounts.SetProperty("alice", account.PropertyWebsite, account.Property{Value: "https://alice.example.com", Scope: account.ScopePrivate})
	f.known.MarkKnown("alice", "bob")

	registry := f.provider.NewRegistry()
	actions := registry.Resolve(context.Background(), "alice", "bob")
	assert.Equal(t, []string{account.PropertyWebsite}, actionIDs(actions))
}

func TestResolve_RepeatResolveIsIdempotent(t *testing.T) {
	f := newRegistryFixture(t)
	action := &fakeAction{id: "talk", appID: "spreed", priority: 10}
	f.bind(t, "talk", action)

	registry := f.provider.NewRegistry()
	registry.Queue("talk")

	first := registry.Resolve(context.Background(), "alice", "")
	second := registry.Resolve(context.Background(), "alice", "")
	assert.Equal(t, actionIDs(first), actionIDs(second))
	assert.Equal(t, 1, action.preloads)
}

func TestProvider_QueuedActionsSeedFreshRegistries(t *testing.T) {
	f := newRegistryFixture(t)
	action := &fakeAction{id: "talk", appID: "spreed", priority: 10}
	f.bind(t, "talk", action)
	f.provider.QueueAction("talk")

	assert.Equal(t, []string{"talk"}, f.provider.QueuedActions())

	actions := f.provider.NewRegistry().Resolve(context.Background(), "alice", "")
	assert.Equal(t, []string{"talk"}, actionIDs(actions))

	// A second registry resolves the shared queue independently.
	again := f.provider.NewRegistry().Resolve(context.Background(), "alice", "")
	assert.Equal(t, []string{"talk"}, actionIDs(again))
}

package profile

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"facet/internal/account"
	"facet/internal/apps"
	"facet/internal/platform/metrics"
	dErrors "facet/pkg/domain-errors"
)

// BuiltinActionIDs are the account-property actions evaluated on every
// resolution, before any queued app actions. Their identifiers double as the
// account property keys they are derived from.
var BuiltinActionIDs = []string{
	account.PropertyEmail,
	account.PropertyPhone,
	account.PropertyWebsite,
	account.PropertySocial,
}

// RegistryProvider holds the process-wide wiring queue and hands out fresh,
// request-scoped registries seeded with it. Components queue identifiers
// during initialization; profile requests never share registered state.
type RegistryProvider struct {
	factory    *ActionFactory
	accounts   account.Store
	apps       apps.Enablement
	visibility *Visibility
	logger     *slog.Logger
	metrics    *metrics.Metrics

	mu     sync.Mutex
	queued []string
}

func NewRegistryProvider(
	factory *ActionFactory,
	accounts account.Store,
	enablement apps.Enablement,
	visibility *Visibility,
	logger *slog.Logger,
	m *metrics.Metrics,
) *RegistryProvider {
	return &RegistryProvider{
		factory:    factory,
		accounts:   accounts,
		apps:       enablement,
		visibility: visibility,
		logger:     logger,
		metrics:    m,
	}
}

// QueueAction appends an identifier to the shared wiring queue. No
// validation happens here; resolution is deferred to the next request.
func (p *RegistryProvider) QueueAction(identifier string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queued = append(p.queued, identifier)
}

// QueuedActions returns a snapshot of the dynamic queue.
func (p *RegistryProvider) QueuedActions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.queued...)
}

// NewRegistry creates a fresh registry for one owner-scoped resolution,
// seeded with the current wiring queue.
func (p *RegistryProvider) NewRegistry() *ActionRegistry {
	return &ActionRegistry{
		factory:    p.factory,
		accounts:   p.accounts,
		apps:       p.apps,
		visibility: p.visibility,
		logger:     p.logger,
		metrics:    p.metrics,
		queued:     p.QueuedActions(),
		resolved:   make(map[string]bool),
		registered: make(map[string]Action),
	}
}

// ActionRegistry resolves a queue of action identifiers into deduplicated,
// priority-ordered action instances for a single profile owner. Instances
// are request-scoped; reusing one for a different owner is unsupported.
type ActionRegistry struct {
	factory    *ActionFactory
	accounts   account.Store
	apps       apps.Enablement
	visibility *Visibility
	logger     *slog.Logger
	metrics    *metrics.Metrics

	mu     sync.Mutex
	queued []string

	// resolved marks identifiers already processed by this registry, so
	// duplicate queue entries and repeat resolutions are not re-evaluated.
	resolved map[string]bool

	registered map[string]Action
	// order preserves registration sequence so equal priorities sort stably.
	order []Action
}

// Queue appends an identifier to this registry's dynamic queue.
func (r *ActionRegistry) Queue(identifier string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queued = append(r.queued, identifier)
}

// Resolve processes built-in identifiers followed by the queued ones and
// returns the registered actions sorted ascending by priority. Per-item
// failures are logged and skipped; they never abort the resolution.
func (r *ActionRegistry) Resolve(ctx context.Context, ownerID, visitorID string) []Action {
	r.mu.Lock()
	queued := append([]string{}, r.queued...)
	r.mu.Unlock()

	for _, identifier := range append(append([]string{}, BuiltinActionIDs...), queued...) {
		if r.resolved[identifier] {
			continue
		}
		r.resolved[identifier] = true
		r.resolveOne(ctx, ownerID, visitorID, identifier)
	}

	actions := append([]Action{}, r.order...)
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Priority() < actions[j].Priority()
	})
	return actions
}

func (r *ActionRegistry) resolveOne(ctx context.Context, ownerID, visitorID, identifier string) {
	action, err := r.factory.Get(identifier)
	if err != nil {
		r.metrics.IncrementActionResolution("lookup_failure")
		r.logger.ErrorContext(ctx, "could not resolve profile action",
			"identifier", identifier,
			"error", err,
		)
		return
	}

	if r.isBuiltin(identifier) {
		property, err := r.accounts.GetProperty(ctx, ownerID, identifier)
		if err != nil {
			r.metrics.IncrementActionResolution("skipped")
			r.logger.WarnContext(ctx, "skipping built-in action, property unavailable",
				"identifier", identifier,
				"owner", ownerID,
				"error", err,
			)
			return
		}
		// Only register when the property is set and visible to the visitor.
		if property.Value == "" {
			r.metrics.IncrementActionResolution("skipped")
			return
		}
		visible, err := r.visibility.IsPropertyVisible(ctx, ownerID, visitorID, identifier)
		if err != nil || !visible {
			r.metrics.IncrementActionResolution("skipped")
			return
		}
	}

	if err := r.register(ctx, ownerID, action); err != nil {
		r.logger.ErrorContext(ctx, "profile action registration failed",
			"identifier", identifier,
			"action_id", action.ID(),
			"error", err,
		)
	}
}

// register enforces the enablement warning, the unique-id invariant, and the
// preload contract before storing the action.
func (r *ActionRegistry) register(ctx context.Context, ownerID string, action Action) error {
	if action.AppID() != apps.AppCore {
		enabled, err := r.apps.IsEnabledForUser(ctx, action.AppID(), ownerID)
		if err != nil {
			r.logger.WarnContext(ctx, "app enablement lookup failed",
				"app", action.AppID(),
				"owner", ownerID,
				"error", err,
			)
		} else if !enabled {
			// Enablement is advisory: warn and register anyway.
			r.logger.WarnContext(ctx, "app is not enabled for the user",
				"app", action.AppID(),
				"owner", ownerID,
			)
		}
	}

	if _, exists := r.registered[action.ID()]; exists {
		r.metrics.IncrementActionResolution("conflict")
		return dErrors.New(dErrors.CodeConflict, "profile action with this id has already been registered: "+action.ID())
	}

	if err := r.preload(ctx, ownerID, action); err != nil {
		r.metrics.IncrementActionResolution("skipped")
		return dErrors.Wrap(dErrors.CodeInternal, "profile action preload failed: "+action.ID(), err)
	}

	r.registered[action.ID()] = action
	r.order = append(r.order, action)
	r.metrics.IncrementActionResolution("registered")
	return nil
}

// preload isolates panics from misbehaving action implementations so one bad
// action cannot abort the whole resolution.
func (r *ActionRegistry) preload(ctx context.Context, ownerID string, action Action) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = dErrors.New(dErrors.CodeInternal, "profile action panicked during preload")
		}
	}()
	return action.Preload(ctx, ownerID)
}

func (r *ActionRegistry) isBuiltin(identifier string) bool {
	for _, id := range BuiltinActionIDs {
		if id == identifier {
			return true
		}
	}
	return false
}

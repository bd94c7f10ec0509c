package profile

import (
	"context"
	"fmt"
)

// Action is a user-facing profile link or button with display metadata and a
// priority used for ordering. Implementations fetch any per-user state they
// need in Preload before their display accessors are read.
type Action interface {
	// ID is the stable identifier the action registers under. For built-in
	// account-property actions it equals the property key.
	ID() string
	// AppID names the app contributing the action; apps.AppCore for
	// built-ins.
	AppID() string
	// Priority orders actions on the profile, lower first.
	Priority() int

	Icon() string
	Title() string
	Label() string
	Target() string

	// Preload lets the action fetch per-user state once, before display
	// accessors are read. Called exactly once per registration.
	Preload(ctx context.Context, userID string) error
}

// ActionConstructor builds a fresh action instance for one resolution.
type ActionConstructor func() Action

// ActionFactory maps action identifiers to constructors. The typed mapping
// makes a malformed registration a wiring-time failure instead of a
// per-request type check.
type ActionFactory struct {
	constructors map[string]ActionConstructor
}

func NewActionFactory() *ActionFactory {
	return &ActionFactory{constructors: make(map[string]ActionConstructor)}
}

// Register binds an identifier to a constructor. Rebinding an identifier is
// a wiring mistake and fails loudly.
func (f *ActionFactory) Register(identifier string, constructor ActionConstructor) error {
	if constructor == nil {
		return fmt.Errorf("nil constructor for action %q", identifier)
	}
	if _, exists := f.constructors[identifier]; exists {
		return fmt.Errorf("action constructor already registered: %q", identifier)
	}
	f.constructors[identifier] = constructor
	return nil
}

// Get constructs the action bound to the identifier.
func (f *ActionFactory) Get(identifier string) (Action, error) {
	constructor, ok := f.constructors[identifier]
	if !ok {
		return nil, fmt.Errorf("unknown profile action: %q", identifier)
	}
	action := constructor()
	if action == nil {
		return nil, fmt.Errorf("constructor for action %q returned no instance", identifier)
	}
	return action, nil
}

// Package actions holds the built-in account-property profile actions and
// the default factory wiring for them.
package actions

import (
	"facet/internal/account"
	"facet/internal/profile"
)

// NewFactory returns an action factory with all built-in actions bound.
// App-contributed actions are registered on top by the composition root.
func NewFactory(accounts account.Store) (*profile.ActionFactory, error) {
	factory := profile.NewActionFactory()

	builtins := map[string]profile.ActionConstructor{
		account.PropertyEmail:   func() profile.Action { return NewEmailAction(accounts) },
		account.PropertyPhone:   func() profile.Action { return NewPhoneAction(accounts) },
		account.PropertyWebsite: func() profile.Action { return NewWebsiteAction(accounts) },
		account.PropertySocial:  func() profile.Action { return NewSocialAction(accounts) },
	}
	for identifier, constructor := range builtins {
		if err := factory.Register(identifier, constructor); err != nil {
			return nil, err
		}
	}
	return factory, nil
}

package actions

import (
	"context"

	"facet/internal/account"
	"facet/internal/apps"
)

// EmailAction links to the owner's primary email address.
type EmailAction struct {
	accounts account.Store
	value    string
}

func NewEmailAction(accounts account.Store) *EmailAction {
	return &EmailAction{accounts: accounts}
}

func (a *EmailAction) ID() string    { return account.PropertyEmail }
func (a *EmailAction) AppID() string { return apps.AppCore }
func (a *EmailAction) Priority() int { return 20 }
func (a *EmailAction) Icon() string  { return "/img/actions/mail.svg" }
func (a *EmailAction) Title() string { return "Mail " + a.value }
func (a *EmailAction) Label() string { return "Email" }

func (a *EmailAction) Target() string {
	if a.value == "" {
		return ""
	}
	return "mailto:" + a.value
}

func (a *EmailAction) Preload(ctx context.Context, userID string) error {
	property, err := a.accounts.GetProperty(ctx, userID, account.PropertyEmail)
	if err != nil {
		return err
	}
	a.value = property.Value
	return nil
}

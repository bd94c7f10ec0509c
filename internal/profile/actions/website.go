package actions

import (
	"context"

	"facet/internal/account"
	"facet/internal/apps"
)

// WebsiteAction links to the owner's personal website.
type WebsiteAction struct {
	accounts account.Store
	value    string
}

func NewWebsiteAction(accounts account.Store) *WebsiteAction {
	return &WebsiteAction{accounts: accounts}
}

func (a *WebsiteAction) ID() string     { return account.PropertyWebsite }
func (a *WebsiteAction) AppID() string  { return apps.AppCore }
func (a *WebsiteAction) Priority() int  { return 60 }
func (a *WebsiteAction) Icon() string   { return "/img/actions/link.svg" }
func (a *WebsiteAction) Title() string  { return "Visit " + a.value }
func (a *WebsiteAction) Label() string  { return "Website" }
func (a *WebsiteAction) Target() string { return ensureScheme(a.value) }

func (a *WebsiteAction) Preload(ctx context.Context, userID string) error {
	property, err := a.accounts.GetProperty(ctx, userID, account.PropertyWebsite)
	if err != nil {
		return err
	}
	a.value = property.Value
	return nil
}

package actions

import (
	"context"
	"strings"

	"facet/internal/account"
	"facet/internal/apps"
)

// PhoneAction links to the owner's phone number.
type PhoneAction struct {
	accounts account.Store
	value    string
}

func NewPhoneAction(accounts account.Store) *PhoneAction {
	return &PhoneAction{accounts: accounts}
}

func (a *PhoneAction) ID() string    { return account.PropertyPhone }
func (a *PhoneAction) AppID() string { return apps.AppCore }
func (a *PhoneAction) Priority() int { return 30 }
func (a *PhoneAction) Icon() string  { return "/img/actions/phone.svg" }
func (a *PhoneAction) Title() string { return "Call " + a.value }
func (a *PhoneAction) Label() string { return "Phone" }

func (a *PhoneAction) Target() string {
	if a.value == "" {
		return ""
	}
	// tel: URIs do not allow separators commonly typed into phone fields.
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.', '/':
			return -1
		}
		return r
	}, a.value)
	return "tel:" + sanitized
}

func (a *PhoneAction) Preload(ctx context.Context, userID string) error {
	property, err := a.accounts.GetProperty(ctx, userID, account.PropertyPhone)
	if err != nil {
		return err
	}
	a.value = property.Value
	return nil
}

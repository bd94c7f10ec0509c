package actions

import (
	"context"
	"strings"

	"facet/internal/account"
	"facet/internal/apps"
)

// SocialAction links to the owner's social media presence. The stored value
// may be a handle or a full URL.
type SocialAction struct {
	accounts account.Store
	value    string
}

func NewSocialAction(accounts account.Store) *SocialAction {
	return &SocialAction{accounts: accounts}
}

func (a *SocialAction) ID() string     { return account.PropertySocial }
func (a *SocialAction) AppID() string  { return apps.AppCore }
func (a *SocialAction) Priority() int  { return 50 }
func (a *SocialAction) Icon() string   { return "/img/actions/social.svg" }
func (a *SocialAction) Title() string  { return "View social profile" }
func (a *SocialAction) Label() string  { return "Social" }
func (a *SocialAction) Target() string { return ensureScheme(strings.TrimPrefix(a.value, "@")) }

func (a *SocialAction) Preload(ctx context.Context, userID string) error {
	property, err := a.accounts.GetProperty(ctx, userID, account.PropertySocial)
	if err != nil {
		return err
	}
	a.value = property.Value
	return nil
}

// ensureScheme defaults bare host values to https so targets are always
// absolute links.
func ensureScheme(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

package profile

import "facet/internal/account"

// ActionParam is the display record for one resolved profile action.
type ActionParam struct {
	ID     string `json:"id"`
	Icon   string `json:"icon"`
	Title  string `json:"title"`
	Label  string `json:"label"`
	Target string `json:"target"`
}

// ProfileParams is the assembled profile page payload. Property fields are
// nil when the value is unset or hidden from the visitor.
type ProfileParams struct {
	UserID              string        `json:"userId"`
	DisplayName         *string       `json:"displayName"`
	Address             *string       `json:"address"`
	Organisation        *string       `json:"organisation"`
	Role                *string       `json:"role"`
	Headline            *string       `json:"headline"`
	Biography           *string       `json:"biography"`
	IsUserAvatarVisible bool          `json:"isUserAvatarVisible"`
	AdditionalEmails    []string      `json:"additionalEmails"`
	Actions             []ActionParam `json:"actions"`
}

// displayedProperties fixes the set and order of account properties shown on
// a profile page.
var displayedProperties = []string{
	account.PropertyDisplayName,
	account.PropertyAddress,
	account.PropertyOrganisation,
	account.PropertyRole,
	account.PropertyHeadline,
	account.PropertyBiography,
}

func (p *ProfileParams) setProperty(key string, value *string) {
	switch key {
	case account.PropertyDisplayName:
		p.DisplayName = value
	case account.PropertyAddress:
		p.Address = value
	case account.PropertyOrganisation:
		p.Organisation = value
	case account.PropertyRole:
		p.Role = value
	case account.PropertyHeadline:
		p.Headline = value
	case account.PropertyBiography:
		p.Biography = value
	}
}

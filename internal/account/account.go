package account

import (
	"fmt"

	"facet/pkg/platform/sentinel"
)

// Scope is the privacy classification of an account property. Values outside
// the known set are possible when stored data predates the current scope
// vocabulary; visibility logic treats them as hidden.
type Scope string

const (
	// ScopePrivate limits a property to visitors the owner knows.
	ScopePrivate Scope = "private"
	// ScopeLocal exposes a property to anyone on this server.
	ScopeLocal Scope = "local"
	// ScopeFederated additionally exposes a property to trusted remote servers.
	ScopeFederated Scope = "federated"
	// ScopePublished additionally exposes a property to public lookup directories.
	ScopePublished Scope = "published"
)

// Known reports whether the scope belongs to the closed vocabulary.
func (s Scope) Known() bool {
	switch s {
	case ScopePrivate, ScopeLocal, ScopeFederated, ScopePublished:
		return true
	}
	return false
}

// Property keys for the account properties consumed by the profile service.
const (
	PropertyEmail        = "email"
	PropertyPhone        = "phone"
	PropertyWebsite      = "website"
	PropertySocial       = "social"
	PropertyDisplayName  = "displayname"
	PropertyAddress      = "address"
	PropertyOrganisation = "organisation"
	PropertyRole         = "role"
	PropertyHeadline     = "headline"
	PropertyBiography    = "biography"
	PropertyAvatar       = "avatar"
)

// CollectionEmail is the key of the multi-valued additional email collection.
const CollectionEmail = "additional_mail"

// Property is a single keyed account value with its privacy scope.
type Property struct {
	Value string
	Scope Scope
}

// ErrPropertyNotFound is returned when a user has no value stored under the
// requested property key. It wraps sentinel.ErrNotFound so callers can match
// either level.
var ErrPropertyNotFound = fmt.Errorf("account property: %w", sentinel.ErrNotFound)

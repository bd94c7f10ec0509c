package profile

import (
	"context"
	"errors"
	"log/slog"

	"facet/internal/account"
	"facet/internal/knownuser"
	"facet/internal/platform/metrics"
	dErrors "facet/pkg/domain-errors"
)

// Visibility decides whether an account property may be shown to a visitor,
// based on the property's scope and the owner/visitor relationship.
type Visibility struct {
	accounts account.Store
	known    knownuser.Service
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewVisibility(accounts account.Store, known knownuser.Service, logger *slog.Logger, m *metrics.Metrics) *Visibility {
	return &Visibility{
		accounts: accounts,
		known:    known,
		logger:   logger,
		metrics:  m,
	}
}

// IsPropertyVisible reports whether the owner's named property is visible to
// the visiting user. visitorID is empty for anonymous visitors.
//
// A property that does not exist cannot be answered definitively; the method
// fails closed, returning false together with a not_found error so callers
// can distinguish "hidden" from "unknown property".
func (v *Visibility) IsPropertyVisible(ctx context.Context, ownerID, visitorID, property string) (bool, error) {
	prop, err := v.accounts.GetProperty(ctx, ownerID, property)
	if err != nil {
		v.metrics.IncrementVisibilityCheck("error")
		if errors.Is(err, account.ErrPropertyNotFound) {
			v.logger.ErrorContext(ctx, "visibility check on absent property",
				"owner", ownerID,
				"property", property,
			)
			return false, dErrors.Wrap(dErrors.CodeNotFound, "account property not found: "+property, err)
		}
		v.logger.ErrorContext(ctx, "account store failed during visibility check",
			"owner", ownerID,
			"property", property,
			"error", err,
		)
		return false, dErrors.Wrap(dErrors.CodeInternal, "account property lookup failed", err)
	}

	visible, err := v.scopeVisible(ctx, ownerID, visitorID, prop.Scope)
	if err != nil {
		v.metrics.IncrementVisibilityCheck("error")
		return false, err
	}
	if visible {
		v.metrics.IncrementVisibilityCheck("visible")
	} else {
		v.metrics.IncrementVisibilityCheck("hidden")
	}
	return visible, nil
}

// scopeVisible applies the scope rules for a single property:
//
//	private   - hidden from anonymous visitors and from users unknown to the owner
//	local     - hidden from nobody
//	federated - hidden from nobody
//	published - hidden from nobody
//
// Anything outside the known vocabulary is hidden.
func (v *Visibility) scopeVisible(ctx context.Context, ownerID, visitorID string, scope account.Scope) (bool, error) {
	switch scope {
	case account.ScopePrivate:
		if visitorID == "" {
			return false, nil
		}
		known, err := v.known.IsKnownToUser(ctx, ownerID, visitorID)
		if err != nil {
			v.logger.ErrorContext(ctx, "known-user lookup failed, hiding private property",
				"owner", ownerID,
				"error", err,
			)
			return false, dErrors.Wrap(dErrors.CodeInternal, "known-user lookup failed", err)
		}
		return known, nil
	case account.ScopeLocal, account.ScopeFederated, account.ScopePublished:
		return true, nil
	default:
		v.logger.WarnContext(ctx, "unrecognized property scope, hiding property",
			"owner", ownerID,
			"scope", string(scope),
		)
		return false, nil
	}
}

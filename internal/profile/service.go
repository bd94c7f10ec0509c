package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"facet/internal/account"
	"facet/internal/platform/metrics"
	"facet/internal/platform/middleware"
	dErrors "facet/pkg/domain-errors"
	"facet/pkg/platform/audit"
	pstrings "facet/pkg/platform/strings"
)

// AuditEmitter publishes profile audit events. Emission is best-effort; the
// service never lets audit failures affect assembly.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service assembles the full profile payload for an owner/visitor pair. It
// is the only caller of the action registry and the visibility resolver.
type Service struct {
	accounts   account.Store
	registries *RegistryProvider
	visibility *Visibility
	auditor    AuditEmitter
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

func NewService(
	accounts account.Store,
	registries *RegistryProvider,
	visibility *Visibility,
	auditor AuditEmitter,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		accounts:   accounts,
		registries: registries,
		visibility: visibility,
		auditor:    auditor,
		logger:     logger,
		metrics:    m,
		tracer:     otel.Tracer("facet/internal/profile"),
	}
}

// QueueAction appends an identifier to the process-wide wiring queue and
// records who queued it.
func (s *Service) QueueAction(ctx context.Context, identifier string) {
	s.registries.QueueAction(identifier)
	s.emitAudit(ctx, audit.EventActionQueued, "", middleware.GetVisitorID(ctx), identifier)
}

// IsPropertyVisible answers a single visibility question and audits denied
// private reads.
func (s *Service) IsPropertyVisible(ctx context.Context, ownerID, visitorID, property string) (bool, error) {
	visible, err := s.visibility.IsPropertyVisible(ctx, ownerID, visitorID, property)
	if err == nil && !visible {
		s.emitAudit(ctx, audit.EventVisibilityDenied, ownerID, visitorID, property)
	}
	return visible, err
}

// GetActions resolves and orders the profile actions for the owner as seen
// by the visitor. Each call uses a fresh request-scoped registry.
func (s *Service) GetActions(ctx context.Context, ownerID, visitorID string) []Action {
	return s.registries.NewRegistry().Resolve(ctx, ownerID, visitorID)
}

// GetProfileParams assembles the profile payload. Unset, hidden, and empty
// properties degrade to null fields; an unreachable account store aborts
// assembly with an error so callers never serve an empty profile as real.
func (s *Service) GetProfileParams(ctx context.Context, ownerID, visitorID string) (ProfileParams, error) {
	ctx, span := s.tracer.Start(ctx, "profile.GetProfileParams",
		trace.WithAttributes(
			attribute.String("profile.owner", ownerID),
			attribute.Bool("profile.anonymous", visitorID == ""),
		))
	defer span.End()

	start := time.Now()
	params := ProfileParams{
		UserID:           ownerID,
		AdditionalEmails: []string{},
		Actions:          []ActionParam{},
	}

	for _, property := range displayedProperties {
		if err := ctx.Err(); err != nil {
			return ProfileParams{}, err
		}
		value, err := s.propertyValue(ctx, ownerID, visitorID, property)
		if err != nil {
			return ProfileParams{}, err
		}
		params.setProperty(property, value)
	}

	avatarVisible, err := s.visibility.IsPropertyVisible(ctx, ownerID, visitorID, account.PropertyAvatar)
	if err != nil && !dErrors.Is(err, dErrors.CodeNotFound) {
		return ProfileParams{}, err
	}
	params.IsUserAvatarVisible = avatarVisible

	emails, err := s.additionalEmails(ctx, ownerID, visitorID)
	if err != nil {
		return ProfileParams{}, err
	}
	params.AdditionalEmails = emails

	for _, action := range s.GetActions(ctx, ownerID, visitorID) {
		params.Actions = append(params.Actions, ActionParam{
			ID:     action.ID(),
			Icon:   action.Icon(),
			Title:  action.Title(),
			Label:  action.Label(),
			Target: action.Target(),
		})
	}

	if err := ctx.Err(); err != nil {
		return ProfileParams{}, err
	}

	visitorKind := "authenticated"
	if visitorID == "" {
		visitorKind = "anonymous"
	}
	s.metrics.IncrementAssembly(visitorKind)
	s.metrics.ObserveAssembleLatency(time.Since(start))
	s.emitAudit(ctx, audit.EventProfileViewed, ownerID, visitorID, "")

	return params, nil
}

// propertyValue returns the displayable value for one property, nil when the
// value is unset, hidden, or empty. Infrastructure failures propagate so a
// dead store cannot masquerade as an owner with nothing to show.
func (s *Service) propertyValue(ctx context.Context, ownerID, visitorID, property string) (*string, error) {
	visible, err := s.visibility.IsPropertyVisible(ctx, ownerID, visitorID, property)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !visible {
		return nil, nil
	}

	prop, err := s.accounts.GetProperty(ctx, ownerID, property)
	if err != nil {
		if errors.Is(err, account.ErrPropertyNotFound) {
			return nil, nil
		}
		s.logger.ErrorContext(ctx, "account store failed during assembly",
			"owner", ownerID,
			"property", property,
			"error", err,
		)
		return nil, fmt.Errorf("account property %q: %w", property, err)
	}
	// Empty string is explicitly rendered as null.
	if prop.Value == "" {
		return nil, nil
	}
	value := prop.Value
	return &value, nil
}

// additionalEmails collects the visible, non-empty values of the email
// collection. A failed collection fetch propagates; a failed per-item
// known-user lookup only hides that item.
func (s *Service) additionalEmails(ctx context.Context, ownerID, visitorID string) ([]string, error) {
	properties, err := s.accounts.GetPropertyCollection(ctx, ownerID, account.CollectionEmail)
	if err != nil {
		s.logger.ErrorContext(ctx, "additional email collection unresolvable",
			"owner", ownerID,
			"error", err,
		)
		return nil, fmt.Errorf("email collection: %w", err)
	}

	emails := []string{}
	for _, property := range properties {
		if property.Value == "" {
			continue
		}
		visible, err := s.visibility.scopeVisible(ctx, ownerID, visitorID, property.Scope)
		if err != nil || !visible {
			continue
		}
		emails = append(emails, property.Value)
	}
	// Addresses differing only in case are the same mailbox; the first
	// spelling seen is the one displayed.
	deduped := pstrings.DedupeAndTrimFold(emails)
	if deduped == nil {
		return []string{}, nil
	}
	return deduped, nil
}

func (s *Service) emitAudit(ctx context.Context, event audit.AuditEvent, ownerID, visitorID, property string) {
	if s.auditor == nil {
		return
	}
	visitor := visitorID
	if visitor == "" {
		visitor = "anonymous"
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Action:    string(event),
		OwnerID:   ownerID,
		VisitorID: visitor,
		Property:  property,
		RequestID: middleware.GetRequestID(ctx),
		Device:    middleware.GetDevice(ctx).String(),
	})
	if err != nil {
		s.metrics.IncrementAuditPublishFailure()
		s.logger.WarnContext(ctx, "audit emission failed",
			"action", string(event),
			"error", err,
		)
	}
}

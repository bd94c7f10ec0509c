package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing downstream.
type EventCategory string

const (
	// CategorySecurity covers events relevant to security monitoring:
	// denied private reads, rejected admin keys.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and
	// operational visibility. These can be sampled or aggregated with
	// shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from profile logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string
	Category  EventCategory
	Timestamp time.Time
	// OwnerID is the profile owner the event concerns.
	OwnerID string
	// VisitorID is the viewing party, "anonymous" for public access.
	VisitorID string
	Action    string
	// Property is set for visibility events, naming the property involved.
	Property string
	// RequestID correlates the event with the HTTP request logs.
	RequestID string
	// Device is a compact description of the visiting client.
	Device string
}

type AuditEvent string

const (
	EventProfileViewed    AuditEvent = "profile_viewed"
	EventVisibilityDenied AuditEvent = "visibility_denied"
	EventActionQueued     AuditEvent = "action_queued"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventProfileViewed:    CategoryOperations,
	EventVisibilityDenied: CategorySecurity,
	EventActionQueued:     CategoryOperations,
}

// Category returns the category for this event, defaulting to operations
// for unmapped events.
func (e AuditEvent) Category() EventCategory {
	if category, ok := eventCategories[e]; ok {
		return category
	}
	return CategoryOperations
}

// Store persists audit events. Implementations: in-memory for tests and
// development, Postgres outbox for production (relayed to Kafka).
type Store interface {
	Append(ctx context.Context, event Event) error
}

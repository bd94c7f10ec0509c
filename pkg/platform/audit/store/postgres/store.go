package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	audit "facet/pkg/platform/audit"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events are written to the audit_outbox table and published to Kafka by the
// relay worker. Kafka is the source of truth for audit events.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store that writes to the outbox.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// outboxPayload is the JSON structure published to Kafka. Field names match
// audit.Event for proper deserialization by consumers.
type outboxPayload struct {
	ID        string `json:"ID"`
	Category  string `json:"Category"`
	Timestamp string `json:"Timestamp"`
	OwnerID   string `json:"OwnerID"`
	VisitorID string `json:"VisitorID,omitempty"`
	Action    string `json:"Action"`
	Property  string `json:"Property,omitempty"`
	RequestID string `json:"RequestID,omitempty"`
	Device    string `json:"Device,omitempty"`
}

// Append writes an audit event to the outbox table for Kafka publishing.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := event.ID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	payload := outboxPayload{
		ID:        eventID,
		Category:  string(event.Category),
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		OwnerID:   event.OwnerID,
		VisitorID: event.VisitorID,
		Action:    event.Action,
		Property:  event.Property,
		RequestID: event.RequestID,
		Device:    event.Device,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	const query = `
		INSERT INTO audit_outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = s.db.ExecContext(ctx, query,
		eventID,
		"profile",
		event.OwnerID,
		event.Action,
		payloadBytes,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// OutboxRow is one unpublished outbox entry, ready for relay.
type OutboxRow struct {
	ID      string
	Key     string
	Payload []byte
}

// FetchUnpublished returns up to limit unpublished outbox rows in insertion
// order. Rows stay unpublished until MarkPublished succeeds, so a crashed
// relay retries them.
func (s *Store) FetchUnpublished(ctx context.Context, limit int) ([]OutboxRow, error) {
	const query = `
		SELECT id, aggregate_id, payload
		FROM audit_outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unpublished outbox rows: %w", err)
	}
	defer rows.Close()

	var out []OutboxRow
	for rows.Next() {
		var row OutboxRow
		if err := rows.Scan(&row.ID, &row.Key, &row.Payload); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox rows: %w", err)
	}
	return out, nil
}

// MarkPublished stamps outbox rows as relayed. Idempotent: already stamped
// rows keep their original publish time.
func (s *Store) MarkPublished(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	const query = `
		UPDATE audit_outbox
		SET published_at = $2
		WHERE id = ANY($1) AND published_at IS NULL`

	idArray := make([]string, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return fmt.Errorf("invalid outbox row id %q: %w", id, err)
		}
		idArray = append(idArray, parsed.String())
	}

	if _, err := s.db.ExecContext(ctx, query, pq.Array(idArray), time.Now()); err != nil {
		return fmt.Errorf("mark outbox rows published: %w", err)
	}
	return nil
}

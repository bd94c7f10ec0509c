package publisher

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "facet/pkg/platform/audit"
)

// Publisher fans audit events out to a store, synchronously by default or
// through a buffered channel when async mode is enabled. Emission fills in
// the event ID, timestamp, and category so call sites stay small.
type Publisher struct {
	store audit.Store

	inbox  chan audit.Event
	wg     sync.WaitGroup
	closed sync.Once
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer makes Emit non-blocking with the given buffer size. Events
// are dropped (and reported by Emit's caller via the store error path only
// in sync mode) when the buffer is full.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan audit.Event, size)
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records one audit event. In async mode a full buffer drops the event
// rather than blocking the request path.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	event = p.enrich(event)
	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}
	select {
	case p.inbox <- event:
	default:
	}
	return nil
}

func (p *Publisher) enrich(event audit.Event) audit.Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	return event
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.inbox {
		// Background persistence is detached from any request context.
		_ = p.store.Append(context.Background(), event)
	}
}

// Close flushes the async buffer and stops the drain goroutine.
func (p *Publisher) Close() {
	p.closed.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			p.wg.Wait()
		}
	})
}

package worker

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"facet/pkg/platform/audit/store/postgres"
	"facet/pkg/platform/circuit"
)

// Sink publishes one serialized event payload.
type Sink interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

// Relay drains the audit outbox and publishes rows to Kafka. Rows are only
// marked published after a successful produce, so delivery is at-least-once.
type Relay struct {
	store    *postgres.Store
	sink     Sink
	logger   *slog.Logger
	breaker  *circuit.Breaker
	interval time.Duration
	batch    int
}

func NewRelay(store *postgres.Store, sink Sink, logger *slog.Logger) *Relay {
	return &Relay{
		store:   store,
		sink:    sink,
		logger:  logger,
		breaker: circuit.New("audit-sink", circuit.WithFailureThreshold(5), circuit.WithSuccessThreshold(2)),
		// The breaker keeps a dead broker from being hammered every tick;
		// rows simply wait in the outbox until it closes again.
		interval: 2 * time.Second,
		batch:    100,
	}
}

// Run relays batches until the context is canceled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.relayBatch(ctx); err != nil {
				r.logger.ErrorContext(ctx, "audit relay batch failed", "error", err)
			}
		}
	}
}

// relayBatch publishes one batch concurrently. Failed rows stay unpublished
// and are retried on the next tick.
func (r *Relay) relayBatch(ctx context.Context) error {
	limit := r.batch
	if r.breaker.IsOpen() {
		// Probe with a single row while the sink is unhealthy.
		limit = 1
	}

	rows, err := r.store.FetchUnpublished(ctx, limit)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	published := make([]string, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, row := range rows {
		g.Go(func() error {
			if err := r.sink.Publish(gctx, row.Key, row.Payload); err != nil {
				if _, change := r.breaker.RecordFailure(); change.Opened {
					r.logger.ErrorContext(gctx, "audit sink circuit opened", "breaker", r.breaker.Name())
				}
				r.logger.WarnContext(gctx, "audit event publish failed, will retry",
					"outbox_id", row.ID,
					"error", err,
				)
				return nil
			}
			if _, change := r.breaker.RecordSuccess(); change.Closed {
				r.logger.InfoContext(gctx, "audit sink circuit closed", "breaker", r.breaker.Name())
			}
			published[i] = row.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	ids := make([]string, 0, len(rows))
	for _, id := range published {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return r.store.MarkPublished(ctx, ids)
}

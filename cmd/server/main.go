package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"facet/internal/account"
	"facet/internal/apps"
	jwttoken "facet/internal/jwt_token"
	"facet/internal/knownuser"
	"facet/internal/platform/config"
	"facet/internal/platform/httpserver"
	"facet/internal/platform/logger"
	"facet/internal/platform/metrics"
	"facet/internal/platform/postgres"
	"facet/internal/platform/redis"
	"facet/internal/profile"
	"facet/internal/profile/actions"
	"facet/internal/storage"
	httptransport "facet/internal/transport/http"
	"facet/pkg/platform/audit/kafka"
	"facet/pkg/platform/audit/publisher"
	auditmemory "facet/pkg/platform/audit/store/memory"
	auditpostgres "facet/pkg/platform/audit/store/postgres"
	"facet/pkg/platform/audit/worker"
)

// main wires stores, the profile domain, the audit pipeline, and the HTTP
// server. Missing backing services fall back to in-memory implementations so
// the binary runs standalone in development.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	health := map[string]func(context.Context) error{}

	// Account properties and app enablement.
	var accountStore account.Store
	var enablement apps.Enablement
	pool, err := postgres.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		if err := storage.Migrate(ctx, pool.Pool); err != nil {
			log.Error("schema migration failed", "error", err)
			os.Exit(1)
		}
		accountStore = account.NewPostgresStore(pool.Pool)
		enablement = apps.NewPostgresEnablement(pool.Pool)
		health["postgres"] = pool.Health
		defer pool.Close()
	} else {
		log.Warn("postgres not configured, using in-memory account store")
		accountStore = account.NewInMemoryStore()
		enablement = apps.NewInMemoryEnablement()
	}

	// Known-user relation.
	var known knownuser.Service
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		known = knownuser.NewRedisService(redisClient.Client)
		health["redis"] = redisClient.Health
		defer redisClient.Close()
	} else {
		log.Warn("redis not configured, using in-memory known-user store")
		known = knownuser.NewInMemoryService()
	}

	auditor, relayDone := buildAuditPipeline(ctx, cfg, log, pool)

	factory, err := actions.NewFactory(accountStore)
	if err != nil {
		log.Error("action factory wiring failed", "error", err)
		os.Exit(1)
	}

	visibility := profile.NewVisibility(accountStore, known, log, m)
	provider := profile.NewRegistryProvider(factory, accountStore, enablement, visibility, log, m)
	service := profile.NewService(accountStore, provider, visibility, auditor, log, m)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "facet", "facet-profile")

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Profiles:       service,
		Auth:           jwttoken.NewJWTServiceAdapter(jwtService),
		Logger:         log,
		Metrics:        m,
		AdminKeyHash:   cfg.AdminKeyHash,
		RequestTimeout: cfg.RequestTimeout,
		HealthChecks:   health,
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting facet profile service", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	// No new events after Shutdown; flush whatever the async buffer holds.
	auditor.Close()
	if relayDone != nil {
		<-relayDone
	}
}

// buildAuditPipeline picks the audit store and starts the outbox relay when
// both postgres and Kafka are configured. Without postgres, events stay in
// process memory.
func buildAuditPipeline(ctx context.Context, cfg config.Server, log *slog.Logger, pool *postgres.Pool) (*publisher.Publisher, <-chan struct{}) {
	if pool == nil {
		log.Warn("audit events held in memory, configure postgres for durable audit")
		return publisher.NewPublisher(auditmemory.NewInMemoryStore(), publisher.WithAsyncBuffer(256)), nil
	}

	// The outbox store rides on database/sql; the pgx pool stays dedicated to
	// the request path.
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.Error("audit outbox connection failed", "error", err)
		os.Exit(1)
	}
	store := auditpostgres.New(db)
	auditor := publisher.NewPublisher(store)

	sink, err := kafka.NewSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		log.Error("kafka sink setup failed", "error", err)
		os.Exit(1)
	}
	if sink == nil {
		log.Warn("kafka not configured, audit events stay in the outbox")
		return auditor, nil
	}

	if err := sink.EnsureTopic(ctx, 3, 1); err != nil {
		log.Error("audit topic creation failed", "error", err)
		os.Exit(1)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer sink.Close()
		if err := worker.NewRelay(store, sink, log).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit relay stopped", "error", err)
		}
	}()
	return auditor, done
}

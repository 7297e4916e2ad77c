// main wires the license service: stores, validation pipeline, workflow
// engine, audit relay and the HTTP surface. Business logic lives in
// internal/license; everything here is assembly.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ftf/internal/license/handler"
	"ftf/internal/license/metrics"
	"ftf/internal/license/ports"
	"ftf/internal/license/service"
	"ftf/internal/license/store/division"
	"ftf/internal/license/store/history"
	"ftf/internal/license/store/membership"
	"ftf/internal/license/store/request"
	"ftf/internal/license/validation"
	"ftf/internal/license/workflow"
	"ftf/internal/platform/config"
	"ftf/internal/platform/httpserver"
	"ftf/internal/platform/kafka"
	"ftf/internal/platform/logger"
	"ftf/internal/platform/middleware"
	"ftf/internal/platform/postgres"
	"ftf/internal/platform/redis"
	"ftf/pkg/platform/audit"
	auditmem "ftf/pkg/platform/audit/store/memory"
	auditpg "ftf/pkg/platform/audit/store/postgres"
	"ftf/pkg/platform/audit/publisher"
	"ftf/pkg/platform/audit/worker"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		requests    ports.RequestStore
		counter     ports.RosterCounter
		histories   ports.HistoryStore
		registry    ports.PersonRegistry
		ledger      ports.MembershipLedger
		resolver    ports.DivisionResolver
		txRunner    ports.TxRunner
		auditStore  audit.Store
		pgAudit     *auditpg.Store
		relayTarget bool
	)

	if cfg.PostgresDSN != "" {
		db, err := postgres.New(cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		requestStore := request.NewPostgres(db, cfg.Rules.DomesticNationality)
		membershipStore := membership.NewPostgres(db)
		requests, counter = requestStore, requestStore
		histories = history.NewPostgres(db)
		registry, ledger = membershipStore, membershipStore
		resolver = division.NewPostgres(db)
		txRunner = request.NewTxRunner(db)
		pgAudit = auditpg.New(db)
		auditStore = pgAudit
		relayTarget = true
		log.Info("running on postgres stores")
	} else {
		requestStore := request.NewMemory(cfg.Rules.DomesticNationality)
		membershipStore := membership.NewMemory()
		requests, counter = requestStore, requestStore
		histories = history.NewMemory()
		registry, ledger = membershipStore, membershipStore
		resolver = division.NewStatic()
		txRunner = request.NewMemoryTxRunner()
		auditStore = auditmem.NewInMemoryStore()
		log.Warn("no FTF_POSTGRES_DSN set, running on in-memory stores")
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		resolver = division.NewCached(resolver, redisClient, cfg.Redis.DivisionTTL, log)
		log.Info("division lookups served through redis cache")
	}

	auditPub := publisher.NewPublisher(auditStore, publisher.WithAsyncBuffer(256))
	defer auditPub.Close()

	if len(cfg.Kafka.Brokers) > 0 && relayTarget {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer producer.Close()

		if err := producer.EnsureTopic(ctx, 3, 1); err != nil {
			log.Error("audit topic setup failed", "error", err)
			os.Exit(1)
		}

		relay := worker.NewWorker(pgAudit, producer, log)
		go func() {
			if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("audit relay stopped", "error", err)
			}
		}()
		log.Info("audit outbox relay running", "topic", cfg.Kafka.AuditTopic)
	} else if len(cfg.Kafka.Brokers) > 0 {
		log.Warn("kafka brokers configured without postgres, audit relay disabled")
	}

	m := metrics.New()

	orchestrator := validation.NewOrchestrator(counter, registry, ledger, resolver, cfg.Rules, log)
	engine := workflow.NewEngine(requests, histories, txRunner, auditPub, log, workflow.WithMetrics(m))
	svc := service.New(orchestrator, engine, requests,
		service.WithLogger(log),
		service.WithAuditPublisher(auditPub),
		service.WithMetrics(m),
	)

	licenseHandler := handler.New(svc, log, handler.WithActorMiddleware(
		middleware.RequireActor(middleware.NewHMACValidator(cfg.JWTSigningKey), log)))

	router := chi.NewRouter()
	router.Use(middleware.RequestID, middleware.RequestTime, middleware.UserAgent)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	licenseHandler.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("license service listening", "addr", cfg.Addr, "env", cfg.Env)
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
}

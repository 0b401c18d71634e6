package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/loyaltyhub/loyalty-points/db/migrations"
	"github.com/loyaltyhub/loyalty-points/internal/cache"
	"github.com/loyaltyhub/loyalty-points/internal/config"
	httphandler "github.com/loyaltyhub/loyalty-points/internal/delivery/http"
	"github.com/loyaltyhub/loyalty-points/internal/delivery/kafka"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
	"github.com/loyaltyhub/loyalty-points/internal/insight"
	"github.com/loyaltyhub/loyalty-points/internal/repository"
	"github.com/loyaltyhub/loyalty-points/internal/telemetry"
	"github.com/loyaltyhub/loyalty-points/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()

	logger := telemetry.InitLogger(cfg.ServiceName, cfg.LogLevel)
	zerolog.DefaultContextLogger = &logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracerProvider(cfg.ServiceName, cfg.JaegerEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise tracing")
	}

	pool, err := initDB(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	schema := fs.FS(migrations.FS)
	if cfg.DBMigrations != "" {
		schema = os.DirFS(cfg.DBMigrations)
	}
	if err := repository.RunMigrations(ctx, pool, schema); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rules, err := insight.Load(cfg.InsightRulesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.InsightRulesFile).Msg("failed to load insight rules")
	}

	opts := []usecase.Option{
		usecase.WithInsights(rules),
		usecase.WithMetrics(telemetry.NewMetrics(prometheus.DefaultRegisterer)),
		usecase.WithStoreTimeout(cfg.StoreDeadline()),
		usecase.WithPolicy(domain.Policy{
			MaxPointsPerVisit:     cfg.MaxPoints(),
			DefaultPointsPerVisit: cfg.DefaultPoints(),
		}),
	}
	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDatabase())
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
		}
		defer client.Close()
		opts = append(opts, usecase.WithCache(cache.NewPointsCache(client, cfg.CacheExpiry())))
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheExpiry()).Msg("points cache enabled")
	}

	store := repository.New(pool)
	service := usecase.NewLoyaltyService(store, opts...)

	g, gctx := errgroup.WithContext(ctx)

	var gateway usecase.LoyaltyGateway
	var kafkaClients []*kgo.Client
	if cfg.EventDriven() {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		consumerClient, err := newConsumerClient(brokers, cfg.KafkaClientID, cfg.KafkaGroupID, kafka.RequestTopics...)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create kafka client")
		}
		kafkaClients = append(kafkaClients, consumerClient)

		if err := kafka.EnsureTopics(ctx, consumerClient, cfg); err != nil {
			log.Warn().Err(err).Msg("failed to ensure topics")
		}

		replyClient, err := newReplyClient(brokers, cfg.KafkaClientID+"-reply", kafka.ReplyTopic(cfg.KafkaInstanceID))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create reply kafka client")
		}
		kafkaClients = append(kafkaClients, replyClient)

		kgateway := kafka.NewGateway(consumerClient, cfg.KafkaInstanceID)
		gateway = kgateway

		consumer := kafka.NewConsumer(consumerClient, service)
		g.Go(func() error {
			consumer.Start(gctx)
			return nil
		})
		g.Go(func() error {
			pollReplies(gctx, replyClient, kgateway)
			return nil
		})
		log.Info().Strs("brokers", brokers).Str("instance", cfg.KafkaInstanceID).Msg("event-driven writes enabled")
	} else {
		gateway = kafka.NewDirectGateway(service)
	}

	handler := httphandler.NewHandler(service, gateway)

	r := chi.NewRouter()
	r.Use(telemetry.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	handler.Routes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		log.Info().Str("port", cfg.AppPort).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown error")
		}
		for _, client := range kafkaClients {
			client.Close()
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("tracer shutdown error")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("service stopped with error")
		return
	}
	log.Info().Msg("shutdown complete")
}

func initDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

func newConsumerClient(brokers []string, clientID, groupID string, topics ...string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.ConsumerGroup(groupID),
		kgo.ConsumeTopics(topics...),
		kgo.DisableAutoCommit(),
	)
}

func newReplyClient(brokers []string, clientID, topic string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtEnd()),
	)
}

func pollReplies(ctx context.Context, client *kgo.Client, gateway *kafka.Gateway) {
	for {
		fetches := client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return
		}
		iter := fetches.RecordIter()
		for !iter.Done() {
			gateway.HandleResponse(iter.Next().Value)
		}
	}
}

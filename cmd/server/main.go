package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/config"
	"github.com/vogiaan1904/ticketbottle-counter/internal/broadcast"
	"github.com/vogiaan1904/ticketbottle-counter/internal/counter"
	grpcSvc "github.com/vogiaan1904/ticketbottle-counter/internal/delivery/grpc"
	httpDelivery "github.com/vogiaan1904/ticketbottle-counter/internal/delivery/http"
	"github.com/vogiaan1904/ticketbottle-counter/internal/delivery/kafka/consumer"
	"github.com/vogiaan1904/ticketbottle-counter/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/ticketbottle-counter/internal/infra/redis"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	repo "github.com/vogiaan1904/ticketbottle-counter/internal/repository/redis"
	"github.com/vogiaan1904/ticketbottle-counter/internal/service"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/clock"
	pkgKafka "github.com/vogiaan1904/ticketbottle-counter/pkg/kafka"
	pkgLog "github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{
		Level:    cfg.Log.Level,
		Mode:     cfg.Log.Mode,
		Encoding: cfg.Log.Encoding,
	})
	defer l.Sync()

	shutdownTelemetry := telemetry.Setup(ctx, cfg.Telemetry, l)
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			l.Warnf(context.Background(), "Failed to flush traces: %v", err)
		}
	}()

	loc, err := cfg.Counter.Location()
	if err != nil {
		l.Fatalf(ctx, "Failed to resolve timezone: %v", err)
	}

	clk := clock.Real()
	engine := counter.New(counter.Config{
		Seats:               cfg.Counter.Seats,
		SessionMinutes:      float64(cfg.Counter.SessionMinutes),
		WaitMinutes:         float64(cfg.Counter.WaitMinutes),
		AverageWindow:       cfg.Counter.AverageWindow,
		CallHistoryLimit:    cfg.Counter.CallHistoryLimit,
		SkippedHistoryLimit: cfg.Counter.SkippedHistoryLimit,
		ArchiveLimit:        cfg.Counter.ArchiveLimit,
		Location:            loc,
		Settings:            models.Settings{
			ShowEstimatedWaitTime: cfg.Counter.ShowEstimatedWaitTime,
			ShowPersonalStatus:    cfg.Counter.ShowPersonalStatus,
		},
	}, clk.Now())

	// Redis keeps preferences and the statistics archive across restarts.
	var (
		settingsRepo repo.SettingsRepository
		statsRepo    repo.StatisticsRepository
	)
	if cfg.Redis.Enabled {
		redisCli, err := redis.Connect(ctx, cfg.Redis, l)
		if err != nil {
			l.Fatalf(ctx, "Failed to connect to Redis: %v", err)
		}
		defer redis.Disconnect(context.Background(), redisCli, l)

		settingsRepo = repo.NewRedisSettingsRepository(redisCli, l)
		statsRepo = repo.NewRedisStatisticsRepository(redisCli, cfg.Counter.ArchiveLimit, l)
	}

	var prod producer.Producer
	if cfg.Kafka.Enabled {
		kafkaSyncProd, err := pkgKafka.NewProducer(pkgKafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			ClientID:     cfg.Kafka.ClientID,
			RetryMax:     cfg.Kafka.ProducerRetryMax,
			RequiredAcks: cfg.Kafka.ProducerRequiredAcks,
		})
		if err != nil {
			l.Fatalf(ctx, "Failed to initialize Kafka producer: %v", err)
		}
		prod = producer.NewProducer(kafkaSyncProd, l)
		defer prod.Close()
	}

	hub := broadcast.NewHub(l)
	defer hub.Close()

	svc := service.NewCounterService(engine, clk, hub, prod, settingsRepo, statsRepo, l, cfg.Counter.ObserverBuffer)
	if err := svc.Restore(ctx); err != nil {
		l.Warnf(ctx, "Failed to restore persisted state: %v", err)
	}

	sched := service.NewRolloverScheduler(svc, l, service.SchedulerConfig{
		CheckInterval: cfg.Counter.RolloverCheckInterval,
	})
	if err := sched.Start(ctx); err != nil {
		l.Fatalf(ctx, "Failed to start rollover scheduler: %v", err)
	}

	if cfg.Kafka.Enabled {
		kafkaConsGr, err := pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{
			Brokers:    cfg.Kafka.Brokers,
			GroupID:    cfg.Kafka.ConsumerGroupID,
			ClientID:   cfg.Kafka.ClientID,
			FromOldest: cfg.Kafka.ConsumerFromOldest,
		})
		if err != nil {
			l.Fatalf(ctx, "Failed to initialize Kafka consumer: %v", err)
		}
		cons := consumer.NewConsumer(kafkaConsGr, svc, l)
		if err := cons.Start(ctx); err != nil {
			l.Fatalf(ctx, "Failed to start Kafka consumer: %v", err)
		}
		defer func() {
			if err := cons.Close(); err != nil {
				l.Warnf(context.Background(), "Failed to close Kafka consumer: %v", err)
			}
		}()
	}

	// gRPC server
	lnr, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRpcPort))
	if err != nil {
		l.Fatalf(ctx, "gRPC server failed to listen: %v", err)
	}

	gRpcSrv := grpc.NewServer()
	grpcSvc.RegisterCounterServiceServer(gRpcSrv, grpcSvc.NewGrpcService(svc, l))
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(grpcSvc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gRpcSrv, healthSrv)

	// HTTP server
	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      otelhttp.NewHandler(httpDelivery.NewRouter(httpDelivery.NewHTTPHandler(svc, sched, l), l), cfg.Telemetry.ServiceName),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.Infof(ctx, "gRPC server is listening on port: %d", cfg.Server.GRpcPort)
		if err := gRpcSrv.Serve(lnr); err != nil {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		l.Infof(ctx, "HTTP server is listening on port: %d", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve HTTP: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		l.Info(context.Background(), "Server shutting down...")

		healthSrv.Shutdown()
		if err := sched.Stop(); err != nil {
			l.Warnf(context.Background(), "Failed to stop rollover scheduler: %v", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			l.Warnf(shutdownCtx, "HTTP shutdown: %v", err)
		}

		// Open Watch streams end when their observers are dropped.
		hub.Close()
		gRpcSrv.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		l.Errorf(context.Background(), "Server stopped with error: %v", err)
	}

	l.Info(context.Background(), "Server exited")
}

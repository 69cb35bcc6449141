package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"safewatch-data/internal/config"
	"safewatch-data/internal/database"
	"safewatch-data/internal/httpapi"
	"safewatch-data/internal/logger"
	"safewatch-data/internal/mqttbridge"
	"safewatch-data/internal/repository"
	"safewatch-data/internal/service"
	"safewatch-data/internal/stream"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format, "safewatch-data")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	// Snapshot "today" follows the deployment timezone.
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		time.Local = loc
	} else {
		zl.Warn("invalid timezone, using system default", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	devicesRepo := repository.NewPostgresDevicesRepository(db)
	telemetryRepo := repository.NewPostgresTelemetryRepository(db)
	activitiesRepo := repository.NewPostgresActivitiesRepository(db)
	fallsRepo := repository.NewPostgresFallsRepository(db)
	systemLogsRepo := repository.NewPostgresSystemLogsRepository(db)

	// Optional telemetry mirror onto a Redis Stream.
	var publisher service.EventPublisher
	if cfg.Redis.Enabled {
		redisClient := stream.NewClient(&cfg.Redis)
		defer redisClient.Close()
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := stream.Ping(pingCtx, redisClient); err != nil {
			zl.Warn("redis unreachable, stream mirror disabled", zap.Error(err))
		} else {
			publisher = stream.NewPublisher(redisClient, cfg.Redis.Stream, zl)
			zl.Info("telemetry stream mirror enabled", zap.String("stream", cfg.Redis.Stream))
		}
		pingCancel()
	}

	tracker := service.NewActivityTracker(activitiesRepo, zl)
	notifier := service.NewFallNotifier(devicesRepo, fallsRepo, zl)
	ingest := service.NewIngestService(devicesRepo, telemetryRepo, fallsRepo, systemLogsRepo,
		tracker, notifier, publisher, zl)
	snapshots := service.NewSnapshotService(devicesRepo, telemetryRepo, activitiesRepo, fallsRepo, zl)

	router := httpapi.NewRouter(zl)
	router.RegisterTelemetryRoutes(httpapi.NewTelemetryHandler(ingest, zl))
	router.RegisterSnapshotRoutes(httpapi.NewSnapshotHandler(snapshots, cfg.DefaultDeviceID, zl))
	router.RegisterHealthRoutes(httpapi.NewHealthHandler(db, zl))

	srv := service.NewServer(cfg.HTTP.Addr, router, zl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional device-side MQTT ingestion.
	var bridge *mqttbridge.Bridge
	if cfg.MQTT.Enabled {
		bridge = mqttbridge.New(&cfg.MQTT, ingest, zl)
		go func() {
			if err := bridge.Start(ctx); err != nil {
				zl.Error("MQTT bridge failed", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		if err != nil {
			zl.Error("HTTP server error", zap.Error(err))
		}
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if bridge != nil {
		bridge.Stop()
	}
}

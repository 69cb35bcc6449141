// Package stream mirrors accepted telemetry onto a Redis Stream so
// downstream consumers (dashboards, alert pipelines) can tail the feed
// without touching PostgreSQL.
package stream

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"safewatch-data/internal/config"
	"safewatch-data/internal/domain"
)

// Publisher appends telemetry events to a Redis Stream. Publishing is
// best-effort: a Redis outage must never fail an ingest request.
type Publisher struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

func NewClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewPublisher(client *redis.Client, stream string, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, stream: stream, logger: logger}
}

// Publish appends one event. Errors are logged and swallowed.
func (p *Publisher) Publish(ctx context.Context, ev *domain.TelemetryEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Warn("stream publish: marshal failed",
			zap.String("device_id", ev.DeviceID),
			zap.Error(err))
		return
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"data_type": ev.DataType,
			"device_id": ev.DeviceID,
			"payload":   string(payload),
			"timestamp": time.Now().Unix(),
		},
	}).Result()
	if err != nil {
		p.logger.Warn("stream publish failed",
			zap.String("stream", p.stream),
			zap.String("device_id", ev.DeviceID),
			zap.Error(err))
		return
	}

	p.logger.Debug("event mirrored to stream",
		zap.String("stream", p.stream),
		zap.String("id", id))
}

// Ping verifies the Redis connection at startup.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}

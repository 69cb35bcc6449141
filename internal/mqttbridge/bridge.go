// Package mqttbridge feeds telemetry published by devices over MQTT
// into the same ingestion pipeline the HTTP endpoint uses. Wearables on
// flaky cellular links prefer MQTT; the bridge is optional and off by
// default.
package mqttbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"safewatch-data/internal/config"
	"safewatch-data/internal/domain"
	"safewatch-data/internal/service"
)

const processTimeout = 10 * time.Second

// Ingestor is the slice of the ingestion service the bridge needs.
type Ingestor interface {
	Process(ctx context.Context, ev *domain.TelemetryEvent) (*service.IngestResult, error)
}

// Bridge subscribes to a telemetry topic and dispatches each message.
type Bridge struct {
	cfg    *config.MQTTConfig
	client mqtt.Client
	ingest Ingestor
	logger *zap.Logger
}

func New(cfg *config.MQTTConfig, ingest Ingestor, logger *zap.Logger) *Bridge {
	return &Bridge{cfg: cfg, ingest: ingest, logger: logger}
}

// Start connects to the broker and subscribes. Blocks until ctx is done.
func (b *Bridge) Start(ctx context.Context) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(b.cfg.Broker)
	opts.SetClientID(b.cfg.ClientID)
	if b.cfg.Username != "" {
		opts.SetUsername(b.cfg.Username)
	}
	if b.cfg.Password != "" {
		opts.SetPassword(b.cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	b.client = mqtt.NewClient(opts)
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	if token := b.client.Subscribe(b.cfg.Topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
		b.HandleMessage(msg.Topic(), msg.Payload())
	}); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", b.cfg.Topic, token.Error())
	}

	b.logger.Info("MQTT bridge started",
		zap.String("broker", b.cfg.Broker),
		zap.String("topic", b.cfg.Topic))

	<-ctx.Done()
	return nil
}

// Stop unsubscribes and disconnects.
func (b *Bridge) Stop() {
	if b.client == nil {
		return
	}
	if token := b.client.Unsubscribe(b.cfg.Topic); token.Wait() && token.Error() != nil {
		b.logger.Error("failed to unsubscribe", zap.Error(token.Error()))
	}
	b.client.Disconnect(250)
	b.logger.Info("MQTT bridge stopped")
}

// HandleMessage decodes one published envelope and runs it through the
// ingestion pipeline. Bad input is logged and dropped: there is no
// requester to answer over MQTT.
func (b *Bridge) HandleMessage(topic string, payload []byte) {
	var ev domain.TelemetryEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		b.logger.Warn("mqtt: invalid telemetry payload",
			zap.String("topic", topic),
			zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	res, err := b.ingest.Process(ctx, &ev)
	if err != nil {
		if domain.IsValidation(err) {
			b.logger.Warn("mqtt: telemetry rejected",
				zap.String("topic", topic),
				zap.String("device_id", ev.DeviceID),
				zap.Error(err))
		} else {
			b.logger.Error("mqtt: telemetry processing failed",
				zap.String("topic", topic),
				zap.String("device_id", ev.DeviceID),
				zap.Error(err))
		}
		return
	}

	b.logger.Debug("mqtt: telemetry accepted",
		zap.String("device_id", ev.DeviceID),
		zap.String("data_type", ev.DataType),
		zap.String("message", res.Message))
}

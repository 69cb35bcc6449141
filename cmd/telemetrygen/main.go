// telemetrygen simulates a wearable: it posts IMU noise, GPS drift,
// activity changes and the occasional fall, obstacle and battery report
// against a running safewatch-data instance.
package main

import (
	"context"
	"flag"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	apiURL       = flag.String("api", "http://localhost:8080", "safewatch-data base URL")
	deviceID     = flag.String("device", "SAFE-001", "Device ID to report as")
	interval     = flag.Duration("interval", 2*time.Second, "Delay between telemetry posts")
	fallProb     = flag.Float64("fall", 0.02, "Probability of a fall event per tick (0.0-1.0)")
	obstacleProb = flag.Float64("obstacle", 0.05, "Probability of an obstacle detection per tick (0.0-1.0)")
)

var activityKinds = []string{"standing", "walking", "sitting", "sleeping"}

type generator struct {
	deviceID string
	lat      float64
	lon      float64
	battery  int
	activity string
	rng      *rand.Rand
	logger   *zap.Logger
}

func newGenerator(deviceID string, logger *zap.Logger) *generator {
	return &generator{
		deviceID: deviceID,
		// Surabaya, matching the backend's fallback coordinate
		lat:      -7.250445,
		lon:      112.768845,
		battery:  100,
		activity: "standing",
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   logger,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// sensorPayload IMU noise around gravity on the Z axis.
func (g *generator) sensorPayload() map[string]any {
	return map[string]any{
		"data_type": "sensor",
		"device_id": g.deviceID,
		"sensor_id": 1,
		"acc_x":     round((g.rng.Float64()-0.5)*0.4, 3),
		"acc_y":     round((g.rng.Float64()-0.5)*0.4, 3),
		"acc_z":     round(9.8+(g.rng.Float64()-0.5)*0.3, 3),
		"gyro_x":    round((g.rng.Float64()-0.5)*0.1, 3),
		"gyro_y":    round((g.rng.Float64()-0.5)*0.1, 3),
		"gyro_z":    round((g.rng.Float64()-0.5)*0.1, 3),
	}
}

// gpsPayload random walk around the current position.
func (g *generator) gpsPayload() map[string]any {
	g.lat += (g.rng.Float64() - 0.5) * 0.0004
	g.lon += (g.rng.Float64() - 0.5) * 0.0004
	return map[string]any{
		"data_type": "gps",
		"device_id": g.deviceID,
		"latitude":  round(g.lat, 6),
		"longitude": round(g.lon, 6),
		"accuracy":  round(3.0+g.rng.Float64()*12.0, 1),
	}
}

func (g *generator) activityPayload() map[string]any {
	if g.rng.Float64() < 0.3 {
		g.activity = activityKinds[g.rng.Intn(len(activityKinds))]
	}
	return map[string]any{
		"data_type":     "activity",
		"device_id":     g.deviceID,
		"activity_type": g.activity,
		"confidence":    round(0.7+g.rng.Float64()*0.3, 2),
	}
}

func (g *generator) fallPayload() map[string]any {
	return map[string]any{
		"data_type":  "fall_detection",
		"device_id":  g.deviceID,
		"confidence": round(0.6+g.rng.Float64()*0.4, 2),
		"latitude":   round(g.lat, 6),
		"longitude":  round(g.lon, 6),
	}
}

func (g *generator) obstaclePayload() map[string]any {
	classes := []string{"chair", "table", "door", "stairs", "person"}
	x1 := g.rng.Intn(400)
	y1 := g.rng.Intn(300)
	return map[string]any{
		"data_type":    "obstacle",
		"device_id":    g.deviceID,
		"object_class": classes[g.rng.Intn(len(classes))],
		"confidence":   round(0.5+g.rng.Float64()*0.5, 2),
		"bbox":         []int{x1, y1, x1 + 50 + g.rng.Intn(150), y1 + 50 + g.rng.Intn(150)},
		"distance":     round(0.3+g.rng.Float64()*4.0, 2),
	}
}

func (g *generator) batteryPayload() map[string]any {
	if g.battery > 0 && g.rng.Float64() < 0.5 {
		g.battery--
	}
	return map[string]any{
		"data_type":     "battery",
		"device_id":     g.deviceID,
		"battery_level": g.battery,
	}
}

// next picks the payload for this tick. Sensor and GPS dominate;
// falls and obstacles fire on their configured probabilities.
func (g *generator) next() map[string]any {
	switch {
	case g.rng.Float64() < *fallProb:
		return g.fallPayload()
	case g.rng.Float64() < *obstacleProb:
		return g.obstaclePayload()
	default:
		switch g.rng.Intn(5) {
		case 0:
			return g.gpsPayload()
		case 1:
			return g.activityPayload()
		case 2:
			return g.batteryPayload()
		default:
			return g.sensorPayload()
		}
	}
}

func main() {
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	logger.Info("telemetry generator started",
		zap.String("api", *apiURL),
		zap.String("device_id", *deviceID),
		zap.Duration("interval", *interval))
	logger.Info("Press Ctrl+C to stop")

	client := resty.New().
		SetBaseURL(*apiURL).
		SetTimeout(10 * time.Second)

	gen := newGenerator(*deviceID, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	var sent, failed int
	for {
		select {
		case <-ctx.Done():
			logger.Info("generator stopped", zap.Int("sent", sent), zap.Int("failed", failed))
			return
		case <-ticker.C:
			payload := gen.next()
			resp, err := client.R().
				SetContext(ctx).
				SetHeader("Content-Type", "application/json").
				SetBody(payload).
				Post("/api/v1/telemetry")
			if err != nil {
				failed++
				logger.Warn("post failed", zap.Error(err))
				continue
			}
			if resp.IsError() {
				failed++
				logger.Warn("telemetry rejected",
					zap.Int("status", resp.StatusCode()),
					zap.String("body", resp.String()))
				continue
			}
			sent++
			logger.Debug("telemetry sent",
				zap.Any("data_type", payload["data_type"]),
				zap.Int("status", resp.StatusCode()))
		}
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"safewatch-data/internal/domain"
	"safewatch-data/internal/repository"
)

// EventPublisher mirrors accepted telemetry to downstream consumers.
// Implementations must be best-effort; Publish never fails the request.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.TelemetryEvent)
}

// IngestResult handler outcome returned to the transport layer.
type IngestResult struct {
	Message string
	Data    map[string]any
}

// IngestService validates inbound telemetry envelopes and routes them to
// the per-type handlers. Each handler performs one primary write (or the
// short close+open sequence for activity changes); handler faults are
// recorded in the system log before being surfaced.
type IngestService struct {
	devices    repository.DevicesRepository
	telemetry  repository.TelemetryRepository
	falls      repository.FallsRepository
	systemLogs repository.SystemLogsRepository
	tracker    *ActivityTracker
	notifier   *FallNotifier
	publisher  EventPublisher
	logger     *zap.Logger
	now        func() time.Time
}

// NewIngestService creates the dispatcher. publisher may be nil when no
// stream mirroring is configured.
func NewIngestService(
	devices repository.DevicesRepository,
	telemetry repository.TelemetryRepository,
	falls repository.FallsRepository,
	systemLogs repository.SystemLogsRepository,
	tracker *ActivityTracker,
	notifier *FallNotifier,
	publisher EventPublisher,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		devices:    devices,
		telemetry:  telemetry,
		falls:      falls,
		systemLogs: systemLogs,
		tracker:    tracker,
		notifier:   notifier,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

// Process dispatches one decoded telemetry envelope.
func (s *IngestService) Process(ctx context.Context, ev *domain.TelemetryEvent) (*IngestResult, error) {
	if ev.DataType == "" || ev.DeviceID == "" {
		return nil, domain.NewValidationError("Missing required fields: data_type and device_id")
	}

	var (
		res *IngestResult
		err error
	)
	switch ev.DataType {
	case domain.DataTypeSensor:
		res, err = s.handleSensor(ctx, ev)
	case domain.DataTypeGPS:
		res, err = s.handleGPS(ctx, ev)
	case domain.DataTypeFall:
		res, err = s.handleFall(ctx, ev)
	case domain.DataTypeActivity:
		res, err = s.handleActivity(ctx, ev)
	case domain.DataTypeObstacle:
		res, err = s.handleObstacle(ctx, ev)
	case domain.DataTypeBattery:
		res, err = s.handleBattery(ctx, ev)
	default:
		return nil, domain.NewValidationError("Unknown data_type: %s", ev.DataType)
	}

	if err != nil {
		if !domain.IsValidation(err) {
			s.recordFault(ctx, ev.DeviceID, ev.DataType, err)
		}
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, ev)
	}
	return res, nil
}

// recordFault appends an error row to the diagnostic trail. The trail
// itself is best-effort: a failing log write must not mask the original
// handler error.
func (s *IngestService) recordFault(ctx context.Context, deviceID, dataType string, cause error) {
	msg := fmt.Sprintf("Error processing %s: %v", dataType, cause)
	if err := s.systemLogs.Insert(ctx, deviceID, domain.LogError, msg, s.now()); err != nil {
		s.logger.Warn("failed to record ingestion fault",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
	}
}

func (s *IngestService) handleSensor(ctx context.Context, ev *domain.TelemetryEvent) (*IngestResult, error) {
	reading := &domain.SensorReading{
		DeviceID:  ev.DeviceID,
		SensorID:  intOr(ev.SensorID, 1),
		AccX:      floatOr(ev.AccX, 0),
		AccY:      floatOr(ev.AccY, 0),
		AccZ:      floatOr(ev.AccZ, 0),
		GyroX:     floatOr(ev.GyroX, 0),
		GyroY:     floatOr(ev.GyroY, 0),
		GyroZ:     floatOr(ev.GyroZ, 0),
		Timestamp: s.now(),
	}

	id, err := s.telemetry.InsertSensorReading(ctx, reading)
	if err != nil {
		return nil, err
	}
	return &IngestResult{
		Message: "Sensor data saved successfully",
		Data:    map[string]any{"id": id},
	}, nil
}

func (s *IngestService) handleGPS(ctx context.Context, ev *domain.TelemetryEvent) (*IngestResult, error) {
	if ev.Latitude == nil || ev.Longitude == nil {
		return nil, domain.NewValidationError("Missing GPS coordinates")
	}

	fix := &domain.GPSFix{
		DeviceID:  ev.DeviceID,
		Latitude:  *ev.Latitude,
		Longitude: *ev.Longitude,
		Accuracy:  ev.Accuracy,
		Timestamp: s.now(),
	}

	id, err := s.telemetry.InsertGPSFix(ctx, fix)
	if err != nil {
		return nil, err
	}
	return &IngestResult{
		Message: "GPS data saved successfully",
		Data: map[string]any{
			"id":        id,
			"latitude":  fix.Latitude,
			"longitude": fix.Longitude,
		},
	}, nil
}

func (s *IngestService) handleFall(ctx context.Context, ev *domain.TelemetryEvent) (*IngestResult, error) {
	confidence := floatOr(ev.Confidence, 0)
	fall := &domain.FallEvent{
		DeviceID:   ev.DeviceID,
		Latitude:   ev.Latitude,
		Longitude:  ev.Longitude,
		Confidence: confidence,
		Severity:   domain.SeverityForConfidence(confidence),
		Status:     domain.FallDetected,
		DetectedAt: s.now(),
	}

	fallID, err := s.falls.InsertFallEvent(ctx, fall)
	if err != nil {
		return nil, err
	}

	// The fall write is durable from here on; the critical trail entry
	// and the notification record are both best-effort.
	msg := fmt.Sprintf("FALL DETECTED! Confidence: %.2f", confidence)
	if err := s.systemLogs.Insert(ctx, ev.DeviceID, domain.LogCritical, msg, s.now()); err != nil {
		s.logger.Warn("failed to record fall in system log",
			zap.String("device_id", ev.DeviceID),
			zap.Error(err),
		)
	}

	sent := s.notifier.Notify(ctx, fallID, ev.DeviceID)

	return &IngestResult{
		Message: "Fall event recorded successfully",
		Data: map[string]any{
			"fall_id":           fallID,
			"severity":          string(fall.Severity),
			"notification_sent": sent,
		},
	}, nil
}

func (s *IngestService) handleActivity(ctx context.Context, ev *domain.TelemetryEvent) (*IngestResult, error) {
	kind, ok := domain.ParseActivityKind(strOr(ev.ActivityType, string(domain.ActivityUnknown)))
	if !ok {
		return nil, domain.NewValidationError("Invalid activity type")
	}

	track, err := s.tracker.Track(ctx, ev.DeviceID, kind, floatOr(ev.Confidence, 0))
	if err != nil {
		return nil, err
	}

	switch track.Status {
	case TrackStarted:
		return &IngestResult{
			Message: "New activity started",
			Data: map[string]any{
				"activity_type": string(track.Current),
				"id":            track.IntervalID,
			},
		}, nil
	case TrackContinued:
		return &IngestResult{
			Message: "Activity continues",
			Data: map[string]any{
				"current_activity": string(track.Current),
				"id":               track.IntervalID,
			},
		}, nil
	default:
		return &IngestResult{
			Message: "Activity changed successfully",
			Data: map[string]any{
				"previous_activity": string(track.Previous),
				"new_activity":      string(track.Current),
				"new_id":            track.IntervalID,
			},
		}, nil
	}
}

func (s *IngestService) handleObstacle(ctx context.Context, ev *domain.TelemetryEvent) (*IngestResult, error) {
	det := &domain.ObstacleDetection{
		DeviceID:    ev.DeviceID,
		ObjectClass: strOr(ev.ObjectClass, "unknown"),
		Confidence:  floatOr(ev.Confidence, 0),
		Distance:    ev.Distance,
		Timestamp:   s.now(),
	}
	det.BBoxX1, det.BBoxY1, det.BBoxX2, det.BBoxY2 = bboxCoords(ev.BBox)

	id, err := s.telemetry.InsertObstacleDetection(ctx, det)
	if err != nil {
		return nil, err
	}

	if det.Distance != nil && *det.Distance < domain.NearObstacleDistanceMeters {
		msg := fmt.Sprintf("Obstacle detected nearby: %s at %gm", det.ObjectClass, *det.Distance)
		if err := s.systemLogs.Insert(ctx, ev.DeviceID, domain.LogWarning, msg, s.now()); err != nil {
			s.logger.Warn("failed to record obstacle warning", zap.Error(err))
		}
	}

	return &IngestResult{
		Message: "Obstacle detection saved",
		Data:    map[string]any{"id": id},
	}, nil
}

func (s *IngestService) handleBattery(ctx context.Context, ev *domain.TelemetryEvent) (*IngestResult, error) {
	level := intOr(ev.BatteryLevel, 100)

	if err := s.devices.UpdateBatteryLevel(ctx, ev.DeviceID, level, s.now()); err != nil {
		return nil, err
	}

	if level < domain.LowBatteryThreshold {
		msg := fmt.Sprintf("Low battery: %d%%", level)
		if err := s.systemLogs.Insert(ctx, ev.DeviceID, domain.LogWarning, msg, s.now()); err != nil {
			s.logger.Warn("failed to record low battery warning", zap.Error(err))
		}
	}

	return &IngestResult{
		Message: "Battery level updated",
		Data:    map[string]any{"battery_level": level},
	}, nil
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// strOr defaults only a missing field; an explicit empty string is the
// client's value and passes through unchanged.
func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// bboxCoords pads or truncates the device's [x1, y1, x2, y2] sequence to
// exactly four coordinates, missing elements defaulting to 0.
func bboxCoords(bbox []float64) (int, int, int, int) {
	var c [4]int
	for i := 0; i < len(bbox) && i < 4; i++ {
		c[i] = int(bbox[i])
	}
	return c[0], c[1], c[2], c[3]
}

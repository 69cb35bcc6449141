package domain

import "time"

// ActivityKind classified activity reported by the wearable.
type ActivityKind string

const (
	ActivityStanding ActivityKind = "standing"
	ActivityWalking  ActivityKind = "walking"
	ActivitySitting  ActivityKind = "sitting"
	ActivitySleeping ActivityKind = "sleeping"
	ActivityUnknown  ActivityKind = "unknown"
)

// ParseActivityKind validates a raw activity label from the device.
func ParseActivityKind(s string) (ActivityKind, bool) {
	switch ActivityKind(s) {
	case ActivityStanding, ActivityWalking, ActivitySitting, ActivitySleeping, ActivityUnknown:
		return ActivityKind(s), true
	}
	return "", false
}

// Valid reports whether the kind is one of the recognized activity labels.
func (k ActivityKind) Valid() bool {
	_, ok := ParseActivityKind(string(k))
	return ok
}

// Severity three-tier fall classification derived from detection confidence.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// FallStatus fall event lifecycle. Ingestion only ever writes detected;
// acknowledged/resolved are set by caregiver tooling outside this service.
type FallStatus string

const (
	FallDetected     FallStatus = "detected"
	FallAcknowledged FallStatus = "acknowledged"
	FallResolved     FallStatus = "resolved"
)

// LogLevel system log entry level.
type LogLevel string

const (
	LogInfo     LogLevel = "info"
	LogWarning  LogLevel = "warning"
	LogError    LogLevel = "error"
	LogCritical LogLevel = "critical"
)

// Notification channel and delivery status written by the fall notifier.
// Delivery is recorded-intent only, no real push happens in this service.
const (
	NotificationChannelPush = "push"
	NotificationStatusSent  = "sent"
	NotificationRecipientUnknown = "unknown"
)

// Telemetry thresholds that trigger diagnostic system log entries.
const (
	LowBatteryThreshold        = 20
	NearObstacleDistanceMeters = 1.0
)

// Default coordinate reported when a device has no GPS fix on record.
const (
	DefaultLatitude  = -7.250445
	DefaultLongitude = 112.768845
)

// Device a registered wearable unit and the elderly wearer's profile.
type Device struct {
	DeviceID         string    `json:"device_id"`
	Name             string    `json:"name"`
	Age              int       `json:"age"`
	EmergencyContact string    `json:"emergency_contact"`
	MedicalCondition string    `json:"medical_condition"`
	BatteryLevel     int       `json:"battery_level"`
	IsActive         bool      `json:"is_active"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SensorReading one IMU sample (3-axis accelerometer + 3-axis gyroscope).
type SensorReading struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"device_id"`
	SensorID  int       `json:"sensor_id"`
	AccX      float64   `json:"acc_x"`
	AccY      float64   `json:"acc_y"`
	AccZ      float64   `json:"acc_z"`
	GyroX     float64   `json:"gyro_x"`
	GyroY     float64   `json:"gyro_y"`
	GyroZ     float64   `json:"gyro_z"`
	Timestamp time.Time `json:"timestamp"`
}

// GPSFix one GPS position report.
type GPSFix struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"device_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  *float64  `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityInterval a contiguous span during which the classified activity
// was constant. EndTime is nil while the interval is open; DurationSeconds
// is only set when the interval is closed.
type ActivityInterval struct {
	ID              string       `json:"id"`
	DeviceID        string       `json:"device_id"`
	ActivityType    ActivityKind `json:"activity_type"`
	Confidence      float64      `json:"confidence"`
	StartTime       time.Time    `json:"start_time"`
	EndTime         *time.Time   `json:"end_time"`
	DurationSeconds *int64       `json:"duration_seconds"`
}

// FallEvent one detected fall. Location is nullable, the device may not
// have a fix at detection time.
type FallEvent struct {
	ID         string     `json:"id"`
	DeviceID   string     `json:"device_id"`
	Latitude   *float64   `json:"latitude"`
	Longitude  *float64   `json:"longitude"`
	Confidence float64    `json:"confidence"`
	Severity   Severity   `json:"severity"`
	Status     FallStatus `json:"status"`
	DetectedAt time.Time  `json:"detected_at"`
}

// ObstacleDetection one object-detection result from the vision pipeline.
type ObstacleDetection struct {
	ID          string    `json:"id"`
	DeviceID    string    `json:"device_id"`
	ObjectClass string    `json:"object_class"`
	Confidence  float64   `json:"confidence"`
	BBoxX1      int       `json:"bbox_x1"`
	BBoxY1      int       `json:"bbox_y1"`
	BBoxX2      int       `json:"bbox_x2"`
	BBoxY2      int       `json:"bbox_y2"`
	Distance    *float64  `json:"distance"`
	Timestamp   time.Time `json:"timestamp"`
}

// NotificationLog record of notification intent for one fall event.
type NotificationLog struct {
	ID          string    `json:"id"`
	FallEventID string    `json:"fall_event_id"`
	Channel     string    `json:"channel"`
	Recipient   string    `json:"recipient"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// SystemLogEntry append-only diagnostic trail entry.
type SystemLogEntry struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"device_id"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

package domain

// Telemetry data_type values accepted by the ingestion endpoint.
const (
	DataTypeSensor   = "sensor"
	DataTypeGPS      = "gps"
	DataTypeFall     = "fall_detection"
	DataTypeActivity = "activity"
	DataTypeObstacle = "obstacle"
	DataTypeBattery  = "battery"
)

// TelemetryEvent decoded ingestion envelope. Type-specific fields are
// pointers so handlers can tell "absent" from zero and apply the
// documented defaults.
type TelemetryEvent struct {
	DataType string `json:"data_type"`
	DeviceID string `json:"device_id"`

	// sensor
	SensorID *int     `json:"sensor_id,omitempty"`
	AccX     *float64 `json:"acc_x,omitempty"`
	AccY     *float64 `json:"acc_y,omitempty"`
	AccZ     *float64 `json:"acc_z,omitempty"`
	GyroX    *float64 `json:"gyro_x,omitempty"`
	GyroY    *float64 `json:"gyro_y,omitempty"`
	GyroZ    *float64 `json:"gyro_z,omitempty"`

	// gps + fall_detection
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`

	// fall_detection + activity + obstacle
	Confidence *float64 `json:"confidence,omitempty"`

	// activity
	ActivityType *string `json:"activity_type,omitempty"`

	// obstacle
	ObjectClass *string   `json:"object_class,omitempty"`
	BBox        []float64 `json:"bbox,omitempty"`
	Distance    *float64  `json:"distance,omitempty"`

	// battery
	BatteryLevel *int `json:"battery_level,omitempty"`
}

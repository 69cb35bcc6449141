package domain

import "time"

// Snapshot aggregated latest-state view consumed by the dashboard.
type Snapshot struct {
	DeviceInfo      *Device         `json:"device_info"`
	GPS             GPSStatus       `json:"gps"`
	CurrentActivity CurrentActivity `json:"current_activity"`
	TodayFalls      TodayFalls      `json:"today_falls"`
	ActivitySummary ActivitySummary `json:"activity_summary"`
	LatestSensor    *SensorReading  `json:"latest_sensor"`
}

// GPSStatus most recent fix, or the default coordinate when the device
// has never reported one (accuracy and timestamp stay null).
type GPSStatus struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Accuracy  *float64   `json:"accuracy"`
	Timestamp *time.Time `json:"timestamp"`
}

// CurrentActivity the open activity interval, if any. DurationMinutes is
// whole minutes elapsed since the interval started.
type CurrentActivity struct {
	ActivityType    ActivityKind `json:"activity_type"`
	Confidence      float64      `json:"confidence"`
	StartTime       *time.Time   `json:"start_time"`
	DurationMinutes int          `json:"duration_minutes"`
}

// TodayFalls fall events detected on the current server-local day,
// newest first.
type TodayFalls struct {
	Count  int         `json:"count"`
	Events []FallEvent `json:"events"`
}

// ActivitySummary per-kind tracked time for the current server-local day.
// Activities is empty when no tracked minutes were recorded.
type ActivitySummary struct {
	TotalMinutes int                               `json:"total_minutes"`
	Activities   map[ActivityKind]ActivityKindStat `json:"activities"`
}

// ActivityKindStat tracked minutes, interval count and share of the day's
// total tracked minutes for one activity kind.
type ActivityKindStat struct {
	Minutes    int     `json:"minutes"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

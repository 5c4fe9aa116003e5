// Package remote is the boundary to the feeder's remote key/value store: a
// push-based stream of telemetry levels and error-node snapshots, plus
// per-field write-back. The real transport is MQTT; an in-memory
// implementation backs tests and local development.
package remote

// Store paths, matching the device firmware's node names.
const (
	PathFoodLevel       = "food_level"
	PathBatteryLevel    = "battery_level"
	PathFeederError     = "Feeder_error"
	PathPowerError      = "Power_error"
	PathConnectionError = "Connection_error"
	PathManualFeedings  = "ManualFeedings"
)

const (
	FieldStatus        = "status"
	FieldNotified      = "notified"
	FieldTimestamp     = "timestamp"
	FieldMonitor       = "monitor"
	FieldErrorChecking = "Error_checking"
	FieldPortion       = "portion"
)

// ErrorSnapshot is the full state of one error node. Monitor is the binary
// heartbeat value carried on the connectivity node only.
type ErrorSnapshot struct {
	Status    int    `json:"status"`
	Notified  bool   `json:"notified"`
	Timestamp string `json:"timestamp"`
	Monitor   int    `json:"monitor"`
}

// Stream delivers every update for a subscribed path, including the current
// value at subscribe time when one is known.
type Stream interface {
	SubscribeLevel(path string, onValue func(float64)) error
	SubscribeErrors(path string, onSnapshot func(ErrorSnapshot)) error
	WriteField(path string, field string, value any) error
	Close() error
}

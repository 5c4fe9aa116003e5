package feeder

import (
	"sync"

	"go.uber.org/zap"
	"liyu1981.xyz/pet-feeder-service/pkg/common"
	"liyu1981.xyz/pet-feeder-service/pkg/models"
	"liyu1981.xyz/pet-feeder-service/pkg/remote"
)

type errorChannelState struct {
	active    bool
	notified  bool
	timestamp string
}

// ErrorMonitor owns the status/notified/timestamp triple for every error
// node. Stream snapshots and watchdog raises both funnel through its one
// mutex-guarded transition, so the two can never interleave a half-applied
// state. The local state is authoritative: an echoed remote snapshot that
// lags a write-back cannot re-fire a notification.
type ErrorMonitor struct {
	mu       sync.Mutex
	feeder   *Feeder
	channels map[string]*errorChannelState
}

func NewErrorMonitor(f *Feeder) *ErrorMonitor {
	return &ErrorMonitor{
		feeder:   f,
		channels: make(map[string]*errorChannelState),
	}
}

func errorAlertMeta(path string) (models.AlertType, string) {
	switch path {
	case remote.PathFeederError:
		return models.AlertTypeFeeder, "Feeder Error"
	case remote.PathPowerError:
		return models.AlertTypePower, "Power Error"
	default:
		return models.AlertTypeConnection, "Connection Error"
	}
}

func (m *ErrorMonitor) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameFeederCore,
		zap.String(common.LoggerFieldFeederCategory, common.LoggerCategoryErrorChan),
	)
}

func (m *ErrorMonitor) state(path string) *errorChannelState {
	st, ok := m.channels[path]
	if !ok {
		st = &errorChannelState{}
		m.channels[path] = st
	}
	return st
}

// Apply consumes one snapshot of an error node from the remote stream.
func (m *ErrorMonitor) Apply(path string, snap remote.ErrorSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.state(path)

	if snap.Status != 1 {
		m.clearLocked(path, st)
		return
	}

	// an activation already notified elsewhere stays notified here
	if snap.Notified {
		st.notified = true
	}
	m.activateLocked(path, st, snap.Timestamp, "")
}

// Raise synthesizes an activation, e.g. from the connectivity watchdog. The
// reason is recorded on the node for later inspection.
func (m *ErrorMonitor) Raise(path string, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger().Warn("Raising error", zap.String("path", path), zap.String("reason", reason))

	st := m.state(path)
	m.writeField(path, remote.FieldStatus, 1)
	m.activateLocked(path, st, "", reason)
}

func (m *ErrorMonitor) activateLocked(path string, st *errorChannelState, remoteTimestamp string, reason string) {
	st.active = true

	// first writer wins: a timestamp set for this active period is kept
	if st.timestamp == "" {
		if remoteTimestamp != "" {
			st.timestamp = remoteTimestamp
		} else {
			st.timestamp = m.feeder.now().Format(TimestampLayout)
			m.writeField(path, remote.FieldTimestamp, st.timestamp)
		}
	}

	if reason != "" {
		m.writeField(path, remote.FieldErrorChecking, reason+" at "+st.timestamp)
	}

	if st.notified {
		return
	}
	st.notified = true
	m.writeField(path, remote.FieldNotified, true)

	alertType, title := errorAlertMeta(path)
	body := title
	if reason != "" {
		body = title + ": " + reason
	}

	m.feeder.Notifier.Notify(string(alertType), title, body)

	if err := m.feeder.Alert.RecordAlert(&models.Alert{
		Timestamp: m.feeder.now(),
		Type:      alertType,
		Message:   body + " (since " + st.timestamp + ")",
	}); err != nil {
		m.logger().Error("Failed to record error alert", zap.Error(err))
	}
}

func (m *ErrorMonitor) clearLocked(path string, st *errorChannelState) {
	if !st.active && !st.notified && st.timestamp == "" {
		return
	}

	st.active = false
	st.notified = false
	st.timestamp = ""

	// re-arm the channel for the next activation
	m.writeField(path, remote.FieldNotified, false)
	m.writeField(path, remote.FieldTimestamp, "")

	m.logger().Info("Error cleared", zap.String("path", path))
}

// Active reports whether the path is in an active error period.
func (m *ErrorMonitor) Active(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state(path).active
}

func (m *ErrorMonitor) writeField(path string, field string, value any) {
	// write-back is at-least-once; on failure the in-memory state stays
	// authoritative and we just log
	if err := m.feeder.Remote.WriteField(path, field, value); err != nil {
		m.logger().Error("Remote write failed",
			zap.String("path", path), zap.String("field", field), zap.Error(err))
	}
}

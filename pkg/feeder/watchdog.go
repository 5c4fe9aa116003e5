package feeder

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/pet-feeder-service/pkg/common"
	"liyu1981.xyz/pet-feeder-service/pkg/remote"
)

// DefaultWatchdogTimeout matches the device firmware's expectation that the
// connectivity node changes at least every five minutes.
const DefaultWatchdogTimeout = 5 * time.Minute

// Watchdog detects staleness of the connectivity node itself. Two detectors
// feed the same error channel through ErrorMonitor.Raise: silence (no change
// to any field within the timeout) and a missed heartbeat (the binary
// monitor value failing to flip within the timeout).
type Watchdog struct {
	mu      sync.Mutex
	monitor *ErrorMonitor
	timeout time.Duration

	lastChange time.Time

	monitorSeeded    bool
	lastMonitorValue int
	lastMonitorFlip  time.Time
}

func NewWatchdog(monitor *ErrorMonitor, timeout time.Duration, now time.Time) *Watchdog {
	if timeout <= 0 {
		timeout = DefaultWatchdogTimeout
	}
	return &Watchdog{
		monitor:    monitor,
		timeout:    timeout,
		lastChange: now,
	}
}

func (w *Watchdog) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameFeederCore,
		zap.String(common.LoggerFieldFeederCategory, common.LoggerCategoryWatchdog),
	)
}

// ObserveChange restarts the silence window; called on every update to any
// field of the connectivity node.
func (w *Watchdog) ObserveChange(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastChange = now
}

// ObserveMonitor consumes the heartbeat value. Only a 0<->1 flip counts as
// liveness; a non-binary value is logged as an anomaly and otherwise
// ignored.
func (w *Watchdog) ObserveMonitor(value int, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if value != 0 && value != 1 {
		w.logger().Warn("Heartbeat has non-binary value", zap.Int("value", value))
		return
	}

	if !w.monitorSeeded {
		w.monitorSeeded = true
		w.lastMonitorValue = value
		w.lastMonitorFlip = now
		return
	}

	if value != w.lastMonitorValue {
		w.lastMonitorValue = value
		w.lastMonitorFlip = now
	}
}

// Check runs both detectors against now. Raising is idempotent per active
// period, so repeated checks during the same outage notify once.
func (w *Watchdog) Check(now time.Time) {
	w.mu.Lock()
	silent := now.Sub(w.lastChange) > w.timeout
	heartbeatMissed := w.monitorSeeded && now.Sub(w.lastMonitorFlip) > w.timeout
	w.mu.Unlock()

	if silent {
		w.monitor.Raise(remote.PathConnectionError, "no updates within timeout")
	}
	if heartbeatMissed {
		w.monitor.Raise(remote.PathConnectionError, "heartbeat missed")
	}
}

// Run checks periodically until the context is cancelled.
func (w *Watchdog) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = w.timeout
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check(time.Now())
		}
	}
}

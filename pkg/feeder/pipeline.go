package feeder

import (
	"time"

	"liyu1981.xyz/pet-feeder-service/pkg/remote"
)

// BindStreams wires the remote store's push streams into the threshold
// engine, the error monitor, and the watchdog. Every connectivity-node
// snapshot also feeds both watchdog detectors before the error transition
// runs.
func BindStreams(
	stream remote.Stream,
	engine *ThresholdEngine,
	monitor *ErrorMonitor,
	watchdog *Watchdog,
	now func() time.Time,
) error {
	if now == nil {
		now = time.Now
	}

	if err := stream.SubscribeLevel(remote.PathFoodLevel, engine.ObserveFood); err != nil {
		return err
	}
	if err := stream.SubscribeLevel(remote.PathBatteryLevel, engine.ObserveBattery); err != nil {
		return err
	}

	for _, path := range []string{remote.PathFeederError, remote.PathPowerError} {
		p := path
		if err := stream.SubscribeErrors(p, func(snap remote.ErrorSnapshot) {
			monitor.Apply(p, snap)
		}); err != nil {
			return err
		}
	}

	return stream.SubscribeErrors(remote.PathConnectionError, func(snap remote.ErrorSnapshot) {
		t := now()
		watchdog.ObserveChange(t)
		watchdog.ObserveMonitor(snap.Monitor, t)
		monitor.Apply(remote.PathConnectionError, snap)
	})
}

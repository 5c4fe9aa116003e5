package feeder

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/pet-feeder-service/pkg/common"
)

// FeedingPayload is what a trigger carries back when it fires.
type FeedingPayload struct {
	ScheduleID  uint
	DayOfWeek   string
	FeedingTime string // 12-hour display form
	FoodPortion float64
}

// WakeTimer is the one-shot exact wake facility. Arming an id that already
// has a pending timer replaces it; Cancel is idempotent.
type WakeTimer interface {
	ArmExactWake(id uint, at time.Time, onFire func()) error
	Cancel(id uint)
	HasSchedulingPermission() bool
}

// SystemWakeTimer backs WakeTimer with process timers.
type SystemWakeTimer struct {
	mu        sync.Mutex
	timers    map[uint]*time.Timer
	permitted bool
}

func NewSystemWakeTimer() *SystemWakeTimer {
	return &SystemWakeTimer{
		timers:    make(map[uint]*time.Timer),
		permitted: true,
	}
}

// SetSchedulingPermission toggles the exact-wake capability, mirroring the
// host platform granting or revoking it at runtime.
func (w *SystemWakeTimer) SetSchedulingPermission(permitted bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.permitted = permitted
}

func (w *SystemWakeTimer) HasSchedulingPermission() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.permitted
}

func (w *SystemWakeTimer) ArmExactWake(id uint, at time.Time, onFire func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.permitted {
		return ErrPermissionDenied
	}

	if old, exists := w.timers[id]; exists {
		old.Stop()
	}
	w.timers[id] = time.AfterFunc(time.Until(at), func() {
		w.mu.Lock()
		delete(w.timers, id)
		w.mu.Unlock()
		onFire()
	})
	return nil
}

func (w *SystemWakeTimer) Cancel(id uint) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, exists := w.timers[id]; exists {
		timer.Stop()
		delete(w.timers, id)
	}
}

type armedTrigger struct {
	at      time.Time
	payload FeedingPayload
}

// TriggerScheduler maps each schedule id to at most one pending wake
// trigger. It holds no recurrence knowledge: on fire it hands the payload to
// onDue exactly once and forgets the id; the consumer re-arms the follow-up
// occurrence.
type TriggerScheduler struct {
	mu    sync.Mutex
	timer WakeTimer
	armed map[uint]armedTrigger
	onDue func(FeedingPayload)
}

func NewTriggerScheduler(timer WakeTimer, onDue func(FeedingPayload)) *TriggerScheduler {
	return &TriggerScheduler{
		timer: timer,
		armed: make(map[uint]armedTrigger),
		onDue: onDue,
	}
}

// Arm registers the trigger, replacing any pending one for the same id.
func (ts *TriggerScheduler) Arm(id uint, at time.Time, payload FeedingPayload) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if err := ts.timer.ArmExactWake(id, at, func() { ts.fire(id) }); err != nil {
		return err
	}
	ts.armed[id] = armedTrigger{at: at, payload: payload}

	logger := common.GetLoggerWith(
		common.LoggerNameFeederCore,
		zap.String(common.LoggerFieldFeederCategory, common.LoggerCategoryTrigger),
	)
	logger.Info("Trigger armed", zap.Uint("schedule_id", id), zap.Time("at", at))
	return nil
}

// Cancel removes any pending trigger for the id; safe to call when none is
// armed. A timer fire that loses the race to Cancel is dropped in fire().
func (ts *TriggerScheduler) Cancel(id uint) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.timer.Cancel(id)
	delete(ts.armed, id)
}

func (ts *TriggerScheduler) fire(id uint) {
	ts.mu.Lock()
	trigger, ok := ts.armed[id]
	if ok {
		delete(ts.armed, id)
	}
	ts.mu.Unlock()

	if !ok {
		// cancelled between the OS deadline and delivery
		return
	}
	ts.onDue(trigger.payload)
}

// ArmedAt reports the pending trigger instant for an id, if any.
func (ts *TriggerScheduler) ArmedAt(id uint) (time.Time, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	trigger, ok := ts.armed[id]
	return trigger.at, ok
}

func (ts *TriggerScheduler) ArmedCount() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.armed)
}

package feeder

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"liyu1981.xyz/pet-feeder-service/pkg/db"
	"liyu1981.xyz/pet-feeder-service/pkg/feeder/mocks"
	notifymocks "liyu1981.xyz/pet-feeder-service/pkg/notify/mocks"
	"liyu1981.xyz/pet-feeder-service/pkg/remote"
)

// fakeWakeTimer lets tests control exactly when a trigger fires.
type fakeWakeTimer struct {
	mu        sync.Mutex
	permitted bool
	armed     map[uint]fakeArmed
}

type fakeArmed struct {
	at     time.Time
	onFire func()
}

func newFakeWakeTimer() *fakeWakeTimer {
	return &fakeWakeTimer{permitted: true, armed: make(map[uint]fakeArmed)}
}

func (f *fakeWakeTimer) ArmExactWake(id uint, at time.Time, onFire func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.permitted {
		return ErrPermissionDenied
	}
	f.armed[id] = fakeArmed{at: at, onFire: onFire}
	return nil
}

func (f *fakeWakeTimer) Cancel(id uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.armed, id)
}

func (f *fakeWakeTimer) HasSchedulingPermission() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.permitted
}

// Fire delivers the OS-level deadline for an armed id.
func (f *fakeWakeTimer) Fire(id uint) {
	f.mu.Lock()
	armed, ok := f.armed[id]
	if ok {
		delete(f.armed, id)
	}
	f.mu.Unlock()
	if ok {
		armed.onFire()
	}
}

func GetMockFeederWithMemorySqliteDialector(t *testing.T, useMockISchedule, useMockIAlert, useMockIFeed bool) (
	*gomock.Controller,
	*Feeder,
	*fakeWakeTimer,
	*remote.MemoryStream,
	*notifymocks.MockNotifier,
	*mocks.MockISchedule,
	*mocks.MockIAlert,
	*mocks.MockIFeed,
) {
	ctrl := gomock.NewController(t)

	mockISchedule := mocks.NewMockISchedule(ctrl)
	mockIAlert := mocks.NewMockIAlert(ctrl)
	mockIFeed := mocks.NewMockIFeed(ctrl)
	mockNotifier := notifymocks.NewMockNotifier(ctrl)

	dbInstance := db.GetInstance(db.UseMemorySqliteDialector()) // ensure migrations
	stream := remote.NewMemoryStream()
	wakeTimer := newFakeWakeTimer()

	feederInstance := &Feeder{
		Db:       *dbInstance,
		Notifier: mockNotifier,
		Remote:   stream,
	}
	feederInstance.Triggers = NewTriggerScheduler(wakeTimer, feederInstance.HandleFeedingDue)

	scheduleService := feederInstance.GetISchedule()
	if useMockISchedule {
		scheduleService = mockISchedule
	}

	alertService := feederInstance.GetIAlert()
	if useMockIAlert {
		alertService = mockIAlert
	}

	feedService := feederInstance.GetIFeed()
	if useMockIFeed {
		feedService = mockIFeed
	}

	feederInstance.WithServices(ServiceOpts{
		Schedule: scheduleService,
		Alert:    alertService,
		Feed:     feedService,
	})

	return ctrl, feederInstance, wakeTimer, stream, mockNotifier, mockISchedule, mockIAlert, mockIFeed
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

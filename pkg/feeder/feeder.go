package feeder

import (
	"errors"
	"sync"
	"time"

	"liyu1981.xyz/pet-feeder-service/pkg/db"
	"liyu1981.xyz/pet-feeder-service/pkg/models"
	"liyu1981.xyz/pet-feeder-service/pkg/notify"
	"liyu1981.xyz/pet-feeder-service/pkg/remote"
)

var (
	ErrParse            = errors.New("parse error")
	ErrNotFound         = errors.New("schedule not found")
	ErrInvalidPortion   = errors.New("invalid food portion")
	ErrPermissionDenied = errors.New("exact wake scheduling not permitted")
)

type ISchedule interface {
	InsertSchedule(input *models.FeedingSchedule) (uint, error)
	UpdateSchedule(input *models.FeedingSchedule) error
	DeleteSchedule(id uint) error
	ListForDay(day string) ([]models.FeedingSchedule, error)
	ListAll() ([]models.FeedingSchedule, error)
}

type IAlert interface {
	RecordAlert(alert *models.Alert) error
	GetAlerts() ([]models.Alert, error)
}

type IFeed interface {
	ManualFeed(portion float64) error
}

// Feeder is the companion core: the schedule registry, its trigger
// scheduler, and the alert pipeline, sharing one database handle.
type Feeder struct {
	Db       db.DB
	Schedule ISchedule
	Alert    IAlert
	Feed     IFeed
	Triggers *TriggerScheduler
	Notifier notify.Notifier
	Remote   remote.Stream

	// Now is the clock for recurrence and grace-window decisions;
	// overridable in tests, defaults to time.Now.
	Now func() time.Time

	// serializes registry mutations and fire handling, so a stale update can
	// never race a fire's re-arm for the same id
	mu sync.Mutex
}

type ServiceOpts struct {
	Schedule ISchedule
	Alert    IAlert
	Feed     IFeed
}

func (f *Feeder) WithServices(opts ServiceOpts) *Feeder {
	if opts.Schedule != nil {
		f.Schedule = opts.Schedule
	}
	if opts.Alert != nil {
		f.Alert = opts.Alert
	}
	if opts.Feed != nil {
		f.Feed = opts.Feed
	}
	return f
}

func (f *Feeder) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// TimestampLayout is the wall-clock format the device firmware expects in
// error-node timestamp fields.
const TimestampLayout = "2006-01-02 15:04:05"

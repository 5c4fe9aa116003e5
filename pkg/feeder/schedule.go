package feeder

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/pet-feeder-service/pkg/common"
	"liyu1981.xyz/pet-feeder-service/pkg/models"
	"liyu1981.xyz/pet-feeder-service/pkg/remote"
)

func validPortion(portion float64) bool {
	return portion >= 1.0 && portion < 100.1
}

// normalizeSchedule validates the user-entered fields and rewrites them into
// canonical form: full weekday name and 24-hour "HH:MM" time.
func normalizeSchedule(input *models.FeedingSchedule) (*models.FeedingSchedule, error) {
	if !validPortion(input.FoodPortion) {
		return nil, fmt.Errorf("%w: %.2f not in [1.0, 100.1)", ErrInvalidPortion, input.FoodPortion)
	}

	day, err := ParseWeekday(input.DayOfWeek)
	if err != nil {
		return nil, err
	}

	tod, err := ParseClock12(input.FeedingTime)
	if err != nil {
		// the canonical stored form is accepted too, so re-arming persisted
		// records goes through the same path
		tod, err = ParseClock24(input.FeedingTime)
		if err != nil {
			return nil, fmt.Errorf("%w: feeding time %q", ErrParse, input.FeedingTime)
		}
	}

	return &models.FeedingSchedule{
		ID:          input.ID,
		DayOfWeek:   day.String(),
		FeedingTime: tod.String(),
		FoodPortion: input.FoodPortion,
	}, nil
}

func (f *Feeder) scheduleLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameFeederCore,
		zap.String(common.LoggerFieldFeederCategory, common.LoggerCategorySchedule),
	)
}

// armSchedule computes the schedule's next occurrence and arms its trigger.
func (f *Feeder) armSchedule(schedule *models.FeedingSchedule) error {
	day, err := ParseWeekday(schedule.DayOfWeek)
	if err != nil {
		return err
	}
	tod, err := ParseClock24(schedule.FeedingTime)
	if err != nil {
		return err
	}

	at := NextOccurrence(day, tod, f.now())
	return f.Triggers.Arm(schedule.ID, at, FeedingPayload{
		ScheduleID:  schedule.ID,
		DayOfWeek:   schedule.DayOfWeek,
		FeedingTime: tod.Format12h(),
		FoodPortion: schedule.FoodPortion,
	})
}

func (f *Feeder) insertSchedule(input *models.FeedingSchedule) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	schedule, err := normalizeSchedule(input)
	if err != nil {
		return 0, err
	}
	schedule.ID = 0 // ids are assigned at creation, never supplied

	logger := f.scheduleLogger()
	logger.Info("Inserting feeding schedule", zap.Reflect("schedule", schedule))

	if err := f.Db.Conn.Create(schedule).Error; err != nil {
		return 0, err
	}

	if err := f.armSchedule(schedule); err != nil {
		return schedule.ID, err
	}

	logger.Info("Inserted feeding schedule", zap.Uint("id", schedule.ID))
	return schedule.ID, nil
}

func (f *Feeder) updateSchedule(input *models.FeedingSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var existing models.FeedingSchedule
	if err := f.Db.Conn.First(&existing, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", ErrNotFound, input.ID)
		}
		return err
	}

	schedule, err := normalizeSchedule(input)
	if err != nil {
		return err
	}

	logger := f.scheduleLogger()
	logger.Info("Updating feeding schedule", zap.Reflect("schedule", schedule))

	// the update targets the identified record only
	if err := f.Db.Conn.Model(&existing).Updates(map[string]any{
		"day_of_week":  schedule.DayOfWeek,
		"feeding_time": schedule.FeedingTime,
		"food_portion": schedule.FoodPortion,
	}).Error; err != nil {
		return err
	}

	f.Triggers.Cancel(schedule.ID)
	return f.armSchedule(schedule)
}

func (f *Feeder) deleteSchedule(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Triggers.Cancel(id)

	// deleting a missing id is a no-op, not an error
	if err := f.Db.Conn.Delete(&models.FeedingSchedule{}, id).Error; err != nil {
		return err
	}

	f.scheduleLogger().Info("Deleted feeding schedule", zap.Uint("id", id))
	return nil
}

func (f *Feeder) listForDay(day string) ([]models.FeedingSchedule, error) {
	parsed, err := ParseWeekday(day)
	if err != nil {
		return nil, err
	}

	var schedules []models.FeedingSchedule
	err = f.Db.Conn.
		Where("day_of_week = ?", parsed.String()).
		Order("feeding_time asc").
		Find(&schedules).Error
	return schedules, err
}

func (f *Feeder) listAll() ([]models.FeedingSchedule, error) {
	var schedules []models.FeedingSchedule
	if err := f.Db.Conn.Order("feeding_time asc").Find(&schedules).Error; err != nil {
		return nil, err
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		di, _ := ParseWeekday(schedules[i].DayOfWeek)
		dj, _ := ParseWeekday(schedules[j].DayOfWeek)
		if WeekdayOrder(di) != WeekdayOrder(dj) {
			return WeekdayOrder(di) < WeekdayOrder(dj)
		}
		return schedules[i].FeedingTime < schedules[j].FeedingTime
	})
	return schedules, nil
}

// RearmAll arms a trigger for every stored schedule; called once at boot.
func (f *Feeder) RearmAll() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	schedules, err := f.listAll()
	if err != nil {
		return err
	}
	for i := range schedules {
		if err := f.armSchedule(&schedules[i]); err != nil {
			return err
		}
	}
	return nil
}

// HandleFeedingDue is the trigger fire consumer: it drops stale fires whose
// schedule no longer exists, notifies, records the event, and immediately
// arms the following week's occurrence.
func (f *Feeder) HandleFeedingDue(payload FeedingPayload) {
	f.mu.Lock()
	defer f.mu.Unlock()

	logger := f.scheduleLogger()

	var schedule models.FeedingSchedule
	if err := f.Db.Conn.First(&schedule, payload.ScheduleID).Error; err != nil {
		logger.Info("Ignoring stale trigger fire", zap.Uint("schedule_id", payload.ScheduleID))
		return
	}

	body := fmt.Sprintf("Feeding time! %s %s: %.1f grams",
		payload.DayOfWeek, payload.FeedingTime, payload.FoodPortion)

	f.Notifier.Notify("feeding", "Feeding Reminder", body)

	if err := f.Alert.RecordAlert(&models.Alert{
		Timestamp: f.now(),
		Type:      models.AlertTypeFeedingDue,
		Message:   body,
	}); err != nil {
		logger.Error("Failed to record feeding event", zap.Error(err))
	}

	if err := f.armSchedule(&schedule); err != nil {
		logger.Error("Failed to re-arm schedule", zap.Uint("id", schedule.ID), zap.Error(err))
	}
}

func (f *Feeder) recordAlert(alert *models.Alert) error {
	logger := common.GetLoggerWith(
		common.LoggerNameFeederCore,
		zap.String(common.LoggerFieldFeederCategory, common.LoggerCategoryThreshold),
	)

	logger.Info("Alert found", zap.Reflect("alert", alert))

	if err := f.Db.Conn.Create(alert).Error; err != nil {
		return err
	}

	logger.Info("Alert saved", zap.Reflect("alert", alert))
	return nil
}

func (f *Feeder) getAlerts() ([]models.Alert, error) {
	var alerts []models.Alert
	err := f.Db.Conn.
		Order("timestamp desc").
		Find(&alerts).Error
	return alerts, err
}

func (f *Feeder) manualFeed(portion float64) error {
	if !validPortion(portion) {
		return fmt.Errorf("%w: %.2f not in [1.0, 100.1)", ErrInvalidPortion, portion)
	}

	logger := f.scheduleLogger()
	logger.Info("Manual feeding requested", zap.Float64("portion", portion))

	if err := f.Remote.WriteField(remote.PathManualFeedings, remote.FieldPortion, portion); err != nil {
		return err
	}
	return f.Remote.WriteField(remote.PathManualFeedings, remote.FieldTimestamp, f.now().Format(TimestampLayout))
}

type IScheduleImpl struct {
	feeder *Feeder
}

func (is *IScheduleImpl) InsertSchedule(input *models.FeedingSchedule) (uint, error) {
	return is.feeder.insertSchedule(input)
}

func (is *IScheduleImpl) UpdateSchedule(input *models.FeedingSchedule) error {
	return is.feeder.updateSchedule(input)
}

func (is *IScheduleImpl) DeleteSchedule(id uint) error {
	return is.feeder.deleteSchedule(id)
}

func (is *IScheduleImpl) ListForDay(day string) ([]models.FeedingSchedule, error) {
	return is.feeder.listForDay(day)
}

func (is *IScheduleImpl) ListAll() ([]models.FeedingSchedule, error) {
	return is.feeder.listAll()
}

func (f *Feeder) GetISchedule() ISchedule {
	return &IScheduleImpl{feeder: f}
}

type IAlertImpl struct {
	feeder *Feeder
}

func (ia *IAlertImpl) RecordAlert(alert *models.Alert) error {
	return ia.feeder.recordAlert(alert)
}

func (ia *IAlertImpl) GetAlerts() ([]models.Alert, error) {
	return ia.feeder.getAlerts()
}

func (f *Feeder) GetIAlert() IAlert {
	return &IAlertImpl{feeder: f}
}

type IFeedImpl struct {
	feeder *Feeder
}

func (ifd *IFeedImpl) ManualFeed(portion float64) error {
	return ifd.feeder.manualFeed(portion)
}

func (f *Feeder) GetIFeed() IFeed {
	return &IFeedImpl{feeder: f}
}

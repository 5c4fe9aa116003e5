package feeder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/pet-feeder-service/pkg/common"
	"liyu1981.xyz/pet-feeder-service/pkg/models"
	"liyu1981.xyz/pet-feeder-service/pkg/remote"
	_ "liyu1981.xyz/pet-feeder-service/pkg/testing"
)

func clearSchedules(t *testing.T, f *Feeder) {
	require.NoError(t, f.Db.Conn.Exec("DELETE FROM feeding_schedules").Error)
}

func TestInsertSchedule(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, feederObj, _, _, _, _, _, _ := GetMockFeederWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	feederObj.Now = func() time.Time { return mondayAt(8, 0) }

	id, err := feederObj.Schedule.InsertSchedule(&models.FeedingSchedule{
		DayOfWeek:   "monday",
		FeedingTime: "9:00 AM",
		FoodPortion: 20,
	})
	require.NoError(t, err)
	assert.Greater(t, id, uint(0))

	// stored in canonical form
	var saved models.FeedingSchedule
	require.NoError(t, feederObj.Db.Conn.First(&saved, id).Error)
	assert.Equal(t, "Monday", saved.DayOfWeek)
	assert.Equal(t, "09:00", saved.FeedingTime)
	assert.Equal(t, 20.0, saved.FoodPortion)

	at, armed := feederObj.Triggers.ArmedAt(id)
	require.True(t, armed)
	assert.Equal(t, mondayAt(9, 0), at)
}

func TestInsertSchedule_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, feederObj, _, _, _, _, _, _ := GetMockFeederWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	var err error

	_, err = feederObj.Schedule.InsertSchedule(&models.FeedingSchedule{
		DayOfWeek: "monday", FeedingTime: "9:00 AM", FoodPortion: 0.5,
	})
	assert.ErrorIs(t, err, ErrInvalidPortion)

	_, err = feederObj.Schedule.InsertSchedule(&models.FeedingSchedule{
		DayOfWeek: "monday", FeedingTime: "9:00 AM", FoodPortion: 100.1,
	})
	assert.ErrorIs(t, err, ErrInvalidPortion)

	_, err = feederObj.Schedule.InsertSchedule(&models.FeedingSchedule{
		DayOfWeek: "monday", FeedingTime: "25:00 AM", FoodPortion: 20,
	})
	assert.ErrorIs(t, err, ErrParse)

	_, err = feederObj.Schedule.InsertSchedule(&models.FeedingSchedule{
		DayOfWeek: "Funday", FeedingTime: "9:00 AM", FoodPortion: 20,
	})
	assert.ErrorIs(t, err, ErrParse)

	assert.Equal(t, 0, feederObj.Triggers.ArmedCount())
}

func TestUpdateSchedule(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, feederObj, _, _, _, _, _, _ := GetMockFeederWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	feederObj.Now = func() time.Time { return mondayAt(8, 0) }

	id, err := feederObj.Schedule.InsertSchedule(&models.FeedingSchedule{
		DayOfWeek: "monday", FeedingTime: "9:00 AM", FoodPortion: 20,
	})
	require.NoError(t, err)

	err = feederObj.Schedule.UpdateSchedule(&models.FeedingSchedule{
		ID: id, DayOfWeek: "tuesday", FeedingTime: "6:30 PM", FoodPortion: 35,
	})
	require.NoError(t, err)

	var saved models.FeedingSchedule
	require.NoError(t, feederObj.Db.Conn.First(&saved, id).Error)
	assert.Equal(t, "Tuesday", saved.DayOfWeek)
	assert.Equal(t, "18:30", saved.FeedingTime)
	assert.Equal(t, 35.0, saved.FoodPortion)

	// the pending trigger moved to the new occurrence, still one per id
	assert.Equal(t, 1, feederObj.Triggers.ArmedCount())
	at, armed := feederObj.Triggers.ArmedAt(id)
	require.True(t, armed)
	assert.Equal(t, time.Date(2024, 1, 2, 18, 30, 0, 0, time.UTC), at)
}

func TestUpdateSchedule_NotFound(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, feederObj, _, _, _, _, _, _ := GetMockFeederWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	err := feederObj.Schedule.UpdateSchedule(&models.FeedingSchedule{
		ID: 999999, DayOfWeek: "monday", FeedingTime: "9:00 AM", FoodPortion: 20,
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, feederObj.Triggers.ArmedCount())
}

func TestUpdateThenDeleteLeavesNoTrigger(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, feederObj, _, _, _, _, _, _ := GetMockFeederWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	feederObj.Now = func() time.Time { return mondayAt(8, 0) }

	id, err := feederObj.Schedule.InsertSchedule(&models.FeedingSchedule{
		DayOfWeek: "monday", FeedingTime: "9:00 AM", FoodPortion: 20,
	})
	require.NoError(t, err)

	require.NoError(t, feederObj.Schedule.UpdateSchedule(&models.FeedingSchedule{
		ID: id, DayOfWeek: "friday", FeedingTime: "7:00 AM", FoodPortion: 15,
	}))
	require.NoError(t, feederObj.Schedule.DeleteSchedule(id))

	assert.Equal(t, 0, feederObj.Triggers.ArmedCount())

	var count int64
	require.NoError(t, feederObj.Db.Conn.Model(&models.FeedingSchedule{}).Where("id = ?", id).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteSchedule_MissingIsNoop(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, feederObj, _, _, _, _, _, _ := GetMockFeederWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	assert.NoError(t, feederObj.Schedule.DeleteSchedule(999999))
}

func TestListForDay(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, feederObj, _, _, _, _, _, _ := GetMockFeederWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	clearSchedules(t, feederObj)
	feederObj.Now = func() time.Time { return mondayAt(8, 0) }

	for _, s := range []models.FeedingSchedule{
		{DayOfWeek: "tuesday", FeedingTime: "9:00 PM", FoodPortion: 10},
		{DayOfWeek: "tuesday", FeedingTime: "7:00 AM", FoodPortion: 10},
		{DayOfWeek: "tuesday", FeedingTime: "12:00 PM", FoodPortion: 10},
		{DayOfWeek: "wednesday", FeedingTime: "8:00 AM", FoodPortion: 10},
	} {
		input := s
		_, err := feederObj.Schedule.InsertSchedule(&input)
		require.NoError(t, err)
	}

	schedules, err := feederObj.Schedule.ListForDay("Tuesday")
	require.NoError(t, err)
	require.Len(t, schedules, 3)
	assert.Equal(t, "07:00", schedules[0].FeedingTime)
	assert.Equal(t, "12:00", schedules[1].FeedingTime)
	assert.Equal(t, "21:00", schedules[2].FeedingTime)

	_, err = feederObj.Schedule.ListForDay("someday")
	assert.ErrorIs(t, err, ErrParse)
}

func TestListAll_WeekOrdering(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, feederObj, _, _, _, _, _, _ := GetMockFeederWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	clearSchedules(t, feederObj)
	feederObj.Now = func() time.Time { return mondayAt(8, 0) }

	for _, s := range []models.FeedingSchedule{
		{DayOfWeek: "sunday", FeedingTime: "8:00 AM", FoodPortion: 10},
		{DayOfWeek: "monday", FeedingTime: "9:00 PM", FoodPortion: 10},
		{DayOfWeek: "monday", FeedingTime: "9:00 AM", FoodPortion: 10},
		{DayOfWeek: "friday", FeedingTime: "12:00 PM", FoodPortion: 10},
	} {
		input := s
		_, err := feederObj.Schedule.InsertSchedule(&input)
		require.NoError(t, err)
	}

	schedules, err := feederObj.Schedule.ListAll()
	require.NoError(t, err)
	require.Len(t, schedules, 4)

	// Monday first, Sunday last, times ascending within a day
	assert.Equal(t, "Monday", schedules[0].DayOfWeek)
	assert.Equal(t, "09:00", schedules[0].FeedingTime)
	assert.Equal(t, "Monday", schedules[1].DayOfWeek)
	assert.Equal(t, "21:00", schedules[1].FeedingTime)
	assert.Equal(t, "Friday", schedules[2].DayOfWeek)
	assert.Equal(t, "Sunday", schedules[3].DayOfWeek)
}

func TestRearmAll(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, feederObj, _, _, _, _, _, _ := GetMockFeederWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	clearSchedules(t, feederObj)
	feederObj.Now = func() time.Time { return mondayAt(8, 0) }

	// persisted canonical rows, as left behind by a previous run
	require.NoError(t, feederObj.Db.Conn.Create(&models.FeedingSchedule{
		DayOfWeek: "Monday", FeedingTime: "09:00", FoodPortion: 20,
	}).Error)
	require.NoError(t, feederObj.Db.Conn.Create(&models.FeedingSchedule{
		DayOfWeek: "Thursday", FeedingTime: "18:30", FoodPortion: 30,
	}).Error)

	require.NoError(t, feederObj.RearmAll())
	assert.Equal(t, 2, feederObj.Triggers.ArmedCount())
}

func TestHandleFeedingDue(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, feederObj, wakeTimer, _, mockNotifier, _, _, _ := GetMockFeederWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	now := mondayAt(8, 0)
	feederObj.Now = func() time.Time { return now }

	id, err := feederObj.Schedule.InsertSchedule(&models.FeedingSchedule{
		DayOfWeek: "monday", FeedingTime: "9:00 AM", FoodPortion: 33.3,
	})
	require.NoError(t, err)

	mockNotifier.
		EXPECT().
		Notify(gomock.Eq("feeding"), gomock.Eq("Feeding Reminder"), gomock.Any()).
		Times(1)

	// the deadline arrives
	now = mondayAt(9, 0)
	wakeTimer.Fire(id)

	// the feeding event was recorded
	var alerts []models.Alert
	require.NoError(t, feederObj.Db.Conn.
		Where("type = ?", models.AlertTypeFeedingDue).
		Order("timestamp desc").
		Find(&alerts).Error)
	require.NotEmpty(t, alerts)
	assert.Contains(t, alerts[0].Message, "33.3 grams")

	// and the next week's occurrence is armed
	at, armed := feederObj.Triggers.ArmedAt(id)
	require.True(t, armed)
	assert.Equal(t, mondayAt(9, 0).AddDate(0, 0, 7), at)
}

func TestHandleFeedingDue_StaleFireIgnored(t *testing.T) {
	common.SetTestLoggerNop()

	// no EXPECT on the notifier: any Notify call fails the test
	ctrl, feederObj, _, _, _, _, _, _ := GetMockFeederWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	feederObj.HandleFeedingDue(FeedingPayload{
		ScheduleID: 999999, DayOfWeek: "Monday", FeedingTime: "9:00 AM", FoodPortion: 20,
	})
	assert.Equal(t, 0, feederObj.Triggers.ArmedCount())
}

func TestManualFeed(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, feederObj, _, stream, _, _, _, _ := GetMockFeederWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	now := mondayAt(10, 15)
	feederObj.Now = func() time.Time { return now }

	require.NoError(t, feederObj.Feed.ManualFeed(25))

	portion, ok := stream.Field(remote.PathManualFeedings, remote.FieldPortion)
	require.True(t, ok)
	assert.Equal(t, 25.0, portion)

	ts, ok := stream.Field(remote.PathManualFeedings, remote.FieldTimestamp)
	require.True(t, ok)
	assert.Equal(t, now.Format(TimestampLayout), ts)

	assert.ErrorIs(t, feederObj.Feed.ManualFeed(0.2), ErrInvalidPortion)
	assert.ErrorIs(t, feederObj.Feed.ManualFeed(150), ErrInvalidPortion)
}

package models

import "time"

type AlertType string

const (
	AlertTypeFood       AlertType = "food"
	AlertTypeBattery    AlertType = "battery"
	AlertTypeFeeder     AlertType = "feeder_error"
	AlertTypePower      AlertType = "power_error"
	AlertTypeConnection AlertType = "connection_error"
	AlertTypeFeedingDue AlertType = "feeding_due"
)

// FeedingSchedule is one weekly-recurring feeding instruction. FeedingTime is
// stored in normalized 24-hour "HH:MM" form; DayOfWeek is the full English
// weekday name ("Monday" .. "Sunday").
type FeedingSchedule struct {
	ID          uint   `gorm:"primaryKey"`
	DayOfWeek   string `gorm:"index"`
	FeedingTime string
	FoodPortion float64
}

type Alert struct {
	ID        uint `gorm:"primaryKey"`
	Timestamp time.Time
	Type      AlertType `gorm:"type:varchar(20);index"`
	Band      int
	Message   string
}

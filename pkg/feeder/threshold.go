package feeder

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/pet-feeder-service/pkg/common"
	"liyu1981.xyz/pet-feeder-service/pkg/models"
)

// Band is one of the five alert thresholds a level can occupy.
type Band int

const (
	BandCritical     Band = 1
	BandQuarter      Band = 25
	BandHalf         Band = 50
	BandThreeQuarter Band = 75
	BandFull         Band = 100
)

// Classify maps a level in [0,100] to its band.
func Classify(level float64) Band {
	switch {
	case level <= 1:
		return BandCritical
	case level < 25:
		return BandQuarter
	case level < 50:
		return BandHalf
	case level < 75:
		return BandThreeQuarter
	default:
		return BandFull
	}
}

// ThresholdChannel tracks one continuous level (food or battery) and decides
// when a reading warrants an alert: at most one per downward band crossing,
// with the suppression for a band cleared once the level recovers above it.
// Readings during the startup grace window only establish the baseline.
type ThresholdChannel struct {
	name       string
	last       Band
	notified   map[Band]bool
	graceUntil time.Time
	primed     bool
}

func NewThresholdChannel(name string, grace time.Duration, now time.Time) *ThresholdChannel {
	return &ThresholdChannel{
		name:       name,
		last:       BandFull,
		notified:   make(map[Band]bool),
		graceUntil: now.Add(grace),
	}
}

// Observe feeds one reading and reports the band it landed in and whether an
// alert should fire. Levels outside [0,100] are clamped first.
func (c *ThresholdChannel) Observe(level float64, now time.Time) (Band, bool) {
	if level < 0 {
		level = 0
	} else if level > 100 {
		level = 100
	}
	band := Classify(level)

	if !c.primed || now.Before(c.graceUntil) {
		c.primed = true
		c.last = band
		return band, false
	}

	switch {
	case band < c.last && !c.notified[band]:
		c.last = band
		c.notified[band] = true
		return band, true
	case band > c.last:
		// recovery clears suppressions strictly below the new band so a
		// later redescent re-alerts
		c.last = band
		for b := range c.notified {
			if b < band {
				delete(c.notified, b)
			}
		}
	}
	return band, false
}

// LastBand reports the band the channel last settled in.
func (c *ThresholdChannel) LastBand() Band {
	return c.last
}

func bandMessage(label string, band Band) string {
	if band == BandCritical {
		return fmt.Sprintf("%s critically low! Immediate action required.", label)
	}
	return fmt.Sprintf("%s level is below %d%%.", label, int(band))
}

// ThresholdEngine owns the two monitored level channels and turns their
// crossings into stored alerts and notifications.
type ThresholdEngine struct {
	mu      sync.Mutex
	feeder  *Feeder
	food    *ThresholdChannel
	battery *ThresholdChannel
}

func NewThresholdEngine(f *Feeder, grace time.Duration) *ThresholdEngine {
	now := f.now()
	return &ThresholdEngine{
		feeder:  f,
		food:    NewThresholdChannel("food", grace, now),
		battery: NewThresholdChannel("battery", grace, now),
	}
}

func (e *ThresholdEngine) ObserveFood(level float64) {
	e.observe(e.food, models.AlertTypeFood, "Food", level)
}

func (e *ThresholdEngine) ObserveBattery(level float64) {
	e.observe(e.battery, models.AlertTypeBattery, "Battery", level)
}

func (e *ThresholdEngine) observe(channel *ThresholdChannel, alertType models.AlertType, label string, level float64) {
	now := e.feeder.now()

	e.mu.Lock()
	band, fire := channel.Observe(level, now)
	e.mu.Unlock()

	logger := common.GetLoggerWith(
		common.LoggerNameFeederCore,
		zap.String(common.LoggerFieldFeederCategory, common.LoggerCategoryThreshold),
	)
	logger.Debug("Level observed",
		zap.String("channel", channel.name),
		zap.Float64("level", level),
		zap.Int("band", int(band)),
	)

	if !fire {
		return
	}

	message := bandMessage(label, band)

	if err := e.feeder.Alert.RecordAlert(&models.Alert{
		Timestamp: now,
		Type:      alertType,
		Band:      int(band),
		Message:   message,
	}); err != nil {
		logger.Error("Failed to record threshold alert", zap.Error(err))
	}

	e.feeder.Notifier.Notify(channel.name, label+" Alert", message)
}

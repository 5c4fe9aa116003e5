package feeder

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a normalized 24-hour clock time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String renders the canonical storage form, "HH:MM". Its lexical order is
// the chronological order, which the schedule listings rely on.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Format12h renders the display form, "h:mm AM/PM". Hour 0 maps to 12 AM and
// hour 12 to 12 PM.
func (t TimeOfDay) Format12h() string {
	hour := t.Hour % 12
	if hour == 0 {
		hour = 12
	}
	ampm := "AM"
	if t.Hour >= 12 {
		ampm = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, ampm)
}

// After reports whether t is strictly later in the day than o.
func (t TimeOfDay) After(o TimeOfDay) bool {
	if t.Hour != o.Hour {
		return t.Hour > o.Hour
	}
	return t.Minute > o.Minute
}

// ParseClock12 parses a 12-hour "h:mm AM/PM" string. 12 AM is hour 0, 12 PM
// is hour 12, any other PM hour adds 12.
func ParseClock12(raw string) (TimeOfDay, error) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: want \"h:mm AM/PM\", got %q", ErrParse, raw)
	}

	ampm := strings.ToUpper(fields[1])
	if ampm != "AM" && ampm != "PM" {
		return TimeOfDay{}, fmt.Errorf("%w: bad AM/PM token %q", ErrParse, fields[1])
	}

	hourPart, minutePart, found := strings.Cut(fields[0], ":")
	if !found {
		return TimeOfDay{}, fmt.Errorf("%w: missing ':' in %q", ErrParse, fields[0])
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 1 || hour > 12 {
		return TimeOfDay{}, fmt.Errorf("%w: bad hour %q", ErrParse, hourPart)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: bad minute %q", ErrParse, minutePart)
	}

	if ampm == "AM" {
		if hour == 12 {
			hour = 0
		}
	} else if hour != 12 {
		hour += 12
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseClock24 parses the canonical "HH:MM" storage form.
func ParseClock24(raw string) (TimeOfDay, error) {
	hourPart, minutePart, found := strings.Cut(strings.TrimSpace(raw), ":")
	if !found {
		return TimeOfDay{}, fmt.Errorf("%w: missing ':' in %q", ErrParse, raw)
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: bad hour %q", ErrParse, hourPart)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: bad minute %q", ErrParse, minutePart)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses a full English weekday name, case-insensitive.
func ParseWeekday(raw string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return 0, fmt.Errorf("%w: bad weekday %q", ErrParse, raw)
	}
	return day, nil
}

// WeekdayOrder maps a weekday to its listing position, Monday=1 .. Sunday=7.
func WeekdayOrder(day time.Weekday) int {
	if day == time.Sunday {
		return 7
	}
	return int(day)
}

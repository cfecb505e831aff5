package util

import (
	"time"
)

const DateKeyLayout = time.DateOnly

// ServiceDayRolloverHour is the local clock hour a service day starts at. Trips before it belong to the previous day.
const ServiceDayRolloverHour = 3

func StartOfDay(t time.Time, location *time.Location) time.Time {
	local := t.In(location)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
}

// ServiceDayOf returns the midnight of the service day t belongs to.
// It goes by the local clock hour, so days with a DST change still split at 03:00.
func ServiceDayOf(t time.Time, location *time.Location) time.Time {
	local := t.In(location)
	day := local.Day()
	if local.Hour() < ServiceDayRolloverHour {
		day--
	}

	return time.Date(local.Year(), local.Month(), day, 0, 0, 0, 0, location)
}

// ServiceDayWindow returns the first and last second of the service day starting on date
func ServiceDayWindow(date time.Time, location *time.Location) (time.Time, time.Time) {
	local := date.In(location)

	from := time.Date(local.Year(), local.Month(), local.Day(), ServiceDayRolloverHour, 0, 0, 0, location)
	to := time.Date(local.Year(), local.Month(), local.Day()+1, ServiceDayRolloverHour-1, 59, 59, 0, location)

	return from, to
}

func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD date as midnight in location
func ParseDateKey(key string, location *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, key, location)
}

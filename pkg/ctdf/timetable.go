package ctdf

import "time"

// TimetableData holds the rides of one selected service day. It only lives for a single generation run.
type TimetableData struct {
	Day      time.Time          `json:"day" groups:"export"`
	Nickname string             `json:"nickname" groups:"export"`
	Rides    []ScheduledArrival `json:"rides" groups:"export"`
}

func (t TimetableData) RideCount() int {
	return len(t.Rides)
}

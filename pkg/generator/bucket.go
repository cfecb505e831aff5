package generator

import (
	"time"

	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/util"
	"golang.org/x/exp/slices"
)

// Bucket partitions arrivals by service day, one bucket per day in the given order, each sorted by arrival time.
// An arrival between midnight and the rollover belongs to the previous day, matching the window it was fetched with.
func Bucket(arrivals []ctdf.ScheduledArrival, days []time.Time, location *time.Location) []ctdf.TimetableData {
	buckets := make(map[string][]ctdf.ScheduledArrival, len(days))
	for _, arrival := range arrivals {
		key := util.DateKey(util.ServiceDayOf(arrival.ArrivalTime, location))
		buckets[key] = append(buckets[key], arrival)
	}

	timetables := make([]ctdf.TimetableData, 0, len(days))
	for _, day := range days {
		rides := buckets[util.DateKey(day)]
		if rides == nil {
			rides = []ctdf.ScheduledArrival{}
		}
		slices.SortStableFunc(rides, func(a, b ctdf.ScheduledArrival) int { return a.ArrivalTime.Compare(b.ArrivalTime) })

		timetables = append(timetables, ctdf.TimetableData{
			Day:   day,
			Rides: rides,
		})
	}

	return timetables
}

package ctdf

import (
	"time"

	"github.com/travigo/timetable-maker/pkg/util"
)

// ScheduledArrival is one scheduled visit of a vehicle at a stop
type ScheduledArrival struct {
	ID            int       `json:"id" groups:"export"`
	ArrivalTime   time.Time `json:"arrival_time" groups:"export"`
	DepartureTime time.Time `json:"departure_time" groups:"export"`

	StopCode int    `json:"gtfs_stop__code" groups:"export"`
	StopName string `json:"gtfs_stop__name" groups:"export"`
	StopCity string `json:"gtfs_stop__city" groups:"export"`

	RouteShortName   string `json:"gtfs_route__route_short_name" groups:"export"`
	RouteLongName    string `json:"gtfs_route__route_long_name" groups:"export"`
	RouteMarketCode  string `json:"gtfs_route__route_mkt"`
	RouteDirection   string `json:"gtfs_route__route_direction"`
	RouteAlternative string `json:"gtfs_route__route_alternative"`
}

func (a ScheduledArrival) RouteIdentity() RouteIdentity {
	return RouteIdentity{
		MarketCode:  a.RouteMarketCode,
		Direction:   a.RouteDirection,
		Alternative: a.RouteAlternative,
	}
}

func (a ScheduledArrival) SelectedStop() SelectedStop {
	return SelectedStop{
		Code: a.StopCode,
		Name: a.StopName,
		City: a.StopCity,
	}
}

// UniqueStops reduces a rides x stops listing to one row per stop code, keeping sequence order
func UniqueStops(arrivals []ScheduledArrival) []ScheduledArrival {
	return util.UniqueBy(arrivals, func(a ScheduledArrival) int { return a.StopCode })
}

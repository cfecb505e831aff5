package ctdf

import (
	"fmt"

	"github.com/travigo/timetable-maker/pkg/util"
)

// RouteIdentity is the (market code, direction, alternative) triple identifying one routed variant of a line
type RouteIdentity struct {
	MarketCode  string
	Direction   string
	Alternative string
}

func (r RouteIdentity) ID() string {
	return LineID(r.MarketCode, r.Direction, r.Alternative)
}

func LineID(marketCode string, direction string, alternative string) string {
	return fmt.Sprintf("%s-%s-%s", marketCode, direction, alternative)
}

// RouteVariant is a row of the route search, one per service date
type RouteVariant struct {
	ID          int    `json:"id"`
	Date        string `json:"date,omitempty"`
	ShortName   string `json:"route_short_name"`
	LongName    string `json:"route_long_name"`
	MarketCode  string `json:"route_mkt"`
	Direction   string `json:"route_direction"`
	Alternative string `json:"route_alternative"`
	Agency      string `json:"agency_name"`
}

func (r RouteVariant) Identity() RouteIdentity {
	return RouteIdentity{
		MarketCode:  r.MarketCode,
		Direction:   r.Direction,
		Alternative: r.Alternative,
	}
}

// SelectedLine converts the variant into a group line with no stop chosen yet
func (r RouteVariant) SelectedLine() SelectedLine {
	return SelectedLine{
		ID:          r.Identity().ID(),
		ShortName:   r.ShortName,
		LongName:    r.LongName,
		MarketCode:  r.MarketCode,
		Direction:   r.Direction,
		Alternative: r.Alternative,
		Agency:      r.Agency,
	}
}

func UniqueRouteVariants(routes []RouteVariant) []RouteVariant {
	return util.UniqueBy(routes, func(r RouteVariant) string { return r.Identity().ID() })
}

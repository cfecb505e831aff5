package export

import (
	"fmt"
	"io"
	"time"

	"github.com/rodaine/table"
	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/util"
)

// WriteText prints each day as a terminal table, days separated by a form feed
func WriteText(w io.Writer, groupName string, timetables []ctdf.TimetableData, location *time.Location) error {
	for i, timetable := range timetables {
		if i > 0 {
			if _, err := io.WriteString(w, "\f\n"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "%s - %s (%s, %d rides)\n\n", timetable.Nickname, groupName, util.DateKey(timetable.Day), timetable.RideCount()); err != nil {
			return err
		}

		tbl := table.New("Line", "Route", "Time").WithWriter(w)
		for _, ride := range timetable.Rides {
			tbl.AddRow(ride.RouteShortName, ride.RouteLongName, FormatArrival(ride, location))
		}
		tbl.Print()
	}

	return nil
}

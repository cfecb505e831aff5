package export

import (
	"html/template"
	"io"
	"time"

	"github.com/travigo/timetable-maker/pkg/ctdf"
)

const printFooter = "Generated with timetable-maker"

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html dir="rtl">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { font-family: Heebo, sans-serif; }
.day { page-break-after: always; }
h2 { font-size: 1.5rem; font-weight: bold; margin-bottom: 1rem; text-align: center; }
table { width: 100%; border-collapse: collapse; }
th { background-color: #f1f5f9; }
th, td { padding: 8px; border: 1px solid #cbd5e1; text-align: right; }
.footer { text-align: center; margin-top: 2rem; font-size: 0.8rem; }
</style>
</head>
<body>
{{- range .Days }}
<div class="day">
<h2>{{ .Nickname }} - {{ $.GroupName }}</h2>
<table>
<thead><tr><th>Line</th><th>Route</th><th>Time</th></tr></thead>
<tbody>
{{- range .Rows }}
<tr><td>{{ .ShortName }}</td><td>{{ .LongName }}</td><td>{{ .ArrivalTime }}</td></tr>
{{- end }}
</tbody>
</table>
<p class="footer">{{ $.Footer }}</p>
</div>
{{- end }}
</body>
</html>
`))

type printDay struct {
	Nickname string
	Rows     []csvRow
}

type printDocument struct {
	Title     string
	GroupName string
	Footer    string
	Days      []printDay
}

// WriteHTML renders a printable document with one page per day
func WriteHTML(w io.Writer, groupName string, timetables []ctdf.TimetableData, location *time.Location) error {
	document := printDocument{
		Title:     "Timetable print - " + groupName,
		GroupName: groupName,
		Footer:    printFooter,
	}

	for _, timetable := range timetables {
		day := printDay{Nickname: timetable.Nickname}
		for _, ride := range timetable.Rides {
			day.Rows = append(day.Rows, csvRow{
				ShortName:   ride.RouteShortName,
				LongName:    ride.RouteLongName,
				ArrivalTime: FormatArrival(ride, location),
			})
		}

		document.Days = append(document.Days, day)
	}

	return printTemplate.Execute(w, document)
}

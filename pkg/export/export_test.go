package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/timetable-maker/pkg/ctdf"
)

var testLocation = time.FixedZone("IST", 2*60*60)

func testTimetable() ctdf.TimetableData {
	return ctdf.TimetableData{
		Day:      time.Date(2025, 6, 10, 0, 0, 0, 0, testLocation),
		Nickname: "Tuesday",
		Rides: []ctdf.ScheduledArrival{
			{
				ID:               1,
				ArrivalTime:      time.Date(2025, 6, 10, 5, 5, 0, 0, time.UTC),
				RouteShortName:   "480",
				RouteLongName:    `Jerusalem "Central"-Tel Aviv`,
				RouteMarketCode:  "10480",
				RouteDirection:   "1",
				RouteAlternative: "#",
			},
			{
				ID:             2,
				ArrivalTime:    time.Date(2025, 6, 10, 16, 45, 0, 0, time.UTC),
				RouteShortName: "18",
				RouteLongName:  "Market, Old City",
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WriteCSV(&buffer, testTimetable(), testLocation))

	expected := "\uFEFF" +
		"short line name,long line name,arrival time\n" +
		`480,"Jerusalem ""Central""-Tel Aviv",07:05` + "\n" +
		`18,"Market, Old City",18:45` + "\n"

	assert.Equal(t, expected, buffer.String())
}

func TestWriteCSVWithoutRidesIsHeaderOnly(t *testing.T) {
	timetable := testTimetable()
	timetable.Rides = nil

	var buffer bytes.Buffer
	require.NoError(t, WriteCSV(&buffer, timetable, testLocation))

	assert.Equal(t, "\uFEFFshort line name,long line name,arrival time\n", buffer.String())
}

func TestWriteCSVAlwaysQuotesLongName(t *testing.T) {
	timetable := testTimetable()
	timetable.Rides = timetable.Rides[:1]
	timetable.Rides[0].RouteLongName = "Plain"

	var buffer bytes.Buffer
	require.NoError(t, WriteCSV(&buffer, timetable, testLocation))

	assert.Contains(t, buffer.String(), "\n480,\"Plain\",07:05\n")
}

func TestCSVFilename(t *testing.T) {
	assert.Equal(t, "10.06,Work.csv", CSVFilename("10.06", "Work"))
	assert.Equal(t, "10-06,Home-Work.csv", CSVFilename("10/06", "Home/Work"))
}

func TestWriteHTML(t *testing.T) {
	second := testTimetable()
	second.Nickname = "Wednesday"

	var buffer bytes.Buffer
	require.NoError(t, WriteHTML(&buffer, "Work <daily>", []ctdf.TimetableData{testTimetable(), second}, testLocation))

	html := buffer.String()
	assert.Equal(t, 2, strings.Count(html, `<div class="day">`))
	assert.Contains(t, html, "page-break-after: always")
	assert.Contains(t, html, "Tuesday - Work &lt;daily&gt;")
	assert.Contains(t, html, "Wednesday - Work &lt;daily&gt;")
	assert.Contains(t, html, "<td>07:05</td>")
	assert.Equal(t, 2, strings.Count(html, printFooter))
}

func TestWriteText(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WriteText(&buffer, "Work", []ctdf.TimetableData{testTimetable(), testTimetable()}, testLocation))

	text := buffer.String()
	assert.Equal(t, 1, strings.Count(text, "\f"))
	assert.Contains(t, text, "Tuesday - Work (2025-06-10, 2 rides)")
	assert.Contains(t, text, "18:45")
}

func TestWriteJSONUsesExportGroup(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WriteJSON(&buffer, "Work", []ctdf.TimetableData{testTimetable()}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))

	assert.Equal(t, "Work", decoded["group"])
	days := decoded["days"].([]any)
	require.Len(t, days, 1)

	day := days[0].(map[string]any)
	assert.Equal(t, "Tuesday", day["nickname"])

	ride := day["rides"].([]any)[0].(map[string]any)
	assert.Equal(t, "480", ride["gtfs_route__route_short_name"])
	assert.NotContains(t, ride, "gtfs_route__route_mkt")
}

func TestWriteFiles(t *testing.T) {
	directory := t.TempDir()
	second := testTimetable()
	second.Nickname = "Wednesday"
	timetables := []ctdf.TimetableData{testTimetable(), second}

	paths, err := WriteFiles(directory, FormatCSV, "Work", timetables, testLocation)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(directory, "Tuesday,Work.csv"),
		filepath.Join(directory, "Wednesday,Work.csv"),
	}, paths)

	paths, err = WriteFiles(directory, FormatHTML, "Work", timetables, testLocation)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "Wednesday - Work")
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

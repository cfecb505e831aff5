package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/util"
)

const byteOrderMark = "\uFEFF"

const timeLayout = "15:04"

type csvRow struct {
	ShortName   string `csv:"short line name"`
	LongName    string `csv:"long line name"`
	ArrivalTime string `csv:"arrival time"`
}

const longNameColumn = 1

// CSVFilename is "<nickname>,<group name>.csv" with path separators removed
func CSVFilename(nickname string, groupName string) string {
	return util.SafeFilename(fmt.Sprintf("%s,%s.csv", nickname, groupName))
}

func FormatArrival(arrival ctdf.ScheduledArrival, location *time.Location) string {
	return arrival.ArrivalTime.In(location).Format(timeLayout)
}

// WriteCSV writes one day as a spreadsheet friendly CSV: UTF-8 BOM, a header row, one row per ride
func WriteCSV(w io.Writer, timetable ctdf.TimetableData, location *time.Location) error {
	rows := make([]csvRow, 0, len(timetable.Rides))
	for _, ride := range timetable.Rides {
		rows = append(rows, csvRow{
			ShortName:   ride.RouteShortName,
			LongName:    ride.RouteLongName,
			ArrivalTime: FormatArrival(ride, location),
		})
	}

	buffered := bufio.NewWriter(w)
	if _, err := buffered.WriteString(byteOrderMark); err != nil {
		return err
	}

	writer := newQuotingWriter(buffered, longNameColumn)
	if err := gocsv.MarshalCSV(rows, writer); err != nil {
		return err
	}

	return buffered.Flush()
}

// quotingWriter is a gocsv.CSVWriter that always quotes the given column on data rows.
// Other fields are quoted only when they need it.
type quotingWriter struct {
	out           *bufio.Writer
	alwaysQuote   int
	headerWritten bool
	err           error
}

func newQuotingWriter(out *bufio.Writer, alwaysQuote int) *quotingWriter {
	return &quotingWriter{
		out:         out,
		alwaysQuote: alwaysQuote,
	}
}

func (w *quotingWriter) Write(row []string) error {
	if w.err != nil {
		return w.err
	}

	fields := make([]string, len(row))
	for i, field := range row {
		if (w.headerWritten && i == w.alwaysQuote) || needsQuotes(field) {
			field = quote(field)
		}
		fields[i] = field
	}
	w.headerWritten = true

	_, w.err = w.out.WriteString(strings.Join(fields, ",") + "\n")

	return w.err
}

func (w *quotingWriter) Flush() {
	if w.err == nil {
		w.err = w.out.Flush()
	}
}

func (w *quotingWriter) Error() error {
	return w.err
}

func needsQuotes(field string) bool {
	return strings.ContainsAny(field, ",\"\r\n") || strings.HasPrefix(field, " ")
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

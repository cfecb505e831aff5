package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/util"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(value string) (Format, error) {
	switch format := Format(value); format {
	case FormatCSV, FormatHTML, FormatText, FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unknown export format %q", value)
	}
}

// WriteFiles exports the timetables into directory. CSV gets one file per day, the other formats a single file.
func WriteFiles(directory string, format Format, groupName string, timetables []ctdf.TimetableData, location *time.Location) ([]string, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, err
	}

	if format == FormatCSV {
		var paths []string
		for _, timetable := range timetables {
			path := filepath.Join(directory, CSVFilename(timetable.Nickname, groupName))
			if err := WriteFile(path, func(w io.Writer) error { return WriteCSV(w, timetable, location) }); err != nil {
				return paths, err
			}

			paths = append(paths, path)
		}

		return paths, nil
	}

	var extension string
	var write func(w io.Writer) error

	switch format {
	case FormatHTML:
		extension = "html"
		write = func(w io.Writer) error { return WriteHTML(w, groupName, timetables, location) }
	case FormatText:
		extension = "txt"
		write = func(w io.Writer) error { return WriteText(w, groupName, timetables, location) }
	case FormatJSON:
		extension = "json"
		write = func(w io.Writer) error { return WriteJSON(w, groupName, timetables) }
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}

	path := filepath.Join(directory, util.SafeFilename(fmt.Sprintf("%s.%s", groupName, extension)))
	if err := WriteFile(path, write); err != nil {
		return nil, err
	}

	return []string{path}, nil
}

// PrintFilename is "<nickname>,<group name>.html" for a single printed day
func PrintFilename(nickname string, groupName string) string {
	return util.SafeFilename(fmt.Sprintf("%s,%s.html", nickname, groupName))
}

// WriteFile creates path, with its directory, and fills it with write
func WriteFile(path string, write func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}

	log.Debug().Str("path", path).Msg("Wrote export")

	return file.Close()
}

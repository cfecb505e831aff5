package export

import (
	"encoding/json"
	"io"

	"github.com/liip/sheriff"
	"github.com/travigo/timetable-maker/pkg/ctdf"
)

type jsonDocument struct {
	Group string               `json:"group" groups:"export"`
	Days  []ctdf.TimetableData `json:"days" groups:"export"`
}

// WriteJSON writes the day buckets keeping only the fields in the export group
func WriteJSON(w io.Writer, groupName string, timetables []ctdf.TimetableData) error {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"export"},
	}, jsonDocument{Group: groupName, Days: timetables})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(reduced)
}

package ctdf

import "fmt"

// SelectedStop is a snapshot of the boarding stop chosen for a line. Codes are unique within a route variant.
type SelectedStop struct {
	Code int    `json:"code" bson:"code" groups:"basic,export"`
	Name string `json:"name" bson:"name" groups:"basic,export"`
	City string `json:"city" bson:"city" groups:"basic,export"`
}

func (s SelectedStop) String() string {
	if s.City == "" {
		return fmt.Sprintf("%s (%d)", s.Name, s.Code)
	}

	return fmt.Sprintf("%s, %s (%d)", s.Name, s.City, s.Code)
}

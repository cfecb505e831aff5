package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/util"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	OfferedDays     = 7
	MaxSelectedDays = 5
)

type Step int

const (
	StepReview Step = iota
	StepSelectDays
	StepNicknames
	StepCollecting
	StepResults
	StepClosed
)

func (s Step) String() string {
	switch s {
	case StepReview:
		return "review"
	case StepSelectDays:
		return "select days"
	case StepNicknames:
		return "nicknames"
	case StepCollecting:
		return "collecting"
	case StepResults:
		return "results"
	case StepClosed:
		return "closed"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// State is one snapshot of the generator wizard. Collected data only lives here and is dropped on close.
type State struct {
	Step     Step
	Group    ctdf.LineGroup
	Location *time.Location

	Days     []time.Time
	Selected []time.Time
	// Nicknames holds the user labels keyed by date key
	Nicknames map[string]string

	Progress   int
	Timetables []ctdf.TimetableData
	Errors     []RequestError

	EditRequested bool
	Error         string
}

func NewState(group ctdf.LineGroup, now time.Time, location *time.Location) State {
	return State{
		Step:      StepReview,
		Group:     group,
		Location:  location,
		Days:      OfferedDaysFrom(now, location),
		Nicknames: map[string]string{},
	}
}

// OfferedDaysFrom returns today and the following days as local midnights
func OfferedDaysFrom(now time.Time, location *time.Location) []time.Time {
	today := util.StartOfDay(now, location)

	days := make([]time.Time, 0, OfferedDays)
	for i := 0; i < OfferedDays; i++ {
		days = append(days, time.Date(today.Year(), today.Month(), today.Day()+i, 0, 0, 0, 0, location))
	}

	return days
}

func DefaultNickname(day time.Time) string {
	return day.Format("02.01")
}

func (s State) Done() bool {
	return s.Step == StepClosed
}

func (s State) IsSelected(day time.Time) bool {
	return indexOfDay(s.Selected, day) > -1
}

func (s State) IsOffered(day time.Time) bool {
	return indexOfDay(s.Days, day) > -1
}

// Nickname is the label given to day, or its dd.MM date
func (s State) Nickname(day time.Time) string {
	if nickname := strings.TrimSpace(s.Nicknames[util.DateKey(day)]); nickname != "" {
		return nickname
	}

	return DefaultNickname(day)
}

// ErrorMessage joins every failed request, one per line
func (s State) ErrorMessage() string {
	messages := make([]string, 0, len(s.Errors))
	for _, requestError := range s.Errors {
		messages = append(messages, requestError.Error())
	}

	return strings.Join(messages, "\n")
}

func (s State) clone() State {
	s.Selected = slices.Clone(s.Selected)
	s.Nicknames = maps.Clone(s.Nicknames)
	if s.Nicknames == nil {
		s.Nicknames = map[string]string{}
	}

	return s
}

func indexOfDay(days []time.Time, day time.Time) int {
	key := util.DateKey(day)

	return slices.IndexFunc(days, func(d time.Time) bool { return util.DateKey(d) == key })
}

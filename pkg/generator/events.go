package generator

import (
	"time"

	"github.com/travigo/timetable-maker/pkg/ctdf"
)

// Event is anything that can move the generator wizard
type Event interface {
	isGeneratorEvent()
}

type Next struct{}

type Back struct{}

type Close struct{}

// RequestEdit closes the generator so the editor can be opened on the same group
type RequestEdit struct{}

type ToggleDay struct{ Day time.Time }

type SetNickname struct {
	Day      time.Time
	Nickname string
}

type ProgressReported struct{ Percent int }

type Collected struct{ Result CollectResult }

func (Next) isGeneratorEvent()             {}
func (Back) isGeneratorEvent()             {}
func (Close) isGeneratorEvent()            {}
func (RequestEdit) isGeneratorEvent()      {}
func (ToggleDay) isGeneratorEvent()        {}
func (SetNickname) isGeneratorEvent()      {}
func (ProgressReported) isGeneratorEvent() {}
func (Collected) isGeneratorEvent()        {}

type Effect interface {
	isGeneratorEffect()
}

// Collect fetches the arrivals of every line of Group on every one of Days
type Collect struct {
	Group ctdf.LineGroup
	Days  []time.Time
}

func (Collect) isGeneratorEffect() {}

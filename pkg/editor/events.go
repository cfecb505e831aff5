package editor

import "github.com/travigo/timetable-maker/pkg/ctdf"

// Event is anything that can move the editor wizard
type Event interface {
	isEditorEvent()
}

type SetName struct{ Name string }

type Next struct{}

type Back struct{}

type Cancel struct{}

type Search struct{ LineNumber string }

type RoutesLoaded struct {
	LineNumber string
	Routes     []ctdf.RouteVariant
}

type RoutesFailed struct {
	LineNumber string
	Err        error
}

type PickRoute struct{ Route ctdf.RouteVariant }

type RemoveLine struct{ LineID string }

// LoadStops requests the stop list of every line that does not have one yet
type LoadStops struct{}

type StopsLoaded struct {
	LineID string
	Stops  []ctdf.ScheduledArrival
}

type StopsFailed struct {
	LineID string
	Err    error
}

type PickStop struct {
	LineID string
	Code   int
}

type Save struct{}

type GroupSaved struct{}

type SaveFailed struct{ Err error }

func (SetName) isEditorEvent()      {}
func (Next) isEditorEvent()         {}
func (Back) isEditorEvent()         {}
func (Cancel) isEditorEvent()       {}
func (Search) isEditorEvent()       {}
func (RoutesLoaded) isEditorEvent() {}
func (RoutesFailed) isEditorEvent() {}
func (PickRoute) isEditorEvent()    {}
func (RemoveLine) isEditorEvent()   {}
func (LoadStops) isEditorEvent()    {}
func (StopsLoaded) isEditorEvent()  {}
func (StopsFailed) isEditorEvent()  {}
func (PickStop) isEditorEvent()     {}
func (Save) isEditorEvent()         {}
func (GroupSaved) isEditorEvent()   {}
func (SaveFailed) isEditorEvent()   {}

// Effect is work Update asks the Session to carry out. Its outcome comes back as an Event.
type Effect interface {
	isEditorEffect()
}

type FetchRoutes struct{ LineNumber string }

type FetchStops struct{ Line ctdf.SelectedLine }

type PersistGroup struct{ Group ctdf.LineGroup }

func (FetchRoutes) isEditorEffect()  {}
func (FetchStops) isEditorEffect()   {}
func (PersistGroup) isEditorEffect() {}

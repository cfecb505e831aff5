package editor

import (
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/travigo/timetable-maker/pkg/ctdf"
	"golang.org/x/exp/maps"
)

type Step int

const (
	StepNaming Step = iota
	StepAddingLines
	StepAssigningStops
	StepSaved
	StepCancelled
)

func (s Step) String() string {
	switch s {
	case StepNaming:
		return "naming"
	case StepAddingLines:
		return "adding lines"
	case StepAssigningStops:
		return "assigning stops"
	case StepSaved:
		return "saved"
	case StepCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// State is one snapshot of the editor wizard. Update never mutates the State it is given.
type State struct {
	Step    Step
	Group   ctdf.LineGroup
	Editing bool

	SearchQuery   string
	SearchResults []ctdf.RouteVariant
	Searching     bool

	// Stops caches the de-duplicated stop list of each line id for the lifetime of the wizard
	Stops        map[string][]ctdf.SelectedStop
	LoadingStops map[string]bool
	Saving       bool

	Notice string
	Error  string
}

func NewCreateState() State {
	return State{
		Step:         StepNaming,
		Group:        *ctdf.NewLineGroup(""),
		Stops:        map[string][]ctdf.SelectedStop{},
		LoadingStops: map[string]bool{},
	}
}

// NewEditState works on a deep copy of group, the caller's value is never touched
func NewEditState(group ctdf.LineGroup) (State, error) {
	var working ctdf.LineGroup
	if err := copier.CopyWithOption(&working, &group, copier.Option{DeepCopy: true}); err != nil {
		return State{}, fmt.Errorf("failed to copy group: %w", err)
	}
	if working.Lines == nil {
		working.Lines = []ctdf.SelectedLine{}
	}

	return State{
		Step:         StepNaming,
		Group:        working,
		Editing:      true,
		Stops:        map[string][]ctdf.SelectedStop{},
		LoadingStops: map[string]bool{},
	}, nil
}

func (s State) Done() bool {
	return s.Step == StepSaved || s.Step == StepCancelled
}

// CanPickStop reports whether the stop list of the line has loaded and contains code
func (s State) CanPickStop(lineID string, code int) bool {
	stops, loaded := s.Stops[lineID]
	if !loaded {
		return false
	}

	for _, stop := range stops {
		if stop.Code == code {
			return true
		}
	}

	return false
}

func (s State) stop(lineID string, code int) (ctdf.SelectedStop, bool) {
	for _, stop := range s.Stops[lineID] {
		if stop.Code == code {
			return stop, true
		}
	}

	return ctdf.SelectedStop{}, false
}

// clone copies everything Update may write to
func (s State) clone() State {
	s.Group.Lines = append([]ctdf.SelectedLine{}, s.Group.Lines...)
	s.Stops = maps.Clone(s.Stops)
	s.LoadingStops = maps.Clone(s.LoadingStops)
	if s.Stops == nil {
		s.Stops = map[string][]ctdf.SelectedStop{}
	}
	if s.LoadingStops == nil {
		s.LoadingStops = map[string]bool{}
	}

	return s
}

func trimmedName(name string) string {
	return strings.TrimSpace(name)
}

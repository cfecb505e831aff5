package editor

import (
	"fmt"

	"github.com/travigo/timetable-maker/pkg/ctdf"
)

const nameRequiredMessage = "a group name is required"

// Update is the editor transition function
func Update(state State, event Event) (State, []Effect) {
	if state.Done() {
		return state, nil
	}

	next := state.clone()

	if _, ok := event.(Cancel); ok {
		next.Step = StepCancelled
		return next, nil
	}

	switch next.Step {
	case StepNaming:
		return updateNaming(next, event)
	case StepAddingLines:
		return updateAddingLines(next, event)
	case StepAssigningStops:
		return updateAssigningStops(next, event)
	}

	return state, nil
}

func updateNaming(state State, event Event) (State, []Effect) {
	switch event := event.(type) {
	case SetName:
		state.Group.Name = event.Name
		state.Error = ""
	case Next:
		name := trimmedName(state.Group.Name)
		if name == "" {
			state.Error = nameRequiredMessage
			return state, nil
		}

		state.Group.Name = name
		state.Error = ""
		state.Step = StepAddingLines
	}

	return state, nil
}

func updateAddingLines(state State, event Event) (State, []Effect) {
	switch event := event.(type) {
	case Search:
		lineNumber := trimmedName(event.LineNumber)
		if lineNumber == "" || state.Searching {
			return state, nil
		}

		state.SearchQuery = lineNumber
		state.SearchResults = nil
		state.Searching = true
		state.Notice = ""
		state.Error = ""

		return state, []Effect{FetchRoutes{LineNumber: lineNumber}}
	case RoutesLoaded:
		if !state.Searching || event.LineNumber != state.SearchQuery {
			return state, nil
		}

		state.Searching = false
		state.SearchResults = ctdf.UniqueRouteVariants(event.Routes)
		if len(state.SearchResults) == 0 {
			state.Notice = fmt.Sprintf("no routes found for line %s", event.LineNumber)
		}
	case RoutesFailed:
		if !state.Searching || event.LineNumber != state.SearchQuery {
			return state, nil
		}

		state.Searching = false
		state.Error = event.Err.Error()
	case PickRoute:
		state.Group.AddLine(event.Route.SelectedLine())
	case RemoveLine:
		state.Group.RemoveLine(event.LineID)
	case Back:
		state.Step = StepNaming
		state.Notice = ""
		state.Error = ""
	case Next:
		state.Step = StepAssigningStops
		state.Notice = ""
		state.Error = ""

		return requestMissingStops(state)
	}

	return state, nil
}

func updateAssigningStops(state State, event Event) (State, []Effect) {
	switch event := event.(type) {
	case LoadStops:
		state.Error = ""
		return requestMissingStops(state)
	case StopsLoaded:
		delete(state.LoadingStops, event.LineID)

		stops := []ctdf.SelectedStop{}
		for _, arrival := range ctdf.UniqueStops(event.Stops) {
			stops = append(stops, arrival.SelectedStop())
		}
		state.Stops[event.LineID] = stops
	case StopsFailed:
		delete(state.LoadingStops, event.LineID)
		state.Error = event.Err.Error()
	case PickStop:
		stop, ok := state.stop(event.LineID, event.Code)
		if !ok {
			return state, nil
		}

		state.Group.SetStop(event.LineID, stop)
		state.Error = ""
	case RemoveLine:
		if state.Group.RemoveLine(event.LineID) {
			return requestMissingStops(state)
		}
	case Back:
		state.Step = StepAddingLines
		state.Error = ""
	case Save:
		if state.Saving {
			return state, nil
		}

		group := state.Group
		group.Name = trimmedName(group.Name)
		if err := group.Validate(); err != nil {
			state.Error = err.Error()
			return state, nil
		}

		state.Group = group
		state.Saving = true
		state.Error = ""

		return state, []Effect{PersistGroup{Group: group}}
	case GroupSaved:
		state.Saving = false
		state.Step = StepSaved
	case SaveFailed:
		state.Saving = false
		state.Error = fmt.Sprintf("failed to save group: %s", event.Err)
	}

	return state, nil
}

// requestMissingStops fetches the stop list of every line that has neither a cached list nor one in flight
func requestMissingStops(state State) (State, []Effect) {
	var effects []Effect

	for _, line := range state.Group.Lines {
		if _, cached := state.Stops[line.ID]; cached {
			continue
		}
		if state.LoadingStops[line.ID] {
			continue
		}

		state.LoadingStops[line.ID] = true
		effects = append(effects, FetchStops{Line: line})
	}

	return state, effects
}

package generator

import (
	"strings"
	"time"

	"github.com/travigo/timetable-maker/pkg/util"
	"golang.org/x/exp/slices"
)

const noDaysMessage = "select at least one day"

// Update is the generator transition function
func Update(state State, event Event) (State, []Effect) {
	if state.Done() {
		return state, nil
	}

	next := state.clone()

	if _, ok := event.(Close); ok {
		next.Step = StepClosed
		return next, nil
	}

	switch next.Step {
	case StepReview:
		switch event.(type) {
		case Next:
			next.Step = StepSelectDays
		case RequestEdit:
			next.EditRequested = true
			next.Step = StepClosed
		}
	case StepSelectDays:
		switch event := event.(type) {
		case ToggleDay:
			return toggleDay(next, event), nil
		case Next:
			if len(next.Selected) == 0 {
				next.Error = noDaysMessage
				return next, nil
			}

			next.Error = ""
			next.Step = StepNicknames
		case Back:
			next.Error = ""
			next.Step = StepReview
		}
	case StepNicknames:
		switch event := event.(type) {
		case SetNickname:
			if !next.IsSelected(event.Day) {
				break
			}
			if nickname := strings.TrimSpace(event.Nickname); nickname != "" {
				next.Nicknames[util.DateKey(event.Day)] = nickname
			} else {
				delete(next.Nicknames, util.DateKey(event.Day))
			}
		case Next:
			next.Step = StepCollecting
			next.Progress = 0
			next.Errors = nil
			next.Timetables = nil

			return next, []Effect{Collect{Group: next.Group, Days: slices.Clone(next.Selected)}}
		case Back:
			next.Step = StepSelectDays
		}
	case StepCollecting:
		switch event := event.(type) {
		case ProgressReported:
			next.Progress = max(next.Progress, event.Percent)
		case Collected:
			next.Errors = event.Result.Errors
			next.Timetables = Bucket(event.Result.Arrivals, next.Selected, next.Location)
			for i := range next.Timetables {
				next.Timetables[i].Nickname = next.Nickname(next.Timetables[i].Day)
			}
			next.Progress = 100
			next.Step = StepResults
		}
	}

	return next, nil
}

// toggleDay keeps the selection in chronological order. Selecting beyond the maximum is a no-op.
func toggleDay(state State, event ToggleDay) State {
	index := indexOfDay(state.Days, event.Day)
	if index == -1 {
		return state
	}
	day := state.Days[index]

	if selected := indexOfDay(state.Selected, day); selected > -1 {
		state.Selected = slices.Delete(state.Selected, selected, selected+1)
		delete(state.Nicknames, util.DateKey(day))
		return state
	}

	if len(state.Selected) >= MaxSelectedDays {
		return state
	}

	state.Selected = append(state.Selected, day)
	slices.SortFunc(state.Selected, func(a, b time.Time) int { return a.Compare(b) })
	state.Error = ""

	return state
}

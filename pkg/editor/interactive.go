package editor

import (
	"context"
	"fmt"

	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/prompt"
)

// RunInteractive drives the session from a terminal until it is saved or cancelled.
// The saved group is returned, nil when cancelled.
func RunInteractive(ctx context.Context, p *prompt.Prompter, session *Session) (*ctdf.LineGroup, error) {
	for {
		state := session.State()

		var err error
		switch state.Step {
		case StepSaved:
			group := state.Group
			p.Printf("Saved group %s\n", group.Name)
			return &group, nil
		case StepCancelled:
			return nil, nil
		case StepNaming:
			err = runNaming(ctx, p, session)
		case StepAddingLines:
			err = runAddingLines(ctx, p, session)
		case StepAssigningStops:
			err = runAssigningStops(ctx, p, session)
		}

		if err != nil {
			return nil, err
		}
	}
}

func printProblems(p *prompt.Prompter, state State) {
	if state.Notice != "" {
		p.Println(state.Notice)
	}
	if state.Error != "" {
		p.Printf("Error: %s\n", state.Error)
	}
}

func runNaming(ctx context.Context, p *prompt.Prompter, session *Session) error {
	name, err := p.AskDefault("Group name", session.State().Group.Name)
	if err != nil {
		return err
	}

	session.Dispatch(ctx, SetName{Name: name})
	state := session.Dispatch(ctx, Next{})
	if state.Step != StepNaming {
		return nil
	}

	printProblems(p, state)

	choice, err := p.Choose("What next?", []string{"Try again", "Cancel"})
	if err != nil {
		return err
	}
	if choice == 1 {
		session.Dispatch(ctx, Cancel{})
	}

	return nil
}

func printLines(p *prompt.Prompter, group ctdf.LineGroup) {
	if len(group.Lines) == 0 {
		p.Println("No lines in this group yet")
		return
	}

	rows := make([][]any, 0, len(group.Lines))
	for i, line := range group.Lines {
		stop := "-"
		if line.HasStop() {
			stop = line.SelectedStop.String()
		}

		rows = append(rows, []any{i + 1, line.ShortName, line.LongName, line.Agency, stop})
	}

	p.Table([]any{"#", "Line", "Route", "Agency", "Stop"}, rows)
}

func lineOptions(group ctdf.LineGroup) []string {
	options := make([]string, 0, len(group.Lines))
	for _, line := range group.Lines {
		options = append(options, fmt.Sprintf("%s %s", line.ShortName, line.LongName))
	}

	return options
}

func runAddingLines(ctx context.Context, p *prompt.Prompter, session *Session) error {
	state := session.State()

	p.Printf("\n%s: lines\n", state.Group.Name)
	printLines(p, state.Group)

	choice, err := p.Choose("What next?", []string{"Search for a line", "Remove a line", "Continue to stops", "Back", "Cancel"})
	if err != nil {
		return err
	}

	switch choice {
	case 0:
		return searchLine(ctx, p, session)
	case 1:
		return removeLine(ctx, p, session)
	case 2:
		session.Dispatch(ctx, Next{})
	case 3:
		session.Dispatch(ctx, Back{})
	case 4:
		session.Dispatch(ctx, Cancel{})
	}

	return nil
}

func searchLine(ctx context.Context, p *prompt.Prompter, session *Session) error {
	lineNumber, err := p.Ask("Line number")
	if err != nil {
		return err
	}

	state := session.Dispatch(ctx, Search{LineNumber: lineNumber})
	printProblems(p, state)
	if len(state.SearchResults) == 0 {
		return nil
	}

	options := make([]string, 0, len(state.SearchResults)+1)
	for _, route := range state.SearchResults {
		options = append(options, fmt.Sprintf("%s %s (%s)", route.ShortName, route.LongName, route.Agency))
	}
	options = append(options, "None")

	choice, err := p.Choose("Pick a route", options)
	if err != nil {
		return err
	}
	if choice < len(state.SearchResults) {
		session.Dispatch(ctx, PickRoute{Route: state.SearchResults[choice]})
	}

	return nil
}

func removeLine(ctx context.Context, p *prompt.Prompter, session *Session) error {
	group := session.State().Group
	if len(group.Lines) == 0 {
		return nil
	}

	choice, err := p.Choose("Remove which line?", append(lineOptions(group), "None"))
	if err != nil {
		return err
	}
	if choice < len(group.Lines) {
		session.Dispatch(ctx, RemoveLine{LineID: group.Lines[choice].ID})
	}

	return nil
}

func runAssigningStops(ctx context.Context, p *prompt.Prompter, session *Session) error {
	state := session.State()

	p.Printf("\n%s: stops\n", state.Group.Name)
	printLines(p, state.Group)
	printProblems(p, state)

	choice, err := p.Choose("What next?", []string{"Pick a stop", "Remove a line", "Reload stop lists", "Save", "Back", "Cancel"})
	if err != nil {
		return err
	}

	switch choice {
	case 0:
		return pickStop(ctx, p, session)
	case 1:
		return removeLine(ctx, p, session)
	case 2:
		session.Dispatch(ctx, LoadStops{})
	case 3:
		session.Dispatch(ctx, Save{})
	case 4:
		session.Dispatch(ctx, Back{})
	case 5:
		session.Dispatch(ctx, Cancel{})
	}

	return nil
}

func pickStop(ctx context.Context, p *prompt.Prompter, session *Session) error {
	state := session.State()
	if len(state.Group.Lines) == 0 {
		return nil
	}

	lineChoice, err := p.Choose("Which line?", lineOptions(state.Group))
	if err != nil {
		return err
	}
	line := state.Group.Lines[lineChoice]

	stops, loaded := state.Stops[line.ID]
	if !loaded || len(stops) == 0 {
		p.Printf("The stops of line %s are not loaded\n", line.ShortName)
		return nil
	}

	options := make([]string, 0, len(stops))
	for _, stop := range stops {
		options = append(options, stop.String())
	}

	stopChoice, err := p.Choose("Boarding stop", options)
	if err != nil {
		return err
	}
	session.Dispatch(ctx, PickStop{LineID: line.ID, Code: stops[stopChoice].Code})

	return nil
}

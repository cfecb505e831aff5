package generator

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/export"
	"github.com/travigo/timetable-maker/pkg/prompt"
	"github.com/travigo/timetable-maker/pkg/util"
)

// RunInteractive drives the session from a terminal until it is closed. Exports are written to outputDirectory.
// The final state tells the caller whether the editor was requested.
func RunInteractive(ctx context.Context, p *prompt.Prompter, session *Session, outputDirectory string) (State, error) {
	lastProgress := -1
	session.OnChange = func(state State) {
		if state.Step == StepCollecting && state.Progress != lastProgress {
			lastProgress = state.Progress
			p.Printf("\rCollecting timetables... %3d%%", state.Progress)
		}
	}
	defer func() { session.OnChange = nil }()

	for {
		state := session.State()

		var err error
		switch state.Step {
		case StepClosed:
			return state, nil
		case StepReview:
			err = runReview(ctx, p, session)
		case StepSelectDays:
			err = runSelectDays(ctx, p, session)
		case StepNicknames:
			err = runNicknames(ctx, p, session)
		case StepResults:
			err = runResults(ctx, p, session, outputDirectory)
		case StepCollecting:
			// Only reachable when a collection was interrupted, nothing left to wait for
			session.Dispatch(ctx, Close{})
		}

		if err != nil {
			return session.State(), err
		}
	}
}

func runReview(ctx context.Context, p *prompt.Prompter, session *Session) error {
	group := session.State().Group

	p.Printf("\n%s\n", group.Name)
	rows := make([][]any, 0, len(group.Lines))
	for _, line := range group.Lines {
		stop := "-"
		if line.HasStop() {
			stop = line.SelectedStop.String()
		}
		rows = append(rows, []any{line.ShortName, line.LongName, stop})
	}
	p.Table([]any{"Line", "Route", "Stop"}, rows)

	choice, err := p.Choose("What next?", []string{"Choose days", "Edit this group", "Close"})
	if err != nil {
		return err
	}

	switch choice {
	case 0:
		session.Dispatch(ctx, Next{})
	case 1:
		session.Dispatch(ctx, RequestEdit{})
	case 2:
		session.Dispatch(ctx, Close{})
	}

	return nil
}

func runSelectDays(ctx context.Context, p *prompt.Prompter, session *Session) error {
	state := session.State()
	if state.Error != "" {
		p.Printf("Error: %s\n", state.Error)
	}

	options := make([]string, 0, len(state.Days)+3)
	for _, day := range state.Days {
		mark := " "
		if state.IsSelected(day) {
			mark = "x"
		}
		options = append(options, fmt.Sprintf("[%s] %s %s", mark, day.Format("Mon"), DefaultNickname(day)))
	}
	options = append(options, "Continue", "Back", "Close")

	choice, err := p.Choose(fmt.Sprintf("Toggle days (up to %d)", MaxSelectedDays), options)
	if err != nil {
		return err
	}

	switch {
	case choice < len(state.Days):
		session.Dispatch(ctx, ToggleDay{Day: state.Days[choice]})
	case choice == len(state.Days):
		session.Dispatch(ctx, Next{})
	case choice == len(state.Days)+1:
		session.Dispatch(ctx, Back{})
	default:
		session.Dispatch(ctx, Close{})
	}

	return nil
}

func runNicknames(ctx context.Context, p *prompt.Prompter, session *Session) error {
	state := session.State()

	for _, day := range state.Selected {
		nickname, err := p.AskDefault(fmt.Sprintf("Label for %s %s", day.Format("Mon"), DefaultNickname(day)), state.Nicknames[util.DateKey(day)])
		if err != nil {
			return err
		}

		session.Dispatch(ctx, SetNickname{Day: day, Nickname: nickname})
	}

	choice, err := p.Choose("What next?", []string{"Generate", "Back", "Close"})
	if err != nil {
		return err
	}

	switch choice {
	case 0:
		session.Dispatch(ctx, Next{})
		p.Println()
	case 1:
		session.Dispatch(ctx, Back{})
	case 2:
		session.Dispatch(ctx, Close{})
	}

	return nil
}

func runResults(ctx context.Context, p *prompt.Prompter, session *Session, outputDirectory string) error {
	state := session.State()

	rows := make([][]any, 0, len(state.Timetables))
	for i, timetable := range state.Timetables {
		rows = append(rows, []any{i + 1, timetable.Nickname, util.DateKey(timetable.Day), timetable.RideCount()})
	}
	p.Table([]any{"#", "Label", "Date", "Rides"}, rows)

	if message := state.ErrorMessage(); message != "" {
		p.Printf("Some timetables could not be loaded:\n%s\n", message)
	}

	choice, err := p.Choose("What next?", []string{"Export a day as CSV", "Print a day", "Print all days", "Show all days", "Close"})
	if err != nil {
		return err
	}

	switch choice {
	case 0, 1:
		day, err := chooseDay(p, state.Timetables)
		if err != nil {
			return err
		}

		format := export.FormatCSV
		if choice == 1 {
			format = export.FormatHTML
		}

		return writeExport(p, state, format, []ctdf.TimetableData{day}, outputDirectory)
	case 2:
		return writeExport(p, state, export.FormatHTML, state.Timetables, outputDirectory)
	case 3:
		return export.WriteText(p.Writer(), state.Group.Name, state.Timetables, state.Location)
	case 4:
		session.Dispatch(ctx, Close{})
	}

	return nil
}

func chooseDay(p *prompt.Prompter, timetables []ctdf.TimetableData) (ctdf.TimetableData, error) {
	options := make([]string, 0, len(timetables))
	for _, timetable := range timetables {
		options = append(options, fmt.Sprintf("%s (%d rides)", timetable.Nickname, timetable.RideCount()))
	}

	choice, err := p.Choose("Which day?", options)
	if err != nil {
		return ctdf.TimetableData{}, err
	}

	return timetables[choice], nil
}

func writeExport(p *prompt.Prompter, state State, format export.Format, timetables []ctdf.TimetableData, outputDirectory string) error {
	groupName := state.Group.Name

	var paths []string
	var err error
	if format == export.FormatHTML && len(timetables) == 1 {
		path := filepath.Join(outputDirectory, export.PrintFilename(timetables[0].Nickname, groupName))
		err = export.WriteFile(path, func(w io.Writer) error {
			return export.WriteHTML(w, groupName, timetables, state.Location)
		})
		paths = []string{path}
	} else {
		paths, err = export.WriteFiles(outputDirectory, format, groupName, timetables, state.Location)
	}
	if err != nil {
		p.Printf("Error: %s\n", err)
		return nil
	}

	for _, path := range paths {
		absolute, err := filepath.Abs(path)
		if err != nil {
			absolute = path
		}
		p.Printf("Wrote %s\n", absolute)
	}

	return nil
}

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/database"
	"github.com/travigo/timetable-maker/pkg/editor"
	"github.com/travigo/timetable-maker/pkg/generator"
	"github.com/travigo/timetable-maker/pkg/prompt"
)

// TransitAPI is everything the wizards need from the Stride client
type TransitAPI interface {
	editor.RouteFinder
	generator.ArrivalLister
}

// Shell is the main menu. It lists the groups and hands off to the editor and generator.
type Shell struct {
	Prompter *prompt.Prompter
	Store    database.GroupStore
	API      TransitAPI
	Location *time.Location

	Workers         int
	OutputDirectory string
	Now             func() time.Time
}

const (
	actionAdd = iota
	actionEdit
	actionDelete
	actionGenerate
	actionQuit
)

// Run loops over the main menu until the user quits or the input ends
func (s *Shell) Run(ctx context.Context) error {
	for {
		quit, err := s.step(ctx)
		if errors.Is(err, io.EOF) || (err == nil && quit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) step(ctx context.Context) (bool, error) {
	groups, err := s.Store.List(ctx)
	if err != nil {
		return false, err
	}

	s.printGroups(groups)

	choice, err := s.Prompter.Choose("What would you like to do?", []string{
		"Add a group", "Edit a group", "Delete a group", "Generate a timetable", "Quit",
	})
	if err != nil {
		return false, err
	}

	switch choice {
	case actionAdd:
		_, err = editor.Open(ctx, s.Prompter, nil, s.API, s.Store)
	case actionEdit:
		err = s.withGroup(groups, func(group ctdf.LineGroup) error {
			_, err := editor.Open(ctx, s.Prompter, &group, s.API, s.Store)
			return err
		})
	case actionDelete:
		err = s.withGroup(groups, func(group ctdf.LineGroup) error {
			_, err := editor.Delete(ctx, s.Prompter, s.Store, group, false)
			return err
		})
	case actionGenerate:
		err = s.withGroup(groups, func(group ctdf.LineGroup) error {
			return s.generate(ctx, group)
		})
	case actionQuit:
		return true, nil
	}

	if err != nil && !errors.Is(err, io.EOF) {
		// the menu stays usable after a failed action
		log.Error().Err(err).Msg("Action failed")
		s.Prompter.Printf("Error: %s\n", err)
		return false, nil
	}

	return false, err
}

func (s *Shell) printGroups(groups []ctdf.LineGroup) {
	s.Prompter.Println()
	if len(groups) == 0 {
		s.Prompter.Println("No line groups yet")
		return
	}

	rows := make([][]any, 0, len(groups))
	for i, group := range groups {
		ready := "yes"
		if !group.IsTimetableReady() {
			ready = "no"
		}
		rows = append(rows, []any{i + 1, group.Name, len(group.Lines), ready})
	}

	s.Prompter.Table([]any{"#", "Group", "Lines", "Ready"}, rows)
}

func (s *Shell) withGroup(groups []ctdf.LineGroup, action func(group ctdf.LineGroup) error) error {
	if len(groups) == 0 {
		s.Prompter.Println("There are no groups yet")
		return nil
	}

	options := make([]string, 0, len(groups))
	for _, group := range groups {
		options = append(options, fmt.Sprintf("%s (%d lines)", group.Name, len(group.Lines)))
	}

	choice, err := s.Prompter.Choose("Which group?", options)
	if err != nil {
		return err
	}

	return action(groups[choice])
}

func (s *Shell) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}

	return s.Now()
}

// generate runs the generator, and opens the editor on the group only once the generator has closed
func (s *Shell) generate(ctx context.Context, group ctdf.LineGroup) error {
	session := generator.NewSession(generator.NewState(group, s.now(), s.Location), s.API, s.Workers)

	state, err := generator.RunInteractive(ctx, s.Prompter, session, s.OutputDirectory)
	if err != nil {
		return err
	}

	if state.EditRequested {
		_, err = editor.Open(ctx, s.Prompter, &group, s.API, s.Store)
	}

	return err
}

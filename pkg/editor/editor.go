package editor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/prompt"
)

type GroupDeleter interface {
	Delete(ctx context.Context, id string) error
}

// Open runs the editor wizard for group, or for a new group when group is nil
func Open(ctx context.Context, p *prompt.Prompter, group *ctdf.LineGroup, finder RouteFinder, saver GroupSaver) (*ctdf.LineGroup, error) {
	state := NewCreateState()
	if group != nil {
		var err error
		if state, err = NewEditState(*group); err != nil {
			return nil, err
		}
	}

	return RunInteractive(ctx, p, NewSession(state, finder, saver))
}

// Delete removes the group once the user confirms, skipping the question when confirmed is already true
func Delete(ctx context.Context, p *prompt.Prompter, store GroupDeleter, group ctdf.LineGroup, confirmed bool) (bool, error) {
	if !confirmed {
		var err error
		confirmed, err = p.Confirm(fmt.Sprintf("Delete group %s with %d lines?", group.Name, len(group.Lines)))
		if err != nil {
			return false, err
		}
	}

	if !confirmed {
		return false, nil
	}

	if err := store.Delete(ctx, group.ID); err != nil {
		return false, err
	}

	log.Info().Str("id", group.ID).Str("name", group.Name).Msg("Deleted group")

	return true, nil
}

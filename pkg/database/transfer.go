package database

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/travigo/timetable-maker/pkg/ctdf"
)

// ExportGroups writes the whole group list in the persisted JSON format
func ExportGroups(ctx context.Context, store GroupStore, writer io.Writer) (int, error) {
	groups, err := store.List(ctx)
	if err != nil {
		return 0, err
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	return len(groups), encoder.Encode(groups)
}

// ImportGroups upserts every group of a JSON list. Groups without an id are given one.
func ImportGroups(ctx context.Context, store GroupStore, reader io.Reader) (int, error) {
	var groups []ctdf.LineGroup
	if err := json.NewDecoder(reader).Decode(&groups); err != nil {
		return 0, fmt.Errorf("failed to decode groups: %w", err)
	}

	for i := range groups {
		group := &groups[i]
		if group.ID == "" {
			group.ID = uuid.NewString()
		}

		for j := range group.Lines {
			if group.Lines[j].ID == "" {
				group.Lines[j].ID = group.Lines[j].Identity().ID()
			}
		}

		if err := store.Upsert(ctx, group); err != nil {
			return i, fmt.Errorf("failed to import group %s: %w", group.Name, err)
		}

		log.Debug().Str("id", group.ID).Str("name", group.Name).Msg("Imported group")
	}

	return len(groups), nil
}

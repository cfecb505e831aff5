package database

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/travigo/timetable-maker/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// document is a key scoped blob holding the whole group list as JSON
type document interface {
	// Read returns nil when nothing has been written yet
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

type documentStore struct {
	document document
}

func (s *documentStore) List(ctx context.Context) ([]ctdf.LineGroup, error) {
	data, err := s.document.Read(ctx)
	if err != nil {
		return nil, err
	}

	return decodeGroups(data)
}

func (s *documentStore) Upsert(ctx context.Context, group *ctdf.LineGroup) error {
	groups, err := s.List(ctx)
	if err != nil {
		return err
	}

	return s.write(ctx, upsertGroup(groups, *group))
}

func (s *documentStore) Delete(ctx context.Context, id string) error {
	groups, err := s.List(ctx)
	if err != nil {
		return err
	}

	index := slices.IndexFunc(groups, func(g ctdf.LineGroup) bool { return g.ID == id })
	if index == -1 {
		return ErrGroupNotFound
	}

	return s.write(ctx, slices.Delete(groups, index, index+1))
}

func (s *documentStore) Close() error {
	return s.document.Close()
}

func (s *documentStore) write(ctx context.Context, groups []ctdf.LineGroup) error {
	data, err := json.Marshal(groups)
	if err != nil {
		return err
	}

	log.Debug().Int("groups", len(groups)).Msg("Writing group document")

	return s.document.Write(ctx, data)
}

func decodeGroups(data []byte) ([]ctdf.LineGroup, error) {
	groups := []ctdf.LineGroup{}
	if len(data) == 0 {
		return groups, nil
	}

	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []ctdf.LineGroup{}
	}

	return groups, nil
}

func upsertGroup(groups []ctdf.LineGroup, group ctdf.LineGroup) []ctdf.LineGroup {
	index := slices.IndexFunc(groups, func(g ctdf.LineGroup) bool { return g.ID == group.ID })
	if index == -1 {
		return append(groups, group)
	}

	groups[index] = group

	return groups
}

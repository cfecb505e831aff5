package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/timetable-maker/pkg/config"
	"github.com/travigo/timetable-maker/pkg/ctdf"
)

var ErrGroupNotFound = errors.New("group not found")

// GroupStore persists the full set of line groups. Last write wins, there are no partial updates.
type GroupStore interface {
	// List returns every group in insertion order
	List(ctx context.Context) ([]ctdf.LineGroup, error)
	// Upsert replaces the group with the same id in place, or appends it
	Upsert(ctx context.Context, group *ctdf.LineGroup) error
	Delete(ctx context.Context, id string) error
	Close() error
}

var GlobalStore GroupStore

func Connect(cfg config.StoreConfig) error {
	store, err := Open(cfg)
	if err != nil {
		return err
	}

	GlobalStore = store

	return nil
}

func Open(cfg config.StoreConfig) (GroupStore, error) {
	log.Debug().Str("backend", cfg.Backend).Msg("Opening group store")

	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.Directory, cfg.Key)
	case "redis":
		return NewRedisStore(cfg.Redis, cfg.Key)
	case "mongodb":
		return NewMongoStore(cfg.MongoDB)
	case "sqlite":
		return NewSQLiteStore(cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func Get(ctx context.Context, store GroupStore, id string) (*ctdf.LineGroup, error) {
	groups, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, group := range groups {
		if group.ID == id {
			return &group, nil
		}
	}

	return nil, ErrGroupNotFound
}

// Find looks a group up by id, then by case insensitive name
func Find(ctx context.Context, store GroupStore, idOrName string) (*ctdf.LineGroup, error) {
	groups, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, group := range groups {
		if group.ID == idOrName {
			return &group, nil
		}
	}
	for _, group := range groups {
		if strings.EqualFold(strings.TrimSpace(group.Name), strings.TrimSpace(idOrName)) {
			return &group, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, idOrName)
}

package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/travigo/timetable-maker/pkg/ctdf"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS line_groups (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	lines TEXT NOT NULL
)`

type sqliteGroupRow struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Lines string `db:"lines"`
}

type sqliteStore struct {
	db *sqlx.DB
}

func NewSQLiteStore(path string) (GroupStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("Connected to SQLite database")

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) List(ctx context.Context) ([]ctdf.LineGroup, error) {
	var rows []sqliteGroupRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT id, name, lines FROM line_groups ORDER BY rowid"); err != nil {
		return nil, err
	}

	groups := make([]ctdf.LineGroup, 0, len(rows))
	for _, row := range rows {
		group := ctdf.LineGroup{ID: row.ID, Name: row.Name}
		if err := json.Unmarshal([]byte(row.Lines), &group.Lines); err != nil {
			return nil, fmt.Errorf("failed to decode lines of group %s: %w", row.ID, err)
		}

		groups = append(groups, group)
	}

	return groups, nil
}

func (s *sqliteStore) Upsert(ctx context.Context, group *ctdf.LineGroup) error {
	lines := group.Lines
	if lines == nil {
		lines = []ctdf.SelectedLine{}
	}
	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	_, err = s.db.NamedExecContext(ctx, `INSERT INTO line_groups (id, name, lines) VALUES (:id, :name, :lines)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, lines = excluded.lines`,
		sqliteGroupRow{ID: group.ID, Name: group.Name, Lines: string(linesJSON)})

	return err
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM line_groups WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrGroupNotFound
	}

	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

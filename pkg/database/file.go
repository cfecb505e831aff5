package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type fileDocument struct {
	path string
}

func NewFileStore(directory string, key string) (GroupStore, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &documentStore{
		document: &fileDocument{path: filepath.Join(directory, key+".json")},
	}, nil
}

func (d *fileDocument) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	return data, err
}

// Write replaces the file atomically so an interrupted save never leaves a truncated list
func (d *fileDocument) Write(ctx context.Context, data []byte) error {
	temp, err := os.CreateTemp(filepath.Dir(d.path), filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(temp.Name()) }()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	return os.Rename(temp.Name(), d.path)
}

func (d *fileDocument) Close() error {
	return nil
}

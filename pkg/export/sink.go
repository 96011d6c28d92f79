package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoDir is returned when a directory sink is configured without a path
var ErrNoDir = errors.New("dir sink requires a directory")

// Sink stores encoded snapshots under a name
type Sink interface {
	Write(ctx context.Context, name string, data []byte) error
	Name() string
}

// DirSink writes snapshots into a local directory
type DirSink struct {
	dir string
}

// NewDirSink creates the directory if needed
func NewDirSink(dir string) (*DirSink, error) {
	if dir == "" {
		return nil, ErrNoDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}
	return &DirSink{dir: dir}, nil
}

// Name implements Sink
func (s *DirSink) Name() string {
	return "dir"
}

// Dir returns the target directory
func (s *DirSink) Dir() string {
	return s.dir
}

// Write stores data atomically: write to a temp file, then rename over the target.
func (s *DirSink) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.dir, filepath.Base(name))
	tmp, err := os.CreateTemp(s.dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

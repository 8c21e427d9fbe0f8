package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/flowgrid/pkg/domain"
)

const ext = ".json"

// Store implements ports.StateStore using the local filesystem.
// It stores grids as JSON files in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".flowgrid/grids".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".flowgrid", "grids")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(gridID string) (string, error) {
	if gridID == "" {
		return "", errors.New("grid id cannot be empty")
	}
	if strings.ContainsAny(gridID, `/\`) || gridID == "." || gridID == ".." {
		return "", fmt.Errorf("invalid grid id %q", gridID)
	}
	return filepath.Join(s.BasePath, gridID+ext), nil
}

// Save persists the grid state atomically: the JSON is written to a temp file
// in the same directory, synced, then renamed over the destination.
func (s *Store) Save(ctx context.Context, gridID string, state *domain.State) error {
	dest, err := s.path(gridID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure grid directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal grid %s: %w", gridID, err)
	}

	tmp, err := os.CreateTemp(s.BasePath, "tmp-"+gridID+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename does not overwrite on Windows.
	if _, err := os.Stat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("failed to replace grid file: %w", err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load retrieves the grid state from its JSON file.
func (s *Store) Load(ctx context.Context, gridID string) (*domain.State, error) {
	p, err := s.path(gridID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrGridNotFound
		}
		return nil, fmt.Errorf("failed to read grid file: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grid %s: %w", gridID, err)
	}
	return &state, nil
}

// Delete removes the grid file. Deleting a missing grid is not an error.
func (s *Store) Delete(ctx context.Context, gridID string) error {
	p, err := s.path(gridID)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete grid file: %w", err)
	}
	return nil
}

// List returns the IDs of all stored grids, sorted. Leftover temp files are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list grids: %w", err)
	}

	grids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		grids = append(grids, strings.TrimSuffix(name, ext))
	}
	sort.Strings(grids)
	return grids, nil
}

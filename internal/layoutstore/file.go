package layoutstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"griddeck/internal/dashboard"
)

const (
	// DataDirEnv overrides the ~/.griddeck base directory (for testing).
	DataDirEnv = "GRIDDECK_DATA_DIR"
	// defaultLayoutsBase is the default base for layout records.
	defaultLayoutsBase = ".griddeck/layouts"
)

// FileStore keeps one JSON file per layout under a base directory.
// Layout: ~/.griddeck/layouts/<id>.json
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir, or at the default base under
// the user's home (respecting GRIDDECK_DATA_DIR) when dir is empty.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = os.Getenv(DataDirEnv)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, defaultLayoutsBase)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(layoutID string) string {
	// Normalize to keep ids filesystem-safe.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, layoutID)
	return filepath.Join(s.dir, safe+".json")
}

// Load implements Store.
func (s *FileStore) Load(_ context.Context, layoutID string) (dashboard.Layout, error) {
	data, err := os.ReadFile(s.path(layoutID))
	if os.IsNotExist(err) {
		return dashboard.Layout{}, fmt.Errorf("layout %q: %w", layoutID, ErrNotFound)
	}
	if err != nil {
		return dashboard.Layout{}, err
	}
	return decode(data)
}

// Save implements Store. The record is written atomically via a temp file so
// a crash mid-write never leaves a truncated layout behind.
func (s *FileStore) Save(_ context.Context, layout dashboard.Layout) error {
	data, err := encode(layout)
	if err != nil {
		return err
	}
	path := s.path(layout.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// List implements Store. Unreadable or foreign files are skipped.
func (s *FileStore) List(ctx context.Context, ownerID string) ([]dashboard.Layout, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var out []dashboard.Layout
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		l, err := decode(data)
		if err != nil {
			continue
		}
		if ownerID == "" || l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Delete implements Store.
func (s *FileStore) Delete(_ context.Context, layoutID string) error {
	err := os.Remove(s.path(layoutID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

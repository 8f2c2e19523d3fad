package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	apperrors "talent_messenger/pkg/errors"
	"talent_messenger/pkg/logger"
)

// fileMedium keeps one <name>.json file per collection under a data
// directory. Writes go through a temp file and a rename so readers never
// observe a half-written payload.
type fileMedium struct {
	dir string
	log logger.Logger
}

func NewFileMedium(dir string, log logger.Logger) (Medium, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", apperrors.ErrMediumUnavailable, err)
	}
	return &fileMedium{dir: dir, log: log}, nil
}

func (m *fileMedium) path(name string) string {
	return filepath.Join(m.dir, name+".json")
}

func (m *fileMedium) Load(ctx context.Context, name string) (string, bool, error) {
	data, err := os.ReadFile(m.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		m.log.Error("Failed to read collection file", "collection", name, "error", err)
		return "", false, fmt.Errorf("%w: read %q: %v", apperrors.ErrMediumUnavailable, name, err)
	}
	return string(data), true, nil
}

func (m *fileMedium) Save(ctx context.Context, name, payload string) error {
	tmp, err := os.CreateTemp(m.dir, name+"-*.tmp")
	if err != nil {
		m.log.Error("Failed to create temp file", "collection", name, "error", err)
		return fmt.Errorf("%w: write %q: %v", apperrors.ErrMediumUnavailable, name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		m.log.Error("Failed to write collection file", "collection", name, "error", err)
		return fmt.Errorf("%w: write %q: %v", apperrors.ErrMediumUnavailable, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %q: %v", apperrors.ErrMediumUnavailable, name, err)
	}

	if err := os.Rename(tmpName, m.path(name)); err != nil {
		os.Remove(tmpName)
		m.log.Error("Failed to replace collection file", "collection", name, "error", err)
		return fmt.Errorf("%w: write %q: %v", apperrors.ErrMediumUnavailable, name, err)
	}

	return nil
}

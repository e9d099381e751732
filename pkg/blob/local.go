package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps objects on the local filesystem under a base directory.
// Handles are relative paths inside that directory.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create base dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save writes the reader to a uniquely named file. The file is written to a
// temp name first and renamed into place so a partial upload never becomes
// resolvable.
func (s *LocalStore) Save(ctx context.Context, fileName string, r io.Reader) (Handle, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	name := uuid.NewString() + "_" + sanitizeName(fileName)
	finalPath := filepath.Join(s.baseDir, name)
	tmpPath := finalPath + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("blob: open temp file: %w", err)
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("blob: write object: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", 0, fmt.Errorf("blob: finalize object: %w", err)
	}
	return Handle(name), written, nil
}

func (s *LocalStore) Open(ctx context.Context, h Handle) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(h)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *LocalStore) Delete(ctx context.Context, h Handle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.resolve(h)
	if err != nil {
		return err
	}
	if err := os.Remove(path); os.IsNotExist(err) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return nil
}

// resolve validates the handle stays inside baseDir (handles are issued by
// this store, but they arrive back over the wire).
func (s *LocalStore) resolve(h Handle) (string, error) {
	clean := filepath.Clean(string(h))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", ErrNotFound
	}
	return filepath.Join(s.baseDir, clean), nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." {
		return "upload"
	}
	return name
}

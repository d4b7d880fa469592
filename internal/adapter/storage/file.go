package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
)

var _ BlobStorage = (*FileStorage)(nil)

// A FileStorage keeps every key as a JSON file inside dir.
//
// Writes go to a temporary file that is renamed over the target,
// so a reader never sees a partially written blob.
type FileStorage struct {
	fs  afero.Fs
	dir string
}

func NewFileStorage(fsys afero.Fs, dir string) (FileStorage, error) {
	const op = "NewFileStorage"

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return FileStorage{}, fmt.Errorf("%s: %w", op, err)
	}
	slog.Info("file storage is ready", "op", op, "dir", dir)
	return FileStorage{fs: fsys, dir: dir}, nil
}

func (s FileStorage) Load(ctx context.Context, key string) ([]byte, error) {
	const op = "FileStorage.Load"

	if err := s.check(ctx, key); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	blob, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(op, key)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return blob, nil
}

func (s FileStorage) Save(ctx context.Context, key string, blob []byte) error {
	const op = "FileStorage.Save"

	if err := s.check(ctx, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	target := s.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, blob, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s FileStorage) Delete(ctx context.Context, key string) error {
	const op = "FileStorage.Delete"

	if err := s.check(ctx, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.fs.Remove(s.path(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return notFound(op, key)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s FileStorage) Close() {}

func (s FileStorage) check(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return validateKey(key)
}

func (s FileStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

package credstore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileStore keeps the token in a single file, written atomically via a
// sibling temp file and rename. The file is created with 0600 since it
// holds a live bearer credential.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path. The parent
// directory is created lazily on the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("[NewFileStore] path is required")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Get(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(ErrStorage, "[FileStore.Get] %v", err)
	}
	return string(data), nil
}

func (s *FileStore) Set(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrapf(ErrStorage, "[FileStore.Set] mkdir %v", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return errors.Wrapf(ErrStorage, "[FileStore.Set] temp file %v", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrapf(ErrStorage, "[FileStore.Set] chmod %v", err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return errors.Wrapf(ErrStorage, "[FileStore.Set] write %v", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(ErrStorage, "[FileStore.Set] close %v", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Wrapf(ErrStorage, "[FileStore.Set] rename %v", err)
	}
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(ErrStorage, "[FileStore.Clear] %v", err)
	}
	return nil
}

package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on the local filesystem for
// development and tests. URLs are served from BaseURL by whatever
// static file server fronts the directory.
type LocalStorage struct {
	root    string
	baseURL string
}

// NewLocalStorage creates filesystem-backed artifact storage rooted at
// dir.
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: directory is required", ErrInvalidConfig)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &LocalStorage{root: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Upload implements Storage.
func (l *LocalStorage) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	path, err := l.safePath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Join(ErrUploadFailed, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Join(ErrUploadFailed, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", errors.Join(ErrUploadFailed, err)
	}

	return l.baseURL + "/" + strings.TrimPrefix(key, "/"), nil
}

// Delete implements Storage.
func (l *LocalStorage) Delete(_ context.Context, key string) error {
	path, err := l.safePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Join(ErrDeleteFailed, err)
	}
	return nil
}

// safePath rejects keys that would escape the storage root.
func (l *LocalStorage) safePath(key string) (string, error) {
	path := filepath.Join(l.root, filepath.FromSlash(key))
	if !strings.HasPrefix(path, filepath.Clean(l.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: key escapes storage root", ErrInvalidConfig)
	}
	return path, nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage persists files under a directory served at publicBaseURL
type LocalStorage struct {
	baseDir       string
	publicBaseURL string
}

// NewLocalStorage creates the directory if it does not exist
func NewLocalStorage(baseDir, publicBaseURL string) (*LocalStorage, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		baseDir = "media"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, publicBaseURL: publicBaseURL}, nil
}

// Dir is the root directory, used to serve files over HTTP
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

func (s *LocalStorage) Save(ctx context.Context, data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyPayload
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := newKey(ext)
	absPath := s.path(key)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return key, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (s *LocalStorage) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	err := filepath.WalkDir(s.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.baseDir, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, Object{Key: key, ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return objects, nil
}

func (s *LocalStorage) URL(key string) string {
	return joinURL(s.publicBaseURL, key)
}

// path maps a key to a file under baseDir; keys cannot escape it
func (s *LocalStorage) path(key string) string {
	clean := path.Clean("/" + key)
	return filepath.Join(s.baseDir, filepath.FromSlash(clean))
}

var _ ImageStore = (*LocalStorage)(nil)

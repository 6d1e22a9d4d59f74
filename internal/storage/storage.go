// Package storage keeps uploaded recipe images on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/foodgram/foodgram-backend/config"
	"github.com/google/uuid"
)

// RecipeImagePrefix is the key prefix of every recipe image
const RecipeImagePrefix = "recipes/"

var ErrEmptyPayload = errors.New("empty payload")

// Object is a stored file as seen by List
type Object struct {
	Key     string
	ModTime time.Time
}

// ImageStore is implemented by LocalStorage and S3Storage
type ImageStore interface {
	// Save stores data under a fresh key with the given extension and returns the key
	Save(ctx context.Context, data []byte, ext string) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Object, error)
	// URL returns the public URL of key, or "" for an empty key
	URL(key string) string
}

// New builds the store selected by cfg.Type
func New(ctx context.Context, cfg config.StorageConfig) (ImageStore, error) {
	switch cfg.Type {
	case "s3":
		return NewS3Storage(ctx, cfg.S3), nil
	case "local", "":
		return NewLocalStorage(cfg.LocalDir, cfg.PublicBaseURL)
	}
	return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
}

func newKey(ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = "bin"
	}
	return path.Join(strings.TrimSuffix(RecipeImagePrefix, "/"), uuid.New().String()+"."+ext)
}

func joinURL(base, key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + key
}

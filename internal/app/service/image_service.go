package service

import (
	"context"
	"fmt"
	"time"

	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/internal/storage"
	"github.com/foodgram/foodgram-backend/pkg/logger"
)

// ImageService stores recipe images and cleans up ones no recipe points to
type ImageService interface {
	// Store decodes a base64 data URL and saves it, returning the storage key
	Store(ctx context.Context, payload string) (string, error)
	Discard(ctx context.Context, key string)
	URL(key string) string
	// SweepOrphans deletes unreferenced images older than grace and returns how many were removed
	SweepOrphans(ctx context.Context, grace time.Duration) (int, error)
}

type imageService struct {
	store   storage.ImageStore
	recipes repository.RecipeRepository
	now     func() time.Time
}

func NewImageService(store storage.ImageStore, recipes repository.RecipeRepository) ImageService {
	return &imageService{store: store, recipes: recipes, now: time.Now}
}

func (s *imageService) Store(ctx context.Context, payload string) (string, error) {
	data, ext, err := storage.DecodeImage(payload)
	if err != nil {
		return "", err
	}

	key, err := s.store.Save(ctx, data, ext)
	if err != nil {
		logger.Error("Failed to store image", err, map[string]interface{}{
			"size": len(data),
		})
		return "", fmt.Errorf("store image: %w", err)
	}

	logger.Debug("Image stored", map[string]interface{}{
		"key":  key,
		"size": len(data),
	})
	return key, nil
}

// Discard deletes key; failures are logged and left to the sweeper
func (s *imageService) Discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		logger.Warn("Failed to delete image", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (s *imageService) URL(key string) string {
	return s.store.URL(key)
}

func (s *imageService) SweepOrphans(ctx context.Context, grace time.Duration) (int, error) {
	objects, err := s.store.List(ctx, storage.RecipeImagePrefix)
	if err != nil {
		return 0, err
	}
	keys, err := s.recipes.ImageKeys()
	if err != nil {
		return 0, err
	}

	referenced := make(map[string]bool, len(keys))
	for _, key := range keys {
		referenced[key] = true
	}

	cutoff := s.now().Add(-grace)
	removed := 0
	for _, obj := range objects {
		if referenced[obj.Key] || obj.ModTime.After(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, obj.Key); err != nil {
			logger.Warn("Failed to delete orphaned image", map[string]interface{}{
				"key":   obj.Key,
				"error": err.Error(),
			})
			continue
		}
		removed++
	}

	logger.Info("Orphaned images swept", map[string]interface{}{
		"scanned": len(objects),
		"removed": removed,
	})
	return removed, nil
}

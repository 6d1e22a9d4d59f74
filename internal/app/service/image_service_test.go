package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/foodgram/foodgram-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageService_SweepOrphans(t *testing.T) {
	f := setupServiceTest(t)
	ctx := context.Background()

	recipe, err := f.recipes.Create(ctx, f.alice.ID, f.input("Pancakes"))
	require.NoError(t, err)

	orphan, err := f.images.Store(ctx, testImage)
	require.NoError(t, err)
	fresh, err := f.images.Store(ctx, testImage)
	require.NoError(t, err)

	old := time.Now().Add(-48 * time.Hour)
	for _, key := range []string{recipe.Image, orphan} {
		require.NoError(t, os.Chtimes(filepath.Join(f.store.Dir(), filepath.FromSlash(key)), old, old))
	}

	removed, err := f.images.SweepOrphans(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	objects, err := f.store.List(ctx, storage.RecipeImagePrefix)
	require.NoError(t, err)
	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		keys = append(keys, obj.Key)
	}
	assert.ElementsMatch(t, []string{recipe.Image, fresh}, keys)
}

func TestImageService_DiscardIgnoresMissing(t *testing.T) {
	f := setupServiceTest(t)

	f.images.Discard(context.Background(), "")
	f.images.Discard(context.Background(), storage.RecipeImagePrefix+"missing.png")
	assert.Equal(t, "/media/recipes/a.png", f.images.URL("recipes/a.png"))
}

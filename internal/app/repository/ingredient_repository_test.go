package repository

import (
	"testing"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientRepository_Search(t *testing.T) {
	f := setupRepositoryTest(t)
	require.NoError(t, f.db.Create(&model.Ingredient{Name: "Flour rye", MeasurementUnit: "g"}).Error)
	require.NoError(t, f.db.Create(&model.Ingredient{Name: "sunflower oil", MeasurementUnit: "ml"}).Error)
	require.NoError(t, f.db.Create(&model.Ingredient{Name: "50%_cream", MeasurementUnit: "ml"}).Error)
	require.NoError(t, f.db.Create(&model.Ingredient{Name: "Мука пшеничная", MeasurementUnit: "г"}).Error)
	require.NoError(t, f.db.Create(&model.Ingredient{Name: "молоко", MeasurementUnit: "мл"}).Error)

	tests := []struct {
		prefix string
		want   []string
	}{
		{"FL", []string{"Flour rye", "flour"}},
		{"flour", []string{"Flour rye", "flour"}},
		{"oil", nil},
		{"50%", []string{"50%_cream"}},
		{"5_", nil},
		{"МУ", []string{"Мука пшеничная"}},
		{"мук", []string{"Мука пшеничная"}},
		{"Мо", []string{"молоко"}},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			found, err := f.repos.Ingredients.Search(tt.prefix)
			require.NoError(t, err)
			var names []string
			for _, ingredient := range found {
				names = append(names, ingredient.Name)
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}

	all, err := f.repos.Ingredients.Search("")
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestIngredientRepository_GetOrCreate(t *testing.T) {
	f := setupRepositoryTest(t)

	existing, created, err := f.repos.Ingredients.GetOrCreate("flour", "g")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, f.flour.ID, existing.ID)

	fresh, created, err := f.repos.Ingredients.GetOrCreate("flour", "kg")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, f.flour.ID, fresh.ID)
}

func TestIngredientRepository_FindByIDs(t *testing.T) {
	f := setupRepositoryTest(t)

	found, err := f.repos.Ingredients.FindByIDs([]uint{f.flour.ID, 999})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "flour", found[0].Name)

	none, err := f.repos.Ingredients.FindByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

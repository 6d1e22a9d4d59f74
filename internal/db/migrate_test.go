package db

import (
	"testing"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedTagsIsIdempotent(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, SeedTags(testDB))
	require.NoError(t, SeedTags(testDB))

	var tags []model.Tag
	require.NoError(t, testDB.Order("id").Find(&tags).Error)
	assert.Len(t, tags, len(DefaultTags))
	assert.Equal(t, "breakfast", tags[0].Slug)
	for _, tag := range tags {
		assert.Len(t, tag.Color, 7)
	}
}

func TestSchemaEnforcesConstraints(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	author := &model.User{Email: "a@example.com", Username: "a", FirstName: "A", LastName: "B", PasswordHash: "x"}
	require.NoError(t, testDB.Create(author).Error)

	t.Run("cooking time check", func(t *testing.T) {
		err := testDB.Create(&model.Recipe{AuthorID: author.ID, Name: "n", Text: "t", CookingTime: 0}).Error
		assert.Error(t, err)
	})

	t.Run("ingredient name and unit unique", func(t *testing.T) {
		require.NoError(t, testDB.Create(&model.Ingredient{Name: "salt", MeasurementUnit: "g"}).Error)
		require.NoError(t, testDB.Create(&model.Ingredient{Name: "salt", MeasurementUnit: "tsp"}).Error)
		assert.Error(t, testDB.Create(&model.Ingredient{Name: "salt", MeasurementUnit: "g"}).Error)
	})

	t.Run("favorite requires existing recipe", func(t *testing.T) {
		err := testDB.Create(&model.Favorite{UserID: author.ID, RecipeID: 9999}).Error
		assert.Error(t, err)
	})
}

func TestBackfillIngredientSearchNames(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, testDB.Exec(
		"INSERT INTO ingredients (name, measurement_unit, search_name) VALUES (?, ?, '')", "Сахар", "г",
	).Error)

	require.NoError(t, BackfillIngredientSearchNames(testDB))

	var ingredient model.Ingredient
	require.NoError(t, testDB.Where("name = ?", "Сахар").First(&ingredient).Error)
	assert.Equal(t, "сахар", ingredient.SearchName)
}

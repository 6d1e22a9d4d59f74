package repository

import (
	"fmt"
	"testing"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	repos     *Repositories
	alice     *model.User
	bob       *model.User
	breakfast *model.Tag
	dinner    *model.Tag
	flour     *model.Ingredient
	eggs      *model.Ingredient
}

func setupRepositoryTest(t *testing.T) *fixture {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	f := &fixture{db: testDB, repos: NewRepositories(testDB)}
	f.alice = createUser(t, testDB, "alice")
	f.bob = createUser(t, testDB, "bob")

	f.breakfast = &model.Tag{Name: "Breakfast", Slug: "breakfast", Color: "#E26C2D"}
	f.dinner = &model.Tag{Name: "Dinner", Slug: "dinner", Color: "#8775D2"}
	require.NoError(t, testDB.Create(f.breakfast).Error)
	require.NoError(t, testDB.Create(f.dinner).Error)

	f.flour = &model.Ingredient{Name: "flour", MeasurementUnit: "g"}
	f.eggs = &model.Ingredient{Name: "eggs", MeasurementUnit: "pcs"}
	require.NoError(t, testDB.Create(f.flour).Error)
	require.NoError(t, testDB.Create(f.eggs).Error)
	return f
}

func createUser(t *testing.T, testDB *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        fmt.Sprintf("%s@example.com", username),
		Username:     username,
		FirstName:    username,
		LastName:     "Tester",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

// createRecipe stores a recipe with the given tags and ingredient amounts (ingredient id -> amount)
func (f *fixture) createRecipe(t *testing.T, author *model.User, name string, tags []*model.Tag, amounts map[uint]int) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{AuthorID: author.ID, Name: name, Text: name + " text", CookingTime: 10}
	require.NoError(t, f.repos.Recipes.Create(recipe))

	tagIDs := make([]uint, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	require.NoError(t, f.repos.Recipes.ReplaceTags(recipe.ID, tagIDs))

	lines := make([]model.IngredientRecipe, 0, len(amounts))
	for ingredientID, amount := range amounts {
		lines = append(lines, model.IngredientRecipe{IngredientID: ingredientID, Amount: amount})
	}
	require.NoError(t, f.repos.Recipes.ReplaceIngredients(recipe.ID, lines))
	return recipe
}

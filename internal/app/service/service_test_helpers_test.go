package service

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/internal/app/validator"
	"github.com/foodgram/foodgram-backend/internal/db"
	"github.com/foodgram/foodgram-backend/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testImage = "data:image/png;base64," +
	base64.StdEncoding.EncodeToString(append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...))

type serviceFixture struct {
	db      *gorm.DB
	uow     repository.UnitOfWork
	store   *storage.LocalStorage
	images  ImageService
	recipes RecipeService
	alice   *model.User
	bob     *model.User
	lunch   *model.Tag
	dinner  *model.Tag
	flour   *model.Ingredient
	sugar   *model.Ingredient
}

func setupServiceTest(t *testing.T) *serviceFixture {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	store, err := storage.NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	f := &serviceFixture{db: testDB, uow: repository.NewUnitOfWork(testDB), store: store}
	f.images = NewImageService(store, f.uow.Repositories().Recipes)
	f.recipes = NewRecipeService(f.uow, f.images)

	f.alice = createTestUser(t, testDB, "alice", model.RoleUser)
	f.bob = createTestUser(t, testDB, "bob", model.RoleUser)

	f.lunch = &model.Tag{Name: "Lunch", Slug: "lunch", Color: "#49B64E"}
	f.dinner = &model.Tag{Name: "Dinner", Slug: "dinner", Color: "#8775D2"}
	require.NoError(t, testDB.Create(f.lunch).Error)
	require.NoError(t, testDB.Create(f.dinner).Error)

	f.flour = &model.Ingredient{Name: "flour", MeasurementUnit: "g"}
	f.sugar = &model.Ingredient{Name: "sugar", MeasurementUnit: "g"}
	require.NoError(t, testDB.Create(f.flour).Error)
	require.NoError(t, testDB.Create(f.sugar).Error)
	return f
}

func createTestUser(t *testing.T, testDB *gorm.DB, username string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Email:        fmt.Sprintf("%s@example.com", username),
		Username:     username,
		FirstName:    username,
		LastName:     "Cook",
		PasswordHash: "hash",
		Role:         role,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

// input builds a valid payload using the fixture's tags and ingredients
func (f *serviceFixture) input(name string) RecipeInput {
	return RecipeInput{
		RecipeInput: validator.RecipeInput{
			Name:        name,
			Text:        name + " method",
			CookingTime: 25,
			TagIDs:      []uint{f.lunch.ID},
			Ingredients: []validator.IngredientLine{
				{IngredientID: f.flour.ID, Amount: 200},
				{IngredientID: f.sugar.ID, Amount: 50},
			},
		},
		Image: testImage,
	}
}
